// Package embedded 提供嵌入资源的统一访问接口
//
// 默认的特效库和查看器配置随二进制文件一起嵌入（data/ 目录）。
// 调用 Init 可以用磁盘目录等其他文件系统替换默认数据，
// 例如通过 --effects 指定的自定义特效目录。
//
// 所有路径必须以 "data/" 开头。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed data
var defaultFS embed.FS

var dataFS fs.FS = defaultFS

// Init 替换数据文件系统。fsys 的根目录下必须包含 data/ 目录。
// 传入 nil 恢复为嵌入的默认数据。
func Init(fsys fs.FS) {
	if fsys == nil {
		dataFS = defaultFS
		return
	}
	dataFS = fsys
}

// FS 返回当前的数据文件系统
func FS() fs.FS {
	return dataFS
}

// Default 返回嵌入的默认数据，不受 Init 影响
func Default() fs.FS {
	return defaultFS
}

// cleanPath 标准化路径并校验 "data/" 前缀
func cleanPath(path string) (string, error) {
	// 标准化路径分隔符为正斜杠（fs.FS 使用正斜杠）
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if path != "data" && !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开数据文件
func Open(path string) (fs.File, error) {
	path, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(path)
}

// ReadFile 读取数据文件内容
func ReadFile(path string) ([]byte, error) {
	path, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配数据文件
func Glob(pattern string) ([]string, error) {
	pattern, err := cleanPath(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, pattern)
}

// ReadDir 读取目录内容
func ReadDir(path string) ([]fs.DirEntry, error) {
	path, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(dataFS, path)
}

// Sub 返回指定目录的子文件系统
func Sub(dir string) (fs.FS, error) {
	dir, err := cleanPath(dir)
	if err != nil {
		return nil, err
	}
	return fs.Sub(dataFS, dir)
}
