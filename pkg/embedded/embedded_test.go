package embedded

import (
	"testing"
	"testing/fstest"
)

// TestDefaultData 测试嵌入的默认数据
func TestDefaultData(t *testing.T) {
	Init(nil)

	if !Exists("data/viewer.yaml") {
		t.Error("Expected embedded data/viewer.yaml")
	}

	files, err := Glob("data/effects/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(files) < 2 {
		t.Errorf("Expected at least 2 embedded effect files, got %v", files)
	}
}

// TestPathPrefix 测试路径前缀校验
func TestPathPrefix(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"data 前缀", "data/viewer.yaml", false},
		{"./ 前缀", "./data/viewer.yaml", false},
		{"未知前缀", "assets/test.png", true},
		{"无前缀", "viewer.yaml", true},
	}

	Init(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

// TestInitOverride 测试替换文件系统
func TestInitOverride(t *testing.T) {
	custom := fstest.MapFS{
		"data/effects/custom.yaml": {Data: []byte("effects: []\n")},
	}
	Init(custom)
	defer Init(nil)

	if Exists("data/viewer.yaml") {
		t.Error("Expected override FS to hide default files")
	}
	data, err := ReadFile("data/effects/custom.yaml")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "effects: []\n" {
		t.Errorf("Unexpected content %q", data)
	}

	sub, err := Sub("data/effects")
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	entries, err := ReadDir("data/effects")
	if err != nil || len(entries) != 1 {
		t.Errorf("ReadDir = %v, %v", entries, err)
	}
	if _, err := sub.Open("custom.yaml"); err != nil {
		t.Errorf("Sub FS open failed: %v", err)
	}

	// Default 不受 Init 影响
	if _, err := Default().Open("data/viewer.yaml"); err != nil {
		t.Errorf("Default() should still expose embedded data: %v", err)
	}
}
