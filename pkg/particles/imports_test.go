package particles

import (
	"go/build"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCoreStaysHeadless 核心与工具包不依赖 ebiten，无窗口环境也能编译
func TestCoreStaysHeadless(t *testing.T) {
	for _, dir := range []string{".", "../utils"} {
		t.Run(dir, func(t *testing.T) {
			pkg, err := build.ImportDir(dir, 0)
			require.NoError(t, err)
			for _, imp := range pkg.Imports {
				assert.False(t, strings.HasPrefix(imp, "github.com/hajimehoshi/ebiten"), "%s imports %s", dir, imp)
			}
		})
	}
}
