package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanDirAndPick(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"Inter/Inter-Bold.ttf", "Inter/Inter-Regular.TTF", "readme.txt", "Mono.otf"} {
		full := filepath.Join(dir, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}

	list, err := ScanDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inter/Inter-Bold.ttf", "Inter/Inter-Regular.TTF", "Mono.otf"}, list)
	assert.Equal(t, filepath.Join(dir, "Inter", "Inter-Regular.TTF"), Pick(dir))
}

func TestPickMissingDir(t *testing.T) {
	assert.Equal(t, "", Pick(filepath.Join(t.TempDir(), "none")))
	list, err := ScanDir(filepath.Join(t.TempDir(), "none"))
	assert.NoError(t, err)
	assert.Empty(t, list)
}
