package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLibrary_Contains(t *testing.T) {
	root := t.TempDir()
	lib := New(root)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "inside", path: filepath.Join(root, "props", "crate"), want: true},
		{name: "root itself", path: root, want: true},
		{name: "outside", path: filepath.Dir(root), want: false},
		{name: "escape via dotdot", path: filepath.Join(root, "..", "elsewhere"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lib.Contains(tt.path))
		})
	}
}

func TestLibrary_TrashLifecycle(t *testing.T) {
	root := t.TempDir()
	lib := New(root)

	assetDir := filepath.Join(root, "props", "crate")
	assert.NoError(t, os.MkdirAll(assetDir, os.ModePerm))
	assert.NoError(t, os.WriteFile(filepath.Join(assetDir, "crate.usd"), []byte("usda"), 0644))

	trashed, err := lib.MoveToTrash("asset-1", assetDir)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(lib.TrashDir(), "asset-1"), trashed)

	_, err = os.Stat(assetDir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(trashed, "crate.usd"))
	assert.NoError(t, err)

	assert.NoError(t, lib.RestoreFromTrash("asset-1", assetDir))
	_, err = os.Stat(filepath.Join(assetDir, "crate.usd"))
	assert.NoError(t, err)

	// a second restore has nothing to move
	assert.Error(t, lib.RestoreFromTrash("asset-1", assetDir))
}

func TestLibrary_MoveToTrash_OutsideRoot(t *testing.T) {
	lib := New(t.TempDir())

	outside := t.TempDir()
	_, err := lib.MoveToTrash("asset-1", outside)
	assert.ErrorIs(t, err, ErrOutsideLibrary)
}

func TestLibrary_Purge(t *testing.T) {
	root := t.TempDir()
	lib := New(root)

	assetDir := filepath.Join(root, "fx", "smoke")
	assert.NoError(t, os.MkdirAll(assetDir, os.ModePerm))

	_, err := lib.MoveToTrash("asset-2", assetDir)
	assert.NoError(t, err)

	assert.NoError(t, lib.Purge("asset-2"))
	_, err = os.Stat(filepath.Join(lib.TrashDir(), "asset-2"))
	assert.True(t, os.IsNotExist(err))
}

func TestChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.bin")
	assert.NoError(t, os.WriteFile(path, []byte("blacksmith"), 0644))

	sum, size, err := Checksum(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), size)
	assert.Len(t, sum, 64)
}
