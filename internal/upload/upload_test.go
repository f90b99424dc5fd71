package upload

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("receipt.pdf", "application/pdf", 100, 5<<20))
	assert.NoError(t, Validate("photo.JPG", "image/jpeg", 100, 5<<20))
	assert.NoError(t, Validate("photo.jpg", "", 100, 5<<20))

	assert.ErrorIs(t, Validate("big.png", "image/png", 6<<20, 5<<20), ErrTooLarge)
	assert.ErrorIs(t, Validate("script.exe", "application/octet-stream", 10, 5<<20), ErrBadFileType)
	assert.ErrorIs(t, Validate("fake.png", "application/pdf", 10, 5<<20), ErrBadFileType)
}

func TestDiskStoreSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, 5<<20)

	path, err := store.Save("transactions", "receipt.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/transactions/"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	rel := strings.TrimPrefix(path, "/uploads/")
	onDisk := filepath.Join(root, filepath.FromSlash(rel))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)

	require.NoError(t, store.Delete(path))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// deleting again is not an error
	assert.NoError(t, store.Delete(path))
}

func TestDiskStoreRejects(t *testing.T) {
	store := NewDiskStore(t.TempDir(), 4)

	_, err := store.Save("transactions", "big.png", []byte("12345"))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = store.Save("transactions", "run.sh", []byte("x"))
	assert.ErrorIs(t, err, ErrBadFileType)

	assert.Error(t, store.Delete("/etc/passwd"))
	assert.Error(t, store.Delete("/uploads/../secret"))
}

func TestParseDataURI(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	data, ext, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, ".png", ext)

	_, ext, err = ParseDataURI("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	_, _, err = ParseDataURI("data:text/plain;base64,aGVsbG8=")
	assert.Error(t, err)

	_, _, err = ParseDataURI("data:image/png;base64,!!!")
	assert.Error(t, err)
}
