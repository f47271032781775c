// File: internal/image/service_test.go
package image

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), "/images", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, store)
	return store
}

// Helper to create a valid multipart.FileHeader that can be opened.
func newTestFileHeader(t *testing.T, filename, content, contentType string) *multipart.FileHeader {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	if contentType != "" {
		partHeader.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	files := form.File["image"]
	require.NotEmpty(t, files)
	return files[0]
}

func TestStore_SaveUploaded_Success(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "/images", zap.NewNop())
	require.NoError(t, err)

	fh := newTestFileHeader(t, "photo.jpg", "jpeg content here", "image/jpeg")
	id, err := store.SaveUploaded(fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "poi/"), "ids live under the poi sub-directory, got %s", id)
	assert.True(t, strings.HasSuffix(id, ".jpg"))

	saved, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(id)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg content here", string(saved))
}

func TestStore_SaveUploaded_ExtensionFromContentType(t *testing.T) {
	store := setupStore(t)

	fh := newTestFileHeader(t, "no_extension", "png content", "image/png")
	id, err := store.SaveUploaded(fh)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, ".png"))
}

func TestStore_SaveUploaded_UnsupportedType(t *testing.T) {
	store := setupStore(t)

	fh := newTestFileHeader(t, "script", "#!/bin/sh", "application/x-sh")
	_, err := store.SaveUploaded(fh)
	require.Error(t, err)
}

func TestStore_Save_RawBytes(t *testing.T) {
	store := setupStore(t)

	id, err := store.Save(strings.NewReader("gif content"), "image/gif")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, ".gif"))

	_, err = store.Save(strings.NewReader("???"), "text/plain")
	require.Error(t, err)
}

func TestStore_Descriptors(t *testing.T) {
	store := setupStore(t)

	first, err := store.Save(strings.NewReader("a"), "image/jpeg")
	require.NoError(t, err)
	second, err := store.Save(strings.NewReader("b"), "image/png")
	require.NoError(t, err)

	// Order is preserved; missing and traversal-shaped ids are skipped.
	descriptors := store.Descriptors([]string{second, "poi/gone.jpg", first, "../../etc/passwd"})
	require.Len(t, descriptors, 2)
	assert.Equal(t, second, descriptors[0].ID)
	assert.Equal(t, "/images/"+second, descriptors[0].URL)
	assert.Equal(t, first, descriptors[1].ID)
}

func TestStore_Descriptors_Empty(t *testing.T) {
	store := setupStore(t)

	descriptors := store.Descriptors(nil)
	require.NotNil(t, descriptors)
	assert.Len(t, descriptors, 0)
}

func TestStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "/images", zap.NewNop())
	require.NoError(t, err)

	id, err := store.Save(strings.NewReader("bytes"), "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, store.Delete(id))
	_, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(id)))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting an already-gone id is fine; traversal attempts are not.
	require.NoError(t, store.Delete(id))
	require.Error(t, store.Delete("../outside.jpg"))
	require.Error(t, store.Delete(""))
}
