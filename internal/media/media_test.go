package media

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallGIF - минимальная картинка 1x1
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func upload(name string, data []byte) *Upload {
	return &Upload{File: bytes.NewReader(data), Filename: name, Size: int64(len(data))}
}

func TestStoreSave(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, 1024)
	assert.Equal(t, root, store.Root())

	t.Run("Success gif", func(t *testing.T) {
		rel, err := store.Save(upload("small.gif", smallGIF))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(rel, "posts/"))
		assert.True(t, strings.HasSuffix(rel, ".gif"))

		saved, err := os.ReadFile(filepath.Join(root, rel))
		require.NoError(t, err)
		assert.Equal(t, smallGIF, saved)
	})

	t.Run("Error: not an image", func(t *testing.T) {
		_, err := store.Save(upload("note.gif", []byte("just some text")))
		assert.ErrorIs(t, err, ErrNotImage)
	})

	t.Run("Error: empty file", func(t *testing.T) {
		_, err := store.Save(upload("empty.gif", nil))
		assert.ErrorIs(t, err, ErrNotImage)
	})

	t.Run("Error: declared size too large", func(t *testing.T) {
		_, err := NewStore(root, 10).Save(upload("small.gif", smallGIF))
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("Error: actual size too large", func(t *testing.T) {
		u := upload("small.gif", smallGIF)
		u.Size = 1
		_, err := NewStore(root, 20).Save(u)
		assert.ErrorIs(t, err, ErrTooLarge)
	})
}

func TestURL(t *testing.T) {
	assert.Equal(t, "", URL(""))
	assert.Equal(t, "/media/posts/a.gif", URL("posts/a.gif"))
}

func TestHandler(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, 1024)
	rel, err := store.Save(upload("small.gif", smallGIF))
	require.NoError(t, err)

	h := http.StripPrefix("/media", store.Handler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/"+rel, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/posts/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
