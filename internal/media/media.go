// Package media хранит загруженные к постам картинки на диске.
package media

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadDir - подкаталог для картинок постов
const UploadDir = "posts"

var (
	ErrTooLarge = errors.New("image is too large")
	ErrNotImage = errors.New("file is not a supported image")
)

var allowedTypes = map[string]string{
	"image/gif":  ".gif",
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// Upload - файл из multipart-формы
type Upload struct {
	File     io.ReadSeeker
	Filename string
	Size     int64
}

type Store struct {
	root    string
	maxSize int64
}

func NewStore(root string, maxSize int64) *Store {
	return &Store{root: root, maxSize: maxSize}
}

func (s *Store) Root() string {
	return s.root
}

// Save проверяет размер и содержимое и пишет файл под новым именем.
// Возвращает путь относительно корня хранилища.
func (s *Store) Save(upload *Upload) (string, error) {
	if upload.Size > s.maxSize {
		return "", fmt.Errorf("%s: %w", upload.Filename, ErrTooLarge)
	}

	buf := make([]byte, 512)
	n, err := io.ReadFull(upload.File, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%s is empty: %w", upload.Filename, ErrNotImage)
		}
		return "", fmt.Errorf("could not read upload: %w", err)
	}

	contentType := http.DetectContentType(buf[:n])
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%s has type %s: %w", upload.Filename, contentType, ErrNotImage)
	}

	if _, err := upload.File.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("could not rewind upload: %w", err)
	}

	dir := filepath.Join(s.root, UploadDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create media dir: %w", err)
	}

	name := uuid.NewString() + ext
	out, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("could not create image file: %w", err)
	}

	// +1 байт, чтобы заметить файл больше заявленного размера
	written, err := io.Copy(out, io.LimitReader(upload.File, s.maxSize+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxSize {
		err = fmt.Errorf("%s: %w", upload.Filename, ErrTooLarge)
	}
	if err != nil {
		_ = os.Remove(filepath.Join(dir, name))
		return "", err
	}

	return UploadDir + "/" + name, nil
}

// URL строит адрес картинки для шаблона
func URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return "/media/" + strings.TrimPrefix(relPath, "/")
}

// Handler отдает файлы хранилища без листинга каталогов
func (s *Store) Handler() http.Handler {
	fs := http.FileServer(http.Dir(s.root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}
