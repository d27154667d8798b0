// Package media validates and stores uploaded post images.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"scribe/internal/models"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// InvalidImageMessage is reported for uploads that do not decode as an image.
const InvalidImageMessage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Store keeps uploads under Root and serves them below URLPrefix.
type Store struct {
	Root      string
	URLPrefix string
	MaxBytes  int64
}

// NewStore returns a Store rooted at root. maxMB <= 0 disables the size limit.
func NewStore(root, urlPrefix string, maxMB int) *Store {
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &Store{Root: root, URLPrefix: urlPrefix, MaxBytes: int64(maxMB) << 20}
}

func invalid(msg string) error {
	return models.NewFieldValidationError(map[string]string{"image": msg})
}

// Validate reports whether data is a decodable image and returns its format.
func (s *Store) Validate(data []byte) (string, error) {
	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return "", invalid(fmt.Sprintf("Image must not exceed %d MB.", s.MaxBytes>>20))
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return "", invalid(InvalidImageMessage)
	}
	return format, nil
}

// Save validates data and writes it as posts/<name>, adding a random suffix
// when the name is taken. It returns the stored relative path.
func (s *Store) Save(filename string, data []byte) (string, error) {
	if _, err := s.Validate(data); err != nil {
		return "", err
	}

	dir := filepath.Join(s.Root, filepath.FromSlash(models.UploadDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := cleanName(filename)
	for attempt := 0; attempt < 5; attempt++ {
		candidate := name
		if attempt > 0 {
			ext := path.Ext(name)
			candidate = strings.TrimSuffix(name, ext) + "_" + uuid.NewString()[:8] + ext
		}
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create upload file: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return "", fmt.Errorf("write upload file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close upload file: %w", err)
		}
		return models.UploadDir + candidate, nil
	}
	return "", fmt.Errorf("no free file name for %q", name)
}

// ReadUpload reads a multipart file, rejecting files over the size limit
// before reading them.
func (s *Store) ReadUpload(fh *multipart.FileHeader) ([]byte, error) {
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return nil, invalid(fmt.Sprintf("Image must not exceed %d MB.", s.MaxBytes>>20))
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// URL returns the public URL of a stored path, or "" for an empty path.
func (s *Store) URL(stored string) string {
	if stored == "" {
		return ""
	}
	return s.URLPrefix + stored
}

// Delete removes a stored file. Missing files are not an error.
func (s *Store) Delete(stored string) error {
	if stored == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(path.Clean("/" + stored))))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func cleanName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = unsafeName.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "upload"
	}
	return base
}
