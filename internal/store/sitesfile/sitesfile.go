// Package sitesfile reads and writes the sites.json navigation document.
package sitesfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/navsite/internal/domain"
)

var (
	// ErrNotFound is returned by Load when the file does not exist.
	ErrNotFound = errors.New("sites file not found")

	// ErrMissingDir is returned by Save when the target directory does not exist.
	ErrMissingDir = errors.New("sites file directory does not exist")
)

// MalformedError reports a sites file that exists but cannot be used.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed sites file %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Load reads and validates the document at path.
func Load(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read sites file: %w", err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	return doc, nil
}

// Decode parses a document and coerces absent fields to empty values.
func Decode(data []byte) (*domain.Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return raw.toDocument()
}

// Save writes doc to path as indented JSON, replacing any previous file in a
// single rename. The parent directory must already exist.
func Save(path string, doc *domain.Document) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrMissingDir, dir)
	}

	data, err := Encode(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write sites file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write sites file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set sites file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace sites file: %w", err)
	}

	return nil
}

// Encode renders doc with 2-space indentation and a trailing newline.
// Emoji, CJK and '&' are written literally.
func Encode(doc *domain.Document) ([]byte, error) {
	// Clone turns nil site slices into empty ones so they encode as [].
	doc = doc.Clone()
	if doc == nil {
		doc = &domain.Document{}
	}
	if doc.Categories == nil {
		doc.Categories = []domain.Category{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode sites file: %w", err)
	}
	return buf.Bytes(), nil
}
