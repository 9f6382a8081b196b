// Package i18n serves the per-language translation documents the front-end
// loads at runtime. Documents are plain JSON files named <code>.json inside a
// single directory, plus language.json listing the supported codes.
package i18n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// SupportedLanguagesName is the document listing the available languages. It
// lives next to the translations, so it is not a valid language code.
const SupportedLanguagesName = "language"

var ErrNotSupported = errors.New("language is not supported")

type Store interface {
	// Translation returns the minified document for lang, or ErrNotSupported
	// when no such document exists.
	Translation(lang string) ([]byte, error)
	SupportedLanguages() ([]byte, error)
}

type fileStore struct {
	dir string
}

func NewFileStore(dir string) Store {
	return &fileStore{
		dir: filepath.Clean(dir),
	}
}

func (s *fileStore) Translation(lang string) ([]byte, error) {
	path, ok := s.documentPath(lang)
	if !ok {
		return nil, fmt.Errorf("%q: %w", lang, ErrNotSupported)
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%q: %w", lang, ErrNotSupported)
	}

	return readMinified(path)
}

func (s *fileStore) SupportedLanguages() ([]byte, error) {
	return readMinified(filepath.Join(s.dir, SupportedLanguagesName+".json"))
}

// documentPath joins lang onto the store directory and refuses anything that
// would resolve outside of it.
func (s *fileStore) documentPath(lang string) (string, bool) {
	path := filepath.Join(s.dir, lang+".json")

	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return path, true
}

func readMinified(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation document: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("translation document %s is not valid JSON", filepath.Base(path))
	}

	return pretty.Ugly(data), nil
}
