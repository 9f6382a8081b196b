// Package static serves the front-end bundle from a single public directory.
package static

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/hlog"
)

const (
	indexFile       = "index.html"
	defaultMIMEType = "application/octet-stream"
	notFoundBody    = "404 Not Found"
)

type Server struct {
	root string
}

func NewServer(root string) *Server {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	// the root itself may be a symlink, compare against where it points
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	return &Server{
		root: abs,
	}
}

// Resolve maps a URL path to a file inside the public root. Dot segments are
// collapsed as if the path were rooted, so they can never climb above the
// root, and the final file must still live under the root after symlinks are
// followed.
func (s *Server) Resolve(urlPath string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+strings.TrimLeft(urlPath, "/")), "/")
	if name == "" || name == "." {
		name = indexFile
	}

	full := filepath.Join(s.root, filepath.FromSlash(name))

	resolved, err := filepath.EvalSymlinks(full)
	if err != nil || !s.contains(resolved) {
		return "", false
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	return resolved, true
}

func (s *Server) contains(p string) bool {
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	file, ok := s.Resolve(r.URL.Path)
	if !ok {
		NotFound(w)
		return
	}

	f, err := os.Open(file)
	if err != nil {
		NotFound(w)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		NotFound(w)
		return
	}

	mimeType := mime.TypeByExtension(filepath.Ext(file))
	if mimeType == "" {
		mimeType = defaultMIMEType
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("file", file).Msg("failed to stream static file")
	}
}

// NotFound writes the plain 404 page used for unknown static paths.
func NotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(notFoundBody))
}
