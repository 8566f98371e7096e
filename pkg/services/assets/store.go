// Package assets resolves the fixed render-time resources of the export
// engine: the spreadsheet template and the two header logos. Fetching them
// is the only I/O a renderer performs besides producing its artifact.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Well-known asset names. Both logos are optional at render time; the
// template is mandatory for the spreadsheet and bundle formats.
const (
	TemplateFile = "daily_report_template.xlsx"
	LogoCompany  = "logo_company.png"
	LogoClient   = "logo_client.png"
)

// ErrNotFound marks an asset that does not exist at its well-known path.
var ErrNotFound = errors.New("asset not found")

// Store fetches render-time assets. Implementations must be safe for
// concurrent use; exports may run in parallel.
type Store interface {
	Template(ctx context.Context) ([]byte, error)
	Logo(ctx context.Context, name string) ([]byte, error)
}

// FileStore serves assets from a local directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Template(ctx context.Context) ([]byte, error) {
	return s.read(TemplateFile)
}

func (s *FileStore) Logo(ctx context.Context, name string) ([]byte, error) {
	return s.read(name)
}

func (s *FileStore) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", name, err)
	}
	return data, nil
}

// HTTPStore serves assets from a static file host under one base URL.
type HTTPStore struct {
	base   string
	client *http.Client
}

func NewHTTPStore(base string) *HTTPStore {
	return &HTTPStore{
		base:   base,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *HTTPStore) Template(ctx context.Context) ([]byte, error) {
	return s.fetch(ctx, TemplateFile)
}

func (s *HTTPStore) Logo(ctx context.Context, name string) ([]byte, error) {
	return s.fetch(ctx, name)
}

func (s *HTTPStore) fetch(ctx context.Context, name string) ([]byte, error) {
	u, err := url.JoinPath(s.base, name)
	if err != nil {
		return nil, fmt.Errorf("asset url for %s: %w", name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("asset request for %s: %w", name, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch asset %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch asset %s: unexpected status %d", name, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
