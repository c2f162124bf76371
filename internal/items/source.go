package items

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vytor/minimalpairs/internal/logger"
	"github.com/vytor/minimalpairs/internal/models"
)

// Source opens the item document of one category.
type Source interface {
	Open(ctx context.Context, category models.Category) (io.ReadCloser, error)
}

func documentName(category models.Category) string {
	return string(category) + ".json"
}

// FSSource reads <category>.json files from a file system.
type FSSource struct {
	fsys fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Open(_ context.Context, category models.Category) (io.ReadCloser, error) {
	return s.fsys.Open(documentName(category))
}

// HTTPSource fetches <base>/<category>.json over HTTP.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPSource{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Open(ctx context.Context, category models.Category) (io.ReadCloser, error) {
	log := logger.FromContext(ctx).WithPrefix("items").WithField("category", category)

	target, err := url.JoinPath(s.baseURL, documentName(category))
	if err != nil {
		return nil, err
	}

	log.Debug("fetching item document: %s", target)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	log.Debug("item document response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("fetch %s: status %d: %s", target, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp.Body, nil
}
