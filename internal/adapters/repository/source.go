package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// maxDocumentBytes bounds how much of a roster document is read.
const maxDocumentBytes = 8 << 20

// Source fetches the raw roster document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	// String names the source in logs.
	String() string
}

// FileSource reads the roster from a local file.
type FileSource struct {
	Path string
}

// Fetch reads the file. ctx is checked before reading.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(io.LimitReader(f, maxDocumentBytes))
}

func (s FileSource) String() string { return "file:" + s.Path }

// HTTPSource fetches the roster with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch issues the request. Any non-2xx status is an error.
func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, s.URL)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
}

func (s HTTPSource) String() string { return s.URL }
