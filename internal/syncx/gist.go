package syncx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GistFilename is the file inside the gist that holds the encrypted blob.
const GistFilename = "chronicle_sync.enc"

const gistAPIBase = "https://api.github.com/gists"

// GistBackend stores the encrypted sync content in a GitHub Gist. The gist's
// revision history doubles as the recovery path for overwritten pushes.
type GistBackend struct {
	gistID string
	token  string
	base   string
	client *http.Client
}

// GistOption adjusts a GistBackend; used by tests to point at a fake server.
type GistOption func(*GistBackend)

// WithGistBaseURL overrides the GitHub API base URL.
func WithGistBaseURL(base string) GistOption {
	return func(g *GistBackend) { g.base = base }
}

// WithGistHTTPClient overrides the HTTP client.
func WithGistHTTPClient(c *http.Client) GistOption {
	return func(g *GistBackend) { g.client = c }
}

func NewGistBackend(gistID, githubToken string, opts ...GistOption) *GistBackend {
	g := &GistBackend{
		gistID: gistID,
		token:  githubToken,
		base:   gistAPIBase,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type gistFile struct {
	Content string `json:"content"`
}

type gistDocument struct {
	ID          string              `json:"id,omitempty"`
	Description string              `json:"description,omitempty"`
	Public      *bool               `json:"public,omitempty"`
	Files       map[string]gistFile `json:"files"`
}

// Read fetches the encrypted content from the gist. An absent sync file
// yields "", not an error.
func (g *GistBackend) Read(ctx context.Context) (string, error) {
	var doc gistDocument
	if err := g.request(ctx, http.MethodGet, g.base+"/"+g.gistID, nil, &doc); err != nil {
		return "", err
	}
	file, ok := doc.Files[GistFilename]
	if !ok {
		return "", nil
	}
	return file.Content, nil
}

// Write overwrites the gist file content.
func (g *GistBackend) Write(ctx context.Context, content string) error {
	payload := gistDocument{Files: map[string]gistFile{GistFilename: {Content: content}}}
	return g.request(ctx, http.MethodPatch, g.base+"/"+g.gistID, &payload, nil)
}

// Append adds one line to the gist content (read-modify-write).
func (g *GistBackend) Append(ctx context.Context, line string) error {
	return appendLine(ctx, g, line)
}

// CreateGist creates a new secret gist seeded with a comment line and
// returns its ID. Used by `chronicle sync setup`.
func CreateGist(ctx context.Context, githubToken, description string, opts ...GistOption) (string, error) {
	g := NewGistBackend("", githubToken, opts...)
	public := false
	payload := gistDocument{
		Description: description,
		Public:      &public,
		Files:       map[string]gistFile{GistFilename: {Content: "# chronicle sync\n"}},
	}
	var created gistDocument
	if err := g.request(ctx, http.MethodPost, g.base, &payload, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (g *GistBackend) request(ctx context.Context, method, url string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrBackend, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: github api (%d): %s", ErrBackend, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrBackend, err)
		}
	}
	return nil
}
