package syncx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGistServer emulates the two gist endpoints the backend touches.
type fakeGistServer struct {
	*httptest.Server
	files map[string]string
	auth  string
}

func newFakeGistServer(t *testing.T) *fakeGistServer {
	t.Helper()
	f := &fakeGistServer{files: map[string]string{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/gist-123", func(w http.ResponseWriter, r *http.Request) {
		f.auth = r.Header.Get("Authorization")
		switch r.Method {
		case http.MethodGet:
			resp := map[string]any{"id": "gist-123", "files": map[string]any{}}
			files := resp["files"].(map[string]any)
			for name, content := range f.files {
				files[name] = map[string]any{"content": content}
			}
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPatch:
			var body struct {
				Files map[string]struct {
					Content string `json:"content"`
				} `json:"files"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			for name, file := range body.Files {
				f.files[name] = file.Content
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "gist-123"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "gist-123"})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

func (f *fakeGistServer) backend() *GistBackend {
	return NewGistBackend("gist-123", "token-abc", WithGistBaseURL(f.URL))
}

func TestGistBackend_ReadMissingFile(t *testing.T) {
	srv := newFakeGistServer(t)
	content, err := srv.backend().Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", content)
	assert.Equal(t, "Bearer token-abc", srv.auth)
}

func TestGistBackend_WriteThenRead(t *testing.T) {
	srv := newFakeGistServer(t)
	b := srv.backend()

	require.NoError(t, b.Write(context.Background(), "token-1\ntoken-2\n"))
	content, err := b.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1\ntoken-2\n", content)
}

func TestGistBackend_Append(t *testing.T) {
	srv := newFakeGistServer(t)
	b := srv.backend()
	ctx := context.Background()

	require.NoError(t, b.Append(ctx, "first"))
	require.NoError(t, b.Append(ctx, "second"))

	content, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", content)
}

func TestGistBackend_HTTPErrorWrapsErrBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	b := NewGistBackend("gist-123", "bad-token", WithGistBaseURL(srv.URL))
	_, err := b.Read(context.Background())
	require.ErrorIs(t, err, ErrBackend)
	assert.Contains(t, err.Error(), "401")
}

func TestCreateGist(t *testing.T) {
	srv := newFakeGistServer(t)
	id, err := CreateGist(context.Background(), "token-abc", "Chronicle sync", WithGistBaseURL(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "gist-123", id)
}
