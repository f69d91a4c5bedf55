package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	custom_error "github.com/jayeuse/Inventory-System-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, 5*time.Second, nil)
	require.NoError(t, err)
	return client, server
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("localhost", time.Second, nil)
	assert.Error(t, err)
}

func TestCSRFTokenEmptyWithoutCookie(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())
	assert.Equal(t, "", client.CSRFToken())
}

func TestMutatingRequestsCarryCSRFHeader(t *testing.T) {
	var seen = map[string][]string{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: CSRFCookie, Value: "tok-123", Path: "/"})
	})
	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		seen[r.Method] = r.Header.Values(CSRFHeader)
		w.WriteHeader(http.StatusOK)
	})
	client, _ := newTestClient(t, mux)
	ctx := context.Background()

	require.NoError(t, client.Bootstrap(ctx))
	assert.Equal(t, "tok-123", client.CSRFToken())

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		require.NoError(t, client.Do(ctx, method, "/api/products/", map[string]string{"a": "b"}, nil))
		assert.Equal(t, []string{"tok-123"}, seen[method], method)
	}

	require.NoError(t, client.Get(ctx, "/api/products/", nil))
	assert.Empty(t, seen[http.MethodGet])
}

func TestMutatingRequestWithoutCookieSendsEmptyHeader(t *testing.T) {
	var header []string
	var present bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header[http.CanonicalHeaderKey(CSRFHeader)]
		header = r.Header.Values(CSRFHeader)
	}))

	require.NoError(t, client.Post(context.Background(), "/api/auth/logout/", nil, nil))
	assert.True(t, present)
	assert.Equal(t, []string{""}, header)
}

func TestDoWrapsErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"brand_name": ["This field is required."]}`))
	}))

	err := client.Post(context.Background(), "/api/products/", map[string]string{}, nil)
	require.Error(t, err)

	var validationErr *custom_error.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, http.StatusBadRequest, validationErr.StatusCode())
	assert.Equal(t, []string{"This field is required."}, validationErr.Fields()["brand_name"])
}

func TestListNormalizesEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []record
	}{
		{"bare array", `[{"id":"1","name":"a"},{"id":"2","name":"b"}]`, []record{{"1", "a"}, {"2", "b"}}},
		{"results envelope", `{"results":[{"id":"1","name":"a"}],"next":null}`, []record{{"1", "a"}}},
		{"empty envelope", `{"results":[],"next":null}`, []record{}},
		{"null body", `null`, []record{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))

			got, err := List[record](context.Background(), client, "/api/items/", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListAllFollowsNext(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "":
			next := server.URL + "/api/items/?page=2"
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"results": []record{{"1", "a"}}, "next": next})
		case "2":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"results": []record{{"2", "b"}}, "next": nil})
		}
	}))
	defer server.Close()

	client, err := New(server.URL, time.Second, nil)
	require.NoError(t, err)

	got, err := ListAll[record](context.Background(), client, "/api/items/", nil)
	require.NoError(t, err)
	assert.Equal(t, []record{{"1", "a"}, {"2", "b"}}, got)
}

func TestSessionRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/verify-otp/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "sess-1", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: CSRFCookie, Value: "csrf-1", Path: "/"})
	})
	mux.HandleFunc("/api/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value != "sess-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"username":"clerk"}`))
	})
	client, server := newTestClient(t, mux)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, client.Post(ctx, "/api/auth/verify-otp/", nil, nil))
	require.NoError(t, client.SaveSession(path))

	restored, err := New(server.URL, time.Second, nil)
	require.NoError(t, err)
	require.NoError(t, restored.LoadSession(path))
	assert.True(t, restored.HasSession())
	assert.Equal(t, "csrf-1", restored.CSRFToken())
	require.NoError(t, restored.Get(ctx, "/api/auth/me/", nil))

	require.NoError(t, restored.ClearSession(path))
	assert.False(t, restored.HasSession())
	assert.Equal(t, "", restored.CSRFToken())
	assert.NoFileExists(t, path)

	err = restored.Get(ctx, "/api/auth/me/", nil)
	var unauthorized *custom_error.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestLoadSessionMissingFile(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())
	assert.NoError(t, client.LoadSession(filepath.Join(t.TempDir(), "absent.json")))
}
