package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jayeuse/Inventory-System-sub000/internal/apiclient"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]interface{}
}

func newTestRepository(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*Repository, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := capturedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if payload, _ := io.ReadAll(r.Body); len(payload) > 0 {
			_ = json.Unmarshal(payload, &entry.Body)
		}
		captured = append(captured, entry)
		respond(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL, time.Second, nil)
	require.NoError(t, err)
	return NewRepository(client), &captured
}

func TestCollectionListPassesQuery(t *testing.T) {
	repo, captured := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"product_id":"P-1","brand_name":"Biogesic"}]`))
	})
	products := NewCollection[models.Product](repo, "api/products")

	got, err := products.List(context.Background(), Params{"show_archived": "true", "category": ""})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Biogesic", got[0].BrandName)
	assert.Equal(t, "/api/products/", (*captured)[0].Path)
	assert.Equal(t, "show_archived=true", (*captured)[0].Query)
}

func TestCollectionArchiveAndUnarchive(t *testing.T) {
	repo, captured := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	suppliers := NewCollection[models.Supplier](repo, "/api/suppliers/")
	ctx := context.Background()

	require.NoError(t, suppliers.Archive(ctx, "SUP-1", "  discontinued "))
	require.NoError(t, suppliers.Unarchive(ctx, "SUP-1", "back in business"))

	require.Len(t, *captured, 2)
	archive := (*captured)[0]
	assert.Equal(t, http.MethodPatch, archive.Method)
	assert.Equal(t, "/api/suppliers/SUP-1/", archive.Path)
	assert.Equal(t, map[string]interface{}{"status": "Archived", "archive_reason": "discontinued"}, archive.Body)

	unarchive := (*captured)[1]
	assert.Equal(t, "show_archived=true", unarchive.Query)
	assert.Equal(t, map[string]interface{}{"status": "Active", "unarchive_reason": "back in business"}, unarchive.Body)
}

func TestCollectionArchiveRequiresReason(t *testing.T) {
	repo, captured := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {})
	categories := NewCollection[models.Category](repo, "/api/categories/")

	err := categories.Archive(context.Background(), "CAT-1", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, *captured)
}

func TestCollectionActions(t *testing.T) {
	repo, captured := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})
	users := NewCollection[models.UserInfo](repo, "/api/users/")
	receipts := NewCollection[models.ReceiveResult](repo, "/api/receive-orders/")
	ctx := context.Background()

	require.NoError(t, users.Action(ctx, "7", "deactivate", nil, nil))
	var result models.ReceiveResult
	require.NoError(t, receipts.CollectionAction(ctx, "bulk_receive", map[string]string{}, &result))

	assert.Equal(t, "/api/users/7/deactivate/", (*captured)[0].Path)
	assert.Equal(t, "/api/receive-orders/bulk_receive/", (*captured)[1].Path)
	assert.Equal(t, "ok", result.Message)
}
