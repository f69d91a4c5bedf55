package console

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jayeuse/Inventory-System-sub000/internal/auth"
	"github.com/jayeuse/Inventory-System-sub000/internal/config"
	"github.com/jayeuse/Inventory-System-sub000/internal/core/container"
	"github.com/jayeuse/Inventory-System-sub000/internal/currency"
	"github.com/jayeuse/Inventory-System-sub000/internal/listview"
	"github.com/jayeuse/Inventory-System-sub000/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBackend stands in for the inventory REST API.
type fakeBackend struct {
	mu       sync.Mutex
	role     string
	archived []string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.URL.Path == auth.LoginPath:
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid username or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"otp_session":"otp-1","email":"a***@pharma.ph"}`))
	case r.URL.Path == auth.CheckUsernamePath:
		w.WriteHeader(http.StatusNotFound)
	case r.URL.Path == auth.VerifyOTPPath:
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["otp_code"] != "123456" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid verification code"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "backend-session", Path: "/"})
		_, _ = w.Write([]byte(`{"success":true}`))
	case r.URL.Path == auth.MePath:
		_, _ = w.Write([]byte(`{"id":7,"username":"ana","role":"` + b.role + `"}`))
	case r.URL.Path == auth.LogoutPath:
		w.WriteHeader(http.StatusNoContent)
	case r.URL.Path == "/api/products/":
		_, _ = w.Write([]byte(`[
			{"product_id":"PRD-1","brand_name":"Biogesic","status":"Active","price_per_unit":"5.50","unit_of_measurement":"tab"},
			{"product_id":"PRD-2","brand_name":"Neozep","status":"Archived","price_per_unit":"7"}
		]`))
	case strings.HasPrefix(r.URL.Path, "/api/products/") && r.Method == http.MethodPatch:
		b.archived = append(b.archived, strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/products/"), "/"))
		_, _ = w.Write([]byte(`{}`))
	case r.URL.Path == "/api/alerts/":
		_, _ = w.Write([]byte(`{"summary":{"total":120,"critical":3,"warning":117},"alerts":[{"type":"expired","product_name":"Biogesic"},{"type":"low_stock","product_name":"Neozep"}]}`))
	default:
		http.NotFound(w, r)
	}
}

type harness struct {
	router  *gin.Engine
	backend *fakeBackend
	store   *SessionStore
}

func newHarness(t *testing.T, role string) *harness {
	t.Helper()
	backend := &fakeBackend{role: role}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	cfg := &config.Config{APIURL: server.URL, HTTPTimeout: time.Second, PageSize: 8}
	store := NewSessionStore(func() (*container.Container, error) {
		return container.New(cfg, currency.Base, nil)
	}, nil)
	tokens, err := security.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	handler := NewHandler(store, tokens, nil)
	t.Cleanup(handler.Close)
	router := gin.New()
	handler.RegisterRoutes(router)
	return &harness{router: router, backend: backend, store: store}
}

func (h *harness) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) flowResponse {
	t.Helper()
	var resp flowResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// signIn runs the password and OTP steps and returns the console token.
func (h *harness) signIn(t *testing.T) string {
	t.Helper()
	w := h.do(http.MethodPost, "/auth/login", "", gin.H{"username": "ana", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode(t, w)
	assert.Equal(t, auth.CardOtpPending, login.View.Card)
	assert.Equal(t, "a***@pharma.ph", login.View.Email)

	w = h.do(http.MethodPost, "/auth/verify-otp", "", gin.H{"session": login.Session, "code": "123456"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	verified := decode(t, w)
	assert.Equal(t, auth.CardAuthenticated, verified.View.Card)
	require.NotEmpty(t, verified.Token)
	return verified.Token
}

func TestLoginFailureKeepsCard(t *testing.T) {
	h := newHarness(t, "Clerk")

	w := h.do(http.MethodPost, "/auth/login", "", gin.H{"username": "ghost", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decode(t, w)
	assert.Equal(t, auth.CardLogin, resp.View.Card)
	assert.NotEmpty(t, resp.Session)
	assert.Equal(t, "Invalid username or password", resp.Error)
}

func TestLoginValidationNeedsNoBackend(t *testing.T) {
	h := newHarness(t, "Clerk")

	w := h.do(http.MethodPost, "/auth/login", "", gin.H{"username": "", "password": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, auth.MsgMissingCredentials, decode(t, w).Error)
}

func TestWrongOTPStaysOnVerification(t *testing.T) {
	h := newHarness(t, "Clerk")
	login := decode(t, h.do(http.MethodPost, "/auth/login", "", gin.H{"username": "ana", "password": "secret"}))

	w := h.do(http.MethodPost, "/auth/verify-otp", "", gin.H{"session": login.Session, "code": "000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, auth.CardOtpPending, resp.View.Card)
	assert.Equal(t, "Invalid verification code", resp.Error)
	assert.Empty(t, resp.Token)
}

func TestUnknownSessionIsRejected(t *testing.T) {
	h := newHarness(t, "Clerk")

	w := h.do(http.MethodPost, "/auth/verify-otp", "", gin.H{"session": "nope", "code": "123456"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	h := newHarness(t, "Clerk")

	w := h.do(http.MethodGet, "/views/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestViewFiltersAndPaginates(t *testing.T) {
	h := newHarness(t, "Clerk")
	token := h.signIn(t)

	w := h.do(http.MethodGet, "/views/products?status=Active&pad=false", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var table listview.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.Equal(t, 1, table.Total)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "PRD-1", table.Rows[0].Cells[0])
	assert.Equal(t, map[string]string{"status": "Active"}, table.Filters)
}

func TestUsersViewNeedsAdmin(t *testing.T) {
	h := newHarness(t, "Clerk")
	token := h.signIn(t)

	w := h.do(http.MethodGet, "/views/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(http.MethodGet, "/views/unknown", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCSV(t *testing.T) {
	h := newHarness(t, "Clerk")
	token := h.signIn(t)

	w := h.do(http.MethodGet, "/export/products?format=csv&search=neozep", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "products_")
	assert.Contains(t, w.Body.String(), "PRD-2")
	assert.NotContains(t, w.Body.String(), "PRD-1")

	w = h.do(http.MethodGet, "/export/products?format=xlsx", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArchiveNeedsStaffAndReason(t *testing.T) {
	clerk := newHarness(t, "Clerk")
	w := clerk.do(http.MethodPost, "/products/PRD-1/archive", clerk.signIn(t), gin.H{"reason": "recalled"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	staff := newHarness(t, "Staff")
	token := staff.signIn(t)

	w = staff.do(http.MethodPost, "/products/PRD-1/archive", token, gin.H{"reason": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, staff.backend.archived)

	w = staff.do(http.MethodPost, "/products/PRD-1/archive", token, gin.H{"reason": "recalled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"PRD-1"}, staff.backend.archived)

	w = staff.do(http.MethodPost, "/orders/ORD-1/archive", token, gin.H{"reason": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = staff.do(http.MethodGet, "/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "PRD-1 archived successfully")
}

func TestAlertsBadgeAndFilter(t *testing.T) {
	h := newHarness(t, "Clerk")
	token := h.signIn(t)

	w := h.do(http.MethodGet, "/alerts?type=expired", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Badge  string `json:"badge"`
		Alerts []struct {
			Type string `json:"type"`
		} `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "99+", body.Badge)
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, "expired", body.Alerts[0].Type)
}

func TestLogoutDropsSession(t *testing.T) {
	h := newHarness(t, "Clerk")
	token := h.signIn(t)
	require.Equal(t, 1, h.store.Len())

	w := h.do(http.MethodPost, "/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, h.store.Len())

	w = h.do(http.MethodGet, "/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientKeyAddsUserAgentForPrivateAddresses(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	c.Request.Header.Set("X-Forwarded-For", "192.168.1.4, 10.0.0.1")
	c.Request.Header.Set("User-Agent", "curl")
	assert.Equal(t, "192.168.1.4:curl", clientKey(c))

	c.Request.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", clientKey(c))
}

func TestSessionStorePrune(t *testing.T) {
	h := newHarness(t, "Clerk")
	now := time.Now()
	h.store.now = func() time.Time { return now }
	_, err := h.store.Create()
	require.NoError(t, err)

	now = now.Add(time.Hour)
	assert.Equal(t, 1, h.store.Prune(30*time.Minute))
	assert.Equal(t, 0, h.store.Len())
}
