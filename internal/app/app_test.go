package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-ticket-api/internal/config"
	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/internal/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type testServer struct {
	t   *testing.T
	app *App
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	v := viper.New()
	config.SetDefaults(v)
	cfg := config.FromViper(v)
	cfg.App.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.RateLimit.Requests = 1000

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	application := New(cfg, testutil.NewDB(t), logger)
	t.Cleanup(application.Close)
	return &testServer{t: t, app: application}
}

func (s *testServer) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// login registers a user and returns an Authorization header for it
func (s *testServer) login(name, login string) map[string]string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/v1/user/register", map[string]string{
		"name": name, "login": login, "password": "password123",
	}, nil)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/auth/jwt/login", map[string]string{
		"login": login, "password": "password123",
	}, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(s.t, json.Unmarshal(decode(s.t, w).Data, &token))
	require.Equal(s.t, "Bearer", token.TokenType)
	return map[string]string{"Authorization": "Bearer " + token.AccessToken}
}

func invoiceBody(amount float64) map[string]any {
	return map[string]any{
		"products": []map[string]any{
			{"name": "Water", "price": 12.3, "quantity": 10},
			{"name": "Ice-cream", "price": 37.7, "quantity": 2},
		},
		"payment": map[string]any{"type": "cash", "amount": amount},
	}
}

type invoiceJSON struct {
	ID        uint      `json:"id"`
	Total     float64   `json:"total"`
	Rest      float64   `json:"rest"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy struct {
		Name  string `json:"name"`
		Login string `json:"login"`
	} `json:"created_by"`
	Payment struct {
		Type   string  `json:"type"`
		Amount float64 `json:"amount"`
	} `json:"payment"`
	Products []struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
		Total    float64 `json:"total"`
	} `json:"products"`
}

func TestRootRedirectsToHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/health", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestClose_StopsBackgroundWork(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.app.Cleanup.Start())

	s.app.Close()

	select {
	case <-s.app.RateLimiter.Done():
	default:
		t.Fatal("rate limiter cleanup loop still running after Close")
	}
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{"name": "Test User", "login": "tester", "password": "password123"}

	w := s.do(http.MethodPost, "/api/v1/user/register", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.NotContains(t, string(env.Data), "password")

	body["login"] = "TESTER"
	w = s.do(http.MethodPost, "/api/v1/user/register", body, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode(t, w).Message, "«tester» already exists")

	w = s.do(http.MethodPost, "/api/v1/user/register", map[string]string{"name": "ab", "login": "other", "password": "short"}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var fields []string
	for _, fe := range decode(t, w).Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "password"}, fields)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	auth := s.login("Test User", "tester")

	w := s.do(http.MethodGet, "/api/v1/user/details", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"login":"tester"`)

	w = s.do(http.MethodPost, "/api/v1/auth/jwt/login", map[string]string{"login": "tester", "password": "wrong-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect login or password", decode(t, w).Message)

	form := url.Values{"username": {"tester"}, "password": {"password123"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/jwt/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	w = s.do(http.MethodGet, "/api/v1/user/details", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/user/details", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Could not validate credentials", decode(t, w).Message)
}

func TestCreateInvoice(t *testing.T) {
	s := newTestServer(t)
	auth := s.login("Test User", "tester")

	w := s.do(http.MethodPost, "/api/v1/invoice/create", invoiceBody(200), auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var invoice invoiceJSON
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &invoice))
	assert.NotZero(t, invoice.ID)
	assert.InDelta(t, 198.4, invoice.Total, 1e-9)
	assert.InDelta(t, 1.6, invoice.Rest, 1e-9)
	assert.Equal(t, "Test User", invoice.CreatedBy.Name)
	assert.Equal(t, "cash", invoice.Payment.Type)
	require.Len(t, invoice.Products, 2)
	assert.Equal(t, "Water", invoice.Products[0].Name)
	assert.InDelta(t, 123.0, invoice.Products[0].Total, 1e-9)

	w = s.do(http.MethodPost, "/api/v1/invoice/create", invoiceBody(100), auth)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w).Message, "Payment amount (100.00) can't be less than total (198.40)")

	w = s.do(http.MethodPost, "/api/v1/invoice/create", map[string]any{"products": "nope"}, auth)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/api/v1/invoice/create", invoiceBody(200), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateInvoice_IdempotencyKeyReplays(t *testing.T) {
	s := newTestServer(t)
	auth := s.login("Test User", "tester")
	auth["Idempotency-Key"] = "order-1"

	first := s.do(http.MethodPost, "/api/v1/invoice/create", invoiceBody(200), auth)
	require.Equal(t, http.StatusCreated, first.Code)

	second := s.do(http.MethodPost, "/api/v1/invoice/create", invoiceBody(200), auth)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	different := s.do(http.MethodPost, "/api/v1/invoice/create", invoiceBody(300), auth)
	assert.Equal(t, http.StatusUnprocessableEntity, different.Code)

	var count int64
	require.NoError(t, s.app.DB.Model(&entity.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRetrieveInvoices(t *testing.T) {
	s := newTestServer(t)
	auth := s.login("Test User", "tester")
	for i := 0; i < 4; i++ {
		w := s.do(http.MethodPost, "/api/v1/invoice/create", invoiceBody(200), auth)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := s.do(http.MethodGet, "/api/v1/invoice/retrieve?limit=3&page=1", nil, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page struct {
		Invoices    []invoiceJSON `json:"invoices"`
		CurrentPage int           `json:"current_page"`
		Limit       *int          `json:"limit"`
		LastPage    int           `json:"last_page"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Len(t, page.Invoices, 1)
	assert.Equal(t, 1, page.CurrentPage)
	require.NotNil(t, page.Limit)
	assert.Equal(t, 3, *page.Limit)
	assert.Equal(t, 1, page.LastPage)

	w = s.do(http.MethodGet, "/api/v1/invoice/retrieve?min_total=190&payment_type=cash", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Len(t, page.Invoices, 4)

	other := s.login("Other User", "other")
	w = s.do(http.MethodGet, "/api/v1/invoice/retrieve", nil, other)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Empty(t, page.Invoices)

	for _, query := range []string{"from_created_at=yesterday", "page=abc", "limit=-1", "max_total=lots"} {
		w = s.do(http.MethodGet, "/api/v1/invoice/retrieve?"+query, nil, auth)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, query)
	}
}

func TestInvoiceTicket(t *testing.T) {
	s := newTestServer(t)
	auth := s.login("Test User", "tester")

	w := s.do(http.MethodPost, "/api/v1/invoice/create", invoiceBody(200), auth)
	require.Equal(t, http.StatusCreated, w.Code)
	var invoice invoiceJSON
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &invoice))

	// public, no token
	w = s.do(http.MethodGet, "/api/v1/invoice/"+itoa(invoice.ID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 14)
	assert.Equal(t, strings.Repeat(" ", 11)+"Test user"+strings.Repeat(" ", 12), lines[0])
	assert.Equal(t, "Water"+strings.Repeat(" ", 21)+"123.00", lines[3])
	assert.Equal(t, "Решта"+strings.Repeat(" ", 23)+"1.60", lines[10])

	w = s.do(http.MethodGet, "/api/v1/invoice/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invoice with ID = 999 not found", decode(t, w).Message)

	w = s.do(http.MethodGet, "/api/v1/invoice/0", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPrinterRoutes(t *testing.T) {
	s := newTestServer(t)
	auth := s.login("Test User", "tester")

	w := s.do(http.MethodGet, "/api/v1/printer/status", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"configured":false`)

	w = s.do(http.MethodPost, "/api/v1/invoice/create", invoiceBody(200), auth)
	require.Equal(t, http.StatusCreated, w.Code)
	var invoice invoiceJSON
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &invoice))

	w = s.do(http.MethodPost, "/api/v1/invoice/"+itoa(invoice.ID)+"/print", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), "198.40")

	w = s.do(http.MethodPost, "/api/v1/invoice/999/print", nil, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
