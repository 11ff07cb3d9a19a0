package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eaglebank/user-registry/shared/apperror"
	"github.com/eaglebank/user-registry/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newMiddlewareTestRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.POST("/protected", AuthMiddleware(secret), func(c *gin.Context) {
		sub, _ := GetSubject(c)
		c.JSON(http.StatusOK, gin.H{"subject": sub, "requestId": GetRequestID(c)})
	})
	r.GET("/fail", func(c *gin.Context) {
		RespondWithError(c, apperror.New(apperror.ErrNotFound, "user 9 not found"))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		secret         []byte
		header         string
		expectedStatus int
	}{
		{"disabled without secret", nil, "", http.StatusOK},
		{"missing header", testSecret, "", http.StatusUnauthorized},
		{"wrong scheme", testSecret, "Basic abc", http.StatusUnauthorized},
		{"garbage token", testSecret, "Bearer not.a.token", http.StatusUnauthorized},
		{"wrong secret", testSecret, "Bearer " + signToken(t, []byte("other"), time.Hour), http.StatusUnauthorized},
		{"expired", testSecret, "Bearer " + signToken(t, testSecret, -time.Minute), http.StatusUnauthorized},
		{"valid", testSecret, "Bearer " + signToken(t, testSecret, time.Hour), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newMiddlewareTestRouter(tt.secret)
			req, _ := http.NewRequest(http.MethodPost, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.expectedStatus {
				t.Fatalf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if w.Code == http.StatusUnauthorized {
				var resp models.APIResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if resp.Code != http.StatusUnauthorized || resp.Status != "UNAUTHORIZED" {
					t.Errorf("unexpected envelope %+v", resp)
				}
			}
		})
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	router := newMiddlewareTestRouter(nil)

	req, _ := http.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "req-123" {
		t.Errorf("request id header = %q", got)
	}

	req, _ = http.NewRequest(http.MethodPost, "/protected", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); len(got) != 36 {
		t.Errorf("expected generated uuid, got %q", got)
	}
}

func TestRespondWithError(t *testing.T) {
	router := newMiddlewareTestRouter(nil)
	req, _ := http.NewRequest(http.MethodGet, "/fail", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var resp models.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := models.APIResponse{Code: 404, Status: "NOT FOUND", Message: "user 9 not found"}
	if resp != want {
		t.Errorf("got %+v, want %+v", resp, want)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), LoggingMiddleware(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "log-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"path=/ok", "status=200", "request_id=log-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %q", out, want)
		}
	}
}

func TestLoggingMiddlewareRecordsSubject(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), LoggingMiddleware(logger))
	r.POST("/protected", AuthMiddleware(testSecret), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, time.Hour))
	r.ServeHTTP(httptest.NewRecorder(), req)
	if out := buf.String(); !strings.Contains(out, "subject=admin") {
		t.Errorf("log line %q missing subject", out)
	}

	buf.Reset()
	req, _ = http.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)
	if out := buf.String(); strings.Contains(out, "subject=") {
		t.Errorf("unauthenticated log line %q carries a subject", out)
	}
}

func TestSecureHeadersStopsOnRedirect(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		preStatus  int
		wantStatus int
	}{
		{"https redirect in production", true, 0, http.StatusMovedPermanently},
		{"300 already set", false, http.StatusMultipleChoices, http.StatusMultipleChoices},
		{"399 already set", false, 399, 399},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			if tt.preStatus != 0 {
				r.Use(func(c *gin.Context) { c.Status(tt.preStatus) })
			}
			r.Use(SecureHeaders(tt.production))
			reached := false
			r.GET("/ok", func(c *gin.Context) {
				reached = true
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest(http.MethodGet, "http://example.com/ok", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if reached {
				t.Fatalf("[%s] handler ran after redirect", tt.name)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("[%s] expected status %d, got %d", tt.name, tt.wantStatus, w.Code)
			}
		})
	}
}

func TestSecureHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecureHeaders(false))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}
