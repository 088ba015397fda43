package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/content-service/internal/auth/token"
)

var t0 = time.Unix(1700000000, 0).UTC()

func testManager(t *testing.T) (*token.Manager, *time.Time) {
	t.Helper()
	now := t0
	m, err := token.NewManager("secret", time.Hour, token.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, &now
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	m, _ := testManager(t)

	signed, err := m.Issue(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(m, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if id, _ := c.Get(ContextUserID).(int64); id != 42 {
			t.Fatalf("user_id not set, got %v", c.Get(ContextUserID))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	m, _ := testManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(m, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_WrongScheme(t *testing.T) {
	e := echo.New()
	m, _ := testManager(t)

	mw := Auth(m, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// The scheme prefix is exact: no Basic, no lowercase bearer.
	for _, header := range []string{"Basic xyz", "bearer abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	e := echo.New()
	m, _ := testManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(m, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

// An expired token and a malformed header must produce byte-identical
// responses so clients cannot distinguish the failure classes.
func TestAuth_UniformUnauthorizedResponse(t *testing.T) {
	e := echo.New()
	m, now := testManager(t)

	signed, err := m.Issue(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	*now = t0.Add(2 * time.Hour) // token now expired

	mw := Auth(m, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	run := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec
	}

	expired := run("Bearer " + signed)
	malformed := run("Basic xyz")

	if expired.Code != http.StatusUnauthorized || malformed.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401s, got %d and %d", expired.Code, malformed.Code)
	}
	if expired.Body.String() != malformed.Body.String() {
		t.Fatalf("response bodies differ: %q vs %q", expired.Body.String(), malformed.Body.String())
	}
}
