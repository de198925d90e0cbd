package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(m.Load())
	router.GET("/whoami", func(c *gin.Context) {
		st := Current(c)
		c.String(http.StatusOK, "student=%s admin=%s", st.Student, st.Admin)
	})
	router.GET("/login-student", func(c *gin.Context) {
		m.SetStudent(c, "alice")
		c.Status(http.StatusOK)
	})
	router.GET("/login-admin", func(c *gin.Context) {
		m.SetAdmin(c, "admin")
		c.Status(http.StatusOK)
	})
	return router
}

func get(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStateRoundTrip(t *testing.T) {
	m := NewManager("key", "issuer")
	router := newTestRouter(m)

	w := get(router, "/login-student", nil)
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("login set %d cookies, want 1", len(cookies))
	}

	w = get(router, "/whoami", cookies)
	if got := w.Body.String(); got != "student=alice admin=" {
		t.Errorf("whoami after student login = %q", got)
	}
}

func TestStudentAndAdminAreExclusive(t *testing.T) {
	m := NewManager("key", "issuer")
	router := newTestRouter(m)

	cookies := get(router, "/login-student", nil).Result().Cookies()
	// Logging in as admin replaces the student identity outright.
	cookies = get(router, "/login-admin", cookies).Result().Cookies()

	w := get(router, "/whoami", cookies)
	if got := w.Body.String(); got != "student= admin=admin" {
		t.Errorf("whoami after admin login = %q", got)
	}
}

func TestMissingCookieYieldsEmptyState(t *testing.T) {
	m := NewManager("key", "issuer")
	router := newTestRouter(m)

	w := get(router, "/whoami", nil)
	if got := w.Body.String(); got != "student= admin=" {
		t.Errorf("whoami without cookie = %q", got)
	}
}

func TestForgedCookiesAreRejected(t *testing.T) {
	m := NewManager("key", "issuer")
	router := newTestRouter(m)
	valid := get(router, "/login-student", nil).Result().Cookies()

	// Signed under a different key.
	other := NewManager("other-key", "issuer")
	otherRouter := newTestRouter(other)
	forged := get(otherRouter, "/login-student", nil).Result().Cookies()

	w := get(router, "/whoami", forged)
	if got := w.Body.String(); got != "student= admin=" {
		t.Errorf("whoami with wrong-key cookie = %q", got)
	}

	// Wrong issuer is rejected too.
	wrongIssuer := NewManager("key", "someone-else")
	wrongIssuerRouter := newTestRouter(wrongIssuer)
	wrongIssuerCookie := get(wrongIssuerRouter, "/login-student", nil).Result().Cookies()

	w = get(router, "/whoami", wrongIssuerCookie)
	if got := w.Body.String(); got != "student= admin=" {
		t.Errorf("whoami with wrong-issuer cookie = %q", got)
	}

	// The untampered cookie still works.
	w = get(router, "/whoami", valid)
	if got := w.Body.String(); got != "student=alice admin=" {
		t.Errorf("whoami with valid cookie = %q", got)
	}
}
