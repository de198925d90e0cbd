
package session

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	cookieName = "examportal_session"
	contextKey = "session_state"
)

// State is the per-browser identity carried by the session cookie. At most one
// of Student or Admin is set at a time; logging in as one replaces the other.
type State struct {
	Student string
	Admin   string
}

// claims is the JWT payload stored in the session cookie.
type claims struct {
	Student string `json:"student,omitempty"`
	Admin   string `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies the session cookie.
type Manager struct {
	signingKey []byte
	issuer     string
}

func NewManager(signingKey, issuer string) *Manager {
	return &Manager{signingKey: []byte(signingKey), issuer: issuer}
}

// Load parses the session cookie, if any, and stores the resulting State in
// the request context. A missing, malformed or tampered cookie yields an empty
// session rather than an error response.
func (m *Manager) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cookieName)
		if err != nil {
			c.Set(contextKey, State{})
			c.Next()
			return
		}
		token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.signingKey, nil
		})
		if err != nil {
			log.Printf("Session cookie rejected: %v", err)
			c.Set(contextKey, State{})
			c.Next()
			return
		}
		if cl, ok := token.Claims.(*claims); ok && token.Valid && cl.Issuer == m.issuer {
			c.Set(contextKey, State{Student: cl.Student, Admin: cl.Admin})
		} else {
			c.Set(contextKey, State{})
		}
		c.Next()
	}
}

// Current returns the session state loaded for this request.
func Current(c *gin.Context) State {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(State); ok {
			return s
		}
	}
	return State{}
}

func (m *Manager) write(c *gin.Context, st State) {
	cl := claims{
		Student: st.Student,
		Admin:   st.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: m.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		log.Printf("ERROR: Failed to sign session cookie: %v", err)
		return
	}
	// MaxAge 0 keeps the cookie for the browser session only.
	c.SetCookie(cookieName, signed, 0, "/", "", false, true)
	c.Set(contextKey, st)
}

// SetStudent replaces the session with a student identity.
func (m *Manager) SetStudent(c *gin.Context, name string) {
	m.write(c, State{Student: name})
}

// SetAdmin replaces the session with an admin identity.
func (m *Manager) SetAdmin(c *gin.Context, username string) {
	m.write(c, State{Admin: username})
}

// Clear removes the session cookie entirely.
func (m *Manager) Clear(c *gin.Context) {
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	c.Set(contextKey, State{})
}

// RequireStudent gates a route on a student identity, redirecting to the
// student login page when absent.
func (m *Manager) RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Current(c).Student == "" {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin gates a route on an admin identity, redirecting to the admin
// login page when absent.
func (m *Manager) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Current(c).Admin == "" {
			c.Redirect(http.StatusFound, "/admin")
			c.Abort()
			return
		}
		c.Next()
	}
}
