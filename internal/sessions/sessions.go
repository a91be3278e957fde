// Package sessions keeps short-lived per-browser state, currently the
// one-shot notices shown after a create, update or delete redirect.
package sessions

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/config"
)

const (
	flashKey          = "flash"
	managerContextKey = "session_manager"
)

// Manager wraps scs.SessionManager with flash helpers.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates the sessions table on sqlDB when needed and returns a
// manager storing sessions there.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
	}
	sm.Cookie.Name = "locallibrary_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// AddFlash queues a notice for the next rendered page. It does nothing when
// no session middleware ran for this request.
func AddFlash(c *gin.Context, message string) {
	m, ok := fromContext(c)
	if !ok {
		return
	}
	m.Put(c.Request.Context(), flashKey, message)
}

// PopFlash returns and clears the pending notice, or "".
func PopFlash(c *gin.Context) string {
	m, ok := fromContext(c)
	if !ok {
		return ""
	}
	return m.PopString(c.Request.Context(), flashKey)
}

func fromContext(c *gin.Context) (*Manager, bool) {
	v, exists := c.Get(managerContextKey)
	if !exists {
		return nil, false
	}
	m, ok := v.(*Manager)
	return m, ok
}
