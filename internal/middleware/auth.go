package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/psique-web/internal/api"
	"github.com/BruksfildServices01/psique-web/internal/auth"
	"github.com/BruksfildServices01/psique-web/internal/storage"
	"github.com/BruksfildServices01/psique-web/internal/theme"
	"github.com/BruksfildServices01/psique-web/internal/toast"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

const (
	ContextVisitorID = "visitorID"
	ContextAuth      = "auth"
	ContextTheme     = "theme"

	VisitorCookie = "psique_visitor"
	visitorMaxAge = int(365 * 24 * time.Hour / time.Second)
)

// Visitor garante um id estável por navegador. É a chave de todo o
// estado persistido do visitante no Store.
func Visitor(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(toast.ContextSecureCookies, secure)

		id, err := c.Cookie(VisitorCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(VisitorCookie, id, visitorMaxAge, "/", "", secure, true)

		c.Set(ContextVisitorID, id)
		c.Next()
	}
}

// Session hidrata autenticação e tema do visitante a cada requisição.
func Session(store storage.Store, client *api.Client, logger *logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.Default()
	}
	return func(c *gin.Context) {
		visitor := VisitorID(c)
		scoped := storage.Scoped(store, visitor)
		ctx := c.Request.Context()

		holder := auth.NewHolder(scoped, client, logger.With("visitor_id", visitor))
		if err := holder.Hydrate(ctx); err != nil {
			logger.Error("hydrating session", "visitor_id", visitor, "error", err)
		}

		th := theme.NewHolder(scoped)
		if err := th.Hydrate(ctx); err != nil {
			logger.Warn("hydrating theme", "visitor_id", visitor, "error", err)
		}

		c.Set(ContextAuth, holder)
		c.Set(ContextTheme, th)
		c.Next()
	}
}

// RequireAuth manda visitantes sem sessão para o login.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h := Auth(c); h == nil || !h.Authenticated() {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func VisitorID(c *gin.Context) string {
	return c.GetString(ContextVisitorID)
}

func Auth(c *gin.Context) *auth.Holder {
	if v, ok := c.Get(ContextAuth); ok {
		if h, ok := v.(*auth.Holder); ok {
			return h
		}
	}
	return nil
}

func Theme(c *gin.Context) *theme.Holder {
	if v, ok := c.Get(ContextTheme); ok {
		if h, ok := v.(*theme.Holder); ok {
			return h
		}
	}
	return nil
}
