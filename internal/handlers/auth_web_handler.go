package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/psique-web/internal/api"
	"github.com/BruksfildServices01/psique-web/internal/audit"
	"github.com/BruksfildServices01/psique-web/internal/auth"
	"github.com/BruksfildServices01/psique-web/internal/form"
	"github.com/BruksfildServices01/psique-web/internal/httperr"
	"github.com/BruksfildServices01/psique-web/internal/middleware"
	"github.com/BruksfildServices01/psique-web/internal/models"
	"github.com/BruksfildServices01/psique-web/internal/toast"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

type AuthWebHandler struct {
	client *api.Client
	audit  *audit.Dispatcher
	logger *logging.Logger
}

func NewAuthWebHandler(client *api.Client, dispatcher *audit.Dispatcher, logger *logging.Logger) *AuthWebHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthWebHandler{client: client, audit: dispatcher, logger: logger}
}

// ======================================================
// LOGIN / LOGOUT
// ======================================================

func (h *AuthWebHandler) LoginPage(c *gin.Context) {
	if a := middleware.Auth(c); a != nil && a.Authenticated() {
		redirect(c, "/schedules")
		return
	}
	render(c, http.StatusOK, "login", "Login", gin.H{
		"Form":   models.Credentials{},
		"Errors": form.Errors{},
	})
}

func (h *AuthWebHandler) Login(c *gin.Context) {
	creds := models.Credentials{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	if errs := auth.ValidateLogin(creds); errs.Any() {
		_ = c.Error(httperr.ErrBusiness(httperr.CodeInvalidForm))
		render(c, http.StatusUnprocessableEntity, "login", "Login", gin.H{
			"Form":   models.Credentials{Email: creds.Email},
			"Errors": errs,
		})
		return
	}

	holder := middleware.Auth(c)
	user, err := holder.SignIn(c.Request.Context(), creds)
	if err != nil {
		toast.Push(c, toast.Error(auth.FailureMessage(err, auth.MsgLoginFallback)))
		render(c, upstreamStatus(err), "login", "Login", gin.H{
			"Form":   models.Credentials{Email: creds.Email},
			"Errors": form.Errors{},
		})
		return
	}

	h.audit.Dispatch(event(c, audit.ActionSignIn, audit.EntityUser, audit.ID(user.ID)))
	toast.Push(c, toast.Success(auth.MsgLoginSuccess))
	redirect(c, "/schedules")
}

// Logout segue a navegação devolvida por SignOut: recarga completa de "/".
func (h *AuthWebHandler) Logout(c *gin.Context) {
	holder := middleware.Auth(c)
	ev := event(c, audit.ActionSignOut, audit.EntityUser, nil)

	nav, err := holder.SignOut(c.Request.Context())
	if err != nil {
		h.logger.Error("signing out", "visitor_id", middleware.VisitorID(c), "error", err)
	}

	h.audit.Dispatch(ev)
	toast.Push(c, toast.Success(auth.MsgLogoutSuccess))
	redirect(c, nav.Path)
}

// ======================================================
// SIGN UP
// ======================================================

func (h *AuthWebHandler) SignUpPage(c *gin.Context) {
	render(c, http.StatusOK, "signup", "Cadastro", gin.H{
		"Form":   models.NewUser{},
		"Errors": form.Errors{},
	})
}

func (h *AuthWebHandler) SignUp(c *gin.Context) {
	in := models.NewUser{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}
	keep := models.NewUser{Name: in.Name, Email: in.Email}

	if errs := auth.ValidateSignUp(in); errs.Any() {
		_ = c.Error(httperr.ErrBusiness(httperr.CodeInvalidForm))
		render(c, http.StatusUnprocessableEntity, "signup", "Cadastro", gin.H{
			"Form":   keep,
			"Errors": errs,
		})
		return
	}

	if err := h.client.CreateUser(c.Request.Context(), in); err != nil {
		h.logger.Warn("sign up failed", "error", err)
		toast.Push(c, toast.Error(auth.FailureMessage(err, auth.MsgSignUpFallback)))
		render(c, upstreamStatus(err), "signup", "Cadastro", gin.H{
			"Form":   keep,
			"Errors": form.Errors{},
		})
		return
	}

	h.audit.Dispatch(event(c, audit.ActionSignUp, audit.EntityUser, nil))
	toast.Push(c, toast.Success(auth.MsgSignUpSuccess))
	redirect(c, "/")
}

// ======================================================
// THEME
// ======================================================

// ToggleTheme alterna o tema e volta para a página de onde veio.
func (h *AuthWebHandler) ToggleTheme(c *gin.Context) {
	if th := middleware.Theme(c); th != nil {
		if _, err := th.Toggle(c.Request.Context()); err != nil {
			h.logger.Error("toggling theme", "visitor_id", middleware.VisitorID(c), "error", err)
		}
	}
	redirect(c, backTo(c.Request.Referer()))
}

// backTo aceita apenas caminhos locais.
func backTo(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
