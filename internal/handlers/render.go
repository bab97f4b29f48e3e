package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/psique-web/internal/api"
	"github.com/BruksfildServices01/psique-web/internal/audit"
	"github.com/BruksfildServices01/psique-web/internal/httperr"
	"github.com/BruksfildServices01/psique-web/internal/middleware"
	"github.com/BruksfildServices01/psique-web/internal/theme"
	"github.com/BruksfildServices01/psique-web/internal/toast"
)

// render desenha uma página dentro do layout "base", com tema, usuário e
// toasts pendentes.
func render(c *gin.Context, status int, page, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Page"] = page
	data["Title"] = title
	data["Theme"] = theme.Light
	if th := middleware.Theme(c); th != nil {
		data["Theme"] = th.Current()
	}
	if h := middleware.Auth(c); h != nil {
		if u := h.User(); u != nil {
			data["User"] = u
		}
	}
	data["Toasts"] = toast.Pop(c)
	c.HTML(status, "base", data)
}

func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusSeeOther, path)
}

// unauthorized trata um 401 da API. O hook do cliente já limpou a sessão;
// aqui só resta mandar o navegador para o login.
func unauthorized(c *gin.Context, err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	redirect(c, "/")
	return true
}

// upstreamStatus escolhe o status da página re-renderizada depois de uma
// falha da API.
func upstreamStatus(err error) int {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

func paramID(c *gin.Context, name, code string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		_ = c.Error(httperr.ErrBusiness(code))
		if httperr.WantsJSON(c) {
			httperr.BadRequest(c, code, "invalid id")
			return 0, false
		}
		httperr.Page(c, http.StatusBadRequest, "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func formID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.PostForm(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func queryID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// event preenche visitante e usuário de um evento de auditoria.
func event(c *gin.Context, action, entity string, entityID *uint) audit.Event {
	ev := audit.Event{
		VisitorID: middleware.VisitorID(c),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
	}
	if h := middleware.Auth(c); h != nil {
		if u := h.User(); u != nil {
			ev.UserID = audit.ID(u.ID)
		}
	}
	return ev
}
