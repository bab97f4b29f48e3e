package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/psique-web/internal/httperr"
	"github.com/BruksfildServices01/psique-web/internal/storage"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

type HealthHandler struct {
	store  storage.Store
	logger *logging.Logger
}

func NewHealthHandler(store storage.Store, logger *logging.Logger) *HealthHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &HealthHandler{store: store, logger: logger}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := storage.Ping(ctx, h.store); err != nil {
		h.logger.Error("health check failed", "error", err)
		httperr.Write(c, http.StatusServiceUnavailable, httperr.CodeStorageUnavailable, "storage unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NotFound responde JSON para clientes de API e a página de erro para
// navegadores.
func (h *HealthHandler) NotFound(c *gin.Context) {
	if httperr.WantsJSON(c) {
		httperr.NotFound(c, httperr.CodeNotFound, "route not found")
		return
	}
	httperr.Page(c, http.StatusNotFound, "Página não encontrada.")
}
