package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	rootMessage       = "Backend is up and running!"
	statusOK          = "ok"
	statusUnavailable = "unavailable"
)

// @Summary      Root
// @Description  Liveness message.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": rootMessage})
}

// @Summary      Health check
// @Description  Reports whether the user store can be read.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, users"
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	n, err := h.services.Users.Count(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("health_store_unreadable", "err", err, "request_id", c.GetString(ctxRequestID))
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": statusUnavailable})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "users": n})
}
