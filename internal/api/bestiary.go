package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/torchlight-games/emberfall/internal/constants"
)

// GetBestiary returns the monster templates available for encounters.
func (h *Handler) GetBestiary(c *gin.Context) {
	monsters, err := h.mgr.GetBestiary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBestiary})
		return
	}
	c.JSON(http.StatusOK, monsters)
}
