package api

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/torchlight-games/emberfall/internal/constants"
	"github.com/torchlight-games/emberfall/internal/engine"
	"github.com/torchlight-games/emberfall/internal/service"
)

var encounterCodeRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

func normalizeEncounterCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// StartEncounterRequest names the party and the monsters it faces. Repeated
// monster names spawn independent instances.
type StartEncounterRequest struct {
	PartyID  uint     `json:"party_id"`
	Monsters []string `json:"monsters"`
}

// StartEncounter creates a new encounter and runs it up to the first player
// decision.
func (h *Handler) StartEncounter(c *gin.Context) {
	var req StartEncounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	view, err := h.mgr.StartEncounter(req.PartyID, req.Monsters)
	if err != nil {
		h.writeServiceError(c, err, constants.ErrFailedCreateEncounter)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetEncounter returns the current snapshot of an encounter.
func (h *Handler) GetEncounter(c *gin.Context) {
	code, ok := h.encounterCode(c)
	if !ok {
		return
	}
	view, err := h.mgr.GetEncounter(code)
	if err != nil {
		h.writeServiceError(c, err, constants.ErrFailedStoreAction)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitAction routes the player's decision for the current turn.
func (h *Handler) SubmitAction(c *gin.Context) {
	code, ok := h.encounterCode(c)
	if !ok {
		return
	}
	var req service.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	view, err := h.mgr.SubmitAction(code, req)
	if err != nil {
		h.writeServiceError(c, err, constants.ErrFailedStoreAction)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AbortEncounter force-ends an active encounter as fled.
func (h *Handler) AbortEncounter(c *gin.Context) {
	code, ok := h.encounterCode(c)
	if !ok {
		return
	}
	view, err := h.mgr.AbortEncounter(code)
	if err != nil {
		h.writeServiceError(c, err, constants.ErrFailedStoreAction)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) encounterCode(c *gin.Context) (string, bool) {
	code := normalizeEncounterCode(c.Param("code"))
	if code == "" || !encounterCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidEncounterCode})
		return "", false
	}
	return code, true
}

// writeServiceError maps service sentinels onto HTTP responses; anything
// unrecognized becomes a 500 with the fallback message.
func (h *Handler) writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrEncounterNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
	case errors.Is(err, service.ErrPartyNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPartyNotFound})
	case errors.Is(err, service.ErrPartyDefeated):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrPartyDefeated})
	case errors.Is(err, service.ErrEncounterFinished):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrEncounterFinished})
	case errors.Is(err, service.ErrNotAwaitingAction):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotAwaitingAction})
	case errors.Is(err, service.ErrUnknownActionKind):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidActionKind})
	case errors.Is(err, service.ErrUnknownMonster):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownMonster})
	case errors.Is(err, engine.ErrNoLivingMembers), errors.Is(err, engine.ErrNoLivingMonsters):
		c.JSON(http.StatusUnprocessableEntity, gin.H{constants.JSONKeyError: constants.ErrEncounterSetupFailed, constants.JSONKeyDetails: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}
