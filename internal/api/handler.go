package api

import (
	"github.com/gin-gonic/gin"

	"github.com/torchlight-games/emberfall/internal/constants"
	"github.com/torchlight-games/emberfall/internal/service"
)

// Handler exposes the encounter manager over HTTP.
type Handler struct {
	mgr *service.Manager
}

func NewHandler(mgr *service.Manager) *Handler {
	return &Handler{mgr: mgr}
}

// NewRouter builds the gin engine with every route mounted under /api.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group(constants.RouteAPIPrefix)
	api.GET(constants.RouteVersion, Version)
	api.GET(constants.RouteBestiary, h.GetBestiary)

	api.POST(constants.RouteParties, h.CreateParty)
	api.GET(constants.RouteParties, h.ListParties)
	api.GET(constants.RoutePartyByID, h.GetParty)

	api.POST(constants.RouteEncounters, h.StartEncounter)
	api.GET(constants.RouteEncounterByCode, h.GetEncounter)
	api.POST(constants.RouteEncounterAction, h.SubmitAction)
	api.POST(constants.RouteEncounterAbort, h.AbortEncounter)

	return r
}
