package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/torchlight-games/emberfall/internal/constants"
	"github.com/torchlight-games/emberfall/internal/game"
)

// CreatePartyRequest describes a new party and its members.
type CreatePartyRequest struct {
	Name    string `json:"name" binding:"required"`
	Gold    int    `json:"gold"`
	Members []struct {
		Name         string `json:"name" binding:"required"`
		MaxHP        int    `json:"max_hp" binding:"required"`
		MaxMP        int    `json:"max_mp"`
		Strength     int    `json:"strength"`
		Agility      int    `json:"agility"`
		Intelligence int    `json:"intelligence"`
		Vitality     int    `json:"vitality"`
		Armor        bool   `json:"armor_equipped"`
		Items        []struct {
			Key      string `json:"item_key" binding:"required"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
	} `json:"members" binding:"required,min=1"`
}

// CreateParty stores a new party with full HP and MP.
func (h *Handler) CreateParty(c *gin.Context) {
	var req CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	party := &game.Party{Name: req.Name, Gold: req.Gold}
	for _, m := range req.Members {
		ch := game.Character{
			Name:             m.Name,
			CurrentHP:        m.MaxHP,
			MaxHP:            m.MaxHP,
			CurrentMP:        m.MaxMP,
			MaxMP:            m.MaxMP,
			BaseStrength:     m.Strength,
			BaseAgility:      m.Agility,
			BaseIntelligence: m.Intelligence,
			BaseVitality:     m.Vitality,
			ArmorEquipped:    m.Armor,
		}
		for _, it := range m.Items {
			qty := it.Quantity
			if qty <= 0 {
				qty = 1
			}
			ch.AddItem(it.Key, qty)
		}
		party.Members = append(party.Members, ch)
	}

	if err := h.mgr.CreateParty(party); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateParty})
		return
	}
	c.JSON(http.StatusCreated, party)
}

// ListParties returns every stored party.
func (h *Handler) ListParties(c *gin.Context) {
	parties, err := h.mgr.GetParties()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchParty})
		return
	}
	c.JSON(http.StatusOK, parties)
}

// GetParty returns one party by numeric id.
func (h *Handler) GetParty(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("partyID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	party, err := h.mgr.GetParty(uint(id))
	if err != nil {
		h.writeServiceError(c, err, constants.ErrFailedFetchParty)
		return
	}
	c.JSON(http.StatusOK, party)
}
