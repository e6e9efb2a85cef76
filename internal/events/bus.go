package events

import (
	"github.com/torchlight-games/emberfall/internal/game"
	"github.com/torchlight-games/emberfall/internal/logging"
)

// StatusChange describes a status-effect transition on a combatant, including
// the coarse condition derived after the change.
type StatusChange struct {
	CombatantID string
	Kind        game.EffectKind
	Applied     bool
	Condition   game.CoarseCondition
}

// Notifier delivers combat notifications to an external consumer (event bus,
// websocket fan-out, test recorder). Implementations may fail; publishers
// must never let that failure reach combat logic.
type Notifier interface {
	NotifyStatusChange(change StatusChange) error
}

// Publish delivers the change best-effort: delivery errors are logged and
// swallowed so the underlying state change always stands.
func Publish(n Notifier, change StatusChange) {
	if n == nil {
		return
	}
	if err := n.NotifyStatusChange(change); err != nil {
		logging.Error("status change notification failed", err, logging.Fields{
			"combatant_id": change.CombatantID,
			"effect_kind":  string(change.Kind),
			"applied":      change.Applied,
		})
	}
}

// LogNotifier writes every change to the structured log. It is the default
// sink when no external bus is wired.
type LogNotifier struct{}

func (LogNotifier) NotifyStatusChange(change StatusChange) error {
	logging.Info("status effect changed", logging.Fields{
		"combatant_id": change.CombatantID,
		"effect_kind":  string(change.Kind),
		"applied":      change.Applied,
		"condition":    string(change.Condition),
	})
	return nil
}
