package handler

import (
	"go-pos-sync/internal/replication"
	"go-pos-sync/internal/ws"

	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	orchestrator *replication.Orchestrator
	wsHub        *ws.Hub
}

func NewSyncHandler(o *replication.Orchestrator, hub *ws.Hub) *SyncHandler {
	return &SyncHandler{orchestrator: o, wsHub: hub}
}

// RunSync executes one full replication pass. The pass is stateless; if the
// central store is unreachable this returns 503 and nothing was attempted.
func (h *SyncHandler) RunSync(c *fiber.Ctx) error {
	summary, err := h.orchestrator.RunPass(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	if h.wsHub != nil {
		h.wsHub.BroadcastEvent(ws.Event{Type: "sync_completed", Payload: summary})
	}

	return c.JSON(fiber.Map{
		"message": "Sync completed",
		"summary": summary,
	})
}

// Status reports outstanding unsynced counts per type without syncing.
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	status, err := h.orchestrator.Status(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to get sync status"})
	}
	return c.JSON(status)
}
