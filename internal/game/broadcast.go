package game

import (
	"log"

	"github.com/scythe504/outsider-backend/internal"
)

// =============================================================================
// BROADCASTING & MESSAGING
// =============================================================================
// All helpers run with room.Mu held; the Notifier only enqueues.

func broadcastToRoom[T any](n Notifier, room *internal.Room, msg internal.Message[T]) {
	for _, id := range room.Order {
		n.Notify(id, msg)
	}
	log.Printf("[Broadcast][Room:%s] %s sent to %d players", room.Code, msg.Type, len(room.Order))
}

func sendTo[T any](n Notifier, participantID string, msg internal.Message[T]) {
	n.Notify(participantID, msg)
}

// broadcastLobby fans the full membership snapshot out to every member.
func (c *Coordinator) broadcastLobby(room *internal.Room) {
	broadcastToRoom(c.notifier, room, internal.Message[internal.LobbySnapshot]{
		Type: internal.MsgLobbyUpdate,
		Data: room.Snapshot(),
	})
}

func (c *Coordinator) broadcastReset(room *internal.Room, reason string) {
	broadcastToRoom(c.notifier, room, internal.Message[internal.GameResetData]{
		Type: internal.MsgGameReset,
		Data: internal.GameResetData{RoomCode: room.Code, Reason: reason},
	})
	c.broadcastLobby(room)
}
