package game

import (
	"log"
	"strings"

	"github.com/scythe504/outsider-backend/internal"
)

// =============================================================================
// GAME FLOW - ROUND SETUP & RESET
// =============================================================================

// StartRound picks the secret word and the outsider, then tells every member
// their role privately. Only the host may start, from the lobby, with at least
// MinPlayersToStart members.
func (c *Coordinator) StartRound(code, participantID, customWord string) error {
	room, err := c.lockRoom(code)
	if err != nil {
		return err
	}
	defer room.Mu.Unlock()

	if room.HostID != participantID {
		log.Printf("[StartRound] Room %s: %s is not host", room.Code, participantID)
		return internal.ErrNotHost
	}
	if room.HasStarted() {
		return internal.ErrAlreadyStarted
	}
	if !room.CanStartGame() {
		log.Printf("[StartRound] Room %s: Not enough players (%d/%d)",
			room.Code, len(room.Members), internal.MinPlayersToStart)
		return internal.ErrNotEnoughPlayers
	}

	word := strings.TrimSpace(customWord)
	if word == "" {
		word = c.settings.Words[c.intn(len(c.settings.Words))]
	}

	outsiderID := room.Order[c.intn(len(room.Order))]
	for id, m := range room.Members {
		m.IsOutsider = id == outsiderID
	}

	room.Word = word
	room.Phase = internal.PhaseRound
	room.ResetVotingState()

	log.Printf("[StartRound] Room %s: round started with %d players, custom word=%t",
		room.Code, len(room.Members), customWord != "")

	for _, id := range room.Order {
		m := room.Members[id]
		sendTo(c.notifier, id, internal.Message[internal.GameStartedData]{
			Type: internal.MsgGameStarted,
			Data: m.RoleReveal(word),
		})
	}
	c.broadcastLobby(room)
	return nil
}

// Reset returns the room to the lobby. Host only.
func (c *Coordinator) Reset(code, participantID string) error {
	room, err := c.lockRoom(code)
	if err != nil {
		return err
	}
	defer room.Mu.Unlock()

	if room.HostID != participantID {
		log.Printf("[Reset] Room %s: %s is not host", room.Code, participantID)
		return internal.ErrNotHost
	}

	c.resetRoomToLobby(room, "")
	return nil
}

// resetRoomToLobby returns room to waiting-for-players state. Caller holds room.Mu.
func (c *Coordinator) resetRoomToLobby(room *internal.Room, reason string) {
	cancelVoteTimer(room)
	room.ResetToLobby()

	log.Printf("[ResetRoomToLobby] Room %s: reset to lobby (reason=%q)", room.Code, reason)
	c.broadcastReset(room, reason)
}
