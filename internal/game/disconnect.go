package game

import (
	"log"

	"github.com/scythe504/outsider-backend/internal"
)

// =============================================================================
// DISCONNECT RECONCILIATION
// =============================================================================

// Disconnect removes a participant whose connection dropped from every room it
// belongs to. Nothing is reported back; remaining members get a fresh snapshot.
func (c *Coordinator) Disconnect(participantID string) {
	for _, room := range c.rooms.List() {
		room.Mu.Lock()
		if !room.Destroyed && room.IsMember(participantID) {
			log.Printf("[Disconnect] Room %s: player %s disconnected", room.Code, participantID)
			c.depart(room, participantID)
		}
		room.Mu.Unlock()
	}
}

// depart is the single path for leaving and disconnecting. Caller holds room.Mu.
func (c *Coordinator) depart(room *internal.Room, participantID string) {
	m := room.RemoveMember(participantID)
	if m == nil {
		return
	}
	if room.Phase == internal.PhaseVoting {
		room.Departed[participantID] = m
	}

	if len(room.Members) == 0 {
		log.Printf("[removePlayer] Room %s is empty, cleaning up", room.Code)
		c.destroyRoom(room)
		return
	}

	if room.PromoteHost() {
		log.Printf("[removePlayer] Room %s: host left, promoted %s", room.Code, room.HostID)
	}

	// Tallies already cast stay; only the majority and the electorate shrink
	if room.Phase == internal.PhaseVoting &&
		(room.HighestTally() >= room.Majority() || room.AllVoted()) {
		log.Printf("[removePlayer] Room %s: vote resolved after departure", room.Code)
		c.endVoting(room)
	}

	// Without its outsider the round cannot go on
	if room.HasStarted() && m.IsOutsider {
		c.resetRoomToLobby(room, "the impostor left the game")
		return
	}

	c.broadcastLobby(room)

	// A smaller room may already have its readiness quorum
	if room.Phase == internal.PhaseRound && len(room.ReadySet) > 0 &&
		len(room.ReadySet) >= room.Majority() {
		log.Printf("[removePlayer] Room %s: ready quorum met after departure, ReadyCount=%d/%d",
			room.Code, len(room.ReadySet), room.Majority())
		c.beginVoting(room)
	}
}
