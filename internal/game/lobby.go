package game

import (
	"errors"
	"log"
	"time"

	"github.com/scythe504/outsider-backend/internal"
	"github.com/scythe504/outsider-backend/internal/utils"
)

// =============================================================================
// MEMBERSHIP - JOIN & LEAVE
// =============================================================================

type JoinResult struct {
	IsHost bool
	Lobby  internal.LobbySnapshot
}

// Join adds participantID to the room, creating the room on first join.
// Joining is only possible while the room is in the lobby.
func (c *Coordinator) Join(code, participantID, name string) (JoinResult, error) {
	name = utils.TruncateName(name, c.settings.MaxNameLength)
	if name == "" {
		return JoinResult{}, internal.ErrMissingName
	}
	code = utils.NormalizeRoomCode(code)
	if !utils.ValidRoomCode(code) {
		return JoinResult{}, internal.ErrInvalidRoomCode
	}

	// A room destroyed between lookup and lock is retried with a fresh entry
	var room *internal.Room
	for {
		room, _ = c.rooms.getOrCreate(code)
		room.Mu.Lock()
		if !room.Destroyed {
			break
		}
		room.Mu.Unlock()
	}
	defer room.Mu.Unlock()

	if room.HasStarted() {
		log.Printf("[Join] Room %s: rejecting %s, phase=%s", code, participantID, room.Phase)
		return JoinResult{}, internal.ErrRoundInProgress
	}

	if m, ok := room.Members[participantID]; ok {
		m.Name = name
	} else {
		room.AddMember(&internal.Member{
			ID:       participantID,
			Name:     name,
			JoinedAt: time.Now(),
		})
	}

	if !room.IsMember(room.HostID) {
		room.HostID = participantID
	}

	log.Printf("[Join] Room %s: added player %s (%s), host=%s, total players: %d",
		code, participantID, name, room.HostID, len(room.Members))

	c.broadcastLobby(room)

	return JoinResult{
		IsHost: room.HostID == participantID,
		Lobby:  room.Snapshot(),
	}, nil
}

// Leave removes participantID from the room. Leaving a room that does not exist,
// or that the participant is not part of, succeeds without effect.
func (c *Coordinator) Leave(code, participantID string) error {
	room, err := c.lockRoom(code)
	if err != nil {
		if errors.Is(err, internal.ErrRoomNotFound) {
			return nil
		}
		return err
	}
	defer room.Mu.Unlock()

	if !room.IsMember(participantID) {
		return nil
	}

	log.Printf("[Leave] Room %s: player %s leaving", room.Code, participantID)
	c.depart(room, participantID)
	return nil
}
