package game

import (
	"log"
	"maps"
	"strings"
	"time"

	"github.com/scythe504/outsider-backend/internal"
)

// =============================================================================
// VOTING - READINESS QUORUM & TALLY
// =============================================================================

// ReadyToVote records that participantID wants to vote. Voting begins once a
// majority of members is ready. Repeated calls do not double count.
func (c *Coordinator) ReadyToVote(code, participantID string) error {
	room, err := c.lockRoom(code)
	if err != nil {
		return err
	}
	defer room.Mu.Unlock()

	if room.Phase != internal.PhaseRound {
		return internal.ErrNotInRound
	}
	if !room.IsMember(participantID) {
		return internal.ErrNotMember
	}

	room.ReadySet[participantID] = true
	required := room.Majority()

	log.Printf("[ReadyToVote] Room %s: player %s ready, ReadyCount=%d/%d",
		room.Code, participantID, len(room.ReadySet), required)

	broadcastToRoom(c.notifier, room, internal.Message[internal.ReadyCountData]{
		Type: internal.MsgReadyCount,
		Data: internal.ReadyCountData{Count: len(room.ReadySet), Required: required},
	})

	if len(room.ReadySet) >= required {
		c.beginVoting(room)
	}
	return nil
}

// CastVote records one vote from participantID for targetID. Voting concludes in
// the same call once the target reaches a majority or every member has voted.
func (c *Coordinator) CastVote(code, participantID, targetID string) error {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return internal.ErrMissingTarget
	}

	room, err := c.lockRoom(code)
	if err != nil {
		return err
	}
	defer room.Mu.Unlock()

	if room.Phase != internal.PhaseVoting {
		return internal.ErrVotingNotActive
	}
	if !room.IsMember(participantID) {
		return internal.ErrNotMember
	}
	if !room.IsMember(targetID) {
		return internal.ErrInvalidTarget
	}
	if !c.settings.AllowSelfVote && targetID == participantID {
		return internal.ErrSelfVote
	}
	if room.VotedSet[participantID] {
		return internal.ErrAlreadyVoted
	}

	room.VotedSet[participantID] = true
	room.Votes[targetID]++

	log.Printf("[CastVote] Room %s: %s voted for %s (%d/%d), voted=%d/%d",
		room.Code, participantID, targetID, room.Votes[targetID], room.Majority(),
		len(room.VotedSet), len(room.Members))

	broadcastToRoom(c.notifier, room, internal.Message[internal.VoteProgressData]{
		Type: internal.MsgVoteProgress,
		Data: internal.VoteProgressData{Voted: len(room.VotedSet), Total: len(room.Members)},
	})

	if room.Votes[targetID] >= room.Majority() || room.AllVoted() {
		c.endVoting(room)
	}
	return nil
}

// beginVoting opens a fresh vote. Caller holds room.Mu.
func (c *Coordinator) beginVoting(room *internal.Room) {
	room.Phase = internal.PhaseVoting
	room.Votes = make(map[string]int)
	room.VotedSet = make(map[string]bool)
	room.Departed = make(map[string]*internal.Member)
	room.VotingSession++

	log.Printf("[beginVoting] Room %s: voting started with %d players", room.Code, len(room.Members))

	broadcastToRoom(c.notifier, room, internal.Message[internal.VotingStartedData]{
		Type: internal.MsgVotingStarted,
		Data: internal.VotingStartedData{RoomCode: room.Code, Players: room.PlayerList()},
	})

	c.startVoteTimer(room)
}

// endVoting reveals the outcome and returns the room to the round. The word and
// the outsider carry over to the next vote cycle. Caller holds room.Mu.
func (c *Coordinator) endVoting(room *internal.Room) {
	cancelVoteTimer(room)

	outcome := internal.Outcome{
		RoomCode: room.Code,
		Tally:    maps.Clone(room.Votes),
		Word:     room.Word,
		EndedAt:  time.Now(),
	}

	if winnerID, ok := Tally(room.Votes); ok {
		winner := room.Members[winnerID]
		if winner == nil {
			winner = room.Departed[winnerID]
		}
		outcome.WinnerID = &winnerID
		if winner != nil {
			name := winner.Name
			isImpostor := winner.IsOutsider
			outcome.WinnerName = &name
			outcome.IsImpostor = &isImpostor
		}
	}

	log.Printf("[endVoting] Room %s: voting ended, tally=%v winner=%v",
		room.Code, outcome.Tally, outcome.WinnerID != nil)

	broadcastToRoom(c.notifier, room, internal.Message[internal.Outcome]{
		Type: internal.MsgVotingEnded,
		Data: outcome,
	})

	room.Phase = internal.PhaseRound
	room.ResetVotingState()

	go c.record(outcome)
}
