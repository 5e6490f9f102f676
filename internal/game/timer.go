package game

import (
	"context"
	"log"
	"time"

	"github.com/scythe504/outsider-backend/internal"
)

// =============================================================================
// TIMER MANAGEMENT
// =============================================================================

// startVoteTimer arms the optional vote timeout for the voting session that just
// began. Caller holds room.Mu.
func (c *Coordinator) startVoteTimer(room *internal.Room) {
	duration := c.settings.VoteTimeout
	if duration <= 0 {
		return
	}

	// 1. Cancel any existing timer
	cancelVoteTimer(room)

	// 2. Create new context with cancellation
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	session := room.VotingSession

	room.Timer = &internal.VoteTimer{
		StartTime: time.Now(),
		Duration:  duration,
		IsActive:  true,
		Context:   ctx,
		Cancel:    cancel,
	}
	log.Printf("[StartVoteTimer] Room %s: Timer started for %v (session %d)", room.Code, duration, session)

	// 3. Wait without holding the room lock
	go func() {
		<-ctx.Done()
		if ctx.Err() != context.DeadlineExceeded {
			log.Printf("[StartVoteTimer] Room %s: Timer cancelled before expiry", room.Code)
			return
		}
		c.expireVote(room, session)
	}()
}

// expireVote concludes a vote that is still open when its timer runs out.
func (c *Coordinator) expireVote(room *internal.Room, session int) {
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Destroyed || room.Phase != internal.PhaseVoting || room.VotingSession != session {
		log.Printf("[expireVote] Room %s: session %d already resolved, ignoring", room.Code, session)
		return
	}

	log.Printf("[expireVote] Room %s: vote timed out after %v, concluding with %d/%d votes",
		room.Code, c.settings.VoteTimeout, len(room.VotedSet), len(room.Members))
	c.endVoting(room)
}

// cancelVoteTimer stops the current vote timer. Caller holds room.Mu.
func cancelVoteTimer(room *internal.Room) {
	if room.Timer == nil || !room.Timer.IsActive {
		return
	}
	if room.Timer.Cancel != nil {
		room.Timer.Cancel()
	}
	room.Timer.IsActive = false
	log.Printf("[CancelVoteTimer] Room %s: timer cancelled", room.Code)
}
