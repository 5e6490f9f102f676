package game

import (
	"testing"
	"time"

	"github.com/scythe504/outsider-backend/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteTimeoutConcludesOpenVote(t *testing.T) {
	c, n := newTestCoordinator(WithSettings(Settings{AllowSelfVote: true, VoteTimeout: 200 * time.Millisecond}))
	openVote(t, c, n, "p1", "p2", "p3")

	require.NoError(t, c.CastVote("ABC123", "p1", "p2"))

	assert.Eventually(t, func() bool {
		return len(n.ofType("p3", internal.MsgVotingEnded)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	outcome := lastOf[internal.Outcome](t, n, "p3", internal.MsgVotingEnded)
	require.NotNil(t, outcome.WinnerID)
	assert.Equal(t, "p2", *outcome.WinnerID)
	assert.Equal(t, internal.PhaseRound, phaseOf(t, c, "ABC123"))
}

func TestResolvedVoteIgnoresTimer(t *testing.T) {
	c, n := newTestCoordinator(WithSettings(Settings{AllowSelfVote: true, VoteTimeout: 200 * time.Millisecond}))
	openVote(t, c, n, "p1", "p2", "p3")

	require.NoError(t, c.CastVote("ABC123", "p1", "p2"))
	require.NoError(t, c.CastVote("ABC123", "p3", "p2"))

	time.Sleep(400 * time.Millisecond)

	assert.Len(t, n.ofType("p1", internal.MsgVotingEnded), 1)
	assert.Equal(t, internal.PhaseRound, phaseOf(t, c, "ABC123"))
}

func TestNoTimeoutByDefault(t *testing.T) {
	c, n := newTestCoordinator()
	openVote(t, c, n, "p1", "p2", "p3")

	inspect(t, c, "ABC123", func(room *internal.Room) {
		assert.Nil(t, room.Timer)
	})
}
