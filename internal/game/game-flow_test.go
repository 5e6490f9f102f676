package game

import (
	"testing"

	"github.com/scythe504/outsider-backend/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRoundDealsRoles(t *testing.T) {
	c, n := newTestCoordinator()
	ids := []string{"p1", "p2", "p3", "p4"}
	outsider := startedRoom(t, c, n, "ABC123", "pizza", ids...)

	for _, id := range ids {
		data := lastOf[internal.GameStartedData](t, n, id, internal.MsgGameStarted)
		assert.Equal(t, 5, data.WordLength)
		if id == outsider {
			assert.Equal(t, internal.RoleImpostor, data.Role)
			assert.Nil(t, data.Word)
			continue
		}
		assert.Equal(t, internal.RoleCrewmate, data.Role)
		require.NotNil(t, data.Word)
		assert.Equal(t, "pizza", *data.Word)
	}

	inspect(t, c, "ABC123", func(room *internal.Room) {
		assert.Equal(t, internal.PhaseRound, room.Phase)
		assert.Equal(t, outsider, room.Outsider().ID)
	})

	lobby := lastOf[internal.LobbySnapshot](t, n, "p2", internal.MsgLobbyUpdate)
	assert.True(t, lobby.Started)
}

func TestStartRoundPicksFromWordList(t *testing.T) {
	c, n := newTestCoordinator(WithSettings(Settings{Words: []string{"lighthouse"}, AllowSelfVote: true}))
	ids := []string{"p1", "p2", "p3"}
	outsider := startedRoom(t, c, n, "ABC123", "   ", ids...)

	for _, id := range without(ids, outsider) {
		data := lastOf[internal.GameStartedData](t, n, id, internal.MsgGameStarted)
		require.NotNil(t, data.Word)
		assert.Equal(t, "lighthouse", *data.Word)
	}
}

func TestStartRoundGuards(t *testing.T) {
	c, n := newTestCoordinator()
	joinAll(t, c, "ABC123", "p1", "p2")

	err := c.StartRound("ABC123", "p2", "")
	assert.ErrorIs(t, err, internal.ErrNotHost)

	err = c.StartRound("ABC123", "p1", "")
	assert.ErrorIs(t, err, internal.ErrNotEnoughPlayers)
	assert.Equal(t, internal.PhaseLobby, phaseOf(t, c, "ABC123"))
	assert.Empty(t, n.ofType("p1", internal.MsgGameStarted))

	joinAll(t, c, "ABC123", "p3")
	require.NoError(t, c.StartRound("ABC123", "p1", ""))

	err = c.StartRound("ABC123", "p1", "")
	assert.ErrorIs(t, err, internal.ErrAlreadyStarted)

	err = c.StartRound("ZZZ999", "p1", "")
	assert.ErrorIs(t, err, internal.ErrRoomNotFound)
}

func TestResetReturnsToLobby(t *testing.T) {
	c, n := newTestCoordinator()
	startedRoom(t, c, n, "ABC123", "pizza", "p1", "p2", "p3")

	assert.ErrorIs(t, c.Reset("ABC123", "p2"), internal.ErrNotHost)
	assert.Equal(t, internal.PhaseRound, phaseOf(t, c, "ABC123"))

	require.NoError(t, c.Reset("ABC123", "p1"))

	inspect(t, c, "ABC123", func(room *internal.Room) {
		assert.Equal(t, internal.PhaseLobby, room.Phase)
		assert.Empty(t, room.Word)
		assert.Nil(t, room.Outsider())
		assert.Len(t, room.Members, 3)
	})
	reset := lastOf[internal.GameResetData](t, n, "p3", internal.MsgGameReset)
	assert.Equal(t, "ABC123", reset.RoomCode)

	// A new player may join and a new round can begin
	joinAll(t, c, "ABC123", "p4")
	assert.NoError(t, c.StartRound("ABC123", "p1", ""))
}

func TestResetDuringVotingDiscardsVote(t *testing.T) {
	c, n := newTestCoordinator()
	startedRoom(t, c, n, "ABC123", "pizza", "p1", "p2", "p3")
	require.NoError(t, c.ReadyToVote("ABC123", "p1"))
	require.NoError(t, c.ReadyToVote("ABC123", "p2"))
	require.NoError(t, c.CastVote("ABC123", "p1", "p2"))

	require.NoError(t, c.Reset("ABC123", "p1"))

	inspect(t, c, "ABC123", func(room *internal.Room) {
		assert.Equal(t, internal.PhaseLobby, room.Phase)
		assert.Empty(t, room.Votes)
		assert.Empty(t, room.VotedSet)
	})
	assert.Empty(t, n.ofType("p1", internal.MsgVotingEnded))
}
