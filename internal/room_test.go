package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomWith(ids ...string) *Room {
	room := NewRoom("ABC123")
	for _, id := range ids {
		room.AddMember(&Member{ID: id, Name: "name-" + id})
	}
	if len(ids) > 0 {
		room.HostID = ids[0]
	}
	return room
}

func TestMajority(t *testing.T) {
	tests := []struct {
		members int
		want    int
	}{
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{5, 3},
		{8, 5},
	}

	for _, tt := range tests {
		ids := make([]string, tt.members)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		assert.Equal(t, tt.want, roomWith(ids...).Majority(), "members=%d", tt.members)
	}
}

func TestRemoveMemberKeepsTallies(t *testing.T) {
	room := roomWith("a", "b", "c")
	room.ReadySet["b"] = true
	room.VotedSet["b"] = true
	room.Votes["b"] = 2

	m := room.RemoveMember("b")

	require.NotNil(t, m)
	assert.Equal(t, "b", m.ID)
	assert.Equal(t, []string{"a", "c"}, room.Order)
	assert.NotContains(t, room.ReadySet, "b")
	assert.NotContains(t, room.VotedSet, "b")
	assert.Equal(t, 2, room.Votes["b"])

	assert.Nil(t, room.RemoveMember("b"))
}

func TestPromoteHost(t *testing.T) {
	room := roomWith("a", "b", "c")

	assert.False(t, room.PromoteHost(), "host still present")

	room.RemoveMember("a")
	assert.True(t, room.PromoteHost())
	assert.Equal(t, "b", room.HostID)

	room.RemoveMember("c")
	assert.False(t, room.PromoteHost())
	assert.Equal(t, "b", room.HostID)
}

func TestAllVotedAndHighestTally(t *testing.T) {
	room := roomWith("a", "b", "c")
	assert.False(t, room.AllVoted())
	assert.Zero(t, room.HighestTally())

	room.VotedSet["a"] = true
	room.VotedSet["b"] = true
	room.Votes["c"] = 2
	assert.False(t, room.AllVoted())
	assert.Equal(t, 2, room.HighestTally())

	room.RemoveMember("c")
	assert.True(t, room.AllVoted())
}

func TestSnapshotFollowsJoinOrder(t *testing.T) {
	room := roomWith("c", "a", "b")

	snap := room.Snapshot()

	assert.Equal(t, "ABC123", snap.RoomCode)
	assert.Equal(t, "c", snap.HostID)
	assert.False(t, snap.Started)
	require.Len(t, snap.Players, 3)
	assert.Equal(t, "c", snap.Players[0].ID)
	assert.Equal(t, "a", snap.Players[1].ID)
	assert.Equal(t, "b", snap.Players[2].ID)
}

func TestResetToLobby(t *testing.T) {
	room := roomWith("a", "b", "c")
	room.Phase = PhaseVoting
	room.Word = "pizza"
	room.Members["b"].IsOutsider = true
	room.ReadySet["a"] = true
	room.Votes["b"] = 1
	room.VotedSet["a"] = true

	room.ResetToLobby()

	assert.Equal(t, PhaseLobby, room.Phase)
	assert.Empty(t, room.Word)
	assert.Nil(t, room.Outsider())
	assert.Empty(t, room.ReadySet)
	assert.Empty(t, room.Votes)
	assert.Empty(t, room.VotedSet)
	assert.Len(t, room.Members, 3)
}

func TestRoleReveal(t *testing.T) {
	crewmate := &Member{ID: "a"}
	impostor := &Member{ID: "b", IsOutsider: true}

	got := crewmate.RoleReveal("żaba")
	assert.Equal(t, RoleCrewmate, got.Role)
	require.NotNil(t, got.Word)
	assert.Equal(t, "żaba", *got.Word)
	assert.Equal(t, 4, got.WordLength)

	got = impostor.RoleReveal("żaba")
	assert.Equal(t, RoleImpostor, got.Role)
	assert.Nil(t, got.Word)
	assert.Equal(t, 4, got.WordLength)
}
