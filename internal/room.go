package internal

import "slices"

// Methods (Room Struct)
// Callers hold r.Mu.

// Majority is floor(members/2)+1, used for both the readiness quorum and elimination.
func (r *Room) Majority() int {
	return len(r.Members)/2 + 1
}

func (r *Room) IsMember(id string) bool {
	_, ok := r.Members[id]
	return ok
}

func (r *Room) GetPlayerCount() int {
	return len(r.Members)
}

func (r *Room) CanStartGame() bool {
	return r.GetPlayerCount() >= MinPlayersToStart
}

func (r *Room) HasStarted() bool {
	return r.Phase != PhaseLobby
}

func (r *Room) AddMember(m *Member) {
	r.Members[m.ID] = m
	r.Order = append(r.Order, m.ID)
}

// RemoveMember drops id from membership and from the per-phase sets.
// Tallies already cast for id stay in Votes.
func (r *Room) RemoveMember(id string) *Member {
	m, ok := r.Members[id]
	if !ok {
		return nil
	}
	delete(r.Members, id)
	delete(r.ReadySet, id)
	delete(r.VotedSet, id)
	r.Order = slices.DeleteFunc(r.Order, func(s string) bool {
		return s == id
	})
	return m
}

// PromoteHost makes the earliest remaining member host when the current host is gone.
func (r *Room) PromoteHost() bool {
	if r.IsMember(r.HostID) || len(r.Order) == 0 {
		return false
	}
	r.HostID = r.Order[0]
	return true
}

func (r *Room) Outsider() *Member {
	for _, m := range r.Members {
		if m.IsOutsider {
			return m
		}
	}
	return nil
}

func (r *Room) PlayerList() []PlayerEntry {
	players := make([]PlayerEntry, 0, len(r.Order))
	for _, id := range r.Order {
		if m := r.Members[id]; m != nil {
			players = append(players, m.ToPlayerEntry())
		}
	}
	return players
}

func (r *Room) Snapshot() LobbySnapshot {
	return LobbySnapshot{
		RoomCode: r.Code,
		Players:  r.PlayerList(),
		HostID:   r.HostID,
		Started:  r.HasStarted(),
	}
}

func (r *Room) HighestTally() int {
	highest := 0
	for _, count := range r.Votes {
		highest = max(highest, count)
	}
	return highest
}

func (r *Room) AllVoted() bool {
	for id := range r.Members {
		if !r.VotedSet[id] {
			return false
		}
	}
	return true
}

// ResetVotingState clears the readiness quorum and every vote of the current cycle.
func (r *Room) ResetVotingState() {
	r.ReadySet = make(map[string]bool)
	r.Votes = make(map[string]int)
	r.VotedSet = make(map[string]bool)
	r.Departed = make(map[string]*Member)
}

// ResetToLobby drops the word and every outsider flag.
func (r *Room) ResetToLobby() {
	r.Phase = PhaseLobby
	r.Word = ""
	for _, m := range r.Members {
		m.IsOutsider = false
	}
	r.ResetVotingState()
}
