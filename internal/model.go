package internal

import (
	"context"
	"sync"
	"time"
)

const (
	MinPlayersToStart = 3
	MaxNameLength     = 24
	RoomCodeLength    = 6
)

type GamePhase string

const (
	PhaseLobby  GamePhase = "lobby"
	PhaseRound  GamePhase = "round"
	PhaseVoting GamePhase = "voting"
)

type Role string

const (
	RoleImpostor Role = "impostor"
	RoleCrewmate Role = "crewmate"
)

type VoteTimer struct {
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	IsActive  bool          `json:"is_active"`
	Context   context.Context
	Cancel    context.CancelFunc
}

type Room struct {
	Code   string
	HostID string

	// Membership, Order keeps join order for display and host promotion
	Members map[string]*Member
	Order   []string

	// Game State
	Phase GamePhase
	Word  string

	// Voting State
	ReadySet map[string]bool
	Votes    map[string]int
	VotedSet map[string]bool
	Departed map[string]*Member

	// Bumped every time voting begins so a stale timer can tell it lost the race
	VotingSession int

	Timer *VoteTimer

	// Concurrency control, held for the whole validate-mutate-broadcast sequence
	Mu sync.Mutex

	// Set once the room is removed from the registry
	Destroyed bool
}

// NewRoom returns an empty lobby room.
func NewRoom(code string) *Room {
	return &Room{
		Code:     code,
		Members:  make(map[string]*Member),
		Order:    make([]string, 0),
		Phase:    PhaseLobby,
		ReadySet: make(map[string]bool),
		Votes:    make(map[string]int),
		VotedSet: make(map[string]bool),
		Departed: make(map[string]*Member),
	}
}

type Member struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	IsOutsider bool      `json:"-"`
	JoinedAt   time.Time `json:"-"`
}

type PlayerEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LobbySnapshot struct {
	RoomCode string        `json:"roomCode"`
	Players  []PlayerEntry `json:"players"`
	HostID   string        `json:"hostId"`
	Started  bool          `json:"started"`
}

// Outcome is a concluded vote, as revealed to the room.
type Outcome struct {
	RoomCode   string         `json:"roomCode"`
	WinnerID   *string        `json:"winnerId"`
	WinnerName *string        `json:"winnerName"`
	IsImpostor *bool          `json:"isImpostor"`
	Tally      map[string]int `json:"tally"`
	Word       string         `json:"-"`
	EndedAt    time.Time      `json:"-"`
}

// Response is the envelope every HTTP endpoint answers with.
type Response struct {
	StatusCode    int   `json:"status_code"`
	RespStartTime int64 `json:"resp_time_start_ms"`
	RespEndTime   int64 `json:"resp_time_end_ms"`
	NetRespTime   int64 `json:"net_resp_time_ms"`
	Data          any   `json:"data"`
}
