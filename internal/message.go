package internal

import "encoding/json"

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Request is a client action. ID is echoed back on the matching ack.
type Request struct {
	Type string          `json:"type"`
	ID   *int64          `json:"id,omitempty"`
	Data json.RawMessage `json:"data"`
}

type Ack struct {
	Type string  `json:"type"`
	ID   *int64  `json:"id,omitempty"`
	Data AckData `json:"data"`
}

type AckData struct {
	OK     bool           `json:"ok"`
	Error  string         `json:"error,omitempty"`
	IsHost *bool          `json:"isHost,omitempty"`
	Lobby  *LobbySnapshot `json:"lobby,omitempty"`
}

// Client -> server payloads

type JoinRoomData struct {
	RoomCode string `json:"roomCode"`
	Name     string `json:"name"`
}

type RoomCodeData struct {
	RoomCode string `json:"roomCode"`
}

type StartGameData struct {
	RoomCode   string `json:"roomCode"`
	CustomWord string `json:"customWord,omitempty"`
}

type CastVoteData struct {
	RoomCode string `json:"roomCode"`
	TargetID string `json:"targetId"`
}

// Server -> client payloads

type GameStartedData struct {
	Role       Role    `json:"role"`
	Word       *string `json:"word"`
	WordLength int     `json:"wordLength"`
}

type GameResetData struct {
	RoomCode string `json:"roomCode"`
	Reason   string `json:"reason,omitempty"`
}

type ReadyCountData struct {
	Count    int `json:"count"`
	Required int `json:"required"`
}

type VotingStartedData struct {
	RoomCode string        `json:"roomCode"`
	Players  []PlayerEntry `json:"players"`
}

type VoteProgressData struct {
	Voted int `json:"voted"`
	Total int `json:"total"`
}

const (
	MsgAck             = "ack"
	MsgRoomCodeCreated = "roomCodeCreated"
	MsgLobbyUpdate     = "lobbyUpdate"
	MsgGameStarted     = "gameStarted"
	MsgGameReset       = "gameReset"
	MsgReadyCount      = "readyCount"
	MsgVotingStarted   = "votingStarted"
	MsgVoteProgress    = "voteProgress"
	MsgVotingEnded     = "votingEnded"
)

const (
	OpCreateRoomCode = "createRoomCode"
	OpJoinRoom       = "joinRoom"
	OpLeaveRoom      = "leaveRoom"
	OpStartGame      = "startGame"
	OpResetGame      = "resetGame"
	OpReadyToVote    = "readyToVote"
	OpCastVote       = "castVote"
)
