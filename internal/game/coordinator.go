package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/scythe504/outsider-backend/internal"
	"github.com/scythe504/outsider-backend/internal/utils"
)

// Notifier delivers a message to one connected participant. Implementations must not
// block: the coordinator calls it while holding a room lock.
type Notifier interface {
	Notify(participantID string, msg any)
}

// OutcomeRecorder archives concluded votes.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, outcome internal.Outcome) error
}

type nopRecorder struct{}

func (nopRecorder) RecordOutcome(context.Context, internal.Outcome) error { return nil }

type Settings struct {
	Words         []string
	AllowSelfVote bool
	// Zero disables the vote timeout, a vote then stays open until it resolves.
	VoteTimeout   time.Duration
	MaxNameLength int
}

func DefaultSettings() Settings {
	return Settings{
		Words:         utils.DefaultWords,
		AllowSelfVote: true,
		MaxNameLength: internal.MaxNameLength,
	}
}

// Coordinator routes every client action to the room it targets. Each action runs
// validate, mutate and broadcast under that room's mutex.
type Coordinator struct {
	rooms    *Registry
	notifier Notifier
	recorder OutcomeRecorder
	settings Settings

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*Coordinator)

func WithSettings(s Settings) Option {
	return func(c *Coordinator) {
		if len(s.Words) == 0 {
			s.Words = utils.DefaultWords
		}
		if s.MaxNameLength <= 0 {
			s.MaxNameLength = internal.MaxNameLength
		}
		c.settings = s
	}
}

func WithRecorder(r OutcomeRecorder) Option {
	return func(c *Coordinator) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithRand fixes the source used for word and outsider selection.
func WithRand(r *rand.Rand) Option {
	return func(c *Coordinator) {
		c.rng = r
	}
}

func WithRegistry(r *Registry) Option {
	return func(c *Coordinator) {
		c.rooms = r
	}
}

func NewCoordinator(notifier Notifier, opts ...Option) *Coordinator {
	c := &Coordinator{
		rooms:    NewRegistry(),
		notifier: notifier,
		recorder: nopRecorder{},
		settings: DefaultSettings(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Rooms() *Registry {
	return c.rooms
}

func (c *Coordinator) intn(n int) int {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return c.rng.Intn(n)
}

// CreateRoomCode returns a code no live room is using.
func (c *Coordinator) CreateRoomCode() string {
	code := c.rooms.NewCode()
	log.Printf("[CreateRoomCode] Issued room code %s", code)
	return code
}

// Snapshot returns the current lobby view of a room.
func (c *Coordinator) Snapshot(code string) (internal.LobbySnapshot, error) {
	room, err := c.lockRoom(code)
	if err != nil {
		return internal.LobbySnapshot{}, err
	}
	defer room.Mu.Unlock()
	return room.Snapshot(), nil
}

// lockRoom normalizes and validates code, then returns the live room locked.
func (c *Coordinator) lockRoom(code string) (*internal.Room, error) {
	code = utils.NormalizeRoomCode(code)
	if !utils.ValidRoomCode(code) {
		return nil, internal.ErrInvalidRoomCode
	}
	room, ok := c.rooms.Get(code)
	if !ok {
		return nil, internal.ErrRoomNotFound
	}
	room.Mu.Lock()
	if room.Destroyed {
		room.Mu.Unlock()
		return nil, internal.ErrRoomNotFound
	}
	return room, nil
}

func (c *Coordinator) record(outcome internal.Outcome) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.recorder.RecordOutcome(ctx, outcome); err != nil {
		log.Printf("[record] Room %s: failed to archive outcome: %v", outcome.RoomCode, err)
	}
}
