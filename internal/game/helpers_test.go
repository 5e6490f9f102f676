package game

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"testing"

	"github.com/scythe504/outsider-backend/internal"
	"github.com/stretchr/testify/require"
)

type sent struct {
	Type string
	Msg  any
}

// recordingNotifier keeps every message per participant, in delivery order.
type recordingNotifier struct {
	mu   sync.Mutex
	msgs map[string][]sent
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{msgs: make(map[string][]sent)}
}

func (n *recordingNotifier) Notify(participantID string, msg any) {
	raw, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		panic(err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs[participantID] = append(n.msgs[participantID], sent{Type: head.Type, Msg: msg})
}

func (n *recordingNotifier) types(participantID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.msgs[participantID]))
	for _, m := range n.msgs[participantID] {
		out = append(out, m.Type)
	}
	return out
}

func (n *recordingNotifier) ofType(participantID, msgType string) []any {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []any
	for _, m := range n.msgs[participantID] {
		if m.Type == msgType {
			out = append(out, m.Msg)
		}
	}
	return out
}

func (n *recordingNotifier) clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = make(map[string][]sent)
}

// lastOf returns the payload of the newest msgType message delivered to participantID.
func lastOf[T any](t *testing.T, n *recordingNotifier, participantID, msgType string) T {
	t.Helper()
	msgs := n.ofType(participantID, msgType)
	require.NotEmpty(t, msgs, "no %s delivered to %s", msgType, participantID)
	msg, ok := msgs[len(msgs)-1].(internal.Message[T])
	require.True(t, ok, "unexpected payload type %T", msgs[len(msgs)-1])
	return msg.Data
}

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes []internal.Outcome
}

func (f *fakeRecorder) RecordOutcome(_ context.Context, outcome internal.Outcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, outcome)
	return nil
}

func (f *fakeRecorder) recorded() []internal.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]internal.Outcome(nil), f.outcomes...)
}

func newTestCoordinator(opts ...Option) (*Coordinator, *recordingNotifier) {
	n := newRecordingNotifier()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	return NewCoordinator(n, opts...), n
}

func joinAll(t *testing.T, c *Coordinator, code string, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := c.Join(code, id, "name-"+id)
		require.NoError(t, err)
	}
}

// startedRoom joins ids, starts a round with word and returns the outsider.
func startedRoom(t *testing.T, c *Coordinator, n *recordingNotifier, code, word string, ids ...string) string {
	t.Helper()
	joinAll(t, c, code, ids...)
	require.NoError(t, c.StartRound(code, ids[0], word))
	return outsiderOf(t, n, ids)
}

func outsiderOf(t *testing.T, n *recordingNotifier, ids []string) string {
	t.Helper()
	for _, id := range ids {
		if lastOf[internal.GameStartedData](t, n, id, internal.MsgGameStarted).Word == nil {
			return id
		}
	}
	t.Fatal("no outsider was dealt")
	return ""
}

func without(ids []string, skip ...string) []string {
	var out []string
outer:
	for _, id := range ids {
		for _, s := range skip {
			if id == s {
				continue outer
			}
		}
		out = append(out, id)
	}
	return out
}

// inspect runs fn with the room locked.
func inspect(t *testing.T, c *Coordinator, code string, fn func(room *internal.Room)) {
	t.Helper()
	room, ok := c.Rooms().Get(code)
	require.True(t, ok, "room %s does not exist", code)
	room.Mu.Lock()
	defer room.Mu.Unlock()
	fn(room)
}

func phaseOf(t *testing.T, c *Coordinator, code string) internal.GamePhase {
	t.Helper()
	var phase internal.GamePhase
	inspect(t, c, code, func(room *internal.Room) { phase = room.Phase })
	return phase
}
