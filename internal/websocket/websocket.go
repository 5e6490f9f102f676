package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/scythe504/outsider-backend/internal"
	"github.com/scythe504/outsider-backend/internal/game"
	"github.com/scythe504/outsider-backend/internal/ratelimit"
	"github.com/scythe504/outsider-backend/internal/utils"
)

var errMalformedRequest = errors.New("malformed request")

// Handler accepts websocket connections and routes their actions to the coordinator.
type Handler struct {
	coordinator *game.Coordinator
	hub         *Hub
	limiter     *ratelimit.Limiter
	upgrader    websocket.Upgrader
}

func NewHandler(coordinator *game.Coordinator, hub *Hub, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		coordinator: coordinator,
		hub:         hub,
		limiter:     limiter,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Connections returns the number of live websocket connections.
func (h *Handler) Connections() int {
	return h.hub.Count()
}

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

// HandleWebSocket upgrades the HTTP connection and serves it until it closes
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := utils.ClientIP(r)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	err := h.limiter.CheckConnect(ctx, ip)
	cancel()
	if err != nil {
		http.Error(w, "Too many connections", http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade failed: ", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	client := newClient(uuid.NewString(), ip, conn)
	h.hub.register(client)
	log.Printf("[HandleWebSocket] Participant %s connected from %s", client.ID, ip)

	go client.writePump()
	h.handleMessages(client)
}

// handleMessages processes incoming frames until the connection drops, then
// reconciles the participant's departure.
func (h *Handler) handleMessages(client *Client) {
	defer func() {
		h.hub.unregister(client)
		h.coordinator.Disconnect(client.ID)
		log.Printf("[handleMessages] Participant %s disconnected", client.ID)
	}()

	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, rawMessage, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Read error for participant %s: %v", client.ID, err)
			}
			return
		}

		var req internal.Request
		if err := json.Unmarshal(rawMessage, &req); err != nil {
			log.Printf("Failed to parse base message: %v", err)
			continue
		}

		log.Printf("Received message type: %s from participant: %s", req.Type, client.ID)
		ack := h.dispatch(client, req)
		if req.ID != nil {
			client.sendJSON(internal.Ack{Type: internal.MsgAck, ID: req.ID, Data: ack})
		}
	}
}

// dispatch routes one action and turns its result into an acknowledgement.
func (h *Handler) dispatch(client *Client, req internal.Request) internal.AckData {
	switch req.Type {
	case internal.OpCreateRoomCode:
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := h.limiter.CheckRoomCode(ctx, client.IP)
		cancel()
		if err != nil {
			return failure(err)
		}
		client.sendJSON(internal.Message[string]{
			Type: internal.MsgRoomCodeCreated,
			Data: h.coordinator.CreateRoomCode(),
		})
		return internal.AckData{OK: true}

	case internal.OpJoinRoom:
		var data internal.JoinRoomData
		if err := decode(req.Data, &data); err != nil {
			return failure(err)
		}
		joined, err := h.coordinator.Join(data.RoomCode, client.ID, data.Name)
		if err != nil {
			return failure(err)
		}
		return internal.AckData{OK: true, IsHost: &joined.IsHost, Lobby: &joined.Lobby}

	case internal.OpLeaveRoom:
		var data internal.RoomCodeData
		if err := decode(req.Data, &data); err != nil {
			return failure(err)
		}
		return result(h.coordinator.Leave(data.RoomCode, client.ID))

	case internal.OpStartGame:
		var data internal.StartGameData
		if err := decode(req.Data, &data); err != nil {
			return failure(err)
		}
		return result(h.coordinator.StartRound(data.RoomCode, client.ID, data.CustomWord))

	case internal.OpResetGame:
		var data internal.RoomCodeData
		if err := decode(req.Data, &data); err != nil {
			return failure(err)
		}
		return result(h.coordinator.Reset(data.RoomCode, client.ID))

	case internal.OpReadyToVote:
		var data internal.RoomCodeData
		if err := decode(req.Data, &data); err != nil {
			return failure(err)
		}
		return result(h.coordinator.ReadyToVote(data.RoomCode, client.ID))

	case internal.OpCastVote:
		var data internal.CastVoteData
		if err := decode(req.Data, &data); err != nil {
			return failure(err)
		}
		return result(h.coordinator.CastVote(data.RoomCode, client.ID, data.TargetID))
	}

	log.Printf("Unknown message type: %s", req.Type)
	return internal.AckData{OK: false, Error: "unknown action " + req.Type}
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errMalformedRequest
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errMalformedRequest
	}
	return nil
}

func result(err error) internal.AckData {
	if err != nil {
		return failure(err)
	}
	return internal.AckData{OK: true}
}

func failure(err error) internal.AckData {
	return internal.AckData{OK: false, Error: err.Error()}
}
