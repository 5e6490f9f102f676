package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/scythe504/outsider-backend/internal"
	"github.com/scythe504/outsider-backend/internal/utils"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Apply CORS middleware
	r.Use(s.corsMiddleware)

	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/rooms", s.CreateRoomHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/rooms/{code}", s.GetRoomHandler).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{code}/history", s.RoomHistoryHandler).Methods(http.MethodGet)

	r.HandleFunc("/ws", s.ws.HandleWebSocket)

	return r
}

// CORS middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS Headers
		w.Header().Set("Access-Control-Allow-Origin", "*") // Wildcard allows all origins
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "false") // Credentials not allowed with wildcard origins

		// If it's a websocket upgrade, skip further CORS checks
		if strings.ToLower(r.Header.Get("Upgrade")) == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now().UnixMilli()

	health := map[string]any{
		"status":      "ok",
		"rooms":       s.coordinator.Rooms().Len(),
		"connections": s.ws.Connections(),
	}
	if s.db != nil {
		health["database"] = s.db.Health()
	} else {
		health["database"] = map[string]string{"status": "disabled"}
	}

	writeResponse(w, startTime, http.StatusOK, health)
}

func (s *Server) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now().UnixMilli()

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	err := s.limiter.CheckRoomCode(ctx, utils.ClientIP(r))
	cancel()
	if err != nil {
		writeResponse(w, startTime, http.StatusTooManyRequests, err.Error())
		return
	}

	code := s.coordinator.CreateRoomCode()
	writeResponse(w, startTime, http.StatusCreated, map[string]string{"roomCode": code})
}

func (s *Server) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now().UnixMilli()

	snapshot, err := s.coordinator.Snapshot(mux.Vars(r)["code"])
	if err != nil {
		writeResponse(w, startTime, statusFor(err), err.Error())
		return
	}

	writeResponse(w, startTime, http.StatusOK, snapshot)
}

func (s *Server) RoomHistoryHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now().UnixMilli()

	if s.db == nil {
		writeResponse(w, startTime, http.StatusServiceUnavailable, "history is not available")
		return
	}

	code := utils.NormalizeRoomCode(mux.Vars(r)["code"])
	if !utils.ValidRoomCode(code) {
		writeResponse(w, startTime, http.StatusBadRequest, internal.ErrInvalidRoomCode.Error())
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeResponse(w, startTime, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := s.db.RecentOutcomes(r.Context(), code, limit)
	if err != nil {
		log.Printf("[RoomHistory] Room %s: %v", code, err)
		writeResponse(w, startTime, http.StatusInternalServerError, "failed to load history")
		return
	}

	writeResponse(w, startTime, http.StatusOK, records)
}

// statusFor maps a rejected game action onto an HTTP status.
func statusFor(err error) int {
	var gameErr *internal.GameError
	if !errors.As(err, &gameErr) {
		return http.StatusInternalServerError
	}
	switch gameErr.Kind {
	case internal.KindValidation:
		return http.StatusBadRequest
	case internal.KindAuthorization:
		return http.StatusForbidden
	case internal.KindNotFound:
		return http.StatusNotFound
	case internal.KindPhase, internal.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeResponse(w http.ResponseWriter, startTime int64, statusCode int, data any) {
	resp := internal.Response{
		StatusCode:    statusCode,
		RespStartTime: startTime,
		Data:          data,
	}

	// Calculate response times
	endTime := time.Now().UnixMilli()
	resp.RespEndTime = endTime
	resp.NetRespTime = endTime - startTime

	// Set response headers
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)

	// Send JSON response
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
