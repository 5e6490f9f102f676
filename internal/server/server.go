package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/scythe504/outsider-backend/internal/database"
	"github.com/scythe504/outsider-backend/internal/game"
	"github.com/scythe504/outsider-backend/internal/ratelimit"
	"github.com/scythe504/outsider-backend/internal/websocket"
)

type Server struct {
	coordinator *game.Coordinator
	ws          *websocket.Handler
	limiter     *ratelimit.Limiter

	// nil when no DATABASE_URL is configured
	db database.Service
}

func NewServer(port string, coordinator *game.Coordinator, ws *websocket.Handler, db database.Service, limiter *ratelimit.Limiter) *http.Server {
	s := &Server{
		coordinator: coordinator,
		ws:          ws,
		db:          db,
		limiter:     limiter,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
