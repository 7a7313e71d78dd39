package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"mctsgames/communication"
	"mctsgames/game"
	"mctsgames/gamemaster"

	"github.com/rs/zerolog"
)

// PollTimeout bounds a long-poll request. The current view is returned when
// it expires and the client polls again.
const PollTimeout = 30 * time.Second

const maxBodySize = 1 << 16

type Server struct {
	manager     *gamemaster.Manager
	logger      zerolog.Logger
	pollTimeout time.Duration
}

func New(manager *gamemaster.Manager, logger zerolog.Logger) *Server {
	return &Server{
		manager:     manager,
		logger:      logger,
		pollTimeout: PollTimeout,
	}
}

// Handler routes the JSON API:
//
//	GET    /api/kinds
//	POST   /api/games
//	GET    /api/games
//	GET    /api/games/{id}?after=N
//	POST   /api/games/{id}/moves
//	DELETE /api/games/{id}
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/kinds", s.handleKinds)
	mux.HandleFunc("POST /api/games", s.handleNewGame)
	mux.HandleFunc("GET /api/games", s.handleGames)
	mux.HandleFunc("GET /api/games/{id}", s.handleState)
	mux.HandleFunc("POST /api/games/{id}/moves", s.handlePlay)
	mux.HandleFunc("DELETE /api/games/{id}", s.handleClose)
	return s.logRequests(mux)
}

// Start serves on addr until ctx is cancelled, then closes every session.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errs := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("serving")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		s.manager.Shutdown()
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdown)
	s.manager.Shutdown()
	return err
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, gamemaster.Kinds())
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req communication.NewGameRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	view, err := s.manager.NewGame(r.Context(), req.Game, req.HumanFirst)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	views, err := s.manager.Games(r.Context())
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	after := -1
	if raw := r.URL.Query().Get("after"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		after = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.pollTimeout)
	defer cancel()
	view, err := s.manager.State(ctx, r.PathValue("id"), after)
	if errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	view, err := s.manager.Play(r.Context(), r.PathValue("id"), body)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Close(r.PathValue("id")); err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, gamemaster.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, gamemaster.ErrUnknownGame), errors.Is(err, game.ErrIllegalMove):
		return http.StatusBadRequest
	case errors.Is(err, gamemaster.ErrNotYourTurn), errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, gamemaster.ErrSessionClosed):
		return http.StatusGone
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, communication.ErrorResponse{Error: err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
