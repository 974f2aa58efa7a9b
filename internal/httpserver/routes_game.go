// internal/httpserver/routes_game.go
//
// HTTP routes for a timed Boggle round:
//   - POST /game/new    → start a round (random or daily board), set cookie
//   - GET  /game        → board, end time, score, and found words
//   - POST /game        → submit one word; returns the verdict and score
//   - GET  /game/missed → once the round is over, words that were not found
//
// Rejections that come from the round rather than the word (time is up,
// word already found) are checked before the word is validated and are
// reported with 409.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/daily"
	"github.com/robalobadob/boggle/apps/go-server/internal/game"
	"github.com/robalobadob/boggle/apps/go-server/internal/store"
)

const (
	resultGameOver     = "game-over"
	resultAlreadyFound = "already-found"

	maxBodyBytes = 4 << 10
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Get("/", s.handleGetGame)
		r.Post("/", s.handleSubmit)
		r.Get("/missed", s.handleMissed)
	})
}

// newGameReq is the optional payload for POST /game/new.
type newGameReq struct {
	Daily bool `json:"daily"`
}

// gameRes describes a round to the client.
type gameRes struct {
	Board   [][]string `json:"board"`
	EndTime time.Time  `json:"endTime"`
	Score   int        `json:"score"`
	Found   []string   `json:"found"`
	Daily   bool       `json:"daily"`
	Over    bool       `json:"over"`
}

func (s *Server) toGameRes(sess *game.Session) gameRes {
	found := sess.Found
	if found == nil {
		found = []string{}
	}
	return gameRes{
		Board:   sess.Board.Rows(),
		EndTime: sess.EndsAt,
		Score:   sess.Score,
		Found:   found,
		Daily:   sess.Daily,
		Over:    sess.Over(s.now()),
	}
}

// handleNewGame creates a session, persists it, and sets the session cookie.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}

	now := s.now()
	var b board.Board
	if req.Daily {
		b = daily.Board(now, s.opts.DailySalt, s.opts.BoardSize)
	} else {
		b = board.Generate(s.opts.BoardSize, nil)
	}
	sess := game.NewSession(uuid.NewString(), b, now, s.opts.GameDuration)
	sess.Daily = req.Daily

	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Str("sessionId", sess.ID).Msg("save session")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save_failed"})
		return
	}

	exp := sess.EndsAt.Add(s.opts.SweepGrace)
	tok, err := s.signSession(sess.ID, exp)
	if err != nil {
		log.Error().Err(err).Msg("sign session")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "sign_failed"})
		return
	}
	s.setSessionCookie(w, tok, exp)

	log.Info().Str("sessionId", sess.ID).Bool("daily", sess.Daily).Msg("new game")
	writeJSON(w, http.StatusOK, s.toGameRes(sess))
}

// loadSession resolves the caller's session or writes a 404 and returns nil.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) *game.Session {
	id, err := s.sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no_session"})
		return nil
	}
	return s.loadSessionByID(w, r, id)
}

// loadSessionByID fetches session id from the store or writes an error and returns nil.
func (s *Server) loadSessionByID(w http.ResponseWriter, r *http.Request, id string) *game.Session {
	sess, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no_session"})
		return nil
	}
	if err != nil {
		log.Error().Err(err).Str("sessionId", id).Msg("load session")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "load_failed"})
		return nil
	}
	return sess
}

// handleGetGame returns the caller's current round.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, s.toGameRes(sess))
}

// submitReq/Res payloads for POST /game.
type submitReq struct {
	Word string `json:"word"`
}
type submitRes struct {
	Result string `json:"result"` // a game.Verdict, or game-over / already-found
	Score  int    `json:"score"`
}

// handleSubmit validates one word against the caller's round.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}

	id, err := s.sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no_session"})
		return
	}
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	sess := s.loadSessionByID(w, r, id)
	if sess == nil {
		return
	}

	verdict, err := sess.Submit(s.validator, req.Word, s.now())
	switch {
	case errors.Is(err, game.ErrGameOver):
		writeJSON(w, http.StatusConflict, submitRes{Result: resultGameOver, Score: sess.Score})
		return
	case errors.Is(err, game.ErrAlreadyFound):
		writeJSON(w, http.StatusConflict, submitRes{Result: resultAlreadyFound, Score: sess.Score})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if verdict == game.VerdictOK {
		if err := s.store.Save(r.Context(), sess); err != nil {
			log.Error().Err(err).Str("sessionId", sess.ID).Msg("save session")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save_failed"})
			return
		}
	}
	log.Debug().Str("sessionId", sess.ID).Str("word", req.Word).Str("verdict", string(verdict)).Msg("word checked")
	writeJSON(w, http.StatusOK, submitRes{Result: string(verdict), Score: sess.Score})
}

// missedRes is returned by GET /game/missed.
type missedRes struct {
	Found  []string `json:"found"`
	Missed []string `json:"missed"`
}

// handleMissed reveals unfound words, but only after the round has ended.
func (s *Server) handleMissed(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}
	if !sess.Over(s.now()) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "game_in_progress"})
		return
	}
	missed := sess.Missed(s.validator)
	if missed == nil {
		missed = []string{}
	}
	writeJSON(w, http.StatusOK, missedRes{Found: sess.Found, Missed: missed})
}
