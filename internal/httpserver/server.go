// internal/httpserver/server.go
//
// HTTP server wiring for the Boggle backend.
// Responsibilities:
//   - Router + middleware (request IDs, logging, panic recovery, timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new, GET /game, POST /game, GET /game/missed.
//   - Background sweep of expired sessions and graceful shutdown.
//
// Notes:
//   - The player's round is identified by a signed cookie (see session.go);
//     the round itself lives in a store.Store.
//   - Word checks for one session are serialized with a striped lock so the
//     read-validate-save cycle never interleaves for the same player.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/game"
	"github.com/robalobadob/boggle/apps/go-server/internal/store"
)

// Options configures game rules and cookie handling.
type Options struct {
	BoardSize     int
	GameDuration  time.Duration
	SessionSecret string
	CookieName    string
	SecureCookies bool
	ClientOrigin  string
	DailySalt     string

	// SweepEvery and SweepGrace control removal of finished sessions.
	SweepEvery time.Duration
	SweepGrace time.Duration
}

func (o *Options) setDefaults() {
	if o.BoardSize < 1 {
		o.BoardSize = board.DefaultSize
	}
	if o.GameDuration <= 0 {
		o.GameDuration = 60 * time.Second
	}
	if o.SessionSecret == "" {
		o.SessionSecret = "dev_secret_change_me"
	}
	if o.CookieName == "" {
		o.CookieName = "boggle_session"
	}
	if o.ClientOrigin == "" {
		o.ClientOrigin = "http://localhost:5173"
	}
	if o.SweepEvery <= 0 {
		o.SweepEvery = 5 * time.Minute
	}
	if o.SweepGrace <= 0 {
		o.SweepGrace = time.Hour
	}
}

// Server bundles router, session store, and the shared word validator.
type Server struct {
	r         *chi.Mux
	store     store.Store
	validator *game.Validator
	opts      Options
	now       func() time.Time
	locks     [64]sync.Mutex
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, v *game.Validator, opts Options) *Server {
	opts.setDefaults()
	s := &Server{r: chi.NewRouter(), store: st, validator: v, opts: opts, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"boggle-go","endpoints":["/health","POST /game/new","GET /game","POST /game","GET /game/missed"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": s.validator.Dict.Len(), "minLength": s.validator.MinLen})
	})

	s.mountGame(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
// Expired sessions are swept in the background for the server's lifetime.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.sweepLoop(ctx)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// sweepLoop periodically drops sessions that ended more than SweepGrace ago.
func (s *Server) sweepLoop(ctx context.Context) {
	t := time.NewTicker(s.opts.SweepEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.store.Sweep(ctx, s.now().Add(-s.opts.SweepGrace))
			if err != nil {
				log.Warn().Err(err).Msg("sweep sessions")
				continue
			}
			if n > 0 {
				log.Info().Int("removed", n).Msg("swept expired sessions")
			}
		}
	}
}

// lockFor returns the mutex guarding session id.
func (s *Server) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%uint32(len(s.locks))]
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}
