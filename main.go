package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/apps/go-server/internal/config"
	"github.com/robalobadob/boggle/apps/go-server/internal/game"
	"github.com/robalobadob/boggle/apps/go-server/internal/httpserver"
	"github.com/robalobadob/boggle/apps/go-server/internal/store"
	"github.com/robalobadob/boggle/apps/go-server/internal/words"
)

func main() {
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dict, err := loadDictionary(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	log.Info().Int("words", dict.Len()).Msg("dictionary loaded")

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}
	defer st.Close()

	srv := httpserver.New(st, game.NewValidator(dict, cfg.MinWordLen), httpserver.Options{
		BoardSize:     cfg.BoardSize,
		GameDuration:  cfg.GameDuration,
		SessionSecret: cfg.SessionSecret,
		CookieName:    cfg.CookieName,
		SecureCookies: cfg.SecureCookies,
		ClientOrigin:  cfg.ClientOrigin,
		DailySalt:     cfg.DailySalt,
	})
	log.Info().Str("port", cfg.Port).Dur("gameDuration", cfg.GameDuration).Msg("starting go-server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadDictionary picks the dictionary source: a SQLite table, a word file,
// or the list embedded in the binary, in that order.
func loadDictionary(ctx context.Context, cfg config.Config) (*words.Dictionary, error) {
	switch {
	case cfg.WordsDB != "":
		return words.LoadSQLite(ctx, cfg.WordsDB, cfg.WordsTable)
	case cfg.WordsFile != "":
		return words.LoadFile(cfg.WordsFile)
	default:
		return words.Default()
	}
}

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.SessionDB == "" {
		return store.NewMemoryStore(), nil
	}
	log.Info().Str("path", cfg.SessionDB).Msg("using sqlite session store")
	return store.NewSQLiteStore(cfg.SessionDB)
}
