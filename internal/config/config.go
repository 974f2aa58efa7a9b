// Package config reads server settings from the environment.
//
// A .env file in the working directory is loaded first when present;
// variables already set in the environment take precedence.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Port     string
	LogLevel string

	WordsFile  string // newline-delimited dictionary; empty uses the embedded list
	WordsDB    string // optional SQLite database holding the dictionary
	WordsTable string

	BoardSize    int
	MinWordLen   int
	GameDuration time.Duration

	SessionDB     string // empty keeps sessions in memory
	SessionSecret string
	CookieName    string
	ClientOrigin  string
	SecureCookies bool

	DailySalt string
}

// Load reads .env (if any) and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("read .env")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		WordsFile:     os.Getenv("WORDS_FILE"),
		WordsDB:       os.Getenv("WORDS_DB"),
		WordsTable:    getEnv("WORDS_TABLE", "words"),
		BoardSize:     getInt("BOARD_SIZE", 5),
		MinWordLen:    getInt("MIN_WORD_LEN", 3),
		GameDuration:  getDuration("GAME_DURATION", 60*time.Second),
		SessionDB:     os.Getenv("SESSION_DB"),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
		CookieName:    getEnv("COOKIE_NAME", "boggle_session"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SecureCookies: os.Getenv("NODE_ENV") == "production",
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("invalid integer, using default")
		return def
	}
	return n
}

// getDuration accepts Go durations ("90s", "2m") or a bare number of seconds.
func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	log.Warn().Str("key", k).Str("value", v).Dur("default", def).Msg("invalid duration, using default")
	return def
}
