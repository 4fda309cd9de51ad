package internal

import (
	"fmt"
	"time"
)

type Config struct {
	BackendURL      string        `env:"BACKEND_URL,default=https://vyh328h455.execute-api.us-east-1.amazonaws.com/v1"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT,default=30s"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL,default=1s"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,default=.eventmarket/session"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	CensoredWords   string        `env:"CENSORED_WORDS"`
	CharReplacement string        `env:"CHARACTER_REPLACEMENT,default=*"`
	MergeOptimistic bool          `env:"MERGE_OPTIMISTIC,default=false"`
	SearchLimit     int           `env:"SEARCH_LIMIT,default=20"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
