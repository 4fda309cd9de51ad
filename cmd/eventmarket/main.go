package main

import (
	"context"
	"event-market/infrastructure/rest"
	"event-market/infrastructure/search"
	"event-market/internal"
	"event-market/repositories"
	"event-market/services"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}

// run wires the stores and services then hands over to the command tree.
// Deferred closes run before main exits.
func run(args []string) (int, error) {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	if err := os.MkdirAll(filepath.Dir(config.BadgerFilepath), 0o700); err != nil {
		return exitRuntime, fmt.Errorf("failed to create session directory: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("session store opening failed: %w", err)
	}
	defer func() {
		log.Debug("Closing BadgerDB...")
		_ = db.Close()
	}()

	index, err := search.NewDirectoryIndex(log)
	if err != nil {
		return exitRuntime, err
	}
	defer func() { _ = index.Close() }()

	client := rest.NewClient(config.BackendURL, config.HTTPTimeout, log)
	messageRepository := repositories.NewMessageRepository(client, log)
	accountRepository := repositories.NewAccountRepository(client)
	eventRepository := repositories.NewEventRepository(client)
	sessionRepository := repositories.NewSessionRepository(db)

	a := &app{
		config:    config,
		log:       log,
		messages:  messageRepository,
		session:   sessionRepository,
		auth:      services.NewAuthService(accountRepository, sessionRepository, log),
		directory: services.NewDirectoryService(accountRepository, sessionRepository, index, log),
		events:    services.NewEventService(eventRepository, sessionRepository, log),
		profile:   services.NewProfileService(accountRepository, sessionRepository, log),
		in:        os.Stdin,
		out:       os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(a)
	root.SetArgs(args)
	if err = root.ExecuteContext(ctx); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}
