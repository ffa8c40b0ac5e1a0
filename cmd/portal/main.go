package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/alefdelta/sacco-client/apiclient"
	"github.com/alefdelta/sacco-client/credstore"
	"github.com/alefdelta/sacco-client/internal/config"
	"github.com/alefdelta/sacco-client/session"
)

func main() {
	_ = godotenv.Load()

	c := config.New()
	logger := newLogger(c)

	if err := run(c, logger, os.Args[1:]); err != nil {
		logger.Fatal().Err(err).Msg("portal command failed")
	}
}

func run(c config.Config, logger zerolog.Logger, args []string) error {
	if len(args) == 0 || args[0] == "help" {
		displayAppname(c.GetAppName())
		printUsage()
		return nil
	}

	secret := c.GetCredentialSecret()
	if secret == "" {
		return errors.New("CREDENTIAL_SECRET must be set to seal stored credentials")
	}

	durable, err := credstore.NewFileBackend(c.GetDataFolder(), secret)
	if err != nil {
		return errors.Wrap(err, "credential file backend")
	}
	store, err := credstore.New(durable, credstore.NewMemoryBackend())
	if err != nil {
		return errors.Wrap(err, "credential store")
	}

	client, err := apiclient.New(c.GetAPIBaseURL(),
		apiclient.WithTimeout(c.GetRequestTimeout()),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		return errors.Wrap(err, "api client")
	}

	manager, err := session.NewManager(client, store, session.WithLogger(logger))
	if err != nil {
		return errors.Wrap(err, "session manager")
	}
	client.SetTokenSource(manager)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	manager.Rehydrate(ctx)

	return dispatch(ctx, manager, client, args)
}

func newLogger(c config.Config) zerolog.Logger {
	level := zerolog.WarnLevel
	if c.GetEnv() == "DEV" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func printUsage() {
	fmt.Println(`Usage: portal <command> [flags]

Commands:
  login          sign in (-phone, -password, -remember)
  logout         sign out and clear stored credentials
  whoami         show the signed-in member
  dashboard      savings and loan headline figures
  accounts       list savings accounts
  transactions   list transactions (-account, -page)
  loans          list loans
  loan           show a loan with its schedule (-id)
  requests       list service requests
  deposit        submit a deposit request (-amount, -note)
  notifications  list notifications
  read           mark a notification read (-id)`)
}
