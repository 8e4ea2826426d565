// Command admintoken issues a new admin panel token and prints it once.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BergomiStore/bergomi_store/internal/config"
	"github.com/BergomiStore/bergomi_store/internal/database"
	"github.com/BergomiStore/bergomi_store/internal/repository"
	"github.com/BergomiStore/bergomi_store/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateAPI(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := service.NewAdminAuthService(repository.NewAdminTokenRepository(db), cfg.Admin.Token)
	token, err := svc.IssueToken(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue admin token")
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "store this token now, it is not kept in plain text")
}
