// Command admintoken mints a back-office bearer token for an existing user.
//
//	admintoken -email admin@example.org -ttl 12h
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"charity/internal/adapter/repo"
	"charity/internal/domain"
	"charity/internal/infra"
	"charity/internal/middleware"
)

func main() {
	var (
		userID string
		email  string
		ttl    time.Duration
	)
	flag.StringVar(&userID, "id", "", "user id")
	flag.StringVar(&email, "email", "", "user email")
	flag.DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	userID = strings.TrimSpace(userID)
	email = strings.TrimSpace(email)
	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email is required"))
	}
	if ttl <= 0 {
		exitWithError(errors.New("-ttl must be positive"))
	}

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "admintoken").Logger()
	users := repo.NewUserRepository(infra.NewSQLRunner(pool, logger))

	var user *domain.User
	if userID != "" {
		user, err = users.GetByID(ctx, userID)
	} else {
		user, err = users.GetByEmail(ctx, email)
	}
	if err != nil {
		exitWithError(fmt.Errorf("failed to load user: %w", err))
	}
	if !user.IsActive {
		exitWithError(fmt.Errorf("user %s is inactive", user.Email))
	}

	token, err := middleware.SignAdminToken(cfg.JWTSecret, user.ID, user.Email, string(user.Role), ttl, time.Now())
	if err != nil {
		exitWithError(fmt.Errorf("failed to sign token: %w", err))
	}
	fmt.Fprintf(os.Stderr, "token for %s (%s) valid %s\n", user.Email, user.Role, ttl)
	fmt.Println(token)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
