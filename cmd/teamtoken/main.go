// Command teamtoken issues the bearer tokens accepted by /api/execute when JWT_SECRET is set.
//
//	teamtoken -env local -team "Team Rocket" -ttl 8h
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

	"gitlab.com/code-round.net/internal/adapter/crypto"
	"gitlab.com/code-round.net/internal/config"
	"gitlab.com/code-round.net/internal/core/ports/primary"
	logger2 "gitlab.com/code-round.net/internal/global/logger"
)

func main() {
	environment := flag.String("env", "local", "Name of the <env>.env file to load")
	team := flag.String("team", "", "Team the token is issued for")
	ttl := flag.Duration("ttl", crypto.DefaultTokenTTL, "Token lifetime")
	flag.Parse()

	if err := godotenv.Load(*environment + ".env"); err != nil {
		logger2.Warn("No env file loaded, using process environment", "file", *environment+".env", "error", err)
	}

	jwtCfg, err := config.NewJwtConfig()
	if err != nil {
		logger2.Error("Failed to load jwt config", "error", err)
		os.Exit(1)
	}
	if !jwtCfg.Enabled() {
		logger2.Error("JWT_SECRET is not set, the server accepts requests without tokens")
		os.Exit(1)
	}

	token, err := issueToken(context.Background(), crypto.NewJWTService(jwtCfg), *team, *ttl, time.Now())
	if err != nil {
		logger2.Error("Failed to issue token", "team", *team, "error", err)
		os.Exit(1)
	}

	logger2.Info("Issued team token", "team", *team, "ttl", ttl.String())
	fmt.Println(token)
}

// issueToken signs an HS256 token whose team claim replaces the team sent in request bodies.
func issueToken(ctx context.Context, tokens primary.TokenService, team string, ttl time.Duration, now time.Time) (string, error) {
	team = strings.TrimSpace(team)
	if team == "" {
		return "", errors.New("team is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	return tokens.GenerateTokenHMAC(ctx, "HS256", map[string]interface{}{
		"team": team,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
}
