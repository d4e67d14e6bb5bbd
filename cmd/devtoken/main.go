// Command devtoken mints an access token for local testing, signed with the
// configured jwt.secret.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"fulfillment-ledger/config"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/internal/service"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "", "subject (owner) id; random when empty")
	role := flag.String("role", ports.RoleMerchant, "role: merchant|operator|admin")
	expiry := flag.Duration("expiry", 0, "token lifetime; defaults to jwt.expiry")
	configPath := flag.String("config", os.Getenv("MFL_CONFIG"), "config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail("failed to load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		fail("jwt.secret is required (set MFL_JWT_SECRET)")
	}

	switch *role {
	case ports.RoleMerchant, ports.RoleOperator, ports.RoleAdmin:
	default:
		fail("unknown role %q", *role)
	}

	id := uuid.New()
	if *subject != "" {
		if id, err = uuid.Parse(*subject); err != nil {
			fail("invalid -sub: %v", err)
		}
	}

	lifetime := cfg.JWT.Expiry
	if *expiry > 0 {
		lifetime = *expiry
	}

	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, lifetime, cfg.JWT.Issuer)
	token, expiresAt, err := tokenSvc.Generate(id, *role)
	if err != nil {
		fail("failed to sign token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "subject=%s role=%s expires=%s\n", id, *role, expiresAt.Format(time.RFC3339))
	fmt.Println(token)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
