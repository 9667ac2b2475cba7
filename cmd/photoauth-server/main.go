package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-photoauth"
	"github.com/goliatone/go-photoauth/middleware/tokenware"
	"github.com/goliatone/go-photoauth/provider/instagram"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := photoauth.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := openDB(ctx, cfg.DSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	repo := photoauth.NewRepositoryManager(db)
	repo.MustValidate()

	tokens := photoauth.NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenExpiration(),
		cfg.GetIssuer(),
		nil,
	)

	provider := instagram.New(instagram.Config{
		ClientID:     cfg.ProviderClientID,
		ClientSecret: cfg.ProviderClientSecret,
		RedirectURI:  cfg.ProviderRedirectURI,
		TokenURL:     cfg.ProviderTokenURL,
		Timeout:      cfg.ProviderTimeout,
	})

	resolver := photoauth.NewAccountResolver(repo, tokens, provider)

	app := fiber.New(fiber.Config{
		AppName:               "photoauth",
		DisableStartupMessage: true,
	})

	photoauth.NewHTTPController(resolver).RegisterRoutes(app)

	app.Get("/api/me", tokenware.New(tokenware.Config{
		Verifier: resolver.Verifier(),
	}), func(c *fiber.Ctx) error {
		user, ok := tokenware.UserFromContext(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(user)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.ListenAddr)
	}()

	log.Printf("photoauth listening on %s", cfg.ListenAddr)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server: %v", err)
		}
	case <-ctx.Done():
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}

func openDB(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := photoauth.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}
