package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/arzan03/TalentBridge/internal/auth"
	"github.com/arzan03/TalentBridge/internal/config"
	"github.com/arzan03/TalentBridge/internal/db"
	"github.com/arzan03/TalentBridge/internal/repository"
	"github.com/arzan03/TalentBridge/internal/routes"
	"github.com/arzan03/TalentBridge/internal/services"
	"github.com/arzan03/TalentBridge/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsDevelopment() {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(log.LevelInfo)
	}

	ctx := context.Background()

	mongoDB, err := db.ConnectMongoDB(ctx, cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := mongoDB.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	files, err := newFileStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	verifier, closeVerifier, err := newVerifier(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize token verification: %v", err)
	}

	var mailer services.Mailer = services.LogMailer{}
	if cfg.Mail.Host != "" {
		mailer = services.NewSMTPMailer(cfg.Mail)
	}
	notifier := services.NewNotifier(mailer, cfg.Mail.Workers)

	app := routes.NewApp(cfg, routes.Deps{
		Repos:    repository.NewMongoRepositories(mongoDB),
		Store:    mongoDB,
		Files:    files,
		Verifier: verifier,
		Notifier: notifier,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Infow("Server starting", "addr", addr, "env", cfg.Server.Env, "storage", cfg.Storage.Driver)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("Server shutdown failed", "error", err)
	}
	if err := notifier.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Notifier did not drain", "error", err)
	}
	closeVerifier()
	if err := mongoDB.Disconnect(shutdownCtx); err != nil {
		log.Errorw("MongoDB disconnect failed", "error", err)
	}

	log.Info("Server stopped")
}

func newFileStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	if cfg.Driver == config.StorageMinio {
		store, err := storage.NewMinioStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// newVerifier prefers Firebase, then a shared HMAC secret. With neither
// configured every token is rejected. The returned func releases the cache.
func newVerifier(ctx context.Context, cfg *config.Config) (auth.Verifier, func(), error) {
	var verifier auth.Verifier
	switch {
	case cfg.Auth.FirebaseProjectID != "":
		verifier = auth.NewFirebaseVerifier(cfg.Auth.FirebaseProjectID, auth.GoogleCertsURL)
	case cfg.Auth.JWTSecret != "":
		log.Warn("FIREBASE_PROJECT_ID not set, verifying HS256 tokens with JWT_SECRET")
		verifier = auth.NewHMACVerifier(cfg.Auth.JWTSecret)
	default:
		log.Warn("No token verifier configured, authenticated routes will answer 401")
		verifier = auth.VerifierFunc(func(context.Context, string) (*auth.Principal, error) {
			return nil, auth.ErrInvalidToken
		})
	}

	if cfg.Redis.Address == "" {
		return verifier, func() {}, nil
	}
	cache, err := auth.NewRedisTokenCache(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	closeCache := func() {
		if err := cache.Close(); err != nil {
			log.Errorw("Redis close failed", "error", err)
		}
	}
	return auth.NewCachedVerifier(verifier, cache, cfg.Redis.TokenTTL), closeCache, nil
}
