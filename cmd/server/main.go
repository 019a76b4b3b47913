package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"connectrpc.com/connect"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/mmynk/groceries/internal/auth"
	"github.com/mmynk/groceries/internal/config"
	"github.com/mmynk/groceries/internal/grocery"
	"github.com/mmynk/groceries/internal/metrics"
	"github.com/mmynk/groceries/internal/middleware"
	"github.com/mmynk/groceries/internal/models"
	"github.com/mmynk/groceries/internal/server"
	"github.com/mmynk/groceries/internal/service"
	"github.com/mmynk/groceries/internal/storage/file"
	"github.com/mmynk/groceries/internal/storage/gdrive"
	"github.com/mmynk/groceries/internal/storage/sqlite"
	"github.com/mmynk/groceries/pkg/api"
	"github.com/mmynk/groceries/pkg/api/apiconnect"
	"github.com/mmynk/groceries/pkg/logging"
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return err
	}
	ctx := context.Background()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	files, err := file.New(cfg.DataDir)
	if err != nil {
		return err
	}
	slog.Info("File backend initialized", "path", cfg.DataDir)

	m := metrics.New()
	groceryOpts := []service.GroceryOption{
		service.WithBackend(api.BackendFile, files),
		service.WithPageSize(cfg.PageSize),
		service.WithMetrics(m),
	}

	if cfg.DriveEnabled() {
		driveStore, err := gdrive.New(ctx, cfg.DriveFolder, driveOptions(cfg)...)
		if err != nil {
			return fmt.Errorf("failed to initialize drive backend: %w", err)
		}
		defer driveStore.Close()
		groceryOpts = append(groceryOpts, service.WithBackend(api.BackendDrive, driveStore))
		slog.Info("Drive backend initialized", "folder", cfg.DriveFolder)
	}

	items, summaries, err := loadSeed(cfg)
	if err != nil {
		return err
	}
	groceryOpts = append(groceryOpts,
		service.WithSeed(items, summaries),
		service.WithSeedStore(files),
	)

	authenticator := auth.NewTokenAuthenticator(store)
	if cfg.CustomersPath != "" {
		entries, err := auth.LoadDirectory(cfg.CustomersPath)
		if err != nil {
			return err
		}
		n, err := auth.SeedDirectory(ctx, authenticator, entries)
		if err != nil {
			return err
		}
		slog.Info("Customer directory imported", "path", cfg.CustomersPath, "customers", n)
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	grocerySvc := service.NewGroceryService(store, groceryOpts...)
	authSvc := service.NewAuthService(authenticator, jwtManager, slog.Default(),
		service.WithLoginMetrics(m),
		service.OnLogout(grocerySvc.Forget),
	)

	groceryPath, groceryHandler := apiconnect.NewGroceryServiceHandler(grocerySvc,
		connect.WithInterceptors(
			middleware.RequireAuth(jwtManager),
			middleware.LoggingInterceptor(),
			middleware.MetricsInterceptor(m),
		),
	)
	authPath, authHandler := apiconnect.NewAuthServiceHandler(authSvc,
		connect.WithInterceptors(
			middleware.OptionalAuth(jwtManager),
			middleware.LoggingInterceptor(),
			middleware.MetricsInterceptor(m),
		),
	)

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)

	srv := server.New(cfg.Addr,
		server.WithService(groceryPath, groceryHandler),
		server.WithService(authPath, authHandler),
		server.WithSaveStore(files),
		server.WithMetrics(m.Handler()),
		server.WithStatic(staticDir),
	)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	slog.Info("Connect server started", "address", cfg.Addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("Shutting down", "signal", sig.String())

	if err := srv.Stop(); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	return nil
}

// driveOptions authenticates with a credentials file when one is set and
// falls back to a bare access token.
func driveOptions(cfg *config.Config) []option.ClientOption {
	if cfg.DriveCredentialsFile != "" {
		return []option.ClientOption{
			option.WithCredentialsFile(cfg.DriveCredentialsFile),
			option.WithScopes(drive.DriveFileScope),
		}
	}
	token := &oauth2.Token{AccessToken: cfg.DriveAccessToken, TokenType: "Bearer"}
	return []option.ClientOption{option.WithTokenSource(oauth2.StaticTokenSource(token))}
}

// loadSeed reads the optional seed files.
func loadSeed(cfg *config.Config) ([]models.GroceryItem, []models.GrocerySummary, error) {
	var (
		items     []models.GroceryItem
		summaries []models.GrocerySummary
	)

	if cfg.SeedItemsPath != "" {
		data, err := os.ReadFile(cfg.SeedItemsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read seed items: %w", err)
		}
		if items, err = grocery.DecodeItems(data); err != nil {
			return nil, nil, fmt.Errorf("failed to decode %s: %w", cfg.SeedItemsPath, err)
		}
		slog.Info("Seed items loaded", "path", cfg.SeedItemsPath, "count", len(items))
	}

	if cfg.SeedSummariesPath != "" {
		data, err := os.ReadFile(cfg.SeedSummariesPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read seed summaries: %w", err)
		}
		if summaries, err = grocery.DecodeSummaries(data); err != nil {
			return nil, nil, fmt.Errorf("failed to decode %s: %w", cfg.SeedSummariesPath, err)
		}
		slog.Info("Seed summaries loaded", "path", cfg.SeedSummariesPath, "count", len(summaries))
	}

	return items, summaries, nil
}
