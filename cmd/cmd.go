package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio-backend/internal/cloudinary"
	"studio-backend/internal/config"
	"studio-backend/internal/handlers"
	"studio-backend/internal/mailer"
	"studio-backend/internal/repository"
	"studio-backend/internal/services"
	"studio-backend/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	// Connect to the record store
	primary, closeStore, err := openBackend(context.Background(), cfg.KV)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.KV.Driver).Msg("Failed to open KV backend")
	}
	defer closeStore()

	st := store.New(primary, nil)
	status := st.Status(context.Background())
	log.Info().
		Str("backend", status.Backend).
		Bool("healthy", status.Healthy).
		Str("error", status.Error).
		Msg("Record store ready")

	// Initialize repositories
	photoRepo := repository.NewPhotoRepository(st)
	adminRepo := repository.NewAdminRepository(st)
	inquiryRepo := repository.NewInquiryRepository(st)
	settingsRepo := repository.NewSettingsRepository(st)
	testimonialRepo := repository.NewTestimonialRepository(st)
	packageRepo := repository.NewPackageRepository(st)

	if !st.Configured() && cfg.Server.SeedSamples {
		if err := photoRepo.Seed(context.Background(), repository.SamplePhotos()); err != nil {
			log.Warn().Err(err).Msg("Failed to seed sample photos")
		}
	}

	// Initialize gateways
	var mediaHost services.MediaHost
	if cfg.Cloudinary.Configured() {
		mediaHost = cloudinary.New(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	} else {
		log.Warn().Msg("Cloudinary credentials not set, uploads are disabled")
	}

	if !cfg.SMTP.Configured() {
		log.Warn().Msg("SMTP credentials not set, notification emails will fail")
	}
	notifier := mailer.NewNotifier(
		mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Secure:   cfg.SMTP.Secure,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			FromName: cfg.SMTP.FromName,
		}),
		mailer.Site{
			StudioName:       cfg.Site.Name,
			StudioPhone:      cfg.Site.StudioPhone,
			PhotographerName: cfg.Site.PhotographerName,
			AdminEmail:       cfg.Site.AdminEmail,
			WebsiteURL:       cfg.Site.URL,
		},
	)

	var snapshots services.ObjectPutter
	if cfg.Backup.Configured() {
		s3Client, err := services.NewS3Client(context.Background(), services.S3Options{
			Region:    cfg.Backup.Region,
			Endpoint:  cfg.Backup.Endpoint,
			AccessKey: cfg.Backup.AccessKey,
			SecretKey: cfg.Backup.SecretKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 client")
		}
		snapshots = s3Client
	}

	// Initialize services
	wsHub := services.NewWSHub()
	uploadService := services.NewUploadService(mediaHost, cfg.Cloudinary.Folder)
	photoService := services.NewPhotoService(photoRepo, uploadService, wsHub)
	inquiryService := services.NewInquiryService(inquiryRepo, notifier, wsHub)
	authService := services.NewAuthService(adminRepo, notifier, cfg.JWT.Secret, cfg.JWT.TTL)
	contentService := services.NewContentService(testimonialRepo, packageRepo)
	backupService := services.NewBackupService(photoRepo, inquiryRepo, settingsRepo, snapshots, cfg.Backup.S3Bucket, cfg.Backup.Prefix)
	diagnostics := services.NewDiagnostics(st, photoRepo, adminRepo)

	if !authService.TokensEnabled() {
		log.Warn().Msg("JWT secret not set, Command Center routes are unauthenticated")
	}

	// Setup router
	router := handlers.NewRouter(handlers.Handlers{
		Photo:     handlers.NewPhotoHandler(photoService),
		Inquiry:   handlers.NewInquiryHandler(inquiryService),
		Auth:      handlers.NewAuthHandler(authService),
		Upload:    handlers.NewUploadHandler(uploadService),
		Content:   handlers.NewContentHandler(contentService),
		Admin:     handlers.NewAdminHandler(backupService, diagnostics, st),
		WebSocket: handlers.NewWebSocketHandler(wsHub, authService),
	}, authService)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	wsHub.Close()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Let queued notification emails finish
	notifier.Wait()

	log.Info().Msg("Server exited")
}

// openBackend connects the configured KV driver. A nil backend means the
// process runs on the in-memory store alone.
func openBackend(ctx context.Context, cfg config.KVConfig) (store.Backend, func(), error) {
	noop := func() {}
	if !cfg.Configured() {
		log.Warn().Str("driver", cfg.Driver).Msg("KV not configured, using in-memory store")
		return nil, noop, nil
	}

	switch cfg.Driver {
	case config.DriverRedis:
		backend, err := store.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return backend, func() { backend.Close() }, nil
	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		backend, err := store.NewPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return backend, backend.Close, nil
	case config.DriverREST:
		return store.NewREST(cfg.RESTURL, cfg.RESTToken), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown KV driver %q", cfg.Driver)
	}
}

// setupLogger configures zerolog logger
func setupLogger(level, format string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
