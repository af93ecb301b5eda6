package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/nail-studio/internal/audit"
	"github.com/BruksfildServices01/nail-studio/internal/auth"
	"github.com/BruksfildServices01/nail-studio/internal/bootstrap"
	"github.com/BruksfildServices01/nail-studio/internal/cep"
	"github.com/BruksfildServices01/nail-studio/internal/config"
	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/live"
	"github.com/BruksfildServices01/nail-studio/internal/provision"
	"github.com/BruksfildServices01/nail-studio/internal/routes"
	"github.com/BruksfildServices01/nail-studio/internal/storage"
	"github.com/BruksfildServices01/nail-studio/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/nail-studio/internal/usecase/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/validators"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api encerrada com erro")
	}
}

func run() error {
	cfg := config.Load()
	bootstrap.SetupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	redisClient, err := bootstrap.Redis(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	bus := bootstrap.Bus(redisClient)
	defer bus.Close()

	store, closeStore, err := bootstrap.OpenStore(cfg, bus)
	if err != nil {
		return err
	}
	defer closeStore()

	auditDispatcher := audit.NewDispatcher(audit.New(store))
	defer auditDispatcher.Close()

	now := timezone.Clock(cfg.Timezone)

	// ======================================================
	// 👤 CONTAS
	// ======================================================
	provisioning := provision.New(store, auditDispatcher)
	provisioning.DomainCheck = validators.IsEmailDomainValid

	created, err := provisioning.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		log.Info().Str("email", cfg.AdminEmail).Msg("admin inicial criado")
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	coordinator := ucAppointment.NewCoordinator(store, auditDispatcher, now, domain.StudioHours{
		Open:           cfg.StudioOpen,
		Close:          cfg.StudioClose,
		ClosedOnSunday: cfg.ClosedOnSunday,
	})

	session := live.Open(ctx, store, bus)
	defer session.Close()

	var cepCache cep.Cache = cep.NewMemoryCache()
	if redisClient != nil {
		cepCache = cep.NewRedisCache(redisClient)
	}

	var uploader storage.Uploader = storage.Noop{}
	if cfg.S3Enabled() {
		s3, err := storage.NewS3(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return fmt.Errorf("s3: %w", err)
		}
		uploader = s3
	}

	if cfg.NotifierInline {
		notifier := bootstrap.Notifier(cfg, store)
		go func() {
			if err := notifier.Run(ctx, bus); err != nil {
				log.Error().Err(err).Msg("notifier parou")
			}
		}()
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:      cfg,
		Store:       store,
		Coordinator: coordinator,
		Audit:       auditDispatcher,
		Issuer:      auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Provision:   provisioning,
		Session:     session,
		CEP:         cep.New(cfg.ViaCEPURL, cepCache),
		Uploader:    uploader,
		Now:         now,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("API ouvindo")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("encerrando...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
