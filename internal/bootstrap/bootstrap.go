// Package bootstrap monta as dependências compartilhadas pelos binários:
// logger, change feed, store e notificador.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/nail-studio/internal/config"
	dbpkg "github.com/BruksfildServices01/nail-studio/internal/db"
	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/feed"
	"github.com/BruksfildServices01/nail-studio/internal/infra/repository"
	"github.com/BruksfildServices01/nail-studio/internal/models"
	"github.com/BruksfildServices01/nail-studio/internal/notify"
	"github.com/BruksfildServices01/nail-studio/internal/routes"
)

// Store é o contrato completo que os dois stores implementam.
type Store interface {
	domain.Store
	routes.Store

	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, u *models.User) error
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

var (
	_ Store = (*repository.MemoryStore)(nil)
	_ Store = (*repository.StudioGormRepository)(nil)
)

func SetupLogger(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// Redis devolve nil quando REDIS_URL não foi definida.
func Redis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis parse: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Bus usa Redis pub/sub quando há cliente e o barramento em memória senão.
func Bus(client *redis.Client) feed.Bus {
	if client != nil {
		return feed.NewRedisBus(client)
	}
	return feed.NewMemoryBus()
}

// OpenStore escolhe o store pelo STORE_DRIVER. O close devolvido libera a
// conexão com o banco.
func OpenStore(cfg *config.Config, bus feed.Publisher) (Store, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Warn().Msg("store em memória: os dados somem ao encerrar")
		return repository.NewMemoryStore(bus), func() {}, nil

	case "postgres", "":
		db := dbpkg.NewDB(cfg)
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repository.NewStudioGormRepository(db, bus), closeDB, nil
	}

	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// Notifier liga apenas os canais com credenciais configuradas.
func Notifier(cfg *config.Config, clients notify.ClientFinder) *notify.Notifier {
	var email notify.EmailSender
	if cfg.EmailAPIURL != "" && cfg.EmailAPIKey != "" {
		email = notify.NewHTTPEmail(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.EmailFrom)
	}

	var whatsapp notify.WhatsAppSender
	if cfg.WhatsAppToken != "" && cfg.WhatsAppPhoneID != "" {
		whatsapp = notify.NewCloudWhatsApp(
			cfg.WhatsAppAPIURL,
			cfg.WhatsAppToken,
			cfg.WhatsAppPhoneID,
			cfg.WhatsAppTemplate,
		)
	}

	if email == nil && whatsapp == nil {
		log.Warn().Msg("nenhum canal de notificação configurado")
	}
	return notify.New(clients, email, whatsapp)
}
