package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/nail-studio/internal/bootstrap"
	"github.com/BruksfildServices01/nail-studio/internal/config"
)

// O worker separado só faz sentido com o feed no Redis: o barramento em
// memória não atravessa processos.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("notifier encerrado com erro")
	}
}

func run() error {
	cfg := config.Load()
	bootstrap.SetupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := bootstrap.Redis(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient == nil {
		return errors.New("REDIS_URL é obrigatória para o notifier separado")
	}
	defer redisClient.Close()

	bus := bootstrap.Bus(redisClient)
	defer bus.Close()

	store, closeStore, err := bootstrap.OpenStore(cfg, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	return bootstrap.Notifier(cfg, store).Run(ctx, bus)
}
