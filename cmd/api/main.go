package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/sngm3741/hairline-directory/api/internal/config"
	"github.com/sngm3741/hairline-directory/api/internal/observability"
	"github.com/sngm3741/hairline-directory/api/internal/server"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("設定の読み込みに失敗しました")
	}
	logger := observability.NewLogger(cfg.ServiceName, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("サーバーの初期化に失敗しました")
	}

	logger.Info().
		Str("env", cfg.Env).
		Bool("mongo", cfg.Mongo.Enabled()).
		Bool("redis", cfg.Redis.Addr != "").
		Bool("messenger", cfg.Messenger.Endpoint != "").
		Str("blob", cfg.Blob.Driver).
		Float64("latencyScale", cfg.LatencyScale).
		Msg("loaded config")

	if err := app.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("サーバーが異常終了しました")
	}
}
