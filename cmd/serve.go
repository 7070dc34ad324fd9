package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"passport_parser/internal/config"
	"passport_parser/internal/handlers"
	"passport_parser/internal/repository"
	"passport_parser/internal/server"
	"passport_parser/internal/transport/auth"
	"passport_parser/internal/transport/telegram"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot and the HTTP server",
	Long: `Starts the Telegram bot (when BOT_TOKEN is set) and the HTTP server on PORT.
The HTTP server answers /health and, with API_TOKENS or Postgres configured, POST /parse.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	runCtx := cmd.Context()

	setupCtx, cancel := context.WithTimeout(runCtx, 10*time.Second)
	defer cancel()

	cfg := config.Init(setupCtx)
	defer cfg.Close(context.Background())

	if err := cfg.CheckConnections(setupCtx); err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}
	fmt.Println("🟢 All connections OK")

	svc := newService(cfg)

	g, ctx := errgroup.WithContext(runCtx)

	static := repository.NewStaticTokens(cfg.APITokens)
	guard := auth.BearerMiddleware(repository.NewAPITokenRepository(cfg.Postgres, static))
	if static.Empty() && cfg.Postgres == nil {
		guard = nil
	}
	h := handlers.New(svc, cfg.CheckConnections, cfg.MaxArchiveBytes())
	srv := server.NewServer(cfg.Port, h, guard)
	g.Go(func() error { return srv.Run(ctx) })

	if cfg.BotToken != "" {
		g.Go(func() error { return telegram.Start(ctx, cfg.BotToken, svc, cfg.MaxArchiveBytes()) })
	} else {
		log.Printf("[BOT][WARN] BOT_TOKEN is empty, bot disabled")
	}

	return g.Wait()
}
