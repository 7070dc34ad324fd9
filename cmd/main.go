package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"passport_parser/internal/adapters/opener"
	"passport_parser/internal/config"
	"passport_parser/internal/repository/database"
	"passport_parser/internal/repository/runs"
	"passport_parser/internal/services/parser"
)

var rootCmd = &cobra.Command{
	Use:   "passport-parser",
	Short: "Extract passport fields from .docx translations into a spreadsheet",
	Long: `Reads Russian-language .docx translations of Myanmar and Turkmenistan
passports and writes one spreadsheet row per document.`,
	SilenceUsage: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newService wires the parser with whatever backends cfg has connected.
func newService(cfg *config.Config) *parser.Service {
	var s3Op *opener.S3Opener
	bucket := ""
	if cfg.S3 != nil {
		s3Op = opener.NewS3Opener(cfg.S3.Client)
		bucket = cfg.S3.Bucket
	}
	op := opener.NewCompoundOpener(opener.NewHTTPOpener(nil), s3Op, opener.NewLocalOpener(""), bucket)

	return parser.NewService(
		op,
		database.NewNameOverridesRepo(cfg.Postgres),
		runs.NewJournal(cfg.Mongo),
		cfg.Workers,
		cfg.MaxArchiveBytes(),
	)
}
