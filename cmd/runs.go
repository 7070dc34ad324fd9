package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"passport_parser/internal/config"
	"passport_parser/internal/repository/runs"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the parse journal",
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show counts and status of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	cfg := config.Init(cmd.Context())
	defer cfg.Close(cmd.Context())
	if cfg.Mongo == nil {
		return errors.New("MONGO_HOST is not set")
	}
	return showRun(cmd.Context(), cmd, func(ctx context.Context, id string) (runs.Record, error) {
		return runs.FindRun(ctx, cfg.Mongo, id)
	}, args[0])
}

func showRun(ctx context.Context, cmd *cobra.Command, find func(context.Context, string) (runs.Record, error), id string) error {
	rec, err := find(ctx, id)
	if err != nil {
		return fmt.Errorf("run %s: %w", id, err)
	}

	cmd.Printf("Run:       %s\n", rec.ID)
	cmd.Printf("Source:    %s\n", rec.Source)
	if rec.UserID != nil {
		cmd.Printf("User:      %s\n", *rec.UserID)
	}
	cmd.Printf("Status:    %s\n", rec.Status)
	cmd.Printf("Documents: %d, with data: %d, failed: %d\n", rec.Documents, rec.Extracted, rec.Failed)
	if rec.Errors != nil {
		cmd.Printf("Errors:    %s\n", *rec.Errors)
	}
	cmd.Printf("Started:   %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Updated:   %s\n", rec.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
