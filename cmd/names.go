package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"passport_parser/internal/config"
	"passport_parser/internal/models"
	"passport_parser/internal/ports"
	"passport_parser/internal/repository/database"
)

type nameStore interface {
	LoadNames(ctx context.Context, country string) (ports.NameMap, error)
	Upsert(ctx context.Context, country, native, latin string) error
}

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Manage curated Latin spellings of names",
	Long:  `Reads and writes the name_overrides table consulted before transliteration.`,
}

var namesSetCmd = &cobra.Command{
	Use:   "set [template] [native] [latin]",
	Short: "Add or replace one spelling",
	Long:  `Template is myanmar or turkmenistan. Quote multi-word names.`,
	Args:  cobra.ExactArgs(3),
	RunE:  runNamesSet,
}

var namesListCmd = &cobra.Command{
	Use:   "list [template]",
	Short: "List spellings for a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runNamesList,
}

func init() {
	namesCmd.AddCommand(namesSetCmd)
	namesCmd.AddCommand(namesListCmd)
	rootCmd.AddCommand(namesCmd)
}

func openNameStore(ctx context.Context) (*config.Config, nameStore, error) {
	cfg := config.Init(ctx)
	if cfg.Postgres == nil {
		cfg.Close(ctx)
		return nil, nil, errors.New("PG_HOST is not set")
	}
	return cfg, database.NewNameOverridesRepo(cfg.Postgres), nil
}

func runNamesSet(cmd *cobra.Command, args []string) error {
	cfg, store, err := openNameStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cfg.Close(cmd.Context())
	return setName(cmd.Context(), cmd, store, args[0], args[1], args[2])
}

func runNamesList(cmd *cobra.Command, args []string) error {
	cfg, store, err := openNameStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cfg.Close(cmd.Context())
	return listNames(cmd.Context(), cmd, store, args[0])
}

func templateName(s string) (string, error) {
	tpl, ok := models.ParseTemplate(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return "", fmt.Errorf("unknown template %q", s)
	}
	return tpl.String(), nil
}

func setName(ctx context.Context, cmd *cobra.Command, store nameStore, template, native, latin string) error {
	country, err := templateName(template)
	if err != nil {
		return err
	}
	if err := store.Upsert(ctx, country, native, latin); err != nil {
		return fmt.Errorf("save spelling: %w", err)
	}
	cmd.Printf("%s: %s -> %s\n", country, strings.TrimSpace(native), strings.TrimSpace(latin))
	return nil
}

func listNames(ctx context.Context, cmd *cobra.Command, store nameStore, template string) error {
	country, err := templateName(template)
	if err != nil {
		return err
	}
	m, err := store.LoadNames(ctx, country)
	if err != nil {
		return fmt.Errorf("load spellings: %w", err)
	}
	if len(m) == 0 {
		cmd.Println("No spellings.")
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Printf("%s\t%s\n", k, m[k])
	}
	return nil
}
