package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passport_parser/internal/ports"
	"passport_parser/internal/repository/runs"
)

type memNames struct {
	m   map[string]ports.NameMap
	err error
}

func (s *memNames) LoadNames(_ context.Context, country string) (ports.NameMap, error) {
	return s.m[country], s.err
}

func (s *memNames) Upsert(_ context.Context, country, native, latin string) error {
	if s.err != nil {
		return s.err
	}
	if s.m == nil {
		s.m = map[string]ports.NameMap{}
	}
	if s.m[country] == nil {
		s.m[country] = ports.NameMap{}
	}
	s.m[country][ports.NameKey(native)] = latin
	return nil
}

func testCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&buf)
	return c, &buf
}

func TestSetAndListNames(t *testing.T) {
	ctx := context.Background()
	store := &memNames{}

	c, out := testCmd()
	require.NoError(t, setName(ctx, c, store, " Myanmar ", "Мин", "Myint"))
	require.NoError(t, setName(ctx, c, store, "myanmar", "Аунг", "Aung"))
	assert.Contains(t, out.String(), "myanmar: Мин -> Myint")

	latin, ok := store.m["myanmar"].LatinFor("мин")
	require.True(t, ok)
	assert.Equal(t, "Myint", latin)

	c, out = testCmd()
	require.NoError(t, listNames(ctx, c, store, "myanmar"))
	assert.Equal(t, "АУНГ\tAung\nМИН\tMyint\n", out.String())

	c, out = testCmd()
	require.NoError(t, listNames(ctx, c, store, "turkmenistan"))
	assert.Equal(t, "No spellings.\n", out.String())
}

func TestSetNameErrors(t *testing.T) {
	ctx := context.Background()
	c, _ := testCmd()

	assert.ErrorContains(t, setName(ctx, c, &memNames{}, "бирма", "Мин", "Myint"), "unknown template")
	assert.ErrorContains(t, setName(ctx, c, &memNames{err: errors.New("db down")}, "myanmar", "Мин", "Myint"), "db down")
}

func TestShowRun(t *testing.T) {
	uid, msg := "42", "bad zip"
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	find := func(_ context.Context, id string) (runs.Record, error) {
		if id != "r1" {
			return runs.Record{}, errors.New("not found")
		}
		return runs.Record{ID: "r1", Source: "upload:a.zip", UserID: &uid, Status: "failed",
			Documents: 3, Extracted: 1, Failed: 2, Errors: &msg, CreatedAt: at, UpdatedAt: at}, nil
	}

	c, out := testCmd()
	require.NoError(t, showRun(context.Background(), c, find, "r1"))
	assert.Contains(t, out.String(), "Status:    failed")
	assert.Contains(t, out.String(), "Documents: 3, with data: 1, failed: 2")
	assert.Contains(t, out.String(), "Errors:    bad zip")
	assert.Contains(t, out.String(), "Started:   2024-05-01 10:00:00")

	assert.ErrorContains(t, showRun(context.Background(), c, find, "r2"), "run r2")
}

func TestNamesAndRunsCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["names"])
	assert.True(t, names["runs"])
}
