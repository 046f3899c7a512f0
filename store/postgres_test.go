package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/config"
	"github.com/rssched/rollingstock-solver/store"
)

// New talks to a real PostgreSQL server to verify connectivity and apply
// the schema, so only its config-validation path (which fails before any
// network call) is exercised here — matching the teacher, which has no
// tests against a live database either.
func TestNewRejectsUnparsableDSN(t *testing.T) {
	cfg := config.PostgresConfig{
		Host:     "bad host with spaces",
		Port:     5432,
		User:     "solver",
		Password: "solver",
		DBName:   "solver",
		SSLMode:  "disable",
	}

	_, err := store.New(context.Background(), cfg)
	require.Error(t, err)
}
