package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	withCleanEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Solver.WorkerPoolSize)
	require.Equal(t, 1.0, cfg.Objective.UnservedPassengers)
	require.Equal(t, "localhost", cfg.Postgres.Host)
}

func TestLoadOverlaysObjectiveFromYAML(t *testing.T) {
	withCleanEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "objective.yaml")
	yamlContents := "unservedPassengers: 5\ndeadHeadDistance: 0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlContents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 5.0, cfg.Objective.UnservedPassengers)
	require.Equal(t, 0.5, cfg.Objective.DeadHeadDistance)
	// Fields the YAML file omits keep their environment/default value.
	require.Equal(t, 1.0, cfg.Objective.VehicleCount)
}

func TestPostgresDSNAndRedisAddr(t *testing.T) {
	withCleanEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Contains(t, cfg.Postgres.DSN(), "postgres://")
	require.Contains(t, cfg.Redis.Addr(), ":6379")
}

// withCleanEnv clears solver-relevant env vars a prior test in the same
// process (viper.AutomaticEnv reads a live, process-global environment)
// might have left behind.
func withCleanEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WORKER_POOL_SIZE", "OBJECTIVE_UNSERVED_PASSENGERS",
		"OBJECTIVE_DEAD_HEAD_DISTANCE", "OBJECTIVE_VEHICLE_COUNT",
	} {
		require.NoError(t, os.Unsetenv(key))
	}
}
