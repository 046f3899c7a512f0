package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v3"

	"github.com/rssched/rollingstock-solver/objective"
)

// Config holds every externally tunable solver parameter.
type Config struct {
	Solver    SolverConfig
	Objective ObjectiveConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
}

// SolverConfig holds the shunting/formation/worker-pool parameters the
// greedy builder and local-search engine read at startup.
type SolverConfig struct {
	ShuntingDuration       time.Duration `mapstructure:"SHUNTING_DURATION"`
	DefaultFormationLength int           `mapstructure:"DEFAULT_FORMATION_LENGTH"`
	WorkerPoolSize         int           `mapstructure:"WORKER_POOL_SIZE"`
	RecursionDepth         int           `mapstructure:"RECURSION_DEPTH"`
	RecursionWidth         int           `mapstructure:"RECURSION_WIDTH"`
}

// ObjectiveConfig mirrors objective.FirstPhaseCoefficients so it can carry
// mapstructure/yaml tags without objective importing either.
type ObjectiveConfig struct {
	UnservedPassengers    float64 `mapstructure:"OBJECTIVE_UNSERVED_PASSENGERS" yaml:"unservedPassengers"`
	DepotBalanceViolation float64 `mapstructure:"OBJECTIVE_DEPOT_BALANCE_VIOLATION" yaml:"depotBalanceViolation"`
	VehicleCount          float64 `mapstructure:"OBJECTIVE_VEHICLE_COUNT" yaml:"vehicleCount"`
	DeadHeadDistance      float64 `mapstructure:"OBJECTIVE_DEAD_HEAD_DISTANCE" yaml:"deadHeadDistance"`
	SeatDistanceTraveled  float64 `mapstructure:"OBJECTIVE_SEAT_DISTANCE_TRAVELED" yaml:"seatDistanceTraveled"`
}

// Coefficients converts to objective.FirstPhaseCoefficients.
func (o ObjectiveConfig) Coefficients() objective.FirstPhaseCoefficients {
	return objective.FirstPhaseCoefficients{
		UnservedPassengers:    o.UnservedPassengers,
		DepotBalanceViolation: o.DepotBalanceViolation,
		VehicleCount:          o.VehicleCount,
		DeadHeadDistance:      o.DeadHeadDistance,
		SeatDistanceTraveled:  o.SeatDistanceTraveled,
	}
}

// PostgresConfig holds optional persistence settings for the store package.
type PostgresConfig struct {
	Host     string `mapstructure:"POSTGRES_HOST"`
	Port     int    `mapstructure:"POSTGRES_PORT"`
	User     string `mapstructure:"POSTGRES_USER"`
	Password string `mapstructure:"POSTGRES_PASSWORD"`
	DBName   string `mapstructure:"POSTGRES_DB"`
	SSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	MaxConns int32  `mapstructure:"POSTGRES_MAX_CONNS"`
	MinConns int32  `mapstructure:"POSTGRES_MIN_CONNS"`
}

// DSN returns the PostgreSQL connection string.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// RedisConfig holds optional shared-cache settings for the rscache package.
type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     int    `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	PoolSize int    `mapstructure:"REDIS_POOL_SIZE"`
}

// Addr returns the Redis address in host:port format.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration from environment variables (and a .env file if
// present), applying the defaults below, then — if objectiveYAMLPath is
// non-empty — overlays Objective from that YAML file so an operator can
// version-control objective weighting independently of the rest of the
// environment.
func Load(objectiveYAMLPath string) (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("SHUNTING_DURATION", "15m")
	viper.SetDefault("DEFAULT_FORMATION_LENGTH", 400)
	viper.SetDefault("WORKER_POOL_SIZE", 4)
	viper.SetDefault("RECURSION_DEPTH", 2)
	viper.SetDefault("RECURSION_WIDTH", 10)

	viper.SetDefault("OBJECTIVE_UNSERVED_PASSENGERS", 1.0)
	viper.SetDefault("OBJECTIVE_DEPOT_BALANCE_VIOLATION", 1.0)
	viper.SetDefault("OBJECTIVE_VEHICLE_COUNT", 1.0)
	viper.SetDefault("OBJECTIVE_DEAD_HEAD_DISTANCE", 1.0)
	viper.SetDefault("OBJECTIVE_SEAT_DISTANCE_TRAVELED", 1.0)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "rollingstock")
	viper.SetDefault("POSTGRES_PASSWORD", "rollingstock")
	viper.SetDefault("POSTGRES_DB", "rollingstock")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_MAX_CONNS", 20)
	viper.SetDefault("POSTGRES_MIN_CONNS", 2)

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 50)

	// Try to read .env file. If it doesn't exist, env vars already set in
	// the process's environment are used instead.
	_ = viper.ReadInConfig()

	cfg := &Config{}

	cfg.Solver = SolverConfig{
		ShuntingDuration:       viper.GetDuration("SHUNTING_DURATION"),
		DefaultFormationLength: viper.GetInt("DEFAULT_FORMATION_LENGTH"),
		WorkerPoolSize:         viper.GetInt("WORKER_POOL_SIZE"),
		RecursionDepth:         viper.GetInt("RECURSION_DEPTH"),
		RecursionWidth:         viper.GetInt("RECURSION_WIDTH"),
	}

	cfg.Objective = ObjectiveConfig{
		UnservedPassengers:    viper.GetFloat64("OBJECTIVE_UNSERVED_PASSENGERS"),
		DepotBalanceViolation: viper.GetFloat64("OBJECTIVE_DEPOT_BALANCE_VIOLATION"),
		VehicleCount:          viper.GetFloat64("OBJECTIVE_VEHICLE_COUNT"),
		DeadHeadDistance:      viper.GetFloat64("OBJECTIVE_DEAD_HEAD_DISTANCE"),
		SeatDistanceTraveled:  viper.GetFloat64("OBJECTIVE_SEAT_DISTANCE_TRAVELED"),
	}

	cfg.Postgres = PostgresConfig{
		Host:     viper.GetString("POSTGRES_HOST"),
		Port:     viper.GetInt("POSTGRES_PORT"),
		User:     viper.GetString("POSTGRES_USER"),
		Password: viper.GetString("POSTGRES_PASSWORD"),
		DBName:   viper.GetString("POSTGRES_DB"),
		SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		MaxConns: viper.GetInt32("POSTGRES_MAX_CONNS"),
		MinConns: viper.GetInt32("POSTGRES_MIN_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     viper.GetString("REDIS_HOST"),
		Port:     viper.GetInt("REDIS_PORT"),
		Password: viper.GetString("REDIS_PASSWORD"),
		DB:       viper.GetInt("REDIS_DB"),
		PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
	}

	if objectiveYAMLPath != "" {
		if err := overlayObjectiveFromYAML(objectiveYAMLPath, &cfg.Objective); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// overlayObjectiveFromYAML replaces obj's fields with whatever the YAML
// file at path sets, leaving fields it omits at their current value.
func overlayObjectiveFromYAML(path string, obj *ObjectiveConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading objective coefficients file: %w", err)
	}
	if err := yaml.Unmarshal(data, obj); err != nil {
		return fmt.Errorf("parsing objective coefficients file %s: %w", path, err)
	}
	return nil
}
