// Package config loads solver parameters — shunting durations, default
// formation length, objective-level coefficients, worker-pool size, and
// optional Postgres/Redis DSNs — from environment variables with
// viper-backed defaults, and optionally overlays objective coefficients
// from a standalone YAML file so operators can version-control weighting
// separately from the rest of the environment.
//
// Grounded on: shivamshaw23-Hintro's config/config.go (SetDefault then a
// mapstructure-tagged struct, read via viper.Get*).
package config
