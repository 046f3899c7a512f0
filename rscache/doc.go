// Package rscache is a best-effort shared cache of
// scheduleHash -> ObjectiveValue, backed by Redis, so that
// localsearch.TakeAnyParallelRecursion workers (potentially spread across
// a fleet of solver processes) skip re-evaluating a schedule another
// worker already scored. A cache miss, a Redis error, or no cache at all
// are all equally valid: correctness never depends on the cache being
// present or warm.
//
// Grounded on: shivamshaw23-Hintro's pkg/cache/redis.go
// (redis.NewClient + pool sizing + a connectivity-verifying Ping, a
// standalone HealthCheck helper) and internal/repository's
// PricingRepository.GetDemandSupply (Redis fast path, fall through to
// recomputation on miss, fire-and-forget Set that never blocks the
// caller on a cache-write failure).
package rscache
