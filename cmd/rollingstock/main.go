// Command rollingstock solves a rolling-stock instance: by default it
// reads a single JSON instance file, greedily builds a feasible schedule,
// improves it with local search, and writes the evaluated solution into
// the output directory as output_<input file name>. Passed --serve, it instead starts the HTTP API and
// runs until interrupted.
//
// Grounded on: patrickbr-gtfstidy's gtfstidy.go (spf13/pflag flag
// definitions, a custom flag.Usage, and flag.Args() for the positional
// input path) for the one-shot CLI, and shivamshaw23-Hintro's
// cmd/server/main.go (config.Load, optional Postgres/Redis wiring behind
// defer Close, graceful router construction) for --serve.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/rssched/rollingstock-solver/config"
	"github.com/rssched/rollingstock-solver/greedy"
	"github.com/rssched/rollingstock-solver/httpapi"
	"github.com/rssched/rollingstock-solver/ingest"
	"github.com/rssched/rollingstock-solver/localsearch"
	"github.com/rssched/rollingstock-solver/objective"
	"github.com/rssched/rollingstock-solver/rscache"
	"github.com/rssched/rollingstock-solver/store"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rollingstock - rolling-stock vehicle scheduling solver\n\nUsage:\n\n  %s [<options>] <instance.json>\n\nAllowed options:\n\n", os.Args[0])
		flag.PrintDefaults()
	}

	outputDir := flag.StringP("output-dir", "o", "output", "directory the solved schedule is written into")
	objectiveYAML := flag.StringP("objective", "O", "", "path to a YAML file overriding objective coefficients")
	noLocalSearch := flag.BoolP("no-local-search", "n", false, "skip local-search improvement, emit the greedy solution as-is")
	depth := flag.IntP("recursion-depth", "d", 2, "local-search recursion depth")
	width := flag.IntP("recursion-width", "w", 10, "local-search recursion width (0 = unlimited)")
	useCache := flag.BoolP("cache", "c", false, "share local-search objective scores via Redis (REDIS_* env vars)")
	usePersist := flag.BoolP("persist", "p", false, "persist the instance and solution to Postgres (POSTGRES_* env vars)")
	serve := flag.BoolP("serve", "s", false, "run the HTTP API instead of solving one instance")
	addr := flag.StringP("addr", "a", ":8080", "listen address for --serve")
	help := flag.BoolP("help", "?", false, "this message")

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	cfg, err := config.Load(*objectiveYAML)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading configuration:", err)
		os.Exit(1)
	}

	if *serve {
		if err := runServer(cfg, *addr); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "No instance file specified, see --help")
		os.Exit(1)
	}

	if err := solveOne(cfg, args[0], *outputDir, *noLocalSearch, *depth, *width, *useCache, *usePersist); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runServer(cfg *config.Config, addr string) error {
	router := httpapi.NewRouter(cfg.Objective.Coefficients())
	return httpapi.Run(addr, router)
}

// solveOne reads the instance at inputPath, solves it, and writes the
// exported solution to outputDir/output_<basename of inputPath>.
func solveOne(cfg *config.Config, inputPath, outputDir string, noLocalSearch bool, depth, width int, useCache, usePersist bool) error {
	inst, err := ingest.Load(inputPath)
	if err != nil {
		return fmt.Errorf("loading instance: %w", err)
	}

	ctx := context.Background()
	var persisted *store.Store
	var instanceID int64
	if usePersist {
		persisted, err = store.New(ctx, cfg.Postgres)
		if err != nil {
			return fmt.Errorf("connecting to Postgres: %w", err)
		}
		defer persisted.Close()

		rawInstance, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("re-reading instance for persistence: %w", err)
		}
		instanceID, err = persisted.SaveInstance(ctx, filepath.Base(inputPath), rawInstance)
		if err != nil {
			return fmt.Errorf("saving instance: %w", err)
		}
		log.Printf("[rollingstock] saved instance %s as id=%d", inputPath, instanceID)
	}

	obj := objective.FirstPhaseWithCoefficients(cfg.Objective.Coefficients())
	solver := greedy.New(inst.Network, inst.Catalog, obj)
	start := time.Now()
	evaluated, err := solver.Solve()
	if err != nil {
		return fmt.Errorf("solving instance: %w", err)
	}

	if !noLocalSearch {
		evaluated = improve(ctx, evaluated, obj, depth, width, useCache, cfg)
	}

	data, err := ingest.Export(evaluated, obj, time.Since(start))
	if err != nil {
		return fmt.Errorf("exporting solution: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	outputPath := filepath.Join(outputDir, "output_"+filepath.Base(inputPath))
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	log.Printf("[rollingstock] wrote %s", outputPath)

	if persisted != nil {
		solID, err := persisted.SaveSolution(ctx, instanceID, data, sumObjectiveLevels(evaluated.ObjectiveValue()))
		if err != nil {
			return fmt.Errorf("saving solution: %w", err)
		}
		log.Printf("[rollingstock] saved solution id=%d for instance id=%d", solID, instanceID)
	}

	return nil
}

// sumObjectiveLevels reduces an ObjectiveValue to one scalar for storage,
// matching the ordering ObjectiveValue.Compare already treats every
// non-Maximum level as float-comparable on.
func sumObjectiveLevels(v *objective.ObjectiveValue) float64 {
	total := 0.0
	for i := 0; i < v.NumLevels(); i++ {
		total += v.Level(i).Float64()
	}
	return total
}

// improve runs TakeAnyParallelRecursion to local-search improvement until a
// local optimum is reached, optionally sharing evaluated neighbor scores
// over a Redis-backed NeighborCache.
func improve(ctx context.Context, evaluated *objective.EvaluatedSolution[objective.Solution], obj *objective.Objective[objective.Solution], depth, width int, useCache bool, cfg *config.Config) *objective.EvaluatedSolution[objective.Solution] {
	imp := localsearch.NewTakeAnyParallelRecursion(depth, width, obj)

	if useCache {
		client, err := rscache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Printf("[rollingstock] neighbor cache disabled: %v", err)
		} else {
			defer client.Close()
			imp = imp.WithNeighborCache(rscache.New(client), rscache.HashSchedule)
		}
	}

	current := evaluated
	for {
		next := imp.Improve(current)
		if next == nil {
			return current
		}
		current = next
	}
}
