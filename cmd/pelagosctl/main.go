package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"pelagos/internal/logging"
	"pelagos/internal/storage"
	pelapi "pelagos/pkg/pelagos"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "scenarios":
		return runScenarios(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "trajectory":
		return runTrajectory(ctx, args[1:])
	case "summary":
		return runSummary(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: pelagosctl <init|reset|run|scenarios|runs|trajectory|summary> [flags]", msg)
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pelagos.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	if err := store.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pelagos.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	if err := store.Init(ctx); err != nil {
		return err
	}
	if err := store.Reset(ctx); err != nil {
		return err
	}

	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	scenarioName := fs.String("scenario", "baseline", "scenario name")
	seed := fs.Int64("seed", 1, "rng seed")
	dt := fs.Float64("dt", 0, "time step in years (0 uses the scenario default)")
	tSave := fs.Float64("t-save", 0, "snapshot cadence in years (0 saves yearly)")
	warmupYears := fs.Float64("warmup-years", 0, "warm-up length in years (0 uses 10)")
	recoveryYears := fs.Float64("recovery-years", 0, "recovery length in years (0 uses 30)")
	collapseFactor := fs.Float64("collapse-factor", 0, "abundance rescale applied after warm-up (0 uses 1e-7)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pelagos.db", "sqlite database path")
	debug := fs.Bool("debug", false, "development logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	if err := logging.Init(*debug); err != nil {
		return err
	}
	defer logging.Sync()

	req, err := loadOrDefaultRunRequest(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		req = pelapi.RunRequest{
			Scenario:       *scenarioName,
			Seed:           *seed,
			Dt:             *dt,
			TSave:          *tSave,
			WarmupYears:    *warmupYears,
			RecoveryYears:  *recoveryYears,
			CollapseFactor: *collapseFactor,
		}
	} else {
		overrideFromFlags(&req, setFlags, map[string]any{
			"scenario":        *scenarioName,
			"seed":            *seed,
			"dt":              *dt,
			"t-save":          *tSave,
			"warmup-years":    *warmupYears,
			"recovery-years":  *recoveryYears,
			"collapse-factor": *collapseFactor,
		})
	}
	if req.Dt < 0 || req.TSave < 0 || req.WarmupYears < 0 || req.RecoveryYears < 0 || req.CollapseFactor < 0 {
		return errors.New("run durations, dt, t-save, and collapse-factor must be >= 0")
	}

	client, err := pelapi.New(ctx, pelapi.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("run completed run_id=%s scenario=%s seed=%d steps=%d\n",
		summary.RunID, summary.Scenario, req.Seed, summary.Steps)
	fmt.Printf("biomass_at_collapse=%.6g biomass_at_end=%.6g recovery_fraction=%.4f\n",
		summary.BiomassAtCollapse, summary.BiomassAtEnd, summary.RecoveryFraction)
	return nil
}

func runScenarios(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("scenarios", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit scenario names as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := pelapi.New(ctx, pelapi.Options{StoreKind: "memory"})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	names := client.Scenarios()
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(names)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pelagos.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := pelapi.New(ctx, pelapi.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	for _, r := range runs {
		fmt.Printf("run_id=%s created_at=%s scenario=%s seed=%d final_biomass=%.6g\n",
			r.RunID, r.CreatedAtUTC, r.Scenario, r.Seed, r.FinalBiomass)
	}
	return nil
}

func runTrajectory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trajectory", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	limit := fs.Int("limit", 0, "max points to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit trajectory as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pelagos.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("trajectory requires --run-id")
	}

	client, err := pelapi.New(ctx, pelapi.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	points, err := client.Trajectory(ctx, *runID)
	if err != nil {
		return err
	}
	if *limit > 0 && len(points) > *limit {
		points = points[:*limit]
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	}
	for _, p := range points {
		fmt.Printf("t=%.3f biomass=%.6g ssb=%.6g recruitment=%.6g\n",
			p.Time, p.Biomass, p.SSB, p.Recruitment)
	}
	return nil
}

func runSummary(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	scenarioName := fs.String("scenario", "", "scenario name")
	jsonOut := fs.Bool("json", false, "emit summary as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pelagos.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scenarioName == "" {
		return errors.New("summary requires --scenario")
	}

	client, err := pelapi.New(ctx, pelapi.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Summary(ctx, *scenarioName)
	if err != nil {
		return err
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	fmt.Printf("scenario=%s run_id=%s biomass_at_collapse=%.6g biomass_at_end=%.6g recovery_fraction=%.4f\n",
		summary.Name, summary.RunID, summary.BiomassAtCollapse, summary.BiomassAtEnd, summary.RecoveryFraction)
	return nil
}
