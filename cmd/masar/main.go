package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/mazen-hassani/masar2-sub000/internal/cli"
	"github.com/mazen-hassani/masar2-sub000/internal/config"
	"github.com/mazen-hassani/masar2-sub000/internal/db"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
	"github.com/mazen-hassani/masar2-sub000/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file feeds the MASAR_* overrides read by config.Load.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	itemRepo := repository.NewSQLiteWBSItemRepo(database)
	seqRepo := repository.NewSQLiteSequenceRepo(database)
	costItemRepo := repository.NewSQLiteCostItemRepo(database)
	allocationRepo := repository.NewSQLiteAllocationRepo(database)
	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	opts := cfg.AggregationOptions()
	thresholds := cfg.HealthThresholds()

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire services
	aggSvc := service.NewAggregationService(itemRepo, observers...)

	app := &cli.App{
		Projects:    service.NewProjectService(projectRepo),
		WBS:         service.NewWBSService(itemRepo, seqRepo, aggSvc, opts, observers...),
		Aggregation: aggSvc,
		Costs:       service.NewCostService(itemRepo, costItemRepo, allocationRepo),
		Finance:     service.NewFinanceService(projectRepo, itemRepo, costItemRepo, allocationRepo, snapshotRepo, observers...),
		Portfolio:   service.NewPortfolioService(projectRepo, itemRepo, costItemRepo, thresholds, observers...),
		Import:      service.NewImportService(projectRepo, uow, aggSvc, opts, observers...),

		Options:    opts,
		Thresholds: thresholds,
	}

	// Detect interactive terminal for the wizard and ui entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
