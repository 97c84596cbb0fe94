package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/ordersheet/internal/catalog"
	"github.com/alexanderramin/ordersheet/internal/cli"
	"github.com/alexanderramin/ordersheet/internal/clipboard"
	"github.com/alexanderramin/ordersheet/internal/config"
	"github.com/alexanderramin/ordersheet/internal/db"
	"github.com/alexanderramin/ordersheet/internal/logging"
	"github.com/alexanderramin/ordersheet/internal/pricing"
	"github.com/alexanderramin/ordersheet/internal/repository"
	"github.com/alexanderramin/ordersheet/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	interactive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// The wizard owns the terminal, so its logs go to the log file or nowhere.
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	} else if runsWizard(os.Args[1:], interactive) {
		logOut = io.Discard
	}
	logger := logging.New(cfg.LogFormat, cfg.LogLevel, logOut)

	// Load reference data: the catalog directory overlays the bundled files.
	fsys := catalog.Bundled()
	if cfg.CatalogDir != "" {
		fsys = catalog.Dir(cfg.CatalogDir)
	}
	cat := catalog.Load(fsys, logger)

	table, err := pricing.Default()
	if cfg.PolicyFile != "" {
		table, err = pricing.LoadFile(cfg.PolicyFile)
	}
	if err != nil {
		return fmt.Errorf("loading pricing policies: %w", err)
	}

	// Open the catalog index
	database, err := db.OpenDB(cfg.CatalogDB)
	if err != nil {
		return fmt.Errorf("opening catalog index: %w", err)
	}
	defer database.Close()

	// Wire repositories and unit of work
	catalogRepo := repository.NewSQLiteCatalogRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	observer := service.NewLogUseCaseObserver(logger)
	catalogs := service.NewCatalogService(cat, cfg.CatalogDir, catalogRepo, uow, logger, observer)
	if err := catalogs.Reindex(context.Background()); err != nil {
		return fmt.Errorf("indexing catalog: %w", err)
	}
	orders := service.NewOrderService(catalogs, table, clipboard.New(), observer)

	app := &cli.App{
		Catalogs:      catalogs,
		Orders:        orders,
		MessageURL:    cfg.MessageURL,
		CopiedFor:     cfg.CopiedFor,
		IsInteractive: interactive,
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// runsWizard reports whether the arguments start the full-screen wizard.
func runsWizard(args []string, interactive func() bool) bool {
	if len(args) == 0 {
		return interactive()
	}
	return args[0] == "wizard"
}
