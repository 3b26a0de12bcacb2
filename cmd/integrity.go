package cmd

import (
	"context"
	"fmt"

	"github.com/southpawriter02/rune-rust-sub041/core/reconcile"
	"github.com/southpawriter02/rune-rust-sub041/feature/integrity"
	"github.com/southpawriter02/rune-rust-sub041/feature/integrity/checks"
	"github.com/southpawriter02/rune-rust-sub041/feature/registry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag     bool
	restoreFlag bool
	syncFlag    bool
	confirmFlag bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the rules catalogs and their backends",
	Long:  `Loads every catalog and checks that the storage bucket and database table hold every rules document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := runCatalogCheck(svc, logg); err != nil {
			return err
		}
		if err := runStorageCheck(ctx, svc, logg, false); err != nil {
			logg.Warn("Storage check skipped", zap.Error(err))
		}
		if err := runDatabaseCheck(ctx, svc, logg, false); err != nil {
			logg.Warn("Database check skipped", zap.Error(err))
		}
		return nil
	},
}

// catalogsCmd represents the integrity catalogs command
var catalogsCmd = &cobra.Command{
	Use:   "catalogs",
	Short: "Load and validate every rules catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		return runCatalogCheck(svc, logg)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the rules documents in the storage bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		return runStorageCheck(cmd.Context(), svc, logg, fixFlag)
	},
}

// databaseCmd represents the integrity database command
var databaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Check and fix the rules document table",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		return runDatabaseCheck(cmd.Context(), svc, logg, fixFlag)
	},
}

// reconcileCmd represents the integrity reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare the embedded defaults with the storage and database copies",
	Long: `Reports, per rules document, whether the storage bucket and the database table
hold the embedded version. --restore plans uploads of missing documents, --sync plans
overwrites of mismatched ones, and --confirm executes the plan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		opts := reconcile.ReconcileOptions{DoRestore: restoreFlag, DoSync: syncFlag, Confirmed: confirmFlag}
		return runReconcile(cmd.Context(), svc, logg, opts)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(catalogsCmd, storageCmd, databaseCmd, reconcileCmd)

	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Upload missing documents from the embedded defaults")
	databaseCmd.Flags().BoolVar(&fixFlag, "fix", false, "Migrate the table and store missing documents")
	reconcileCmd.Flags().BoolVar(&restoreFlag, "restore", false, "Plan uploads and inserts of missing documents")
	reconcileCmd.Flags().BoolVar(&syncFlag, "sync", false, "Plan overwrites of mismatched documents")
	reconcileCmd.Flags().BoolVar(&confirmFlag, "confirm", false, "Execute the planned actions")
}

func integrityService() (*integrity.Service, *zap.Logger, error) {
	e, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}
	reg := registry.New(e.source, e.logger)
	svc := integrity.NewService(reg, e.store, e.cfg.Storage.Bucket, e.cfg.Catalog.Prefix, e.db, e.logger)
	return svc, e.logger, nil
}

func runCatalogCheck(svc *integrity.Service, logg *zap.Logger) error {
	logg.Info("Checking rules catalogs...")
	reports := svc.CheckCatalogs()
	for _, r := range reports {
		if r.OK() {
			logg.Info("Catalog is valid", zap.String("family", r.Family), zap.Int("warnings", r.Warnings))
			continue
		}
		logg.Error("Catalog is invalid",
			zap.String("family", r.Family),
			zap.String("kind", r.Kind),
			zap.String("error", r.Error),
			zap.Strings("violations", r.Violations),
		)
	}
	if !checks.Healthy(reports) {
		return fmt.Errorf("one or more rules catalogs failed to load")
	}
	return nil
}

func runStorageCheck(ctx context.Context, svc *integrity.Service, logg *zap.Logger, fix bool) error {
	logg.Info("Checking rules documents in storage...")
	missing, err := svc.CheckDocuments(ctx)
	if err != nil {
		return fmt.Errorf("storage check failed: %w", err)
	}
	if len(missing) == 0 {
		logg.Info("Storage holds every rules document.")
		return nil
	}

	logg.Warn("Missing rules documents detected", zap.Strings("missing", missing))
	if !fix {
		logg.Info("Run with --fix to upload the embedded defaults.")
		return nil
	}
	if err := svc.FixDocuments(ctx, missing); err != nil {
		return fmt.Errorf("failed to fix storage: %w", err)
	}
	logg.Info("Storage fixed successfully.")
	return nil
}

func runDatabaseCheck(ctx context.Context, svc *integrity.Service, logg *zap.Logger, fix bool) error {
	logg.Info("Checking rules document table...")
	report, err := svc.CheckSchema(ctx)
	if err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}
	if report.Matched {
		logg.Info("Rules document table is intact.", zap.String("table", report.Table))
		return nil
	}

	if len(report.MissingColumns) > 0 {
		logg.Warn("Missing Columns", zap.String("table", report.Table), zap.Strings("columns", report.MissingColumns))
	}
	if len(report.MissingDocuments) > 0 {
		logg.Warn("Missing Documents", zap.String("table", report.Table), zap.Strings("documents", report.MissingDocuments))
	}
	for _, e := range report.Errors {
		logg.Error("Inspection Error", zap.String("error", e))
	}

	if !fix {
		logg.Info("Run with --fix to migrate the table and store the embedded defaults.")
		return nil
	}
	if len(report.Errors) > 0 {
		return fmt.Errorf("refusing to fix %s after inspection errors", report.Table)
	}
	missing := report.MissingDocuments
	if len(report.MissingColumns) > 0 {
		missing = registry.Resources
	}
	if err := svc.FixSchema(ctx, missing); err != nil {
		return fmt.Errorf("failed to fix database: %w", err)
	}
	logg.Info("Rules document table fixed successfully.", zap.Strings("fixed", missing))
	return nil
}

func runReconcile(ctx context.Context, svc *integrity.Service, logg *zap.Logger, opts reconcile.ReconcileOptions) error {
	logg.Info("Reconciling rules documents...")
	plan, executed, err := svc.Reconcile(ctx, opts)
	if err != nil {
		return fmt.Errorf("reconcile failed: %w", err)
	}

	for _, r := range plan.Results {
		if len(r.Mismatch) > 0 || r.Storage == reconcile.StateMissing || r.Database == reconcile.StateMissing {
			logg.Warn("Document drift",
				zap.String("name", r.Name),
				zap.String("storage", string(r.Storage)),
				zap.String("database", string(r.Database)),
				zap.Strings("mismatch", r.Mismatch),
			)
		}
	}
	for _, a := range plan.Actions {
		logg.Info("Planned action", zap.String("type", string(a.Type)), zap.String("name", a.Name), zap.String("reason", a.Reason))
	}

	fmt.Println("\n=== Rules Document Reconcile ===")
	fmt.Printf("Total Documents: %d\n", plan.Summary.TotalItems)
	fmt.Printf("Storage Missing: %d\n", plan.Summary.MissingStorage)
	fmt.Printf("DB Missing: %d\n", plan.Summary.MissingDB)
	fmt.Printf("Mismatch: %d\n", plan.Summary.Mismatches)
	fmt.Printf("Extra: %d\n", plan.Summary.Extra)
	fmt.Printf("Planned Actions: %d\n", len(plan.Actions))
	fmt.Printf("Executed: %d\n", executed)

	if len(plan.Actions) > 0 && !opts.Confirmed {
		logg.Info("Run with --confirm to execute the planned actions.")
	}
	return nil
}
