package commands

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/finsync-dev/finsync/internal/buildinfo"
	"github.com/finsync-dev/finsync/internal/config"
	"github.com/finsync-dev/finsync/internal/database"
	"github.com/finsync-dev/finsync/internal/taxonomy"
)

var verbose bool

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "finsync",
		Short:   "Sync and categorize financial accounts from a SimpleFIN source",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newSyncCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newBudgetCommand())

	return rootCmd
}

// env bundles everything a subcommand needs: loaded config, an open and
// migrated database, the effective taxonomy and a logger.
type env struct {
	cfg config.Config
	db  *sql.DB
	tax taxonomy.Taxonomy
	log zerolog.Logger
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.Migrations); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	tax := taxonomy.Default()
	if cfg.Taxonomy.Path != "" {
		tax, err = taxonomy.Load(cfg.Taxonomy.Path)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	return &env{cfg: cfg, db: db, tax: tax, log: log}, nil
}

func (e *env) close() {
	_ = e.db.Close()
}
