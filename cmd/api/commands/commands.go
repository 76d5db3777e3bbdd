package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/repertorio/core/internal/adapters/events"
	"github.com/repertorio/core/internal/adapters/repository"
	"github.com/repertorio/core/internal/application/services"
	"github.com/repertorio/core/internal/infrastructure/config"
	"github.com/repertorio/core/internal/infrastructure/database"
	"github.com/repertorio/core/internal/infrastructure/logger"
	"github.com/repertorio/core/internal/infrastructure/server"
	"github.com/repertorio/core/internal/ports"
)

// Build metadata, overridden with -ldflags "-X ..."
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
	GitCommit = "development"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Mi Repertorio API server",
		Long:  "Start the Mi Repertorio API server with the song routes, docs, metrics and the static frontend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version) for the postgres and sqlite3 storage drivers",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, "up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, "down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showMigrationVersion(cmd)
		},
	})

	return migrateCmd
}

// NewSongCommand creates the song management command
func NewSongCommand() *cobra.Command {
	songCmd := &cobra.Command{
		Use:   "song",
		Short: "Song management commands",
		Long:  "List, add and delete songs in the configured store",
	}

	songCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all songs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSongService(func(svc ports.SongService) error {
				songs, err := svc.ListSongs(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tCANCION\tARTISTA\tTONO")
				for _, s := range songs {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Cancion, s.Artista, s.Tono)
				}
				return w.Flush()
			})
		},
	})

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new song",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req ports.CreateSongRequest
			req.Cancion, _ = cmd.Flags().GetString("cancion")
			req.Artista, _ = cmd.Flags().GetString("artista")
			req.Tono, _ = cmd.Flags().GetString("tono")

			return withSongService(func(svc ports.SongService) error {
				song, err := svc.CreateSong(cmd.Context(), req)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Song created successfully:\n")
				fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", song.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "  Cancion: %s\n", song.Cancion)
				fmt.Fprintf(cmd.OutOrStdout(), "  Artista: %s\n", song.Artista)
				fmt.Fprintf(cmd.OutOrStdout(), "  Tono: %s\n", song.Tono)
				return nil
			})
		},
	}
	addCmd.Flags().String("cancion", "", "Song title (required)")
	addCmd.Flags().String("artista", "", "Artist (required)")
	addCmd.Flags().String("tono", "", "Musical key (required)")
	songCmd.AddCommand(addCmd)

	songCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a song by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSongService(func(svc ports.SongService) error {
				song, err := svc.DeleteSong(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Song deleted: %s (%s)\n", song.Cancion, song.ID)
				return nil
			})
		},
	})

	return songCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Mi Repertorio version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Mi Repertorio v%s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Build Date: %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	db, err := openDatabase(cfg)
	if err != nil {
		appLogger.Errorw("Failed to connect to database", "error", err)
		return err
	}
	if db != nil {
		defer db.Close()

		if err := db.MigrateUp(); err != nil {
			appLogger.Errorw("Failed to run migrations", "error", err)
			return err
		}
	}

	publisher, err := events.New(cfg.Events)
	if err != nil {
		appLogger.Errorw("Failed to initialize event publisher", "error", err)
		return err
	}
	defer publisher.Close()

	srv, err := server.New(cfg, db, publisher, appLogger)
	if err != nil {
		appLogger.Errorw("Failed to initialize server", "error", err)
		return err
	}

	appLogger.Infow("Starting Mi Repertorio API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"storage", cfg.Storage.Driver,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Errorw("Server failed to start", "error", err)
			return err
		}
		return nil
	case sig := <-quit:
		appLogger.Infow("Received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("Graceful shutdown failed", "error", err)
		return err
	}

	return nil
}

// openDatabase returns nil for the file driver
func openDatabase(cfg *config.Config) (*database.DB, error) {
	if !cfg.Storage.IsSQL() {
		return nil, nil
	}
	return database.New(cfg.Storage.Driver, cfg.Database)
}

func openMigrator() (*migrate.Migrate, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.Storage.IsSQL() {
		return nil, fmt.Errorf("storage driver %q has no migrations", cfg.Storage.Driver)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	m, err := db.NewMigrator()
	if err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

func runMigration(cmd *cobra.Command, direction string) error {
	m, err := openMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations to run")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration %s completed successfully\n", direction)
	return nil
}

func showMigrationVersion(cmd *cobra.Command) error {
	m, err := openMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
	fmt.Fprintf(cmd.OutOrStdout(), "Dirty: %t\n", dirty)
	return nil
}

// withSongService wires the configured store for one-shot CLI use
func withSongService(fn func(ports.SongService) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if db != nil {
		defer db.Close()
		if err := db.MigrateUp(); err != nil {
			return err
		}
	}

	publisher, err := events.New(cfg.Events)
	if err != nil {
		return err
	}
	defer publisher.Close()

	repo, err := repository.New(cfg.Storage, db)
	if err != nil {
		return err
	}

	return fn(services.NewSongService(repo, publisher, appLogger))
}
