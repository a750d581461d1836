package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/skillboard/internal/config"
	"github.com/jask/skillboard/internal/database"
	"github.com/jask/skillboard/internal/database/repository"
	"github.com/jask/skillboard/internal/logging"
	"github.com/jask/skillboard/internal/service"
	"github.com/jask/skillboard/internal/tui"
)

// env is everything a subcommand needs once config, logging and the
// database are up.
type env struct {
	cfg          config.Config
	log          *zap.Logger
	db           *sql.DB
	competencies *service.CompetencyService
	assessments  *service.AssessmentService
	maintenance  *service.MaintenanceService
}

func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	if e.log != nil {
		_ = e.log.Sync()
	}
}

type (
	loadConfigFunc func() (config.Config, error)
	saveConfigFunc func(config.Config) error
)

func newRootCmd() *cobra.Command {
	return newRootCmdWith(config.Load, config.Save)
}

func newRootCmdWith(loadConfig loadConfigFunc, saveConfig saveConfigFunc) *cobra.Command {
	var dbPath string
	// saveIdentity persists the identity on top of the config as loaded, so
	// flag overrides such as --db never end up in the file.
	saveIdentity := func(identity string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		cfg.Profile.Identity = identity
		return saveConfig(cfg)
	}
	setup := func(ctx context.Context) (*env, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		return openEnv(ctx, cfg)
	}

	root := &cobra.Command{
		Use:           "skillboard",
		Short:         "Manage competencies and browse available assessments",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			return runTUI(cmd.Context(), e)
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")

	root.AddCommand(
		newCompetenciesCmd(setup),
		newProfileCmd(setup, saveIdentity),
		newExportCmd(setup),
		newImportCmd(setup),
		newResetCmd(setup),
	)
	return root
}

type setupFunc func(ctx context.Context) (*env, error)

func openEnv(ctx context.Context, cfg config.Config) (*env, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	fail := func(err error) (*env, error) {
		logger.Error("startup failed", zap.String("db", cfg.Database.Path), zap.Error(err))
		_ = logger.Sync()
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fail(fmt.Errorf("mkdir db dir: %w", err))
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return fail(fmt.Errorf("migrate: %w", err))
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fail(fmt.Errorf("open db: %w", err))
	}
	if cfg.Database.SeedDefaults {
		if err := service.SeedDefaults(ctx, db); err != nil {
			_ = db.Close()
			return fail(fmt.Errorf("seed defaults: %w", err))
		}
	}
	logger.Info("database ready", zap.String("path", cfg.Database.Path))

	return &env{
		cfg:          cfg,
		log:          logger,
		db:           db,
		competencies: &service.CompetencyService{Competencies: repository.NewCompetencyRepo(db)},
		assessments:  &service.AssessmentService{Assessments: repository.NewAssessmentRepo(db)},
		maintenance:  &service.MaintenanceService{DB: db},
	}, nil
}

func runTUI(ctx context.Context, e *env) error {
	app := tui.New(ctx,
		tui.Sources{Competencies: e.competencies, Assessments: e.assessments},
		tui.OptionsFromConfig(e.cfg, e.log),
	)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
