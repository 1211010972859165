// cmd/dashctl/cmd/root.go
package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/config"
	"blogcanvas/internal/domain/layout"
	"blogcanvas/internal/infrastructure/storage"
	"blogcanvas/internal/utils/logger"
)

// app carries the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	debug   bool
	cfg     *config.Config
	log     *slog.Logger
}

var (
	okMark   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failMark = color.New(color.FgRed, color.Bold).SprintFunc()
	dim      = color.New(color.Faint).SprintFunc()
)

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", failMark("error:"), err)
		os.Exit(1)
	}
}

// NewRootCmd builds the dashctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:   "dashctl",
		Short: "dashctl - administration tool for blogcanvas dashboard layouts",
		Long: `dashctl validates card and layout documents, moves layouts in and out
of storage, issues API tokens and applies database migrations.

Settings come from flags, the environment (same names as the server) and an
optional YAML config file.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Глобальные флаги
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./dashctl.yaml or ~/.blogcanvas/dashctl.yaml)")
	flags.BoolVar(&a.debug, "debug", false, "log debug output to stderr")
	flags.String("storage-driver", "", "storage driver: postgres or sqlite")
	flags.String("database-uri", "", "PostgreSQL connection string")
	flags.String("sqlite-path", "", "SQLite database file")
	flags.String("migrations-path", "", "directory holding the migrations of every driver")

	bind := map[string]string{
		config.KeyStorageDriver:  "storage-driver",
		config.KeyDatabaseURI:    "database-uri",
		config.KeySQLitePath:     "sqlite-path",
		config.KeyMigrationsPath: "migrations-path",
	}
	for key, flag := range bind {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newValidateCmd(a),
		newLayoutCmd(a),
		newTokenCmd(a),
		newMigrateCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.readConfigFile(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	a.v.AutomaticEnv()

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if a.debug {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.log.Debug("config loaded", "driver", cfg.Storage.Driver, "file", a.v.ConfigFileUsed())
	return nil
}

func (a *app) readConfigFile() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		// Ищем конфиг в стандартных местах
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".blogcanvas"))
		}
		a.v.SetConfigName("dashctl")
		a.v.SetConfigType("yaml")
	}

	err := a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

// layouts opens storage and returns a layout service over it. The caller closes the storage.
func (a *app) layouts(ctx context.Context) (*layout.Service, storage.Storage, error) {
	st, err := storage.Open(ctx, a.cfg, storage.Options{}, a.log)
	if err != nil {
		return nil, nil, err
	}
	return layout.NewService(st.Layouts(), a.log), st, nil
}

func (a *app) closeStorage(st storage.Storage) {
	if err := st.Close(); err != nil {
		a.log.Error("close storage", logger.Err(err))
	}
}

// readInput reads the named file, or stdin for "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), nil
}

func ownerFlag(cmd *cobra.Command, user *string) {
	cmd.Flags().StringVarP(user, "user", "u", "", "layout owner, the anonymous layout when empty")
}
