// Package commands implements the sheetctl command line.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/sheetimport/internal/buildinfo"
	"github.com/JonMunkholm/sheetimport/internal/config"
	"github.com/JonMunkholm/sheetimport/internal/core"
	"github.com/JonMunkholm/sheetimport/internal/logging"
	"github.com/JonMunkholm/sheetimport/internal/spreadsheet"
	"github.com/JonMunkholm/sheetimport/internal/store"
)

// runtime holds the service shared by the subcommands. It is built on
// first use so that commands without a store never connect to one.
type runtime struct {
	svc     *core.Service
	cleanup func()
}

func (rt *runtime) service(ctx context.Context) (*core.Service, error) {
	if rt.svc != nil {
		return rt.svc, nil
	}

	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format))

	opened, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rt.cleanup = opened.Close
	rt.svc = core.NewService(opened.Store, spreadsheet.NewReader(), spreadsheet.NewWriter(), core.Options{
		MaxConcurrent: cfg.Upload.MaxConcurrent,
		MaxWait:       cfg.Upload.MaxWaitTime,
		Timeout:       cfg.Upload.Timeout,
	})
	return rt.svc, nil
}

func (rt *runtime) close() {
	if rt.cleanup != nil {
		rt.cleanup()
		rt.cleanup = nil
	}
}

// newRootCommand creates the root CLI command with all subcommands registered.
func newRootCommand(rt *runtime) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "sheetctl",
		Short:   "Validate, import and export record spreadsheets",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newValidateCommand(rt),
		newImportCommand(rt),
		newExportCommand(rt),
		newTemplateCommand(),
	)

	return rootCmd
}

// Execute runs the root command and reports a failure on stderr. It
// returns the process exit code.
func Execute(ctx context.Context) int {
	rt := &runtime{}
	defer rt.close()

	if err := newRootCommand(rt).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		}
		return 1
	}
	return 0
}
