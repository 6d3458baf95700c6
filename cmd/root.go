// Package cmd holds the fmcli command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/fmcli/internal/ui/menu"
)

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "fmcli",
	Short: "Internet radio in the terminal",
	Long: `fmcli searches the fmstream.org station directory, plays a stream
through ffplay and shows the song on air as it changes.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		return a.runMenu(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file read after the default ones")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fmcli:", err)
		os.Exit(1)
	}
}

// runMenu alternates between the menu and playback until the user quits.
func (a *app) runMenu(ctx context.Context) error {
	m := menu.New(menu.Deps{
		Context: ctx,
		Catalog: a.catalog,
		State:   a.state,
		Logger:  a.logger,
	})

	for {
		final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run menu: %w", err)
		}

		var ok bool
		if m, ok = final.(menu.Model); !ok {
			return errors.New("run menu: unexpected model type")
		}
		sel := m.Selection()
		if sel == nil {
			return nil
		}

		if _, err := a.play(ctx, requestFromSelection(*sel)); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
		m = m.Resume()
	}
}
