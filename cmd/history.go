package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/fmcli/internal/errmsg"
	"github.com/llehouerou/fmcli/internal/state"
	"github.com/llehouerou/fmcli/internal/ui/render"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently played stations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.state.ListHistory(historyLimit)
		if err != nil {
			return errmsg.Wrap(errmsg.OpHistoryLoad, err)
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "Nothing played yet.")
			return nil
		}
		fmt.Fprintln(out, historyTable(entries))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the playback history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.state.ClearHistory(); err != nil {
			return errmsg.Wrap(errmsg.OpHistoryClear, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", state.DefaultHistoryLimit, "number of entries to show")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func historyTable(entries []state.HistoryEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		title := e.LastTitle
		if title == "" {
			title = "-"
		}
		rows = append(rows, []string{
			humanize.Time(e.PlayedAt),
			e.Station,
			render.Elapsed(e.Duration),
			e.Outcome,
			title,
		})
	}
	return printTable([]string{"Played", "Station", "Listened", "Outcome", "Last title"}, rows)
}
