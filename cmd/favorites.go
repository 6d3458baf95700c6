package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/fmcli/internal/errmsg"
	"github.com/llehouerou/fmcli/internal/state"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "List favorite stations",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		favs, err := a.state.ListFavorites()
		if err != nil {
			return errmsg.Wrap(errmsg.OpFavoriteLoad, err)
		}
		out := cmd.OutOrStdout()
		if len(favs) == 0 {
			fmt.Fprintln(out, "No favorites yet.")
			return nil
		}
		fmt.Fprintln(out, favoritesTable(favs))
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a favorite by its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid favorite id %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.state.RemoveFavorite(id); err != nil {
			return errmsg.Wrap(errmsg.OpFavoriteRemove, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed favorite %d\n", id)
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func favoritesTable(favs []state.Favorite) string {
	rows := make([][]string, 0, len(favs))
	for _, f := range favs {
		rows = append(rows, []string{
			strconv.FormatInt(f.ID, 10),
			f.Name,
			f.Location,
			f.Genre,
			humanize.Time(f.AddedAt),
		})
	}
	return printTable([]string{"ID", "Station", "Location", "Genre", "Added"}, rows)
}
