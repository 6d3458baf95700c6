package cmd

import (
	"github.com/spf13/cobra"

	"github.com/llehouerou/fmcli/internal/metadata"
)

var (
	playName    string
	playGenre   string
	playBitrate string
)

var playCmd = &cobra.Command{
	Use:   "play <url>",
	Short: "Play a stream URL directly",
	Long: `Play a stream URL without going through the directory. The name, genre
and bitrate flags are shown until the server reports its own values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		_, err = a.play(cmd.Context(), playRequest{
			Target: metadata.Target{
				URL:         args[0],
				StationName: playName,
				Genre:       playGenre,
				Bitrate:     playBitrate,
			},
		})
		return err
	},
}

func init() {
	playCmd.Flags().StringVarP(&playName, "name", "n", "", "station name shown before the stream reports one")
	playCmd.Flags().StringVar(&playGenre, "genre", "", "genre hint")
	playCmd.Flags().StringVar(&playBitrate, "bitrate", "", "bitrate hint in kbps")
	rootCmd.AddCommand(playCmd)
}
