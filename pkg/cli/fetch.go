package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/plugboard/plugboard/internal/id"
	"github.com/plugboard/plugboard/pkg/ambient"
	"github.com/plugboard/plugboard/pkg/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a URL through the engine's dispatch pipeline",
	Long: `Fetch resolves the URL's scheme to a registered client connector,
dispatches a GET, and writes the response body to stdout. Any scheme a
registered connector supports works: http, https, file, zip, loop.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}

		ctx := ambient.WithDispatcher(cmd.Context(), e.Dispatcher())
		ctx = ambient.WithApplication(ctx, id.Instance("fetch"))

		stream, err := fetch.NewDispatchFetcher(e.Logger()).Open(ctx, args[0])
		if err != nil {
			return err
		}
		defer func() { _ = stream.Close() }()

		_, err = io.Copy(cmd.OutOrStdout(), stream)
		return err
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
