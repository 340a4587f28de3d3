package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plugboard/plugboard/pkg/helper"
)

var helpersCmd = &cobra.Command{
	Use:   "helpers",
	Short: "Discover helpers and list the registry contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		sections := map[helper.Kind]func(func(helper.Descriptor)){
			helper.KindClientConnector: func(yield func(helper.Descriptor)) {
				for _, h := range e.RegisteredClients() {
					yield(h.Descriptor())
				}
			},
			helper.KindServerConnector: func(yield func(helper.Descriptor)) {
				for _, h := range e.RegisteredServers() {
					yield(h.Descriptor())
				}
			},
			helper.KindProtocol: func(yield func(helper.Descriptor)) {
				for _, h := range e.RegisteredProtocols() {
					yield(h.Descriptor())
				}
			},
			helper.KindAuthenticator: func(yield func(helper.Descriptor)) {
				for _, h := range e.RegisteredAuthenticators() {
					yield(h.Descriptor())
				}
			},
			helper.KindConverter: func(yield func(helper.Descriptor)) {
				for _, h := range e.RegisteredConverters() {
					yield(h.Descriptor())
				}
			},
		}
		for _, kind := range helper.Kinds() {
			printSection(out, kind, sections[kind])
		}
		return nil
	},
}

func printSection(out io.Writer, kind helper.Kind, each func(func(helper.Descriptor))) {
	fmt.Fprintf(out, "%s:\n", kind)
	each(func(d helper.Descriptor) {
		details := make([]string, 0, 2)
		if !d.Protocols.IsEmpty() {
			details = append(details, "protocols="+strings.Join(d.Protocols.Names(), ","))
		}
		if d.Scheme != "" {
			sides := make([]string, 0, 2)
			if d.ClientSide {
				sides = append(sides, "client")
			}
			if d.ServerSide {
				sides = append(sides, "server")
			}
			details = append(details, "scheme="+d.Scheme.String()+" sides="+strings.Join(sides, "+"))
		}
		if len(details) > 0 {
			fmt.Fprintf(out, "  %-20s %s\n", d.Name, strings.Join(details, " "))
		} else {
			fmt.Fprintf(out, "  %s\n", d.Name)
		}
	})
}

func init() {
	rootCmd.AddCommand(helpersCmd)
}
