package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const sampleLocations = 5

func themesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available themes and their highlights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.newApp(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			r := newRenderer(out)

			fmt.Fprintln(out, r.title.Render("Available themes:"))
			fmt.Fprintln(out)
			for _, t := range a.svc.Themes().List() {
				locations := t.Locations
				if len(locations) > sampleLocations {
					locations = locations[:sampleLocations]
				}
				fmt.Fprintf(out, "%s: %s\n", r.header.Render(t.Key), t.PremierTitle)
				fmt.Fprintf(out, "  Highlight: %s\n", t.Highlight)
				fmt.Fprintf(out, "  Sample locations: %s...\n", strings.Join(locations, ", "))
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
