package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/pyramid-service/internal/app/pyramids"
	"github.com/preston-bernstein/pyramid-service/internal/document"
)

func resampleCmd(g *globals) *cobra.Command {
	var (
		f      pyramidFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "resample <source>",
		Short: "Re-roll a pyramid from the metadata in an existing file",
		Long: "Resample loads an existing pyramid, reuses its theme, levels, division names, title\n" +
			"and description, and regenerates every club. Flags override individual values.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.newApp(cmd)
			if err != nil {
				return err
			}
			source := args[0]

			template, err := document.Load(source)
			if err != nil {
				return err
			}
			p, err := a.svc.Resample(cmd.Context(), template, source, pyramids.ResampleOptions{
				Levels:        f.levels,
				Theme:         f.theme,
				Seed:          f.seedPtr(cmd),
				DivisionNames: f.divisionNames,
				Title:         optionalString(cmd, "title", f.title),
				Description:   optionalString(cmd, "description", f.description),
			})
			if err != nil {
				return err
			}
			seed := seedOf(p)

			out := cmd.OutOrStdout()
			if f.preview {
				newRenderer(out).pyramid(p, true)
				fmt.Fprintf(out, "(Preview generated with seed %d)\n", seed)
				return nil
			}
			target := output
			if target == "" {
				target = source
			}
			if err := document.Save(p, target); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved regenerated pyramid to %s (seed=%d)\n", target, seed)
			return nil
		},
	}

	f.register(cmd,
		"override level sizes while keeping the rest of the template",
		"switch to a different theme")
	cmd.Flags().StringVarP(&output, "output", "o", "", "where to write the result (default: overwrite the source)")
	return cmd
}
