package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/pyramid-service/internal/document"
	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
	"github.com/preston-bernstein/pyramid-service/internal/generator"
)

// pyramidFlags are shared by generate and resample.
type pyramidFlags struct {
	levels        []int
	theme         string
	title         string
	description   string
	seed          int64
	divisionNames []string
	preview       bool
}

func (f *pyramidFlags) register(cmd *cobra.Command, levelsHelp, themeHelp string) {
	cmd.Flags().IntSliceVar(&f.levels, "levels", nil, levelsHelp)
	cmd.Flags().StringVar(&f.theme, "theme", "", themeHelp)
	cmd.Flags().StringVar(&f.title, "title", "", "custom title for the pyramid")
	cmd.Flags().StringVar(&f.description, "description", "", "descriptive blurb for the pyramid")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "seed for deterministic generation")
	cmd.Flags().StringArrayVar(&f.divisionNames, "division-name", nil, "override a level name; repeat once per level in order")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "print the pyramid instead of writing it")
}

// seedPtr returns nil unless --seed was given.
func (f *pyramidFlags) seedPtr(cmd *cobra.Command) *int64 {
	if !cmd.Flags().Changed("seed") {
		return nil
	}
	v := f.seed
	return &v
}

// optionalString returns nil unless the named flag was given.
func optionalString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func generateCmd(g *globals) *cobra.Command {
	var f pyramidFlags

	cmd := &cobra.Command{
		Use:   "generate <output>",
		Short: "Generate a brand new pyramid and save it as JSON",
		Example: "  pyramid generate league.json --levels 12,12,18 --theme far_east\n" +
			"  pyramid generate league.json --levels 4 --levels 6 --seed 42 --preview",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.newApp(cmd)
			if err != nil {
				return err
			}
			output := args[0]

			p, err := a.svc.Generate(cmd.Context(), generator.Options{
				Levels:        f.levels,
				Theme:         f.theme,
				Seed:          f.seedPtr(cmd),
				Title:         optionalString(cmd, "title", f.title),
				Description:   optionalString(cmd, "description", f.description),
				DivisionNames: f.divisionNames,
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
			if err := document.Save(p, output); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved new pyramid to %s (seed=%d)\n", output, seed)
			return nil
		},
	}

	f.register(cmd,
		"number of clubs in each level from top to bottom (e.g. --levels 12,12,18)",
		"theme key (see `pyramid themes`); defaults to PYRAMID_DEFAULT_THEME or eorzea")
	_ = cmd.MarkFlagRequired("levels")
	return cmd
}

func seedOf(p pyramid.Pyramid) int64 {
	seed, _, _ := p.Meta.Int(pyramid.MetaSeed)
	return seed
}
