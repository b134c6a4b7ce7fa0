package cli

import (
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/pyramid-service/internal/document"
)

func showCmd(g *globals) *cobra.Command {
	var noTeams bool

	cmd := &cobra.Command{
		Use:   "show <source>",
		Short: "Pretty print a pyramid file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := document.Load(args[0])
			if err != nil {
				return err
			}
			newRenderer(cmd.OutOrStdout()).pyramid(p, !noTeams)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noTeams, "no-teams", false, "only list divisions")
	return cmd
}
