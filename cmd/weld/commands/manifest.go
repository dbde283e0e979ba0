package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newManifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest [module]",
		Short: "Aggregate facts for a module and write its manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.app.Manifest(cmd.Context(), args[0], c.outDir(cmd))
			if err != nil {
				return err
			}
			cmd.Println(path)
			return nil
		},
	}
}
