package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/weld/internal/core/domain"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [modules...]",
		Short: "Run the generation step for the given modules and their dependencies",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			failFast, _ := cmd.Flags().GetBool("fail-fast")
			parallelism, _ := cmd.Flags().GetInt("parallelism")

			return c.app.Generate(cmd.Context(), args, c.outDir(cmd), domain.GenerateOptions{
				FailFast:    failFast,
				Parallelism: parallelism,
			})
		},
	}

	cmd.Flags().Bool("fail-fast", false, "Abort on the first failed input instead of collecting all failures")
	cmd.Flags().IntP("parallelism", "p", 0, "Maximum concurrent invocations (0 = number of CPUs)")

	return cmd
}
