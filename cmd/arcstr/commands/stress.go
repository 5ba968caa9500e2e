package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/arcstr/internal/app"
)

func (c *CLI) newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Clone and release one string from many goroutines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			goroutines, _ := cmd.Flags().GetInt("goroutines")
			iterations, _ := cmd.Flags().GetInt("iterations")
			payload, _ := cmd.Flags().GetString("payload")
			return c.app.Stress(cmd.Context(), app.StressOptions{
				Goroutines: goroutines,
				Iterations: iterations,
				Payload:    payload,
				Format:     format,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntP("goroutines", "g", 0, "Number of goroutines (default from arcstr.yaml or NumCPU)")
	cmd.Flags().IntP("iterations", "n", 0, "Clone/release rounds per goroutine")
	cmd.Flags().StringP("payload", "p", "", "Shared string content")
	return cmd
}
