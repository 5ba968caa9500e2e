package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/arcstr/internal/app"
)

func (c *CLI) newLexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lex <file>",
		Short: "Tokenize a file into substrings that share one string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			opts := app.LexOptions{Format: format}
			if cmd.Flags().Changed("keep-whitespace") {
				keep, _ := cmd.Flags().GetBool("keep-whitespace")
				opts.KeepWhitespace = &keep
			}
			return c.app.Lex(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolP("keep-whitespace", "w", false, "Emit whitespace tokens")
	return cmd
}
