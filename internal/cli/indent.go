package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dshills/nescassist/internal/assist/indent"
)

func newIndentCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "indent FILE LINE",
		Short: "Compute the indentation of a line",
		Long: `Print the indentation LINE of FILE should have, counted from 1, quoted
and followed by its width in columns. Lines starting inside a comment or
literal have no computed indentation.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			line, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("line %q: %w", args[1], ErrInvalidArgument)
			}
			a := g.assistant()
			s, ok, err := a.ComputeIndent(doc, line-1)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "no indentation: line starts inside a comment or literal")
				return nil
			}
			fmt.Fprintf(out, "%q\t%d\n", s, indent.VisualLength(s, a.Config().Editor.TabSize))
			return nil
		},
	}
}
