package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokensCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "List the tokens of a file",
		Long: `List the tokens the scanner sees in FILE, one per line, as
start offset, end offset, kind and text. Comments, literals and
preprocessor lines are invisible to the scanner and do not appear.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tok := range g.assistant().Tokens(doc) {
				fmt.Fprintf(out, "%d\t%d\t%s\t%s\n", tok.Start, tok.End, tok.Kind, doc.TextRange(tok.Start, tok.End))
			}
			return nil
		},
	}
}
