package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/nescassist/internal/assist/scanner"
	"github.com/dshills/nescassist/internal/engine/buffer"
)

func newMatchCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "match FILE POSITION",
		Short: "Find the bracket matching the one at a position",
		Long: `Print the position of the bracket that matches the {, [, (, }, ] or )
at POSITION in FILE. POSITION is a byte offset or LINE:COLUMN, both
counted from 1 in the second form.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			offset, err := parsePosition(doc, args[1])
			if err != nil {
				return err
			}
			peer, err := g.assistant().MatchPeer(doc, offset)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if peer == scanner.NotFound {
				fmt.Fprintln(out, "no match")
				return nil
			}
			p := doc.OffsetToPoint(peer)
			fmt.Fprintf(out, "%d\t%d:%d\n", peer, p.Line+1, p.Column+1)
			return nil
		},
	}
}

// parsePosition reads an offset or a 1-based LINE:COLUMN pair.
func parsePosition(doc *buffer.Snapshot, s string) (int, error) {
	line, col, ok := strings.Cut(s, ":")
	if !ok {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("position %q: %w", s, ErrInvalidArgument)
		}
		return n, nil
	}
	l, err := strconv.Atoi(line)
	if err != nil || l < 1 || l > doc.LineCount() {
		return 0, fmt.Errorf("line %q: %w", line, ErrInvalidArgument)
	}
	c, err := strconv.Atoi(col)
	if err != nil || c < 1 {
		return 0, fmt.Errorf("column %q: %w", col, ErrInvalidArgument)
	}
	return doc.PointToOffset(buffer.Point{Line: l - 1, Column: c - 1}), nil
}
