package autoindent

import (
	"github.com/dshills/nescassist/internal/assist/indent"
	"github.com/dshills/nescassist/internal/assist/scanner"
	"github.com/dshills/nescassist/internal/assist/token"
	"github.com/dshills/nescassist/internal/engine/buffer"
)

// SkipScope steps over a balanced scope whose opener of kind open ends at
// from. It returns the offset just past the matching closer, or NotFound
// when the input ends first.
func SkipScope(sc *scanner.Scanner, from int, open token.Kind) int {
	if !open.IsOpening() {
		return scanner.NotFound
	}
	closer := open.Peer()
	depth := 1
	for p := from; ; {
		tok := sc.NextToken(p, scanner.Unbound)
		p = sc.Position()
		switch tok.Kind {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return p
			}
		case token.EOF:
			return scanner.NotFound
		}
	}
}

// peerPosition returns the offset in doc of the outermost scope that the
// replacement text closes, or offset when it closes none. A closer right
// after the replaced range counts as closing too.
func peerPosition(in *indent.Indenter, offset, length int, text string) int {
	ds := in.Scanner()
	doc := ds.Document()
	if doc.Len() == 0 {
		return 0
	}

	after := ds.NextToken(offset+length, scanner.Unbound)
	if after.Kind.IsClosing() {
		text += doc.TextRange(after.Start, after.End)
	}
	ps := scanner.New(buffer.NewSnapshot(text))

	firstPeer := offset
	dPos := offset
	for p := 0; ; {
		tok := ps.NextToken(p, scanner.Unbound)
		p = ps.Position()
		switch tok.Kind {
		case token.LBrace, token.LBracket, token.LParen:
			p = SkipScope(ps, p, tok.Kind)
			if p == scanner.NotFound {
				return firstPeer
			}
		case token.RBrace, token.RBracket, token.RParen:
			peer := ds.FindOpeningPeer(dPos, scanner.Unbound, tok.Kind.Peer(), tok.Kind)
			if peer == scanner.NotFound {
				return firstPeer
			}
			firstPeer, dPos = peer, peer
		case token.Case, token.Default:
			firstPeer = in.ReferencePosition(dPos)
			dPos = firstPeer
		case token.EOF:
			return firstPeer
		}
	}
}
