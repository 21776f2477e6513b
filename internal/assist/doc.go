// Package assist is the structural editing assistant for nesC source.
//
// An Assistant bundles the token classifier, the heuristic scanner, the
// indentation engine, the auto-indent reaction engine and the
// auto-closing-bracket state machine behind one configured value. Hosts
// feed it the edits they are about to make and apply the transforms it
// returns.
//
// The sub-packages can be used on their own:
//
//   - token: lexing that skips comments, literals and directives
//   - scanner: bounded token navigation and bracket peers
//   - indent: indentation computation and whitespace arithmetic
//   - autoindent: reactions to line breaks, closing braces and pastes
//   - autoclose: bracket and quote pairing
//   - edit: the transform value handed back to hosts
package assist
