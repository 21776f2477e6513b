// Package scanner implements a heuristic, bounded scanner over live buffer
// text. It answers structural questions (next and previous token, bracket
// peers, enclosing scope) without a parse tree, so it keeps working on
// partial and broken code.
//
// Every query takes a bound. Forward queries read [from, limit) and
// backward queries read [limit, from); [Unbound] stands for the document
// end or start. Structural misses return [NotFound]; they are ordinary
// results, not errors.
//
// A Scanner keeps no state between calls except the position reached by
// the last NextToken or PreviousToken call.
package scanner
