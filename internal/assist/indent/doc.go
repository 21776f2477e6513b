// Package indent computes indentation for nesC source lines.
//
// Indentation is derived from bracket context found by the heuristic
// scanner, not from a grammar: a line inside a { block is indented one unit
// deeper than the line holding the {, a line starting with a closer lines
// up with its opener, and a few statement shapes (case labels, brace-less
// if/for/while bodies) add one more unit.
//
// Visual lengths expand tabs to the next multiple of the tab width.
package indent
