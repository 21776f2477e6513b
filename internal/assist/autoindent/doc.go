// Package autoindent reacts to text about to be inserted into a document
// and proposes a corrected edit.
//
// Three shapes of insertion are handled:
//
//   - a line break: the new line gets the indentation of the current line,
//     one unit deeper after an unclosed {, and an unclosed block can be
//     completed with a synthesized }
//   - a } typed on an otherwise blank line: the line is re-indented to
//     line up with the matching {
//   - a multi-line paste: the pasted block is shifted as a whole so that
//     its first line gets the indentation the context asks for
//
// The engine keeps no state between calls.
package autoindent
