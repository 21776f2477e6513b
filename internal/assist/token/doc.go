// Package token classifies nesC source text into the coarse tokens the
// structural editing features work with.
//
// The classifier is deliberately heuristic. It recognizes brackets, a few
// punctuation marks, identifiers and the keywords that matter for
// indentation and bracket completion, and treats everything else as
// [Other]. Comments, string and character literals and preprocessor
// directives are invisible: a scan steps over them as if they were
// whitespace.
//
// All scans work on a window [start, end) of a [buffer.Document] and never
// read outside it. An unterminated comment or literal simply runs to the
// end of the window.
package token
