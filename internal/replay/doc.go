// Package replay runs keystroke scripts through an editing session.
//
// A script is a YAML document naming the starting text, an optional
// configuration block, and a list of steps:
//
//	name: call completion
//	text: "f"
//	config:
//	  editor:
//	    insertSpaces: true
//	steps:
//	  - type: "(a"
//	  - expect: "f(a|)"
//	  - type: ")"
//	  - expect: "f(a)|"
//
// Each step holds exactly one action. expect compares the rendered buffer,
// with | marking the caret, and records a mismatch without stopping.
package replay
