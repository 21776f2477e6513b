// Package autoclose inserts closing brackets and quotes as their openers
// are typed and tracks each inserted pair while the caret stays between
// them.
//
// Every inserted pair opens a level. A level remembers the opener and the
// closer as tracked positions so that it survives edits elsewhere in the
// document. While a level is active:
//
//   - typing its closer right before the existing closer steps over it
//   - a line break after { ends every level and lets auto-indent run
//   - any other line break moves the caret past the closer
//   - moving the caret out of the pair ends the level
//   - an edit outside the pair ends the level; if that edit removed the
//     opener, the abandoned closer is removed as well
//
// The host reports every applied edit through Machine.DocumentChanged and
// every caret move through Machine.CaretMoved.
package autoclose
