// Package session is a minimal editing host for the assistant.
//
// A Session owns a buffer and a caret. Keystrokes go through the bracket
// pairing machine first and the auto-indent engine second; whatever
// transform wins is applied to the buffer, and every applied edit is
// reported back so tracked pairs stay in place. Follow-up edits the
// assistant asks for are applied in the same step.
//
// Each user action is one undo group. Undo and redo end any active pairs,
// as editors do when they leave linked mode.
package session
