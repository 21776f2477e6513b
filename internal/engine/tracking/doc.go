// Package tracking keeps text positions consistent across buffer edits.
//
// A [Position] is an (offset, length) span that survives edits made
// elsewhere in the buffer. [Position.Adjust] applies one applied edit to a
// position using a fixed decision table:
//
//   - edit entirely after the position: untouched
//   - edit entirely before the position: offset shifts by the length delta
//   - edit inside the position: length grows or shrinks by the delta
//   - edit overlapping the end: length truncated at the edit start
//   - edit overlapping the start: offset moves to the end of the new text
//   - edit covering the position: position is deleted
//
// A [Registry] groups positions into named categories and updates all of
// them for every change. The owner of the buffer must call
// [Registry.Update] for each edit it applies.
//
// Registries are not safe for concurrent use; they belong to the goroutine
// that owns the buffer.
package tracking
