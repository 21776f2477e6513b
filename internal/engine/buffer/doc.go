// Package buffer provides the text buffer the assist packages operate on.
//
// The package provides:
//
//   - Document, the read-only contract the scanner and the reaction engines
//     consume (byte access, line table queries)
//   - Snapshot, an immutable Document built from a string, used both as a
//     read view of a Buffer and as the scratch document for paste handling
//   - Buffer, a thread-safe editable host buffer with edit application,
//     revision tracking and line ending normalization
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("module M {\n}")
//
//	// Insert text
//	buf.Insert(10, "\n\tuses interface Boot;")
//
//	// Read through the Document contract
//	var doc buffer.Document = buf.Snapshot()
//	line := doc.LineOfOffset(12)
//
// Offsets are byte offsets. Lines are 0-indexed and may be terminated by
// "\n", "\r\n" or "\r". LineLen never includes the delimiter.
//
// Thread Safety:
//
// Buffer methods are safe for concurrent use. Snapshots are immutable and
// can be shared freely.
package buffer
