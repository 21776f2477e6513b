package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError     = "error"
	FieldPath      = "path"
	FieldComponent = "component"
	FieldVersion   = "version"
	FieldCommit    = "commit"
	FieldBuilt     = "built"
	FieldGo        = "go"

	// Edit fields.
	FieldOffset = "offset"
	FieldLength = "length"
	FieldText   = "text"
	FieldCaret  = "caret"
	FieldLine   = "line"
	FieldIndent = "indent"
	FieldDelta  = "delta"

	// Bracket session fields.
	FieldSession = "session"
	FieldDepth   = "depth"
	FieldChar    = "char"
	FieldReason  = "reason"

	// Replay fields.
	FieldScript = "script"
	FieldStep   = "step"
)
