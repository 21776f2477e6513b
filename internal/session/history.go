package session

import (
	"errors"
	"time"

	"github.com/dshills/nescassist/internal/engine/buffer"
)

// Errors returned by Undo and Redo.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultHistoryLimit is the number of undo groups kept.
const DefaultHistoryLimit = 1000

// group is the set of changes one action made.
type group struct {
	name        string
	caretBefore int
	caretAfter  int
	changes     []buffer.Change
	timestamp   time.Time
}

// history keeps undo and redo stacks of groups.
type history struct {
	undo  []*group
	redo  []*group
	limit int
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &history{limit: limit}
}

// push records g and clears the redo stack. Empty groups are dropped.
func (h *history) push(g *group) {
	if len(g.changes) == 0 {
		return
	}
	g.timestamp = time.Now()
	h.undo = append(h.undo, g)
	h.redo = nil
	if excess := len(h.undo) - h.limit; excess > 0 {
		h.undo = h.undo[excess:]
	}
}

func (h *history) popUndo() (*group, error) {
	if len(h.undo) == 0 {
		return nil, ErrNothingToUndo
	}
	g := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, g)
	return g, nil
}

func (h *history) popRedo() (*group, error) {
	if len(h.redo) == 0 {
		return nil, ErrNothingToRedo
	}
	g := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, g)
	return g, nil
}

// inverse returns the edit that reverts c.
func inverse(c buffer.Change) buffer.Edit {
	return buffer.NewReplace(c.Offset, c.NewLength, c.OldText)
}

// replay returns the edit that reapplies c.
func replay(c buffer.Change) buffer.Edit {
	return buffer.NewReplace(c.Offset, c.OldLength, c.NewText)
}
