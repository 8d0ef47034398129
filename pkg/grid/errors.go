package grid

import "errors"

var (
	// ErrOutOfBounds is returned when a coordinate falls outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrInvalidValue is returned when Set is called with something other
	// than a single uppercase letter, the empty string, or BlackSentinel.
	ErrInvalidValue = errors.New("grid: invalid cell value")
	// ErrLocked is returned when an edit targets a LOCKED cell.
	ErrLocked = errors.New("grid: cell is locked")
	// ErrNotSet is returned by Lock when the target cell is not SET.
	ErrNotSet = errors.New("grid: cannot lock a cell that is not set")
	// ErrNotLocked is returned by Unlock when the target cell is not LOCKED.
	ErrNotLocked = errors.New("grid: cannot unlock a cell that is not locked")
	// ErrWordTooLong is returned by SetWord when the word doesn't fit the slot.
	ErrWordTooLong = errors.New("grid: word does not fit slot")
)
