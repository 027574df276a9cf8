// Package docpos addresses positions inside nested documents made of text
// paragraphs and math grids, and keeps those positions usable across edits.
package docpos

import "errors"

// Position errors
var (
	// ErrInvalidPosition indicates that an edit addressed content out of bounds.
	ErrInvalidPosition = errors.New("position out of bounds")

	// ErrInvariantViolation indicates that a path operation would address a
	// cell, element or offset the node does not have.
	ErrInvariantViolation = errors.New("path invariant violated")

	// ErrEmptyPath indicates that an operation needs a non-empty path.
	ErrEmptyPath = errors.New("path is empty")

	// ErrNotMath indicates that a grid operation was used outside a math node.
	ErrNotMath = errors.New("not inside a math node")
)

// Traversal errors
var (
	// ErrAtDocumentStart indicates that a backward move is already at the
	// first position of the document.
	ErrAtDocumentStart = errors.New("at document start")

	// ErrAtDocumentEnd indicates that a forward move is already at the last
	// position of the document.
	ErrAtDocumentEnd = errors.New("at document end")

	// ErrUnsupportedMove indicates that a unit cannot move in the given direction.
	ErrUnsupportedMove = errors.New("unsupported move")
)

// Stable path errors
var (
	// ErrStructureChanged indicates that a stable path could only be
	// resolved partially because the tree changed after the snapshot.
	ErrStructureChanged = errors.New("document structure changed")

	// ErrMalformedStablePath indicates that a persisted stable path could
	// not be parsed.
	ErrMalformedStablePath = errors.New("malformed stable path")
)

// Document errors
var (
	// ErrBookmarkNotFound indicates that a bookmark name does not exist.
	ErrBookmarkNotFound = errors.New("bookmark not found")

	// ErrNotEditable indicates that the node under a path has no known
	// editing operations.
	ErrNotEditable = errors.New("node is not editable")

	// ErrInvalidDocument indicates that a document description could not
	// be turned into a tree.
	ErrInvalidDocument = errors.New("invalid document description")
)
