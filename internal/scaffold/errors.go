package scaffold

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrEmptyProject     = errors.New("empty project")
	ErrDuplicateProject = errors.New("project already exists")
	ErrMarker           = errors.New("marker error")
	ErrLocked           = errors.New("site locked")
	ErrRead             = errors.New("read failed")
	ErrWrite            = errors.New("write failed")
)

// Wrap builds an error that names the failing operation while tagging it with
// marker for classification with errors.Is. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "scaffold failure"
	}
	return strings.Join(parts, ": ")
}
