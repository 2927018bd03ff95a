// Package taskforge implements the task, team membership, and authorization
// rules. Services talk to storage only through the stor interfaces and report
// expected failures as one of the sentinel errors below.
package taskforge

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Every operation failure wraps exactly one of these sentinels, so callers can
// classify with errors.Is without parsing messages.
var (
	// ErrValidation means caller input failed a structural precondition,
	// such as an empty required field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means a referenced entity id did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness rule was violated, such as a duplicate
	// team name or a second membership for the same (user, team) pair.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState means the entity is not in the state the operation
	// requires, such as accepting a non-pending invitation or removing the
	// last owner of a team.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotAuthorized means the caller lacks the required relationship to
	// the entity, such as updating a task they did not create.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInfrastructure means a storage call failed for an unexpected
	// reason. The underlying cause is preserved in the wrapped message.
	ErrInfrastructure = errors.New("infrastructure failure")
)

// isStorNotFound reports whether a storage error means the row simply does
// not exist, which many operations treat as an answer rather than a failure.
func isStorNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// classifyStorErr maps a storage error onto the failure taxonomy. A missing
// row becomes ErrNotFound, a duplicate key becomes ErrConflict, and anything
// else is an opaque infrastructure failure.
func classifyStorErr(err error, format string, args ...interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrapf(ErrNotFound, format, args...)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrapf(ErrConflict, format, args...)
	default:
		return errors.Wrapf(ErrInfrastructure, format+": %s", append(args, err)...)
	}
}
