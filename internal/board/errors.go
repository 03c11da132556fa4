package board

import "errors"

// Validation failures. Commands wrap these with context; match with errors.Is.
var (
	ErrNoDate          = errors.New("please select a date")
	ErrInvalidDate     = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrDuplicateDate   = errors.New("date card already exists")
	ErrUnchanged       = errors.New("date unchanged")
	ErrEmptyText       = errors.New("task text cannot be empty")
	ErrListNotFound    = errors.New("date card not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrDuplicateTaskID = errors.New("task id already in use")
)

// IsValidation reports whether err is a rejected command rather than a storage failure.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrNoDate, ErrInvalidDate, ErrDuplicateDate, ErrUnchanged,
		ErrEmptyText, ErrListNotFound, ErrTaskNotFound, ErrDuplicateTaskID,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
