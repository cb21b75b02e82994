package services

import (
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
)

// Typed failures returned by the service layer. Controllers map these to
// HTTP status codes; anything else is an unexpected store error.
var (
	ErrInvalidDateRange    = errors.New("invalid_date_range")
	ErrGuestNotFound       = errors.New("guest_not_found")
	ErrRoomUnavailable     = errors.New("room_unavailable")
	ErrNotFound            = errors.New("not_found")
	ErrAlreadyCancelled    = errors.New("already_cancelled")
	ErrInvalidTransition   = errors.New("invalid_status_transition")
	ErrDuplicateKey        = errors.New("duplicate_key")
	ErrReferenceNotFound   = errors.New("reference_not_found")
	ErrReferentialConflict = errors.New("referential_conflict")
	ErrValidation          = errors.New("validation")
)

// MySQL error numbers the store contracts depend on.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// translateDBError folds driver-level constraint failures into the typed
// taxonomy. Unrecognized errors pass through untouched.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return fmt.Errorf("%w: %s", ErrDuplicateKey, myErr.Message)
		case mysqlRowIsReferenced:
			return fmt.Errorf("%w: %s", ErrReferentialConflict, myErr.Message)
		case mysqlNoReferencedRow:
			return fmt.Errorf("%w: %s", ErrReferenceNotFound, myErr.Message)
		}
	}
	return err
}
