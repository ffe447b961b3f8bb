package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicate is returned by Create when a unique column already holds the
// value being inserted.
var ErrDuplicate = errors.New("duplicate key")

// translateCreateError maps driver level unique violations onto ErrDuplicate.
// gorm.ErrDuplicatedKey covers connections opened with TranslateError; the
// message checks cover drivers that do not translate.
func translateCreateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") || // sqlite
		strings.Contains(err.Error(), "Duplicate entry") { // mysql 1062
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
