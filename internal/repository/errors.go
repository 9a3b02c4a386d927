package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("repository: record already exists")
	// ErrConstraint is returned when a write violates a foreign key or check constraint.
	ErrConstraint = errors.New("repository: constraint violation")
)

// translateError maps gorm errors onto the repository error kinds. The
// database must be opened with TranslateError so driver-specific errors
// arrive as gorm.ErrDuplicatedKey and friends. Unknown errors pass through.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict), errors.Is(err, ErrConstraint):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	default:
		return err
	}
}

// first loads the row with the given primary key into dest.
func first(db *gorm.DB, dest interface{}, id uint64) error {
	return translateError(db.First(dest, id).Error)
}

// setColumn updates one column of the row with the given primary key and
// reports ErrNotFound when no row matched.
func setColumn(db *gorm.DB, model interface{}, id uint64, column string, value interface{}) error {
	result := db.Model(model).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
