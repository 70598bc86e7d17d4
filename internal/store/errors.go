package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"culture-passport/internal/lifecycle"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("a record with the same unique value already exists")
	ErrReferenced = errors.New("record is referenced by other records")
	ErrValidation = errors.New("validation failed")

	ErrInvalidTransition = lifecycle.ErrInvalidTransition
)

// ValidationError names the first offending field by its JSON name.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Field == "" && e.Rule == "uuid":
		return "malformed id"
	case e.Field == "":
		return "a referenced record does not exist"
	case e.Rule == "exists":
		return fmt.Sprintf("%s does not exist", e.Field)
	case e.Rule == "required":
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s is invalid", e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		f := fields[0]
		rule := f.Tag()
		// min=1 is how patches spell "present but not blank"
		if rule == "min" && f.Param() == "1" {
			rule = "required"
		}
		return &ValidationError{Field: f.Field(), Rule: rule}
	}
	return err
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextValue    = "22P02"
)

// translate maps driver errors onto the store's sentinel errors. It is used
// on reads and deletes, where a malformed id simply names no row.
func translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrReferenced
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return ErrDuplicate
		case codeForeignKeyViolation:
			return ErrReferenced
		case codeInvalidTextValue:
			return ErrNotFound
		}
	}
	return err
}

// translateWrite is translate for INSERT and UPDATE. There a foreign key
// violation or a malformed reference is bad input: the row points at a
// parent that does not exist.
func translateWrite(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation:
			return &ValidationError{Field: foreignKeyColumn(pgErr), Rule: "exists"}
		case codeInvalidTextValue:
			return &ValidationError{Rule: "uuid"}
		}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &ValidationError{Rule: "exists"}
	}
	return translate(err)
}

// updateError translates an UPDATE failure. A malformed id in the WHERE
// clause names no row; any other malformed value is bad input.
func updateError(err error, id string) error {
	if isInvalidText(err) && uuid.Validate(id) != nil {
		return ErrNotFound
	}
	return translateWrite(err)
}

// isInvalidText reports a value postgres could not parse, such as a
// malformed uuid.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeInvalidTextValue
}

// foreignKeyColumn reads the column from a detail such as
// `Key (company_id)=(...) is not present in table "companies".`
func foreignKeyColumn(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if _, rest, ok := strings.Cut(pgErr.Detail, "Key ("); ok {
		if col, _, ok := strings.Cut(rest, ")"); ok {
			return col
		}
	}
	return pgErr.ConstraintName
}
