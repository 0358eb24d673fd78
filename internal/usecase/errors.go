package usecase

import (
	"errors"
	"fmt"
	"strings"

	"cinema-seat-ledger/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrDuplicate    = errors.New("already exists")
)

// NotFoundError names the missing resource, e.g. "movie".
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// DuplicateError names the field whose value is already taken.
type DuplicateError struct {
	Field   string
	Message string
}

func (e *DuplicateError) Error() string { return e.Message }

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, &utils.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("invalid %s", strings.ReplaceAll(field, "_", " ")),
		}
	}
	return id, nil
}
