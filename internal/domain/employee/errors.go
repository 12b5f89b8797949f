package employee

import "errors"

var (
	ErrNotFound        = errors.New("employee not found")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrDuplicateID     = errors.New("employee id already allocated")
	ErrManagerNotFound = errors.New("manager does not exist")
	ErrIDCapacity      = errors.New("employee id serial space exhausted for prefix")
	ErrContention      = errors.New("employee id allocation contention")
	ErrForbidden       = errors.New("actor not permitted")
)
