package handlers

import (
	"errors"

	"github.com/planit-dev/planit/internal/utils"
)

var errInvalidTimeRange = errors.New("start time must not be after end time")

// errNotFound signals a missing row from inside a transaction so the caller
// can answer 404 instead of 500.
var errNotFound = errors.New("not found")

var errAlreadyResponded = errors.New("invitation already responded")

func isValidationError(err error) bool {
	var parseErr *utils.ParseError
	return errors.As(err, &parseErr)
}
