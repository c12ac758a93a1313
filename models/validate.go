package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Valid reports whether a record passes its minimal validity predicate
// (required names present, required quantities positive). The store uses it
// to drop malformed rows on read instead of surfacing parse noise to callers.
func Valid(record any) bool {
	return validate.Struct(record) == nil
}
