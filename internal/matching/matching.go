package matching

import (
	"errors"

	"github.com/MrJamesThe3rd/ledger/internal/record"
)

var ErrEmptyPattern = errors.New("pattern must not be empty")

// Rule files expenses whose vendor or description contains Pattern
// (case-insensitively) under Category.
type Rule struct {
	record.Base

	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}
