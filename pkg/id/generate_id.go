package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes), the
// random bits of a v4 UUID. Used for request ids.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
