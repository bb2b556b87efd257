// Package id generates short prefixed identifiers for journal entries
// and inventory items, e.g. "TRX-1a2b3c4d".
package id

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a new identifier with the given prefix and an 8-character
// random suffix.
func New(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "-" + suffix
}
