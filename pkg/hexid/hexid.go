// Package hexid generates the short public identifiers shown to users
// alongside suggestions. These are distinct from the database's numeric
// primary keys and are the handle for admin commands like delete.
package hexid

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Length is the number of hex characters in a generated identifier.
const Length = 8

// New returns a new random identifier of Length uppercase hex characters.
// Uniqueness against existing rows is not checked here; the suggestions
// table enforces it with a unique index.
func New() string {
	buf := make([]byte, Length/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read does not fail on supported platforms.
		panic("hexid: rand.Read: " + err.Error())
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}
