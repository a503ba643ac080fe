// Package random provides seed generation and the pluggable bonus providers
// used by the arena ledger.
//
// Seeds come from crypto/rand. The default bonus provider intentionally does
// not: it derives values from the clock and the participant identities, which
// makes every bonus predictable by whichever actor controls operation
// ordering. That weakness is a documented property of the ledger, kept behind
// the Provider interface so a better source can be substituted without
// touching resolver logic.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
