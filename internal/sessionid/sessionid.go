// Package sessionid generates time-sortable identifiers for training and
// simulation sessions. IDs are UUIDv7 values written as 26 characters of
// Crockford base32, so they sort by creation time.
package sessionid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"

	"github.com/coder/quartz"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Length of every ID.
const Length = 26

// RandSource lets tests make the random bits deterministic. *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator creates IDs from a clock and an optional random source.
type Generator struct {
	clock quartz.Clock
	rand  RandSource
}

// NewGenerator returns a generator. A nil source uses crypto/rand.
func NewGenerator(clock quartz.Clock, source RandSource) *Generator {
	return &Generator{clock: clock, rand: source}
}

// New returns an ID for the current wall clock time.
func New() string {
	return NewGenerator(quartz.NewReal(), nil).Generate()
}

// Generate returns a new ID.
func (g *Generator) Generate() string {
	var uuid [16]byte

	ms := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		uuid[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("sessionid: reading random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // RFC 4122 variant

	return encoding.EncodeToString(uuid[:])
}

// Validate reports whether id could have come from Generate.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session ID must be %d characters, got %d", Length, len(id))
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return fmt.Errorf("session ID %q is not base32: %w", id, err)
	}
	if raw[6]>>4 != 7 {
		return fmt.Errorf("session ID %q is not a version 7 UUID", id)
	}
	return nil
}
