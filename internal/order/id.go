package order

import (
	"time"

	"github.com/google/uuid"
)

const (
	idPrefix     = "ORD-"
	suffixLength = 6
	alphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// IDGenerator issues order IDs of the form ORD-YYYYMMDDXXXXXX where the date
// is the UTC calendar day and X is an uppercase alphanumeric. IDs are only
// probabilistically unique; nothing checks for collisions.
type IDGenerator struct {
	now func() time.Time
}

// NewIDGenerator creates a generator reading the clock from now.
// A nil now uses time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Generate returns a new order ID
func (g *IDGenerator) Generate() string {
	return idPrefix + g.now().UTC().Format("20060102") + randomSuffix()
}

// GenerateOrderID returns a new order ID stamped with the current time
func GenerateOrderID() string {
	return NewIDGenerator(nil).Generate()
}

func randomSuffix() string {
	b := uuid.New()
	out := make([]byte, suffixLength)
	for i := range out {
		out[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(out)
}
