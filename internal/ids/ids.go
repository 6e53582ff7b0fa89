package ids

import (
	"fmt"
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)

	rndMu sync.Mutex
	rnd   = mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
)

// New returns a lexicographically sortable identifier suitable for storage keys.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewOrgID returns a UUID-shaped organization identifier. Sourced from
// math/rand, not crypto/rand, to stay interchangeable with identifiers already
// present in records synced from older deployments.
func NewOrgID() string {
	rndMu.Lock()
	defer rndMu.Unlock()
	b := make([]byte, 16)
	for i := range b {
		b[i] = byte(rnd.Intn(256))
	}
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

const usernameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewUsername returns a short random alphanumeric login handle for a freshly
// registered organization.
func NewUsername(length int) string {
	if length <= 0 {
		length = 8
	}
	rndMu.Lock()
	defer rndMu.Unlock()
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(usernameAlphabet[rnd.Intn(len(usernameAlphabet))])
	}
	return sb.String()
}

// SeedForTests replaces the shared math/rand source so generated identifiers
// are reproducible. Only intended for test use.
func SeedForTests(seed int64) {
	rndMu.Lock()
	defer rndMu.Unlock()
	rnd = mathrand.New(mathrand.NewSource(seed))
}
