package ordercode

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// alphabet excludes visually ambiguous characters (0/O, 1/I).
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const randomLen = 6

// Generator produces short human-readable order codes: a fixed prefix plus
// six random alphabet characters. Uniqueness is the caller's responsibility;
// the generator itself keeps no global state.
type Generator struct {
	prefix string

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Generator. A nil rng gets a time-seeded source.
func New(prefix string, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{prefix: prefix, rng: rng}
}

// Generate returns a fresh code, e.g. "MKT8WQ2N".
func (g *Generator) Generate() string {
	var b strings.Builder
	b.Grow(len(g.prefix) + randomLen)
	b.WriteString(g.prefix)

	g.mu.Lock()
	for i := 0; i < randomLen; i++ {
		b.WriteByte(alphabet[g.rng.Intn(len(alphabet))])
	}
	g.mu.Unlock()

	return b.String()
}

// Prefix reports the configured code prefix.
func (g *Generator) Prefix() string {
	return g.prefix
}
