// Package idgen provides unique identifier generation for page components.
//
// Every constructor in pkg/document accepts a Generator, making the id
// strategy a startup-time decision. The default strategy combines a
// process-local counter with a random base-36 suffix, so ids stay short
// enough to edit by hand while collisions across processes stay improbable.
// Callers that need to treat collisions as impossible rather than
// improbable should still check against their own id space; document.Editor
// does exactly that on Add.
package idgen

import (
	"crypto/rand"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Counter returns a Generator producing ids like "c3-x9k2qd": a monotonic
// per-process counter plus a random suffix of the given length. The counter
// makes ids time-sortable within a session; the suffix guards against
// counter resets across process restarts.
func Counter(prefix string, suffixLen int) Generator {
	var n uint64
	return func() string {
		seq := atomic.AddUint64(&n, 1)
		return prefix + strconv.FormatUint(seq, 10) + "-" + randomSuffix(suffixLen)
	}
}

// UUIDv7 returns a Generator producing RFC 9562 UUID v7 strings.
// Time-sortable and globally unique; verbose compared to Counter.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Prefixed wraps a Generator and prepends a fixed prefix to every id.
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

func randomSuffix(length int) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic("idgen: crypto/rand failed: " + err.Error())
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(out)
}

// Default is the Generator used when a package accepts an optional one and
// none is supplied.
var Default = Counter("c", 6)
