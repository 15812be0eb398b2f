// Package idx mints sortable, kind-tagged identifiers such as
// "tk_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV".
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind is the prefix that says what an ID names.
type Kind string

const (
	KindChallenge Kind = "ch"
	KindTask      Kind = "tk"
	KindRequest   Kind = "req"
)

var kinds = map[Kind]struct{}{KindChallenge: {}, KindTask: {}, KindRequest: {}}

type ID string

const Zero ID = ""

var ErrInvalid = errors.New("idx: invalid id")

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns an ID of the given kind stamped with the current UTC time. IDs
// minted in the same millisecond still sort in creation order.
func New(kind Kind) ID {
	return NewAt(kind, time.Now().UTC())
}

// NewAt is New with an explicit timestamp, useful in tests.
func NewAt(kind Kind, t time.Time) ID {
	mu.Lock()
	defer mu.Unlock()

	u := ulid.MustNew(ulid.Timestamp(t), entropy)
	return ID(string(kind) + "_" + u.String())
}

// Parse validates s and returns it as an ID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)

	kind, rest, ok := strings.Cut(s, "_")
	if !ok {
		return Zero, ErrInvalid
	}
	if _, known := kinds[Kind(kind)]; !known {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(rest); err != nil {
		return Zero, ErrInvalid
	}

	return ID(s), nil
}

func (id ID) IsZero() bool { return id == Zero }

func (id ID) String() string { return string(id) }

// Kind returns the prefix, or "" for malformed IDs.
func (id ID) Kind() Kind {
	kind, _, ok := strings.Cut(string(id), "_")
	if !ok {
		return ""
	}
	return Kind(kind)
}

// Time extracts the embedded timestamp. Malformed IDs give the zero time.
func (id ID) Time() time.Time {
	_, rest, ok := strings.Cut(string(id), "_")
	if !ok {
		return time.Time{}
	}
	u, err := ulid.ParseStrict(rest)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
