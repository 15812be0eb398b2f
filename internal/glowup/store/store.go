package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrIO       = errors.New("store: io failure")
)

// Persisted keys. The values are strings; see the state package for the codec.
const (
	KeyUserProfile        = "glowup:user_profile"
	KeyOnboardingComplete = "glowup:onboarding_complete"
)

// SnapshotKeys are every key the app writes. Logout removes all of them.
var SnapshotKeys = []string{KeyUserProfile, KeyOnboardingComplete}

// Store is a durable string key-value store. Concrete drivers (sqlite, gorm,
// memory) implement it. All methods may block on device I/O and honour ctx.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set creates or replaces a single key.
	Set(ctx context.Context, key, value string) error

	// RemoveAll removes every key, continuing past failures. Missing keys are
	// not an error. The returned error joins every individual failure.
	RemoveAll(ctx context.Context, keys ...string) error

	// WriteBatch applies all sets and removes atomically: either every change
	// is visible afterwards or none is.
	WriteBatch(ctx context.Context, b Batch) error

	ApplyMigrations() error

	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// Batch groups changes that must land together.
type Batch struct {
	Set    map[string]string
	Remove []string
}

func (b Batch) Empty() bool { return len(b.Set) == 0 && len(b.Remove) == 0 }

// IOError is a driver failure. It matches ErrIO with errors.Is and unwraps to
// the driver error.
type IOError struct {
	Op  string
	Key string
	Err error
}

func (e *IOError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// WrapIO wraps a driver error as an IOError. nil and ErrNotFound pass through.
func WrapIO(op, key string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return &IOError{Op: op, Key: key, Err: err}
}
