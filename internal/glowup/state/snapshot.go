package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/glowup/internal/glowup/domain"
	"github.com/aussiebroadwan/glowup/internal/glowup/store"
)

// ErrMalformedSnapshot marks persisted values that could not be decoded. They
// are treated as absent.
var ErrMalformedSnapshot = errors.New("state: malformed persisted value")

// Snapshot is the persisted subset of AppState.
type Snapshot struct {
	User               *domain.UserProfile
	OnboardingComplete bool
}

func SnapshotOf(s domain.AppState) Snapshot {
	return Snapshot{User: s.User, OnboardingComplete: s.OnboardingComplete}
}

func (s Snapshot) Equal(o Snapshot) bool {
	return s.OnboardingComplete == o.OnboardingComplete && domain.ProfilesEqual(s.User, o.User)
}

// Batch encodes the snapshot as a single atomic write so the two keys never
// disagree on disk. Zero fields are removed rather than written; absent keys
// read back as zero.
func (s Snapshot) Batch() (store.Batch, error) {
	b := store.Batch{Set: map[string]string{}}

	if s.OnboardingComplete {
		b.Set[store.KeyOnboardingComplete] = "true"
	} else {
		b.Remove = append(b.Remove, store.KeyOnboardingComplete)
	}

	if s.User == nil {
		b.Remove = append(b.Remove, store.KeyUserProfile)
		return b, nil
	}

	raw, err := json.Marshal(s.User)
	if err != nil {
		return store.Batch{}, fmt.Errorf("encode user profile: %w", err)
	}
	b.Set[store.KeyUserProfile] = string(raw)
	return b, nil
}

// Actions replays the snapshot as the dispatches that rebuild it.
func (s Snapshot) Actions() []Action {
	var out []Action
	if s.User != nil {
		out = append(out, SetUser{Profile: *s.User})
	}
	if s.OnboardingComplete {
		out = append(out, CompleteOnboarding{})
	}
	return out
}

// LoadSnapshot reads both persisted keys. Missing keys read as their zero
// value. A value that fails to decode is dropped and reported through the
// returned warnings; only storage failures are returned as errors.
func LoadSnapshot(ctx context.Context, st store.Store) (Snapshot, []error, error) {
	var (
		snap     Snapshot
		warnings []error
	)

	raw, err := st.Get(ctx, store.KeyUserProfile)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return Snapshot{}, nil, err
	default:
		p, err := decodeProfile(raw)
		if err != nil {
			warnings = append(warnings, err)
		} else {
			snap.User = &p
		}
	}

	raw, err = st.Get(ctx, store.KeyOnboardingComplete)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return Snapshot{}, nil, err
	default:
		snap.OnboardingComplete = raw == "true"
	}

	return snap, warnings, nil
}

func decodeProfile(raw string) (domain.UserProfile, error) {
	var p domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.UserProfile{}, fmt.Errorf("%w: %s: %v", ErrMalformedSnapshot, store.KeyUserProfile, err)
	}
	if err := p.Validate(); err != nil {
		return domain.UserProfile{}, fmt.Errorf("%w: %s: %v", ErrMalformedSnapshot, store.KeyUserProfile, err)
	}
	return p, nil
}
