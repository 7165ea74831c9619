// Package registry holds the in-memory activity roster for the
// Mergington High School extracurricular activities service.
//
// A Registry maps activity names to activities. The activity set is
// fixed at construction time; only the participant rosters change, via
// SignUp and Unregister. There is no persistence: the registry lives
// and dies with the process.
//
// Participant identifiers are opaque strings. They are typically email
// addresses, but no format is enforced anywhere, and the empty string
// is a valid identifier. MaxParticipants is advisory only; rosters are
// allowed to grow past it.
package registry

import (
	"fmt"
	"slices"
	"sync"
)

// Activity is a single extracurricular offering. The name is the map
// key in API responses, so it is not repeated inside the JSON value.
type Activity struct {
	Name            string   `json:"-" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants" yaml:"participants"`
}

// Registry is the process-wide activity store. All access goes through
// the mutex so concurrent signups cannot lose updates.
type Registry struct {
	mu         sync.Mutex
	activities map[string]*Activity
}

// New creates a Registry from the given seed activities. Rosters are
// copied, so callers may keep and reuse the seed slice.
func New(seed []Activity) *Registry {
	activities := make(map[string]*Activity, len(seed))
	for _, a := range seed {
		activities[a.Name] = &Activity{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    slices.Clone(a.Participants),
		}
	}
	return &Registry{activities: activities}
}

// Snapshot returns a copy of every activity keyed by name. The copy is
// deep: mutating the result does not affect the registry.
func (r *Registry) Snapshot() map[string]Activity {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[string]Activity, len(r.activities))
	for name, a := range r.activities {
		copied := *a
		copied.Participants = slices.Clone(a.Participants)
		result[name] = copied
	}
	return result
}

// SignUp adds email to the activity's roster, preserving signup order.
// Returns ErrActivityNotFound if the activity does not exist and
// ErrAlreadySignedUp if email is already on the roster. On success it
// returns a confirmation message.
func (r *Registry) SignUp(activity, email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[activity]
	if !ok {
		return "", ErrActivityNotFound
	}
	if slices.Contains(a.Participants, email) {
		return "", ErrAlreadySignedUp
	}

	// MaxParticipants is deliberately not checked; over-enrollment is
	// allowed.
	a.Participants = append(a.Participants, email)

	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

// Unregister removes email from the activity's roster, preserving the
// relative order of the remaining participants. Returns
// ErrActivityNotFound if the activity does not exist and ErrNotSignedUp
// if email is not on the roster. On success it returns a confirmation
// message.
func (r *Registry) Unregister(activity, email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[activity]
	if !ok {
		return "", ErrActivityNotFound
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return "", ErrNotSignedUp
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)

	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}
