// Package handlers provides HTTP handlers for the activities server.
//
// Each handler is in its own file and implements http.Handler.
// Handlers use interfaces to access the registry, avoiding circular
// imports.
package handlers

import (
	"github.com/mergington/activities/registry"
)

// ActivityLister provides a copy of the current activity rosters.
type ActivityLister interface {
	Snapshot() map[string]registry.Activity
}

// SignupService adds a student to an activity roster.
type SignupService interface {
	SignUp(activity, email string) (string, error)
}

// UnregisterService removes a student from an activity roster.
type UnregisterService interface {
	Unregister(activity, email string) (string, error)
}
