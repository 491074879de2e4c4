package statemachine

import (
	"fmt"
	"strings"
)

// State is where an owner stands in the onboarding flow
type State string

const (
	Anonymous    State = "ANONYMOUS"
	NoProfile    State = "NO_PROFILE"
	ProfileReady State = "PROFILE_READY"
)

const (
	LoginPath      = "/login"
	OnboardingPath = "/onboarding"
	DashboardPath  = "/dashboard"
)

// Events that move an owner through onboarding
const (
	EventLogin         = "login"
	EventCreateProfile = "create_profile"
	EventLogout        = "logout"
)

// Transition is a valid state change and the event that triggers it
type Transition struct {
	From  State  `json:"from"`
	To    State  `json:"to"`
	Event string `json:"event"`
}

var validTransitions = []Transition{
	{From: Anonymous, To: NoProfile, Event: EventLogin},
	{From: Anonymous, To: ProfileReady, Event: EventLogin},
	{From: NoProfile, To: ProfileReady, Event: EventCreateProfile},
	{From: NoProfile, To: Anonymous, Event: EventLogout},
	{From: ProfileReady, To: Anonymous, Event: EventLogout},
}

type transitionKey struct {
	From  State
	To    State
	Event string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Event}] = true
	}
	return m
}()

// Resolve derives the state from what the request could prove
func Resolve(authenticated, hasProfile bool) State {
	switch {
	case !authenticated:
		return Anonymous
	case !hasProfile:
		return NoProfile
	default:
		return ProfileReady
	}
}

// Redirect returns where a request in state s for path must be sent instead,
// or false when it may proceed
func Redirect(s State, path string) (string, bool) {
	onOnboarding := path == OnboardingPath || strings.HasPrefix(path, OnboardingPath+"/")
	switch s {
	case Anonymous:
		return LoginPath, true
	case NoProfile:
		if !onOnboarding {
			return OnboardingPath, true
		}
	case ProfileReady:
		if onOnboarding {
			return DashboardPath, true
		}
	}
	return "", false
}

// CanTransition checks that event moves from one state to the other
func CanTransition(from, to State, event string) error {
	if transitionMap[transitionKey{From: from, To: to, Event: event}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s -> %s on %q", from, to, event)
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
