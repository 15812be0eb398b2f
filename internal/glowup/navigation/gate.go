// Package navigation decides where the client may be. It keeps no state: every
// decision depends only on the route and the two state flags.
package navigation

import (
	"slices"
	"strings"
)

type Route string

const (
	RouteSplash   Route = "/splash"
	RouteWelcome  Route = "/welcome"
	RoutePaywall  Route = "/paywall"
	RouteMainTabs Route = "/(tabs)"

	RouteOnboardingName          Route = "/onboarding/name"
	RouteOnboardingIcon          Route = "/onboarding/icon"
	RouteOnboardingGoals         Route = "/onboarding/goals"
	RouteOnboardingLoading       Route = "/onboarding/loading"
	RouteOnboardingNotifications Route = "/onboarding/notifications"
	RouteOnboardingRating        Route = "/onboarding/rating"
)

var publicRoutes = []Route{RouteSplash, RouteWelcome}

// OnboardingSteps is the funnel in the order a new user walks it.
var OnboardingSteps = []Route{
	RouteOnboardingName,
	RouteOnboardingIcon,
	RouteOnboardingGoals,
	RouteOnboardingLoading,
	RouteOnboardingNotifications,
	RouteOnboardingRating,
}

// Phase is where a device sits in the funnel.
type Phase string

const (
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseOnboarding      Phase = "onboarding"
	PhaseActive          Phase = "active"
)

func Classify(authenticated, onboardingComplete bool) Phase {
	switch {
	case !authenticated:
		return PhaseUnauthenticated
	case !onboardingComplete:
		return PhaseOnboarding
	default:
		return PhaseActive
	}
}

// Normalize gives routes a single spelling: a leading slash and no trailing one.
func Normalize(route string) Route {
	route = strings.TrimSpace(route)
	if route == "" {
		return ""
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if len(route) > 1 {
		route = strings.TrimRight(route, "/")
		if route == "" {
			route = "/"
		}
	}
	return Route(route)
}

func IsPublic(r Route) bool { return slices.Contains(publicRoutes, r) }

func IsOnboarding(r Route) bool { return slices.Contains(OnboardingSteps, r) }

// Redirect returns the route the client must be sent to, or false when the
// current route is allowed.
func Redirect(route Route, authenticated, onboardingComplete bool) (Route, bool) {
	route = Normalize(string(route))
	if route == "" {
		// Nothing rendered yet.
		return "", false
	}

	// Public routes are checked first so the unauthenticated phase can never loop.
	if IsPublic(route) {
		return "", false
	}

	switch Classify(authenticated, onboardingComplete) {
	case PhaseUnauthenticated:
		return RouteWelcome, true
	case PhaseOnboarding:
		if IsOnboarding(route) || route == RoutePaywall {
			return "", false
		}
		return RouteOnboardingName, true
	default:
		if IsOnboarding(route) || route == RoutePaywall {
			return RouteMainTabs, true
		}
		return "", false
	}
}

// NextStep returns the step that follows route in the funnel. The last step
// leads to the main tabs.
func NextStep(route Route) (Route, bool) {
	i := slices.Index(OnboardingSteps, Normalize(string(route)))
	if i < 0 {
		return "", false
	}
	if i == len(OnboardingSteps)-1 {
		return RouteMainTabs, true
	}
	return OnboardingSteps[i+1], true
}

// Decision is the full gate answer for one route.
type Decision struct {
	Route    Route // normalized
	Phase    Phase
	Redirect Route // empty when Route may be shown
	Next     Route // funnel step after the route actually shown, if any
}

// Shown is the route the client ends up on.
func (d Decision) Shown() Route {
	if d.Redirect != "" {
		return d.Redirect
	}
	return d.Route
}

func Decide(route string, authenticated, onboardingComplete bool) Decision {
	d := Decision{
		Route: Normalize(route),
		Phase: Classify(authenticated, onboardingComplete),
	}
	if to, ok := Redirect(d.Route, authenticated, onboardingComplete); ok {
		d.Redirect = to
	}
	if next, ok := NextStep(d.Shown()); ok {
		d.Next = next
	}
	return d
}
