/*
Package glowupsdk is a client for the GlowUp state service and holds the JSON
types shared by the server handlers and the client.

# Overview

The service owns a single device's application state: the user profile, the
onboarding flag, challenges and tasks. Every mutating call returns the
resulting state so callers never need a second round trip:

	client := glowupsdk.NewClient("http://127.0.0.1:8080")

	st, err := client.SetName(ctx, "Ava")
	st, err = client.SelectGoals(ctx, "morning", "reading")
	st, err = client.CompleteOnboarding(ctx)

The navigation gate tells a UI where a route should lead:

	gate, err := client.Gate(ctx, "/paywall")
	if gate.Redirect != "" {
		// navigate to gate.Redirect instead
	}

# Errors

Failed calls return *APIError. The predefined errors compare by code, so
errors.Is works against any response:

	if errors.Is(err, glowupsdk.ErrNoUser) {
		// start onboarding first
	}
*/
package glowupsdk
