/*
Package zoosdk is the client SDK for the zoo-management backend.

# Overview

The package is organized around two main types:

  - Client: the authenticated HTTP gateway carrying the Basic auth header
    and the CRUD operations for animals, enclosures, users and tickets
  - Session: the authenticated-principal lifecycle (login, logout,
    rehydration) and the role and permission predicates

Construct a Client over a session store, wrap it in a Session, and log in:

	store := credstore.NewFileStore(credstore.DefaultPath(), nil)
	client := zoosdk.NewClient("http://localhost:8081/api", store)
	session := zoosdk.NewSession(client, logger)

	principal, err := session.Login(ctx, "admin", "admin123")
	if err != nil {
		// errors.Is(err, zoosdk.ErrInvalidCredentials) for rejected pairs
	}

	animals, err := client.ListAnimals(ctx)

The backend uses per-request HTTP Basic authentication rather than a
server-issued session token, so the store keeps the raw credentials for
the lifetime of the session and the gateway attaches (and lazily
re-derives) the precomputed "Basic ..." header on every call.

# Sessions survive restarts

Session state persists through the SessionStore. A new Session rehydrates
from it optimistically, without contacting the backend; an explicit Logout
clears it. Corrupt storage forces the session back to anonymous.

# Error Handling

Every failure is an *APIError classified by kind, usable with errors.Is
against the package sentinels:

	if errors.Is(err, zoosdk.ErrUnauthorized) {
		// stored credentials rejected, prompt for a fresh login
	}

Requests that cannot derive an Authorization header fail with
ErrNotAuthenticated before any network I/O. Nothing is retried at this
layer; callers own the retry policy.

# Concurrency

Client and Session are safe for concurrent use. Calls are independent: no
ordering is enforced across in-flight requests, and the last response to
arrive wins whatever view the caller renders.
*/
package zoosdk
