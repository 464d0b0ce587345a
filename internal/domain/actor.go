package domain

// GuestActorID is the synthetic identity used when nobody is signed in.
const GuestActorID = "guest"

// SessionKey is the persisted-identity key in the key-value store.
const SessionKey = "userInfo"

// Actor is the identity a session resolves to: either the guest identity or
// an authenticated customer returned by the backend auth API.
type Actor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	AuthToken string `json:"authToken,omitempty"`
}

// Guest returns the guest actor.
func Guest() Actor {
	return Actor{ID: GuestActorID, Name: "Guest"}
}

// IsGuest reports whether the actor is the guest identity.
func (a Actor) IsGuest() bool {
	return a.ID == "" || a.ID == GuestActorID
}

// ScopeKey returns the cart persistence key for this actor: "cart_guest" for
// the guest identity, "cart_<id>" for an authenticated customer.
func (a Actor) ScopeKey() string {
	if a.IsGuest() {
		return "cart_guest"
	}
	return "cart_" + a.ID
}

// SessionState describes where the session store is in its lifecycle.
type SessionState string

const (
	// SessionRestoring is the initial state while the persisted identity is
	// being read back. Guards must hold, not redirect, while in this state.
	SessionRestoring SessionState = "restoring"

	// SessionGuest means nobody is signed in.
	SessionGuest SessionState = "guest"

	// SessionAuthenticated means a customer identity is active.
	SessionAuthenticated SessionState = "authenticated"
)
