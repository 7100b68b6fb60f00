package session

// State is the session lifecycle state. Expired is deliberately not a
// member: an authorization failure is a transient trigger that routes
// straight through ExpireAndReset back to Anonymous, never a state the
// session rests in.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateResolving     State = "resolving"
	StateAuthenticated State = "authenticated"
)

func (s State) String() string { return string(s) }

// Identity is the resolved user record behind a valid credential.
type Identity struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
