package session

import "context"

// CredentialStore is the durable credential slot. Absence of a stored
// token is the canonical anonymous signal at startup and is reported as
// sentinel.ErrNotFound, never as an empty string.
type CredentialStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	// Clear removes the slot. Clearing an absent slot is not an error.
	Clear(ctx context.Context) error
}
