package session

import "sync"

// Credential is the process-wide bearer credential cell. The manager is
// its only writer; the gateway and any other caller read the latest
// value per request through the gateway.CredentialSource contract.
type Credential struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewCredential returns an empty (anonymous) credential cell.
func NewCredential() *Credential {
	return &Credential{}
}

// Token returns the active credential and whether one is present.
func (c *Credential) Token() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.set
}

func (c *Credential) store(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.set = true
}

func (c *Credential) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.set = false
}
