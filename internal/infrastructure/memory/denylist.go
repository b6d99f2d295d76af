package memory

import (
	"context"
	"sync"
	"time"
)

// Denylist tokens revocados en memoria del proceso. Se usa cuando no hay Redis configurado;
// con varias réplicas la revocación no se comparte.
type Denylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewDenylist construye una denylist vacía.
func NewDenylist() *Denylist {
	return &Denylist{revoked: make(map[string]time.Time), now: time.Now}
}

func (d *Denylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.purge()
	if until.After(d.now()) {
		d.revoked[tokenID] = until
	}
	return nil
}

func (d *Denylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !until.After(d.now()) {
		delete(d.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

// purge elimina entradas vencidas; se llama con el lock tomado.
func (d *Denylist) purge() {
	now := d.now()
	for id, until := range d.revoked {
		if !until.After(now) {
			delete(d.revoked, id)
		}
	}
}
