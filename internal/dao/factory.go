// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package dao

import (
	"context"
	"sync"

	"github.com/ppanel/ppadmin/internal/api"
)

// APIFactory implements the Factory interface using an API connection.
type APIFactory struct {
	client api.Connection
	caches *Caches
	mx     sync.RWMutex
}

// NewFactory creates a new APIFactory with the given client.
func NewFactory(client api.Connection) *APIFactory {
	return &APIFactory{
		client: client,
		caches: NewCaches(client),
	}
}

// Client returns the API connection.
func (f *APIFactory) Client() api.Connection {
	f.mx.RLock()
	defer f.mx.RUnlock()
	return f.client
}

// Profile returns the active profile.
func (f *APIFactory) Profile() string {
	if c := f.Client(); c != nil {
		return c.ActiveProfile()
	}
	return ""
}

// Caches returns the lookups of the active profile.
func (f *APIFactory) Caches() *Caches {
	f.mx.RLock()
	defer f.mx.RUnlock()
	return f.caches
}

// SetProfile switches to a different profile and drops cached lookups.
func (f *APIFactory) SetProfile(ctx context.Context, profile string) error {
	c := f.Client()
	if c == nil {
		return api.ErrNoConnection
	}
	if err := c.SwitchProfile(ctx, profile); err != nil {
		return err
	}
	f.Caches().Purge()

	return nil
}
