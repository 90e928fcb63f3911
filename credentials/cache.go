package credentials

import (
	"sync"
)

// CachedProvider is a thread-safe in-memory cache around a provider.
type CachedProvider struct {
	provider    Provider
	credentials map[string]*Credential
	mu          sync.RWMutex
}

var _ Provider = &CachedProvider{}

// NewCachedProvider returns a thread-safe cache around the provider.
func NewCachedProvider(provider Provider) (*CachedProvider, error) {
	all, err := provider.GetAll()
	if err != nil {
		return nil, err
	}
	m := make(map[string]*Credential, len(all))
	for _, c := range all {
		m[c.ID] = c
	}
	return &CachedProvider{
		credentials: m,
		provider:    provider,
	}, nil
}

func (c *CachedProvider) Get(id string) (*Credential, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credentials[id], nil
}

func (c *CachedProvider) GetAll() ([]*Credential, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]*Credential, 0, len(c.credentials))
	for _, v := range c.credentials {
		res = append(res, v)
	}
	return res, nil
}

// Add returns true if a new credential by a given id was added successfully.
// Returns false if the id is already taken.
func (c *CachedProvider) Add(credential *Credential) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.credentials[credential.ID] != nil {
		return false, nil
	}
	_, err := c.provider.Add(credential)
	if err != nil {
		return false, err
	}
	c.credentials[credential.ID] = credential
	return true, nil
}

func (c *CachedProvider) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.provider.Delete(id)
	if err != nil {
		return err
	}
	delete(c.credentials, id)
	return nil
}

func (c *CachedProvider) IsWriteable() bool {
	return c.provider.IsWriteable()
}
