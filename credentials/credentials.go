package credentials

// Credential is the username/password pair a retrieval runs as, resolved
// from an opaque reference captured in the job configuration.
type Credential struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"password" db:"password"`
}

type Provider interface {
	// Get returns the credential for id or nil if the store does not know it
	Get(id string) (*Credential, error)
	// GetAll returns every credential the store holds
	GetAll() ([]*Credential, error)
	// Add returns true if the credential was added and false if the id already exists
	Add(credential *Credential) (bool, error)
	// Delete removes the credential by id
	Delete(id string) error
	// IsWriteable returns true if provider is writeable
	IsWriteable() bool
}
