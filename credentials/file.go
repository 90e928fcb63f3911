package credentials

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// FileProvider is a file based credential store. It is not thread safe so
// it should be surrounded by CachedProvider.
type FileProvider struct {
	fileName string
}

var _ Provider = &FileProvider{}

func NewFileProvider(fileName string) *FileProvider {
	return &FileProvider{
		fileName: fileName,
	}
}

type fileCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetAll returns the credentials from the file, ordered by id.
func (p *FileProvider) GetAll() ([]*Credential, error) {
	byID, err := p.load()
	if err != nil {
		return nil, err
	}

	var res []*Credential
	for id, c := range byID {
		if id == "" || c.Username == "" || c.Password == "" {
			return nil, errors.New("empty credential id, username or password is not allowed")
		}
		res = append(res, &Credential{ID: id, Username: c.Username, Password: c.Password})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	return res, nil
}

func (p *FileProvider) Get(id string) (*Credential, error) {
	byID, err := p.load()
	if err != nil {
		return nil, err
	}

	c, ok := byID[id]
	if !ok {
		return nil, nil
	}
	return &Credential{ID: id, Username: c.Username, Password: c.Password}, nil
}

func (p *FileProvider) Add(credential *Credential) (bool, error) {
	byID, err := p.load()
	if err != nil {
		return false, err
	}

	if _, ok := byID[credential.ID]; ok {
		return false, nil
	}

	byID[credential.ID] = fileCredential{Username: credential.Username, Password: credential.Password}

	if err := p.save(byID); err != nil {
		return false, err
	}

	return true, nil
}

func (p *FileProvider) Delete(id string) error {
	byID, err := p.load()
	if err != nil {
		return err
	}

	delete(byID, id)

	return p.save(byID)
}

func (p *FileProvider) IsWriteable() bool {
	return true
}

func (p *FileProvider) load() (map[string]fileCredential, error) {
	b, err := os.ReadFile(p.fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]fileCredential{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read credentials file %q", p.fileName)
	}

	var byID map[string]fileCredential
	if err := json.Unmarshal(b, &byID); err != nil {
		return nil, errors.Wrapf(err, "failed to decode credentials file %q", p.fileName)
	}
	if byID == nil {
		byID = map[string]fileCredential{}
	}

	return byID, nil
}

func (p *FileProvider) save(byID map[string]fileCredential) error {
	file, err := os.OpenFile(p.fileName, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrapf(err, "failed to open credentials file %q", p.fileName)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "	")
	if err := encoder.Encode(byID); err != nil {
		return errors.Wrap(err, "failed to write credentials file")
	}

	return nil
}
