package credentials

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const mysqlDuplicateEntryErrorCode = 1062

// DatabaseProvider reads credentials from a single table with id, username
// and password columns.
type DatabaseProvider struct {
	db        *sqlx.DB
	tableName string
}

var _ Provider = &DatabaseProvider{}

func NewDatabaseProvider(db *sqlx.DB, tableName string) *DatabaseProvider {
	return &DatabaseProvider{
		db:        db,
		tableName: tableName,
	}
}

func (p *DatabaseProvider) GetAll() ([]*Credential, error) {
	var result []*Credential
	err := p.db.Select(&result, fmt.Sprintf("SELECT id, username, password FROM %s ORDER BY id", p.tableName))
	return result, err
}

func (p *DatabaseProvider) Get(id string) (*Credential, error) {
	result := &Credential{}
	err := p.db.Get(result, fmt.Sprintf("SELECT id, username, password FROM %s WHERE id = ?", p.tableName), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *DatabaseProvider) Add(credential *Credential) (bool, error) {
	_, err := p.db.NamedExec(
		fmt.Sprintf("INSERT INTO %s (id, username, password) VALUES (:id, :username, :password)", p.tableName),
		credential,
	)
	if err != nil {
		// Check for credential already exists error
		switch typeErr := err.(type) {
		case sqlite3.Error:
			if typeErr.Code == sqlite3.ErrConstraint {
				return false, nil
			}
		case *mysql.MySQLError:
			if typeErr.Number == mysqlDuplicateEntryErrorCode {
				return false, nil
			}
		}
		return false, err
	}
	return true, nil
}

func (p *DatabaseProvider) Delete(id string) error {
	_, err := p.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", p.tableName), id)
	return err
}

func (p *DatabaseProvider) IsWriteable() bool {
	return true
}
