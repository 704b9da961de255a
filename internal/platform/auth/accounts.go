package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both an unknown identifier and a wrong
	// secret so callers cannot tell which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRoleNotPermitted is returned when the account exists but does not
	// hold the requested role.
	ErrRoleNotPermitted = errors.New("role not permitted for account")
)

// Account is one entry of the account directory.
type Account struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Roles      []Role `json:"roles"`
	hash       []byte
}

// Holds reports whether the account may act as role.
func (a Account) Holds(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Directory is an in-memory account directory keyed by lower-cased
// identifier.
type Directory struct {
	accounts map[string]Account
	order    []string
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{accounts: map[string]Account{}}
}

// Register adds an account with the given secret, hashed with bcrypt.
func (d *Directory) Register(identifier, name, secret string, roles ...Role) error {
	id := normalizeIdentifier(identifier)
	if id == "" {
		return errors.New("identifier is required")
	}
	if len(roles) == 0 {
		return fmt.Errorf("account %s: at least one role is required", id)
	}
	for _, r := range roles {
		if !r.Valid() {
			return fmt.Errorf("account %s: %w: %q", id, ErrUnknownRole, r)
		}
	}
	if _, dup := d.accounts[id]; dup {
		return fmt.Errorf("account %s already registered", id)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hash secret for %s: %w", id, err)
	}
	d.accounts[id] = Account{Identifier: id, Name: name, Roles: append([]Role(nil), roles...), hash: hash}
	d.order = append(d.order, id)
	return nil
}

// Authenticate checks identifier and secret and that the account holds role.
func (d *Directory) Authenticate(identifier, secret string, role Role) (Account, error) {
	acct, ok := d.accounts[normalizeIdentifier(identifier)]
	if !ok {
		return Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(secret)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	if !acct.Holds(role) {
		return Account{}, fmt.Errorf("%w: %s as %s", ErrRoleNotPermitted, acct.Identifier, role)
	}
	return acct, nil
}

// Accounts lists the directory in registration order.
func (d *Directory) Accounts() []Account {
	out := make([]Account, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.accounts[id])
	}
	return out
}

// DemoDomain is the mail domain of the demo accounts.
const DemoDomain = "hms.local"

// NewDemoDirectory registers one account per role, <role>@hms.local, all
// sharing secret.
func NewDemoDirectory(secret string) (*Directory, error) {
	if secret == "" {
		return nil, errors.New("demo secret is required")
	}
	d := NewDirectory()
	for _, r := range Roles() {
		if err := d.Register(string(r)+"@"+DemoDomain, "Demo "+r.Label(), secret, r); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
