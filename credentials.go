package authgate

import (
	"context"
	"sync"

	"github.com/bobby-ops/authgate/password"
)

// StaticChecker is an in-memory [CredentialChecker] backed by Argon2id
// hashes. It is meant for examples, tests, and small fixed-account
// deployments; production callers implement [CredentialChecker] against their
// own user store.
type StaticChecker struct {
	mu       sync.RWMutex
	hasher   *password.Hasher
	accounts map[string]staticAccount
}

type staticAccount struct {
	account UserAccount
	hash    string
}

// NewStaticChecker creates a [StaticChecker]. A nil hasher gets
// [password.DefaultConfig] parameters.
func NewStaticChecker(hasher *password.Hasher) (*StaticChecker, error) {
	if hasher == nil {
		var err error
		hasher, err = password.NewHasher(password.DefaultConfig())
		if err != nil {
			return nil, err
		}
	}
	return &StaticChecker{
		hasher:   hasher,
		accounts: make(map[string]staticAccount),
	}, nil
}

// Register hashes the password and stores the account keyed by username.
// Re-registering a username replaces the previous entry.
func (c *StaticChecker) Register(account UserAccount, plaintext string) error {
	hash, err := c.hasher.Hash(plaintext)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts[account.Username] = staticAccount{account: account, hash: hash}
	return nil
}

// CheckCredentials verifies the password against the stored hash. An unknown
// username and a wrong password both return [ErrInvalidCredentials]; the
// caller cannot distinguish them.
func (c *StaticChecker) CheckCredentials(_ context.Context, username, pass string) (UserAccount, error) {
	c.mu.RLock()
	entry, ok := c.accounts[username]
	c.mu.RUnlock()
	if !ok {
		return UserAccount{}, ErrInvalidCredentials
	}

	match, err := c.hasher.Verify(pass, entry.hash)
	if err != nil || !match {
		return UserAccount{}, ErrInvalidCredentials
	}

	return entry.account, nil
}
