package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"maternal-care-service/internal/core/domain"
)

// Account is a fixed login entry. Password is plaintext only until the
// checker hashes it at construction.
type Account struct {
	User     domain.User
	Password string
}

// DemoAccounts is the built-in user list of the demo login.
var DemoAccounts = []Account{
	{User: domain.User{ID: "1", Email: "admin@example.com", FullName: "Admin User", Role: domain.UserRoleAdmin}, Password: "password123"},
	{User: domain.User{ID: "2", Email: "hospital@example.com", FullName: "Nairobi Hospital", Role: domain.UserRoleHospital}, Password: "password123"},
	{User: domain.User{ID: "3", Email: "doctor@example.com", FullName: "Dr. Jane Doe", Role: domain.UserRoleDoctor}, Password: "password123"},
	{User: domain.User{ID: "4", Email: "patient@example.com", FullName: "Sarah Smith", Role: domain.UserRolePatient}, Password: "password123"},
}

type credential struct {
	user domain.User
	hash []byte
}

// CredentialChecker authenticates against a fixed in-memory account list.
type CredentialChecker struct {
	accounts  map[string]credential
	dummyHash []byte
}

// NewCredentialChecker hashes every account password with the given bcrypt cost.
func NewCredentialChecker(accounts []Account, cost int) (*CredentialChecker, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	c := &CredentialChecker{accounts: make(map[string]credential, len(accounts))}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", a.User.Email, err)
		}
		c.accounts[a.User.Email] = credential{user: a.User, hash: hash}
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	c.dummyHash = dummy

	return c, nil
}

// Authenticate returns the matching user without any password material.
func (c *CredentialChecker) Authenticate(_ context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	cred, ok := c.accounts[email]
	if !ok {
		// keep timing equal for unknown emails
		_ = bcrypt.CompareHashAndPassword(c.dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user := cred.user
	return &user, nil
}
