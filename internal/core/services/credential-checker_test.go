package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"maternal-care-service/internal/core/domain"
)

func newTestChecker(t *testing.T) *CredentialChecker {
	t.Helper()
	checker, err := NewCredentialChecker(DemoAccounts, bcrypt.MinCost)
	require.NoError(t, err)
	return checker
}

func TestCredentialChecker_Authenticate_Success(t *testing.T) {
	checker := newTestChecker(t)

	user, err := checker.Authenticate(context.Background(), "doctor@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "3", user.ID)
	assert.Equal(t, "Dr. Jane Doe", user.FullName)
	assert.Equal(t, domain.UserRoleDoctor, user.Role)
}

func TestCredentialChecker_Authenticate_Errors(t *testing.T) {
	checker := newTestChecker(t)

	tests := []struct {
		name     string
		email    string
		password string
		expected error
	}{
		{name: "missing email", email: "", password: "password123", expected: domain.ErrMissingCredentials},
		{name: "missing password", email: "admin@example.com", password: "", expected: domain.ErrMissingCredentials},
		{name: "wrong password", email: "admin@example.com", password: "wrong", expected: domain.ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: "password123", expected: domain.ErrInvalidCredentials},
		{name: "email is case sensitive", email: "Admin@example.com", password: "password123", expected: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := checker.Authenticate(context.Background(), tt.email, tt.password)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestCredentialChecker_ReturnsCopy(t *testing.T) {
	checker := newTestChecker(t)

	user, err := checker.Authenticate(context.Background(), "patient@example.com", "password123")
	require.NoError(t, err)
	user.FullName = "changed"

	again, err := checker.Authenticate(context.Background(), "patient@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Sarah Smith", again.FullName)
}

func TestNewCredentialChecker_InvalidCost(t *testing.T) {
	_, err := NewCredentialChecker(DemoAccounts, bcrypt.MaxCost+1)
	assert.Error(t, err)
}
