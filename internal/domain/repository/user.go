package repository

import "context"

// UserRepository covers the account operations the core needs: the startup
// admin bootstrap. Account management itself lives outside this service.
type UserRepository interface {
	// EnsureAdmin creates the admin account when absent and returns its id.
	EnsureAdmin(ctx context.Context, email, passwordHash string) (string, error)
}
