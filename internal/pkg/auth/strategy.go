package auth

import "time"

// Identity is the opaque result of a token check: who is calling and with
// which role. The core never inspects anything beyond these two facts.
type Identity struct {
	Subject string
	Role    string
}

// RoleAdmin marks staff accounts allowed to drive order fulfillment.
const RoleAdmin = "admin"

type Strategy interface {
	IssueToken(identity Identity) (string, error)
	ParseToken(token string) (Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
