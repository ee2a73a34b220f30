package domain

import "strings"

// Role is the closed set of capability classes an account can have.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ParseRole maps a wire value onto the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStudent:
		return RoleStudent, true
	}
	return "", false
}

type Account struct {
	Id         int64
	Name       string
	Email      string
	PassHash   string // empty for accounts created through Google sign-in
	Role       Role
	Enrollment string
}

// HasCredential reports whether the account can authenticate by password.
func (a Account) HasCredential() bool {
	return a.PassHash != ""
}

// AccountSummary is the directory view of an account: no credential
// material, no role internals.
type AccountSummary struct {
	Name  string
	Email string
}

// ExternalIdentity is a payload already verified by the identity provider
// collaborator. The registry trusts it as-is.
type ExternalIdentity struct {
	Email string
	Name  string
}

// NormalizeEmail lower-cases and trims an email. Applied at every read and
// write boundary so the same mailbox never produces two identities.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
