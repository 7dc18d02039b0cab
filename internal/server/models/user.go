package models

import "fmt"

// User is a registered identity stored in the user table.
//
// ID is the partition key and is immutable after creation. Email must be
// unique among all users; the store has no multi-attribute unique
// constraint, so uniqueness is enforced by the service layer's
// check-then-write protocol. Username carries no uniqueness guarantee at
// all. The password hash never appears in JSON output or in the textual
// representation.
type User struct {
	ID           string   `json:"id" dynamodbav:"id"`
	Username     string   `json:"username" dynamodbav:"username"`
	Email        string   `json:"email" dynamodbav:"email"`
	PasswordHash string   `json:"-" dynamodbav:"passwordHash"`
	Roles        []string `json:"roles,omitempty" dynamodbav:"roles,stringset,omitempty"`
	LastLogin    Millis   `json:"lastLogin" dynamodbav:"lastLogin"`
	Created      Millis   `json:"created" dynamodbav:"created"`
	Modified     Millis   `json:"modified" dynamodbav:"modified"`
}

// String implements fmt.Stringer with the password hash redacted.
func (u User) String() string {
	return fmt.Sprintf("User{id=%s, username=%s, email=%s, roles=%v, lastLogin=%s, created=%s, modified=%s}",
		u.ID, u.Username, u.Email, u.Roles, u.LastLogin, u.Created, u.Modified)
}
