// Package domain contains entity without logic, just meta-data
package domain

type UserID string

// Identity is the resolved participant record attached to a connection.
// It is resolved once at authentication time and never mutated afterwards.
type Identity struct {
	ID         UserID `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}
