// internal/domain/models/user.go
package models

import "time"

// User is the account document stored in the users collection.
//
// The document is keyed by the identity the user signed in with (a hex
// string), not a generated ObjectID, so that the auth layer can look it
// up directly after sign-in. Accounts are created unapproved; an admin
// flips Approved before the user can reach the main app.
type User struct {
	ID       string `bson:"_id" json:"id"`
	Email    string `bson:"email" json:"email"`
	Approved bool   `bson:"approved" json:"approved"`
	Admin    bool   `bson:"admin" json:"admin"`

	// PasswordHash is empty for accounts created through Google sign-in.
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`
	AuthMethod   string `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // password | google

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
