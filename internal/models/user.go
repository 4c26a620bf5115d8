package models

// User represents an operator account.
type User struct {
	// ID is assigned by the store on insert.
	ID int64 `db:"id"`

	// Username is unique and non-empty.
	Username string `db:"username"`

	// PasswordHash is a bcrypt hash. It embeds salt and cost so it can be
	// verified even after the default cost changes.
	PasswordHash string `db:"password"`
}

// NewUser creates a User ready to be inserted.
func NewUser(username, passwordHash string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
	}
}
