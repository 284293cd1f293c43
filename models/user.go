package models

// User represents a ledger account used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user, assigned by the
	// persistence layer.
	UserID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Username is the unique login identifier. It is also the principal name
	// carried in the "sub" claim of issued tokens.
	Username string `json:"username"`

	// Password is the plain-text password received from the client on
	// registration or update. It is hashed before storage and never
	// written back to responses.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the password as stored in the
	// database. Never serialized.
	PasswordHash string `json:"-"`

	// Role is the stored authority of the user (see [Authority]).
	Role Authority `json:"role"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Principal derives the request-scoped identity of the user.
func (u User) Principal() Principal {
	return Principal{Name: u.Username, Authority: u.Role}
}

// Public returns a copy of u safe to write into HTTP responses.
func (u User) Public() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}
