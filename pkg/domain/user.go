package domain

import "time"

// NewUserParams holds what a caller supplies when registering a user.
// Password is opaque to the domain: the sign-up flow passes the hash here.
type NewUserParams struct {
	Username string
	Email    Email
	Password string
}

// UserRecord is the flat form of a User as it is kept in storage. Zero ID
// and zero timestamps mean "not supplied".
type UserRecord struct {
	ID        Identifier
	Username  string
	Email     Email
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is a registered account. Uniqueness of ID and Email is enforced by
// storage and the sign-up use case, not by the entity.
type User struct {
	state UserRecord
}

// NewUser creates a user with a fresh id. CreatedAt and UpdatedAt are equal.
func NewUser(params NewUserParams) *User {
	ts := now()

	return &User{state: UserRecord{
		ID:        NewIdentifier(),
		Username:  params.Username,
		Email:     params.Email,
		Password:  params.Password,
		CreatedAt: ts,
		UpdatedAt: ts,
	}}
}

// UserFromStorage rebuilds a user from a stored record, generating the id
// and timestamps when the record lacks them.
func UserFromStorage(rec UserRecord) *User {
	if rec.ID.IsZero() {
		rec.ID = NewIdentifier()
	}
	rec.CreatedAt = orNow(rec.CreatedAt)
	rec.UpdatedAt = orNow(rec.UpdatedAt)

	return &User{state: rec}
}

func (u *User) ID() Identifier       { return u.state.ID }
func (u *User) Username() string     { return u.state.Username }
func (u *User) Email() Email         { return u.state.Email }
func (u *User) Password() string     { return u.state.Password }
func (u *User) CreatedAt() time.Time { return u.state.CreatedAt }
func (u *User) UpdatedAt() time.Time { return u.state.UpdatedAt }

// UpdateUsername replaces the username and touches UpdatedAt.
func (u *User) UpdateUsername(username string) {
	u.state.Username = username
	u.touch()
}

// UpdateEmail replaces the email and touches UpdatedAt.
func (u *User) UpdateEmail(email Email) {
	u.state.Email = email
	u.touch()
}

// UpdatePassword replaces the stored password and touches UpdatedAt.
func (u *User) UpdatePassword(password string) {
	u.state.Password = password
	u.touch()
}

// Record returns a copy of the user's state for persistence.
func (u *User) Record() UserRecord { return u.state }

func (u *User) touch() { u.state.UpdatedAt = touch(u.state.UpdatedAt) }
