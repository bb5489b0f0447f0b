package domain

import "time"

// User is a registered account. PasswordHash is the bcrypt encoding of
// the password and must never leave the service boundary; it is written
// once at registration and is immutable thereafter.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the result of a successful login: the signed access token
// plus the public view of the user it was issued to. The server keeps no
// record of it after issuance.
type Session struct {
	Token string
	User  User
}
