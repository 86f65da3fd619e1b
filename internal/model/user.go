package model

// User is an account able to obtain bearer tokens.
type User struct {
	Base
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
}
