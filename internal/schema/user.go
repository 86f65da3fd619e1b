package schema

import "github.com/balbesina228/films-api/internal/model"

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64,alphanum"`
	Email    string `json:"email" validate:"required,email,max=255"`
	// bcrypt ignores everything past 72 bytes.
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func DumpUser(u *model.User) UserResponse {
	return UserResponse{
		UUID:     u.UUID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}

// TokenResponse is returned by POST /login.
type TokenResponse struct {
	Token string `json:"token"`
}
