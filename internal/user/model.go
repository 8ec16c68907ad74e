package user

import "time"

type User struct {
	ID        uint
	Email     string
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// Public is the representation safe to return to clients.
type Public struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Email: u.Email, Username: u.Username}
}
