package dto

// RegisterRequest registration payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=32"`
	Phone    string `json:"phone" binding:"required,max=15"`
}

// RegisterResponse returns the new profile plus a token so the app can
// log the user straight in.
type RegisterResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// LoginRequest login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse login result
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}
