package dto

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}
