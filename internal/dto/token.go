package dto

type ObtainTokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh"`
}

// TokenResponse carries the opaque tokens plus absolute expiry instants in
// epoch seconds. On refresh, Refresh/RefreshExpiresAt are present only when
// rotation reissued the refresh token.
type TokenResponse struct {
	Access           string `json:"access"`
	Refresh          string `json:"refresh,omitempty"`
	AccessExpiresAt  int64  `json:"accessExpiresAt"`
	RefreshExpiresAt int64  `json:"refreshExpiresAt,omitempty"`
}
