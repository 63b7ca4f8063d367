package models

// AuthResponse, başarılı register/login/refresh sonrası dönen yanıt.
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest, refresh ve logout endpoint'lerinin body'si.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
