package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SesionAnonimaRequest starts or resumes an anonymous session. A device that
// already holds an id/secret pair sends it back to keep the same owner id.
type SesionAnonimaRequest struct {
	DeviceID     string `json:"device_id"     validate:"omitempty,uuid"`
	DeviceSecret string `json:"device_secret" validate:"required_with=DeviceID,omitempty,min=16,max=128"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SesionResponse struct {
	UserID       string `json:"user_id"`
	DeviceSecret string `json:"device_secret,omitempty"` // only returned when the session is created
	Nueva        bool   `json:"nueva"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}
