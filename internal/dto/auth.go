package dto

import "time"

// TokenRequest exchanges the configured access key for a bearer token.
type TokenRequest struct {
	AccessKey string `json:"accessKey" validate:"required"`
}

// TokenResponse returns the signed token and its expiry.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
