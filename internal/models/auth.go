package models

import "github.com/golang-jwt/jwt/v5"

// CredentialsRequest carries a username/password pair for both registration
// and login. Charset and complexity rules beyond length live in the service.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// TokenResponse returns the issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse is the generic success body.
type MessageResponse struct {
	Message string `json:"message"`
}

// VerifyResponse confirms a valid session.
type VerifyResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// AccessClaims is the JWT payload. Subject carries the username; validity is
// purely a function of signature and expiry, there is no revocation list.
type AccessClaims struct {
	jwt.RegisteredClaims
}
