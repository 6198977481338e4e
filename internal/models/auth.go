package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the payload carried by issued access tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
}
