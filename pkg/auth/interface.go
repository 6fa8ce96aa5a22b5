package auth

// TokenValidator checks bearer tokens presented to a service.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

var _ TokenValidator = (*JWTManager)(nil)
