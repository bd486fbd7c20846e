package service

import (
	"github.com/google/uuid"
)

// TokenValidator validates the access tokens that authenticate API requests.
// Tokens are issued by the identity service; this service only verifies them.
type TokenValidator interface {
	// ValidateAccessToken verifies the token signature and expiry and
	// returns the user it was issued for.
	ValidateAccessToken(tokenString string) (uuid.UUID, error)
}
