package primary

import (
	"context"

	"gitlab.com/code-round.net/internal/domain"
)

// TokenService issues and verifies the HMAC bearer tokens carrying a team claim.
type TokenService interface {
	GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error)
	VerifyTokenHMAC(ctx context.Context, token string) (bool, error)
	DecodeTokenPayload(ctx context.Context, token string) (domain.AuthPayload, error)
}
