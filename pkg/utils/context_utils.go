package utils

import (
	"context"

	"warranty-console/internal/dto"
	"warranty-console/pkg/contextkeys"
	apperrors "warranty-console/pkg/errors"
)

func GetPrincipalFromContext(ctx context.Context) (*dto.Principal, error) {
	p, ok := ctx.Value(contextkeys.PrincipalKey).(*dto.Principal)
	if !ok || p == nil {
		return nil, apperrors.ErrPrincipalNotFoundInContext
	}
	return p, nil
}

// GetTokenFromContext returns the caller's bearer token, which is
// forwarded to the warranty API.
func GetTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(contextkeys.TokenKey).(string)
	return token
}

func WithPrincipal(ctx context.Context, p *dto.Principal, token string) context.Context {
	ctx = context.WithValue(ctx, contextkeys.PrincipalKey, p)
	return context.WithValue(ctx, contextkeys.TokenKey, token)
}
