package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"warranty-console/internal/dto"
	apperrors "warranty-console/pkg/errors"
	"warranty-console/pkg/service"
	"warranty-console/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth validates the bearer token and stores the principal and the raw
// token in the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			m.logger.Debug("empty Authorization header", zap.String("uri", c.Request().RequestURI))
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}
		tokenString := parts[1]

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Warn("token rejected", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		principal := &dto.Principal{
			ID:    claims.UserID,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  claims.Role,
			IP:    c.RealIP(),
		}
		ctx := utils.WithPrincipal(c.Request().Context(), principal, tokenString)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole lets the request through only for the listed roles.
func (m *AuthMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := utils.GetPrincipalFromContext(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			for _, r := range roles {
				if principal.Role == r {
					return next(c)
				}
			}
			m.logger.Warn("role check failed",
				zap.String("userID", principal.ID),
				zap.String("role", principal.Role),
				zap.Strings("required", roles),
			)
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
	}
}
