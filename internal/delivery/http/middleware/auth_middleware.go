package middleware

import (
	"net/http"
	"strings"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/service"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys set by the auth middleware for handlers to read.
const (
	KeyUserID = "userID"
	KeyRoles  = "roles"
)

// unauthorizedBody is the legacy 401 shape. Existing clients parse this
// exact structure, so it bypasses the normal envelope.
type unauthorizedBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenService service.TokenService
	users        usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenService service.TokenService, users usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService, users: users}
}

// Authenticate validates a Bearer access token when one is presented.
// Requests without an Authorization header pass through unauthenticated;
// a present-but-bad token short-circuits with 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		// Only Bearer credentials are ours to judge; other schemes go
		// through unauthenticated.
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return next(c)
		}

		userID, err := m.tokenService.ValidateAccessToken(tokenString)
		if err != nil {
			return unauthorized(c, tokenFailureMessage(err))
		}

		c.Set(KeyUserID, userID)
		c.Set(KeyRoles, []string{})

		return next(c)
	}
}

// RequireAuth rejects requests that did not authenticate. It must be used
// after Authenticate.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get(KeyUserID).(uuid.UUID); !ok {
			return unauthorized(c, "Missing authentication token")
		}

		return next(c)
	}
}

// RequireRole checks that the authenticated user holds the given role.
// Access tokens only carry the subject, so the role set is loaded from the
// account itself. It must be used after RequireAuth.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := UserID(c)
			if err != nil {
				return err
			}

			detail, err := m.users.Detail(c.Request().Context(), userID)
			if err != nil {
				return err
			}

			if !entity.RolesFromStrings(detail.Roles).Has(role) {
				return errors.Wrap(domainerrors.ErrForbidden, "missing required role "+role.String())
			}

			return next(c)
		}
	}
}

// UserID extracts the authenticated user from the Echo context.
func UserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(KeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.Wrap(domainerrors.ErrForbidden, "request is not authenticated")
	}

	return userID, nil
}

// tokenFailureMessage maps a validation failure to the legacy 401 message.
func tokenFailureMessage(err error) string {
	var tokenErr *service.TokenError
	if errors.As(err, &tokenErr) {
		switch tokenErr.Kind {
		case service.TokenErrorExpired:
			return "Token expired"
		case service.TokenErrorMalformed:
			return "Malformed token"
		}
	}

	return "Token invalid"
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, unauthorizedBody{
		Status:  http.StatusUnauthorized,
		Error:   "Unauthorized",
		Message: message,
	})
}

// APITokenGate meters endpoints called by registered third-party apps. The
// caller presents its token in the X-Api-Token header; each accepted request
// burns one unit of quota.
type APITokenGate struct {
	tokenApps usecase.TokenAppsUsecase
}

// NewAPITokenGate is the constructor for APITokenGate.
func NewAPITokenGate(tokenApps usecase.TokenAppsUsecase) *APITokenGate {
	return &APITokenGate{tokenApps: tokenApps}
}

// HeaderAPIToken is the header carrying the app token.
const HeaderAPIToken = "X-Api-Token"

// Gate validates and consumes the presented app token before letting the
// request through.
func (g *APITokenGate) Gate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := strings.TrimSpace(c.Request().Header.Get(HeaderAPIToken))
		if token == "" {
			return errors.Wrap(domainerrors.ErrAPITokenInvalid, "missing api token header")
		}

		if err := g.tokenApps.Consume(c.Request().Context(), token); err != nil {
			return err
		}

		// The token string doubles as the conversation key downstream.
		c.Set(KeyAPIToken, token)

		return next(c)
	}
}

// KeyAPIToken is the context key holding the accepted app token.
const KeyAPIToken = "apiToken"
