package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inkwell/internal/delivery/http/validator"
	"inkwell/internal/domain/entity"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase records the inputs the handler passes down and answers
// with canned outputs.
type stubAuthUsecase struct {
	registered *usecase.RegisterInput
	refreshed  *usecase.RefreshInput
	projection *entity.PublicProjection
	out        *usecase.AuthOutput
}

func (s *stubAuthUsecase) Register(_ context.Context, input *usecase.RegisterInput) (*entity.PublicProjection, error) {
	s.registered = input

	return s.projection, nil
}

func (s *stubAuthUsecase) Login(context.Context, *usecase.LoginInput) (*usecase.AuthOutput, error) {
	return s.out, nil
}

func (s *stubAuthUsecase) Refresh(_ context.Context, input *usecase.RefreshInput) (*usecase.AuthOutput, error) {
	s.refreshed = input

	return s.out, nil
}

func (s *stubAuthUsecase) Logout(context.Context, uuid.UUID) error {
	return nil
}

func (s *stubAuthUsecase) ForgotPassword(context.Context, *usecase.ForgotPasswordInput) error {
	return nil
}

func newAuthHandlerContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_RefreshToken_BindsTokenField(t *testing.T) {
	uc := &stubAuthUsecase{out: &usecase.AuthOutput{
		User: &entity.PublicProjection{UserName: "alice", Email: "a@x.com", Roles: []string{"user"}, Status: "ACTIVE"},
		Token: &usecase.TokenOutput{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			TokenType:    "Bearer",
			LoginAt:      time.Now(),
		},
	}}
	h := NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, rec := newAuthHandlerContext(t, `{"token":"the-current-refresh-token"}`)
	require.NoError(t, h.RefreshToken(c))

	require.NotNil(t, uc.refreshed)
	assert.Equal(t, "the-current-refresh-token", uc.refreshed.RefreshToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_Register_PassesRolesStatusVerified(t *testing.T) {
	uc := &stubAuthUsecase{projection: &entity.PublicProjection{
		ID:         uuid.New(),
		UserName:   "alice",
		Email:      "a@x.com",
		Roles:      []string{"user"},
		Status:     "ACTIVE",
		IsVerified: true,
	}}
	h := NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	body := `{"userName":"alice","email":"a@x.com","password":"pw123456",` +
		`"confirmPassword":"pw123456","role":["user"],"status":"ACTIVE","isVerified":true}`
	c, rec := newAuthHandlerContext(t, body)
	require.NoError(t, h.Register(c))

	require.NotNil(t, uc.registered)
	assert.Equal(t, []string{"user"}, uc.registered.Roles)
	assert.Equal(t, "ACTIVE", uc.registered.Status)
	assert.True(t, uc.registered.IsVerified)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
