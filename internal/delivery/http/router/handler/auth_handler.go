package handler

import (
	"log/slog"
	"time"

	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/delivery/http/response"
	"inkwell/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

type registerRequest struct {
	UserName        string   `json:"userName" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required"`
	ConfirmPassword string   `json:"confirmPassword" validate:"required"`
	Roles           []string `json:"role" validate:"required"`
	Status          string   `json:"status" validate:"required"`
	IsVerified      bool     `json:"isVerified"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Token string `json:"token" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// tokenPayload is the token section of the login-shaped response.
type tokenPayload struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	TokenType    string    `json:"tokenType"`
	LoginAt      time.Time `json:"loginAt"`
}

// authPayload is the login-shaped response data block.
type authPayload struct {
	UserName   string       `json:"userName"`
	Email      string       `json:"email"`
	Roles      []string     `json:"role"`
	Status     string       `json:"status"`
	IsVerified bool         `json:"isVerified"`
	Token      tokenPayload `json:"token"`
}

func toAuthPayload(out *usecase.AuthOutput) authPayload {
	return authPayload{
		UserName:   out.User.UserName,
		Email:      out.User.Email,
		Roles:      out.User.Roles,
		Status:     out.User.Status,
		IsVerified: out.User.IsVerified,
		Token: tokenPayload{
			AccessToken:  out.Token.AccessToken,
			RefreshToken: out.Token.RefreshToken,
			TokenType:    out.Token.TokenType,
			LoginAt:      out.Token.LoginAt,
		},
	}
}

// Register handles the registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		UserName:        req.UserName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Roles:           req.Roles,
		Status:          req.Status,
		IsVerified:      req.IsVerified,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, user, "User registered successfully")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toAuthPayload(out), "Login successful")
}

// RefreshToken handles the token rotation request.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid refresh token input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.Refresh(c.Request().Context(), &usecase.RefreshInput{RefreshToken: req.Token})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toAuthPayload(out), "Token refreshed successfully")
}

// Logout discards the caller's stored token pair.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Logout successful")
}

// ForgotPassword handles the password reset request.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid forgot password input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), &usecase.ForgotPasswordInput{Email: req.Email}); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Password reset instructions sent")
}
