package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthhabits/habit-tracker/internal/api/metrics"
	"github.com/healthhabits/habit-tracker/internal/core/domain"
	"github.com/healthhabits/habit-tracker/internal/core/ports"
)

const (
	actionRegister = "register"
	actionLogin    = "login"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Dispatch handles POST /auth?action=register|login.
//
// @Summary      Register or log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        action  query     string              true  "register or login"  Enums(register, login)
// @Param        body    body      credentialsRequest  true  "Credentials"
// @Success      200     {object}  loginResponse
// @Success      201     {object}  domain.User
// @Failure      400     {object}  ErrorResponse
// @Failure      409     {object}  ErrorResponse
// @Router       /auth [post]
func (h *AuthHandler) Dispatch(c echo.Context) error {
	switch action := c.QueryParam("action"); action {
	case actionRegister:
		return h.Register(c)
	case actionLogin:
		return h.Login(c)
	default:
		return fmt.Errorf("%w: invalid action %q", domain.ErrBadRequest, action)
	}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(actionRegister, "invalid_request").Inc()
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(actionRegister, failureReason(err)).Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues(actionRegister, "success").Inc()
	return c.JSON(http.StatusCreated, user)
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(actionLogin, "invalid_request").Inc()
		return err
	}

	token, userID, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(actionLogin, failureReason(err)).Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues(actionLogin, "success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, UserID: userID})
}

func bindCredentials(c echo.Context) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return nil, fmt.Errorf("%w: invalid payload", domain.ErrBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	return &req, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUserExists):
		return "user_exists"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_request"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}
