package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthhabits/habit-tracker/internal/api/metrics"
	"github.com/healthhabits/habit-tracker/internal/core/domain"
	"github.com/healthhabits/habit-tracker/internal/core/ports"
)

// TipsHandler serves AI-generated health tips.
type TipsHandler struct {
	service ports.TipService
}

func NewTipsHandler(service ports.TipService) *TipsHandler {
	return &TipsHandler{service: service}
}

type tipsRequest struct {
	Prompt string `json:"prompt" validate:"required,max=4000"`
}

type tipsResponse struct {
	Tips string `json:"tips"`
}

type suggestionsResponse struct {
	Suggestions string `json:"suggestions"`
}

// Tips handles POST /healthTips.
//
// @Summary      Generate health tips from a free-text prompt
// @Tags         tips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      tipsRequest  true  "Prompt"
// @Success      200   {object}  tipsResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /healthTips [post]
func (h *TipsHandler) Tips(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req tipsRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	start := time.Now()
	tips, err := h.service.GetHealthTips(c.Request().Context(), req.Prompt)
	metrics.ObserveCompletion("tips", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tipsResponse{Tips: tips})
}

// Suggestions handles GET /healthTips.
//
// @Summary      Personalised suggestions derived from the caller's history
// @Tags         tips
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  suggestionsResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /healthTips [get]
func (h *TipsHandler) Suggestions(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	start := time.Now()
	suggestions, err := h.service.GetPersonalSuggestions(c.Request().Context(), userID)
	metrics.ObserveCompletion("suggestions", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}
