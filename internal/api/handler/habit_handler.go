package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthhabits/habit-tracker/internal/api/metrics"
	"github.com/healthhabits/habit-tracker/internal/core/domain"
	"github.com/healthhabits/habit-tracker/internal/core/ports"
)

// HabitHandler handles HTTP requests for habit entries. Every route requires
// the Auth middleware.
type HabitHandler struct {
	service ports.HabitService
}

func NewHabitHandler(service ports.HabitService) *HabitHandler {
	return &HabitHandler{service: service}
}

// habitRequest uses pointers so that a zero value can be told apart from a
// missing field.
type habitRequest struct {
	Date     string   `json:"date"     validate:"required,isodate"`
	Sleep    *float64 `json:"sleep"    validate:"required,gte=0,lte=24"`
	Calories *float64 `json:"calories" validate:"required,gte=0,lte=20000"`
	Exercise *float64 `json:"exercise" validate:"required,gte=0,lte=1440"`
	Water    *float64 `json:"water"    validate:"required,gte=0,lte=100"`
}

func (r habitRequest) toInput() ports.HabitInput {
	return ports.HabitInput{
		Date:     r.Date,
		Sleep:    *r.Sleep,
		Calories: *r.Calories,
		Exercise: *r.Exercise,
		Water:    *r.Water,
	}
}

// Create handles POST /habits.
//
// @Summary      Log a habit entry
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      habitRequest  true  "Daily metrics"
// @Success      201   {object}  domain.HabitEntry
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /habits [post]
func (h *HabitHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	req, err := bindHabit(c)
	if err != nil {
		return err
	}

	entry, err := h.service.AddEntry(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}

	metrics.HabitEntriesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, entry)
}

// List handles GET /habits.
//
// @Summary      List the caller's habit entries in insertion order
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.HabitEntry
// @Failure      401  {object}  ErrorResponse
// @Router       /habits [get]
func (h *HabitHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	entries, err := h.service.ListEntries(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Update handles PUT /habits/:id.
//
// @Summary      Replace a habit entry
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Entry id"
// @Param        body  body      habitRequest  true  "Daily metrics"
// @Success      200   {object}  domain.HabitEntry
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /habits/{id} [put]
func (h *HabitHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	req, err := bindHabit(c)
	if err != nil {
		return err
	}

	entry, err := h.service.UpdateEntry(c.Request().Context(), userID, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// Trends handles GET /habits/trends.
//
// @Summary      Percentage change between the two latest entries
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Trend
// @Failure      401  {object}  ErrorResponse
// @Router       /habits/trends [get]
func (h *HabitHandler) Trends(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	trend, err := h.service.Trends(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trend)
}

func bindHabit(c echo.Context) (*habitRequest, error) {
	var req habitRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return nil, fmt.Errorf("%w: invalid payload", domain.ErrBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	return &req, nil
}
