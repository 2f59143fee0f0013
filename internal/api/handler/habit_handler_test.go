package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthhabits/habit-tracker/internal/api/middleware"
	"github.com/healthhabits/habit-tracker/internal/core/domain"
	"github.com/healthhabits/habit-tracker/internal/core/ports"
)

type stubHabitService struct {
	addFn    func(ctx context.Context, userID string, input ports.HabitInput) (*domain.HabitEntry, error)
	listFn   func(ctx context.Context, userID string) ([]domain.HabitEntry, error)
	updateFn func(ctx context.Context, userID, entryID string, input ports.HabitInput) (*domain.HabitEntry, error)
	trendsFn func(ctx context.Context, userID string) (*domain.Trend, error)
}

func (s *stubHabitService) AddEntry(ctx context.Context, userID string, input ports.HabitInput) (*domain.HabitEntry, error) {
	return s.addFn(ctx, userID, input)
}

func (s *stubHabitService) ListEntries(ctx context.Context, userID string) ([]domain.HabitEntry, error) {
	return s.listFn(ctx, userID)
}

func (s *stubHabitService) UpdateEntry(ctx context.Context, userID, entryID string, input ports.HabitInput) (*domain.HabitEntry, error) {
	return s.updateFn(ctx, userID, entryID, input)
}

func (s *stubHabitService) Trends(ctx context.Context, userID string) (*domain.Trend, error) {
	return s.trendsFn(ctx, userID)
}

const validHabitBody = `{"date":"2024-01-01","sleep":7,"calories":2000,"exercise":30,"water":2}`

func entryFromInput(id, userID string, in ports.HabitInput) *domain.HabitEntry {
	return &domain.HabitEntry{
		ID: id, UserID: userID, Date: in.Date,
		Sleep: in.Sleep, Calories: in.Calories, Exercise: in.Exercise, Water: in.Water,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHabitHandler_Create_Success(t *testing.T) {
	stub := &stubHabitService{
		addFn: func(ctx context.Context, userID string, in ports.HabitInput) (*domain.HabitEntry, error) {
			if userID != "u1" {
				t.Fatalf("expected owner from context, got %q", userID)
			}
			if in.Sleep != 7 || in.Calories != 2000 || in.Exercise != 30 || in.Water != 2 || in.Date != "2024-01-01" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return entryFromInput("e1", userID, in), nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/habits", validHabitBody)
	c.Set(middleware.ContextKeyUserID, "u1")

	if err := NewHabitHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got domain.HabitEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != "e1" || got.UserID != "u1" {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestHabitHandler_Create_IgnoresBodyUserID(t *testing.T) {
	stub := &stubHabitService{
		addFn: func(ctx context.Context, userID string, in ports.HabitInput) (*domain.HabitEntry, error) {
			if userID != "u1" {
				t.Fatalf("body userId must not override session, got %q", userID)
			}
			return entryFromInput("e1", userID, in), nil
		},
	}
	body := `{"userId":"attacker","date":"2024-01-01","sleep":7,"calories":2000,"exercise":30,"water":2}`
	c, _ := newTestContext(http.MethodPost, "/habits", body)
	c.Set(middleware.ContextKeyUserID, "u1")

	if err := NewHabitHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestHabitHandler_Create_Validation(t *testing.T) {
	stub := &stubHabitService{
		addFn: func(ctx context.Context, userID string, in ports.HabitInput) (*domain.HabitEntry, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	cases := map[string]string{
		"missing water":  `{"date":"2024-01-01","sleep":7,"calories":2000,"exercise":30}`,
		"negative sleep": `{"date":"2024-01-01","sleep":-1,"calories":2000,"exercise":30,"water":2}`,
		"bad date":       `{"date":"yesterday","sleep":7,"calories":2000,"exercise":30,"water":2}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/habits", body)
			c.Set(middleware.ContextKeyUserID, "u1")
			if err := NewHabitHandler(stub).Create(c); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	c, _ := newTestContext(http.MethodPost, "/habits", `{"sleep":"seven"}`)
	c.Set(middleware.ContextKeyUserID, "u1")
	if err := NewHabitHandler(stub).Create(c); !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestHabitHandler_RequiresUser(t *testing.T) {
	h := NewHabitHandler(&stubHabitService{})
	routes := map[string]func(echo.Context) error{
		"create": h.Create,
		"list":   h.List,
		"update": h.Update,
		"trends": h.Trends,
	}
	for name, fn := range routes {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodGet, "/habits", validHabitBody)
			err := fn(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %v", err)
			}
		})
	}
}

func TestHabitHandler_List_EmptyArray(t *testing.T) {
	stub := &stubHabitService{
		listFn: func(ctx context.Context, userID string) ([]domain.HabitEntry, error) {
			return []domain.HabitEntry{}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/habits", "")
	c.Set(middleware.ContextKeyUserID, "u1")

	if err := NewHabitHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestHabitHandler_Update(t *testing.T) {
	stub := &stubHabitService{
		updateFn: func(ctx context.Context, userID, entryID string, in ports.HabitInput) (*domain.HabitEntry, error) {
			if entryID == "missing" {
				return nil, domain.ErrHabitNotFound
			}
			return entryFromInput(entryID, userID, in), nil
		},
	}

	c, rec := newTestContext(http.MethodPut, "/habits/e1", validHabitBody)
	c.Set(middleware.ContextKeyUserID, "u1")
	c.SetParamNames("id")
	c.SetParamValues("e1")

	if err := NewHabitHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodPut, "/habits/missing", validHabitBody)
	c.Set(middleware.ContextKeyUserID, "u1")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := NewHabitHandler(stub).Update(c); !errors.Is(err, domain.ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestHabitHandler_Trends(t *testing.T) {
	stub := &stubHabitService{
		trendsFn: func(ctx context.Context, userID string) (*domain.Trend, error) {
			return &domain.Trend{Change: domain.Metrics{Sleep: 100}}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/habits/trends", "")
	c.Set(middleware.ContextKeyUserID, "u1")

	if err := NewHabitHandler(stub).Trends(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
