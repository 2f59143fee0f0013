package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/healthhabits/habit-tracker/internal/core/domain"
)

func ns(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}

func habitDoc(id primitive.ObjectID, userID, date string, sleep float64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "user_id", Value: userID},
		{Key: "date", Value: date},
		{Key: "sleep", Value: sleep},
		{Key: "calories", Value: 2000.0},
		{Key: "exercise", Value: 30.0},
		{Key: "water", Value: 8.0},
		{Key: "created_at", Value: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestHabitRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		repo := NewHabitRepository(mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.Create(context.Background(), &domain.HabitEntry{
			UserID: "u1", Date: "2024-01-01", Sleep: 7, Calories: 2000, Exercise: 30, Water: 8,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(created.ID); err != nil {
			t.Fatalf("expected hex object id, got %q", created.ID)
		}
		if created.UserID != "u1" || created.Sleep != 7 {
			t.Fatalf("unexpected entry %+v", created)
		}
	})

	mt.Run("store failure is upstream", func(mt *mtest.T) {
		repo := NewHabitRepository(mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 91, Name: "ShutdownInProgress", Message: "shutting down",
		}))

		_, err := repo.Create(context.Background(), &domain.HabitEntry{UserID: "u1"})
		if !errors.Is(err, domain.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
	})
}

func TestHabitRepository_ListByUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes in store order", func(mt *mtest.T) {
		repo := NewHabitRepository(mt.DB, mt.Coll.Name())
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
		first := mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch,
			habitDoc(id1, "u1", "2024-01-02", 7),
			habitDoc(id2, "u1", "2024-01-01", 6),
		)
		killCursors := mtest.CreateCursorResponse(0, ns(mt), mtest.NextBatch)
		mt.AddMockResponses(first, killCursors)

		entries, err := repo.ListByUser(context.Background(), "u1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].ID != id1.Hex() || entries[1].ID != id2.Hex() {
			t.Fatalf("unexpected order: %s, %s", entries[0].ID, entries[1].ID)
		}
		if entries[0].Date != "2024-01-02" || entries[1].Sleep != 6 {
			t.Fatalf("unexpected decode: %+v", entries)
		}
	})

	mt.Run("empty result", func(mt *mtest.T) {
		repo := NewHabitRepository(mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		entries, err := repo.ListByUser(context.Background(), "nobody")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if entries == nil || len(entries) != 0 {
			t.Fatalf("expected empty slice, got %#v", entries)
		}
	})

	mt.Run("store failure is upstream", func(mt *mtest.T) {
		repo := NewHabitRepository(mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 1, Name: "InternalError", Message: "boom",
		}))

		if _, err := repo.ListByUser(context.Background(), "u1"); !errors.Is(err, domain.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
	})
}

func TestHabitRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns updated document", func(mt *mtest.T) {
		repo := NewHabitRepository(mt.DB, mt.Coll.Name())
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: habitDoc(id, "u1", "2024-01-01", 9)},
		))

		updated, err := repo.Update(context.Background(), &domain.HabitEntry{
			ID: id.Hex(), UserID: "u1", Date: "2024-01-01", Sleep: 9,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ID != id.Hex() || updated.Sleep != 9 {
			t.Fatalf("unexpected entry %+v", updated)
		}
	})

	mt.Run("no match is not found", func(mt *mtest.T) {
		repo := NewHabitRepository(mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Update(context.Background(), &domain.HabitEntry{ID: primitive.NewObjectID().Hex(), UserID: "u2"})
		if !errors.Is(err, domain.ErrHabitNotFound) {
			t.Fatalf("expected ErrHabitNotFound, got %v", err)
		}
	})

	mt.Run("malformed id is not found", func(mt *mtest.T) {
		repo := NewHabitRepository(mt.DB, mt.Coll.Name())

		_, err := repo.Update(context.Background(), &domain.HabitEntry{ID: "not-an-object-id", UserID: "u1"})
		if !errors.Is(err, domain.ErrHabitNotFound) {
			t.Fatalf("expected ErrHabitNotFound, got %v", err)
		}
	})
}
