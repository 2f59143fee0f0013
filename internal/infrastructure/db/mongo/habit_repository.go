package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthhabits/habit-tracker/internal/core/domain"
)

const DefaultHabitsCollection = "habits"

type HabitRepository struct {
	col *mongo.Collection
}

func NewHabitRepository(db *mongo.Database, collection string) *HabitRepository {
	if collection == "" {
		collection = DefaultHabitsCollection
	}
	return &HabitRepository{col: db.Collection(collection)}
}

type mongoHabit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Date      string             `bson:"date"`
	Sleep     float64            `bson:"sleep"`
	Calories  float64            `bson:"calories"`
	Exercise  float64            `bson:"exercise"`
	Water     float64            `bson:"water"`
	CreatedAt time.Time          `bson:"created_at"`
}

func toMongoHabit(e *domain.HabitEntry) mongoHabit {
	return mongoHabit{
		UserID:    e.UserID,
		Date:      e.Date,
		Sleep:     e.Sleep,
		Calories:  e.Calories,
		Exercise:  e.Exercise,
		Water:     e.Water,
		CreatedAt: e.CreatedAt.UTC(),
	}
}

func (m mongoHabit) toDomain() domain.HabitEntry {
	return domain.HabitEntry{
		ID:        m.ID.Hex(),
		UserID:    m.UserID,
		Date:      m.Date,
		Sleep:     m.Sleep,
		Calories:  m.Calories,
		Exercise:  m.Exercise,
		Water:     m.Water,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// Create inserts a new habit entry and returns it with its assigned id.
func (r *HabitRepository) Create(ctx context.Context, e *domain.HabitEntry) (*domain.HabitEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoHabit(e)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, upstream("insert habit", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert habit: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid

	created := doc.toDomain()
	return &created, nil
}

// ListByUser returns all entries owned by userID. ObjectIDs grow
// monotonically, so sorting by _id yields insertion order.
func (r *HabitRepository) ListByUser(ctx context.Context, userID string) ([]domain.HabitEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, upstream("find habits", err)
	}
	defer cur.Close(ctx)

	var docs []mongoHabit
	if err := cur.All(ctx, &docs); err != nil {
		return nil, upstream("decode habits", err)
	}

	entries := make([]domain.HabitEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, d.toDomain())
	}
	return entries, nil
}

// Update replaces the metrics of the entry matching both id and owner. The
// original created_at is kept.
func (r *HabitRepository) Update(ctx context.Context, e *domain.HabitEntry) (*domain.HabitEntry, error) {
	oid, ok := objectIDFromHex(e.ID)
	if !ok {
		return nil, domain.ErrHabitNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "user_id": e.UserID}
	update := bson.M{"$set": bson.M{
		"date":     e.Date,
		"sleep":    e.Sleep,
		"calories": e.Calories,
		"exercise": e.Exercise,
		"water":    e.Water,
	}}

	var updated mongoHabit
	err := r.col.FindOneAndUpdate(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, upstream("update habit", err)
	}

	entry := updated.toDomain()
	return &entry, nil
}

// EnsureIndexes creates necessary indexes on the habits collection.
func (r *HabitRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
