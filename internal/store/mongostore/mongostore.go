package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lukabartula/blog-website-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "users"

// naturalOrder pins the listing order; Mongo's own natural order is not
// guaranteed to follow insertion.
var naturalOrder = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

type Store struct {
	coll *mongo.Collection
	now  func() time.Time
}

func New(coll *mongo.Collection) *Store {
	return &Store{coll: coll, now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }}
}

// Connect dials uri, verifies the deployment answers, and returns the client
// together with a Store over db.users.
func Connect(ctx context.Context, uri, db string) (*mongo.Client, *Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return client, New(client.Database(db).Collection(CollectionName)), nil
}

// EnsureIndexes creates the lookup indexes used by login and pagination.
// Email is indexed but deliberately not unique.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: naturalOrder},
	})
	if err != nil {
		return fmt.Errorf("mongo: create indexes: %w", err)
	}
	return nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User

	err := s.coll.FindOne(ctx, filter, options.FindOne().SetSort(naturalOrder)).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: find user: %w", err)
	}

	return &u, nil
}

func (s *Store) Insert(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()
	u.CreatedAt = s.now()

	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("mongo: insert user: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]models.User, error) {
	return s.find(ctx, options.Find().SetSort(naturalOrder))
}

func (s *Store) ListPage(ctx context.Context, offset, limit int) ([]models.User, error) {
	opts := options.Find().
		SetSort(naturalOrder).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return s.find(ctx, opts)
}

func (s *Store) find(ctx context.Context, opts *options.FindOptions) ([]models.User, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: find users: %w", err)
	}

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongo: decode users: %w", err)
	}
	return users, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("mongo: count users: %w", err)
	}
	return n, nil
}

// Replace swaps the whole document. Success is decided on MatchedCount, not
// ModifiedCount, so an identical body still counts as success; the SQL store
// behaves the same (see "Update semantics" in DESIGN.md).
func (s *Store) Replace(ctx context.Context, id string, u *models.User) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, u)
	if err != nil {
		return fmt.Errorf("mongo: replace user: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo: delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
