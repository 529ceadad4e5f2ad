package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/lukabartula/blog-website-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func ns(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func userDoc(id, email string, role models.Role) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "firstName", Value: "Ada"},
		{Key: "lastName", Value: "Lovelace"},
		{Key: "email", Value: email},
		{Key: "password", Value: "hash"},
		{Key: "role", Value: string(role)},
		{Key: "createdAt", Value: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by id", func(mt *mtest.T) {
		s := New(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			userDoc("u-1", "ada@example.com", models.RoleAdmin)))

		u, err := s.FindByID(context.Background(), "u-1")
		require.NoError(mt, err)
		assert.Equal(mt, "u-1", u.ID)
		assert.Equal(mt, "hash", u.PasswordHash)
		assert.Equal(mt, models.RoleAdmin, u.Role)
	})

	mt.Run("find by email missing", func(mt *mtest.T) {
		s := New(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		_, err := s.FindByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("insert assigns id", func(mt *mtest.T) {
		s := New(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &models.User{Email: "ada@example.com", Role: models.RoleUser}
		require.NoError(mt, s.Insert(context.Background(), u))
		assert.Len(mt, u.ID, 36)
		assert.False(mt, u.CreatedAt.IsZero())
	})

	mt.Run("insert error", func(mt *mtest.T) {
		s := New(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		err := s.Insert(context.Background(), &models.User{Email: "ada@example.com"})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "insert user")
	})

	mt.Run("list page", func(mt *mtest.T) {
		s := New(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			userDoc("u-3", "c@example.com", models.RoleUser),
			userDoc("u-4", "d@example.com", models.RoleUser)))

		users, err := s.ListPage(context.Background(), 2, 2)
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, "u-3", users[0].ID)
	})

	mt.Run("list empty", func(mt *mtest.T) {
		s := New(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		users, err := s.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, users)
		assert.Empty(mt, users)
	})

	mt.Run("count", func(mt *mtest.T) {
		s := New(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(7)}}))

		n, err := s.Count(context.Background())
		require.NoError(mt, err)
		assert.EqualValues(mt, 7, n)
	})

	mt.Run("replace identical body is not missing", func(mt *mtest.T) {
		s := New(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))

		err := s.Replace(context.Background(), "u-1", &models.User{ID: "u-1", Email: "ada@example.com"})
		assert.NoError(mt, err)
	})

	mt.Run("replace missing", func(mt *mtest.T) {
		s := New(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := s.Replace(context.Background(), "u-9", &models.User{ID: "u-9"})
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := New(mt.Coll)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		require.NoError(mt, s.Delete(context.Background(), "u-1"))
		assert.ErrorIs(mt, s.Delete(context.Background(), "u-1"), models.ErrNotFound)
	})
}
