// Package store defines the persistence port for user records.
//
// Implementations live in subpackages: sqlstore (Postgres/SQLite via sqlx),
// mongostore (MongoDB) and memstore (in-process). All of them assign the id
// and creation time on Insert, translate missing records into
// models.ErrNotFound, and return listings ordered by (created_at, id).
package store

import (
	"context"

	"github.com/lukabartula/blog-website-api/internal/models"
)

type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
	List(ctx context.Context) ([]models.User, error)
	ListPage(ctx context.Context, offset, limit int) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	Replace(ctx context.Context, id string, u *models.User) error
	Delete(ctx context.Context, id string) error
}
