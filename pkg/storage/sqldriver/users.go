package sqldriver

import (
	"context"
	"database/sql"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

var userColumns = []string{"id", "username", "password", "email", "created_at"}

func scanUser(s scanner) (knowledge.User, error) {
	var (
		u     knowledge.User
		email sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Username, &u.Password, &email, &u.CreatedAt); err != nil {
		return u, err
	}
	if email.Valid {
		u.Email = &email.String
	}
	return u, nil
}

func (d *Driver) selectUsers() *entsql.Selector {
	return d.builder().Select(userColumns...).From(entsql.Table(tableUsers))
}

// GetUser retrieves a user by id.
func (d *Driver) GetUser(ctx context.Context, id int64) (*knowledge.User, error) {
	return queryOne(ctx, d.DB, d.selectUsers().Where(entsql.EQ("id", id)), scanUser)
}

// GetUserByUsername retrieves a user by exact username.
func (d *Driver) GetUserByUsername(ctx context.Context, username string) (*knowledge.User, error) {
	return queryOne(ctx, d.DB, d.selectUsers().Where(entsql.EQ("username", username)), scanUser)
}

// CreateUser stores a new user. Usernames are unique.
func (d *Driver) CreateUser(ctx context.Context, nu knowledge.NewUser) (*knowledge.User, error) {
	if err := nu.Validate(); err != nil {
		return nil, err
	}

	createdAt := d.timestamp()
	ib := d.builder().Insert(tableUsers).
		Columns("username", "password", "email", "created_at").
		Values(nu.Username, nu.Password, nu.Email, createdAt)

	id, err := d.insert(ctx, d.DB, ib)
	if err != nil {
		return nil, d.constraintError(err, "inserting user",
			storage.ConflictError{Entity: "user", Field: "username", Value: nu.Username}, nil)
	}

	u := nu.Build(id, createdAt)
	return &u, nil
}
