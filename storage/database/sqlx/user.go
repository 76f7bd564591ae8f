package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	var exists bool
	var err error
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
		}
		query, args, qerr := sqlx.In(`SELECT EXISTS (SELECT 1 FROM "user" WHERE email = ? AND id NOT IN (?))`, email, ids)
		if qerr != nil {
			return errors.Wrap(qerr, "building uniqueness query")
		}
		err = repo.db.GetContext(ctx, &exists, repo.db.Rebind(query), args...)
	} else {
		err = repo.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM "user" WHERE email = $1)`, email)
	}
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO "user" (id, email, password_hash, first_name, last_name, role, market, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :first_name, :last_name, :role, :market, :created_at, :updated_at)`,
		usr,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) UpsertUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		return repo.CreateUser(ctx, usr)
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO "user" (id, email, password_hash, first_name, last_name, role, market, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :first_name, :last_name, :role, :market, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE
		SET email         = EXCLUDED.email,
		    password_hash = EXCLUDED.password_hash,
		    first_name    = EXCLUDED.first_name,
		    last_name     = EXCLUDED.last_name,
		    role          = EXCLUDED.role,
		    market        = EXCLUDED.market,
		    updated_at    = EXCLUDED.updated_at`,
		usr,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "upserting user")
	}
	return usr, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrNotFound
	}
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `SELECT * FROM "user" WHERE id = $1`, id)
	if err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by ID")
	}
	return usr, nil
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `SELECT * FROM "user" WHERE email = $1`, email)
	if err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by email")
	}
	return usr, nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE "user"
		SET email         = :email,
		    password_hash = :password_hash,
		    first_name    = :first_name,
		    last_name     = :last_name,
		    role          = :role,
		    market        = :market,
		    updated_at    = :updated_at
		WHERE id = :id`,
		usr,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}
