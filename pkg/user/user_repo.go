package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByGoogleId(ctx context.Context, googleId string) (User, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (u *RepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, email, display_name, provider, password_hash, google_id)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query,
		user.Uid,
		user.Email,
		user.DisplayName,
		user.Provider,
		user.PasswordHash,
		user.GoogleId,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *RepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.getUserBy(ctx, "uid", uid)
}

func (u *RepoImpl) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return u.getUserBy(ctx, "email", email)
}

func (u *RepoImpl) GetUserByGoogleId(ctx context.Context, googleId string) (User, error) {
	return u.getUserBy(ctx, "google_id", googleId)
}

func (u *RepoImpl) getUserBy(ctx context.Context, column, value string) (User, error) {
	query := fmt.Sprintf(`SELECT id, uid, email, display_name, provider, password_hash, google_id
				FROM users WHERE %s = $1`, column)
	var user User
	err := u.db.QueryRow(ctx, query, value).Scan(
		&user.Id,
		&user.Uid,
		&user.Email,
		&user.DisplayName,
		&user.Provider,
		&user.PasswordHash,
		&user.GoogleId,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user by %s: %v", column, err)
		return User{}, err
	}
	return user, nil
}
