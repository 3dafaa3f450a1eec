package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type CategoryRepo interface {
	Store(ctx context.Context, userId int, category Category) error
	GetAll(ctx context.Context, userId int) ([]Category, error)
	Exists(ctx context.Context, userId int, categoryId string) (bool, error)
	Update(ctx context.Context, userId int, category Category) (bool, error)
}

type CategoryRepoImpl struct {
	db *pgxpool.Pool
}

func NewCategoryRepo(db *pgxpool.Pool) *CategoryRepoImpl {
	return &CategoryRepoImpl{db: db}
}

func (r *CategoryRepoImpl) Store(ctx context.Context, userId int, category Category) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO categories (id, user_id, name, color) VALUES ($1, $2, $3, $4)`,
		category.Id, userId, category.Name, category.Color,
	)
	if err != nil {
		err := fmt.Errorf("could not store category: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

// GetAll returns categories in creation order. Chart slices and report rows
// follow this ordering, so it has to be stable.
func (r *CategoryRepoImpl) GetAll(ctx context.Context, userId int) ([]Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, color FROM categories WHERE user_id = $1 ORDER BY position`,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.Id, &category.Name, &category.Color); err != nil {
			err := fmt.Errorf("could not scan category row: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over category rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepoImpl) Exists(ctx context.Context, userId int, categoryId string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`,
		categoryId, userId,
	).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check category existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r *CategoryRepoImpl) Update(ctx context.Context, userId int, category Category) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET name = $1, color = $2 WHERE id = $3 AND user_id = $4`,
		category.Name, category.Color, category.Id, userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update category: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
