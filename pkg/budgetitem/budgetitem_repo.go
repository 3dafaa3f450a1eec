package budgetitem

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paydivvy/paydivvy/internal/money"
	log "github.com/sirupsen/logrus"
)

type BudgetItemRepo interface {
	Store(ctx context.Context, userId int, item BudgetItem) error
	GetAll(ctx context.Context, userId int) ([]BudgetItem, error)
	Update(ctx context.Context, userId int, item BudgetItem) (bool, error)
	Delete(ctx context.Context, userId int, itemId string) (bool, error)
}

type BudgetItemRepoImpl struct {
	db *pgxpool.Pool
}

func NewBudgetItemRepo(db *pgxpool.Pool) *BudgetItemRepoImpl {
	return &BudgetItemRepoImpl{db: db}
}

func (r *BudgetItemRepoImpl) Store(ctx context.Context, userId int, item BudgetItem) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO budget_items (id, user_id, category_id, name, expected, received) VALUES ($1, $2, $3, $4, $5, $6)`,
		item.Id, userId, item.CategoryId, item.Name, int64(item.Expected), int64(item.Received),
	)
	if err != nil {
		err := fmt.Errorf("could not store budget item: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *BudgetItemRepoImpl) GetAll(ctx context.Context, userId int) ([]BudgetItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, category_id, name, expected, received FROM budget_items WHERE user_id = $1 ORDER BY name, id`,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not query budget items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var items []BudgetItem
	for rows.Next() {
		var (
			item               BudgetItem
			expected, received int64
		)
		if err := rows.Scan(&item.Id, &item.CategoryId, &item.Name, &expected, &received); err != nil {
			err := fmt.Errorf("could not scan budget item row: %w", err)
			log.Error(err)
			return nil, err
		}
		item.Expected = money.Cents(expected)
		item.Received = money.Cents(received)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over budget item rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return items, nil
}

func (r *BudgetItemRepoImpl) Update(ctx context.Context, userId int, item BudgetItem) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE budget_items SET category_id = $1, name = $2, expected = $3, received = $4 WHERE id = $5 AND user_id = $6`,
		item.CategoryId, item.Name, int64(item.Expected), int64(item.Received), item.Id, userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update budget item: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BudgetItemRepoImpl) Delete(ctx context.Context, userId int, itemId string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM budget_items WHERE id = $1 AND user_id = $2", itemId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete budget item: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
