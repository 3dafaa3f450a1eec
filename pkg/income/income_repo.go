package income

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paydivvy/paydivvy/internal/money"
	log "github.com/sirupsen/logrus"
)

type IncomeRepo interface {
	Store(ctx context.Context, userId int, income Income) error
	GetAll(ctx context.Context, userId int) ([]Income, error)
	Exists(ctx context.Context, userId int, incomeId string) (bool, error)
	Update(ctx context.Context, userId int, income Income) (bool, error)
	// DeleteWithCascade removes the income and reconciles every expense that
	// references it: the matching split is stripped, and expenses left with no
	// splits are deleted outright. The whole operation runs in one transaction,
	// so a failure leaves both collections untouched.
	DeleteWithCascade(ctx context.Context, userId int, incomeId string) (bool, error)
}

type IncomeRepoImpl struct {
	db *pgxpool.Pool
}

func NewIncomeRepo(db *pgxpool.Pool) *IncomeRepoImpl {
	return &IncomeRepoImpl{db: db}
}

func (r *IncomeRepoImpl) Store(ctx context.Context, userId int, income Income) error {
	query := `INSERT INTO incomes (id, user_id, date, source, expected, received)
				VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		income.Id,
		userId,
		income.Date,
		income.Source,
		int64(income.Expected),
		int64(income.Received),
	)
	if err != nil {
		err := fmt.Errorf("could not store income: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *IncomeRepoImpl) GetAll(ctx context.Context, userId int) ([]Income, error) {
	query := `SELECT id, date, source, expected, received FROM incomes
				WHERE user_id = $1 ORDER BY date DESC, id`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query incomes: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var incomes []Income
	for rows.Next() {
		var income Income
		var expected, received int64
		if err := rows.Scan(&income.Id, &income.Date, &income.Source, &expected, &received); err != nil {
			err := fmt.Errorf("could not scan income: %w", err)
			log.Error(err)
			return nil, err
		}
		income.Expected = money.Cents(expected)
		income.Received = money.Cents(received)
		incomes = append(incomes, income)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over income rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return incomes, nil
}

func (r *IncomeRepoImpl) Exists(ctx context.Context, userId int, incomeId string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM incomes WHERE user_id = $1 AND id = $2)",
		userId, incomeId,
	).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check income existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r *IncomeRepoImpl) Update(ctx context.Context, userId int, income Income) (bool, error) {
	query := `UPDATE incomes SET date = $1, source = $2, expected = $3, received = $4
				WHERE id = $5 AND user_id = $6`
	tag, err := r.db.Exec(ctx, query,
		income.Date,
		income.Source,
		int64(income.Expected),
		int64(income.Received),
		income.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update income: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IncomeRepoImpl) DeleteWithCascade(ctx context.Context, userId int, incomeId string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		err := fmt.Errorf("could not begin cascade transaction: %w", err)
		log.Error(err)
		return false, err
	}
	defer tx.Rollback(ctx)

	// Expense reconciliation first, income delete last; both commit together.
	_, err = tx.Exec(ctx,
		`DELETE FROM expense_splits s USING expenses e
			WHERE s.expense_id = e.id AND e.user_id = $1 AND s.income_id = $2`,
		userId, incomeId,
	)
	if err != nil {
		err := fmt.Errorf("could not strip splits for income %s: %w", incomeId, err)
		log.Error(err)
		return false, err
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM expenses e WHERE e.user_id = $1
			AND NOT EXISTS (SELECT 1 FROM expense_splits s WHERE s.expense_id = e.id)`,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not delete emptied expenses: %w", err)
		log.Error(err)
		return false, err
	}

	tag, err := tx.Exec(ctx,
		"DELETE FROM incomes WHERE user_id = $1 AND id = $2",
		userId, incomeId,
	)
	if err != nil {
		err := fmt.Errorf("could not delete income %s: %w", incomeId, err)
		log.Error(err)
		return false, err
	}
	if tag.RowsAffected() == 0 {
		// Income did not exist; the deferred rollback undoes nothing of note.
		return false, nil
	}

	if err := tx.Commit(ctx); err != nil {
		err := fmt.Errorf("could not commit cascade for income %s: %w", incomeId, err)
		log.Error(err)
		return false, err
	}
	return true, nil
}
