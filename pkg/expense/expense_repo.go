package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paydivvy/paydivvy/internal/money"
	log "github.com/sirupsen/logrus"
)

type ExpenseRepo interface {
	Store(ctx context.Context, userId int, expense Expense) error
	GetAll(ctx context.Context, userId int) ([]Expense, error)
	Update(ctx context.Context, userId int, expense Expense) (bool, error)
	Delete(ctx context.Context, userId int, expenseId string) (bool, error)
}

type ExpenseRepoImpl struct {
	db *pgxpool.Pool
}

func NewExpenseRepo(db *pgxpool.Pool) *ExpenseRepoImpl {
	return &ExpenseRepoImpl{db: db}
}

func (r *ExpenseRepoImpl) Store(ctx context.Context, userId int, expense Expense) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO expenses (id, user_id, name, category, due_date) VALUES ($1, $2, $3, $4, $5)`,
		expense.Id, userId, expense.Name, expense.Category, expense.DueDate,
	)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return err
	}

	if err := insertSplits(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		err := fmt.Errorf("could not commit expense: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *ExpenseRepoImpl) GetAll(ctx context.Context, userId int) ([]Expense, error) {
	query := `SELECT e.id, e.name, e.category, e.due_date, s.income_id, s.amount
				FROM expenses e JOIN expense_splits s ON s.expense_id = e.id
				WHERE e.user_id = $1
				ORDER BY e.due_date DESC, e.id, s.position`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var (
			id, name, category, incomeId string
			dueDate                      time.Time
			amount                       int64
		)
		if err := rows.Scan(&id, &name, &category, &dueDate, &incomeId, &amount); err != nil {
			err := fmt.Errorf("could not scan expense row: %w", err)
			log.Error(err)
			return nil, err
		}
		split := ExpenseSplit{IncomeId: incomeId, Amount: money.Cents(amount)}

		if n := len(expenses); n > 0 && expenses[n-1].Id == id {
			expenses[n-1].Splits = append(expenses[n-1].Splits, split)
			continue
		}
		expenses = append(expenses, Expense{
			Id:       id,
			Name:     name,
			Category: category,
			DueDate:  dueDate,
			Splits:   []ExpenseSplit{split},
		})
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over expense rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func (r *ExpenseRepoImpl) Update(ctx context.Context, userId int, expense Expense) (bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE expenses SET name = $1, category = $2, due_date = $3 WHERE id = $4 AND user_id = $5`,
		expense.Name, expense.Category, expense.DueDate, expense.Id, userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	// Splits are replaced wholesale; they are an ordered value list, not
	// individually addressable rows.
	if _, err := tx.Exec(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, expense.Id); err != nil {
		err := fmt.Errorf("could not clear splits: %w", err)
		log.Error(err)
		return false, err
	}
	if err := insertSplits(ctx, tx, expense); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		err := fmt.Errorf("could not commit expense update: %w", err)
		log.Error(err)
		return false, err
	}
	return true, nil
}

func (r *ExpenseRepoImpl) Delete(ctx context.Context, userId int, expenseId string) (bool, error) {
	// Splits go with the expense through ON DELETE CASCADE.
	tag, err := r.db.Exec(ctx, "DELETE FROM expenses WHERE id = $1 AND user_id = $2", expenseId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func insertSplits(ctx context.Context, tx pgx.Tx, expense Expense) error {
	for position, split := range expense.Splits {
		_, err := tx.Exec(ctx,
			`INSERT INTO expense_splits (expense_id, position, income_id, amount) VALUES ($1, $2, $3, $4)`,
			expense.Id, position, split.IncomeId, int64(split.Amount),
		)
		if err != nil {
			err := fmt.Errorf("could not store split %d of expense %s: %w", position, expense.Id, err)
			log.Error(err)
			return err
		}
	}
	return nil
}
