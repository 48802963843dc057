package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	bookmodel "hellobooks-backend/internal/domains/book/model"
	"hellobooks-backend/internal/domains/borrow/model"
	"hellobooks-backend/pkg/cache"
	"hellobooks-backend/pkg/database"
)

type postgresBorrowRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresBorrowRepository(pool *pgxpool.Pool, cache cache.Cache) BorrowRepository {
	return &postgresBorrowRepository{pool: pool, cache: cache}
}

const recordColumns = `id, user_email, borrow_date, due_date, book_id, date_returned`

func (r *postgresBorrowRepository) GetByID(ctx context.Context, id int64) (*model.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM borrows WHERE id = $1`, recordColumns)

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBorrowNotFound
		}
		return nil, fmt.Errorf("failed to get borrow record: %w", err)
	}
	return rec, nil
}

func (r *postgresBorrowRepository) CountOpenByUser(ctx context.Context, userEmail string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM borrows WHERE user_email = $1 AND date_returned IS NULL`,
		userEmail,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open borrows: %w", err)
	}
	return count, nil
}

func (r *postgresBorrowRepository) ListByUser(ctx context.Context, userEmail string, limit, offset int) ([]*model.Record, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM borrows WHERE user_email = $1`, userEmail,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count borrows: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM borrows
		WHERE user_email = $1
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`, recordColumns)

	rows, err := r.pool.Query(ctx, query, userEmail, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list borrows: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *postgresBorrowRepository) ListOpenByUser(ctx context.Context, userEmail string) ([]*model.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM borrows
		WHERE user_email = $1 AND date_returned IS NULL
		ORDER BY id ASC
	`, recordColumns)

	rows, err := r.pool.Query(ctx, query, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list open borrows: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (r *postgresBorrowRepository) ListOpen(ctx context.Context, limit, offset int) ([]*model.Record, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM borrows WHERE date_returned IS NULL`,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count open borrows: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM borrows
		WHERE date_returned IS NULL
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`, recordColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list open borrows: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *postgresBorrowRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM borrows`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count borrows: %w", err)
	}
	return count, nil
}

// CreateAndDecrementCopies commits the ledger insert and the copy-count
// decrement together. The guarded UPDATE keeps copies from ever going
// negative when two borrows race for the last copy.
func (r *postgresBorrowRepository) CreateAndDecrementCopies(ctx context.Context, rec *model.Record) (int64, error) {
	id, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		result, err := tx.Exec(ctx, `
			UPDATE books
			SET copies = copies - 1, date_modified = NOW()
			WHERE id = $1 AND copies >= 1
		`, rec.BookID)
		if err != nil {
			return 0, fmt.Errorf("failed to decrement copies: %w", err)
		}
		if result.RowsAffected() == 0 {
			// Lost the race for the last copy (existence was already
			// checked before the transaction started).
			return 0, model.ErrNoCopies
		}

		var id int64
		err = tx.QueryRow(ctx, `
			INSERT INTO borrows (user_email, borrow_date, due_date, book_id, date_returned)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, rec.UserEmail, rec.BorrowDate, rec.DueDate, rec.BookID, rec.DateReturned).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to insert borrow record: %w", err)
		}
		return id, nil
	})
	if err != nil {
		return 0, err
	}

	_ = r.cache.Delete(ctx, bookmodel.CacheKey(rec.BookID))

	return id, nil
}

// CloseAndIncrementCopies commits the return date and the copy-count
// increment together. The IS NULL guard makes the record's single
// mutation irreversible even under concurrent returns.
func (r *postgresBorrowRepository) CloseAndIncrementCopies(ctx context.Context, id int64, returnDate, bookID string) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			UPDATE borrows
			SET date_returned = $2
			WHERE id = $1 AND date_returned IS NULL
		`, id, returnDate)
		if err != nil {
			return fmt.Errorf("failed to close borrow record: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrAlreadyReturned
		}

		_, err = tx.Exec(ctx, `
			UPDATE books
			SET copies = copies + 1, date_modified = NOW()
			WHERE id = $1
		`, bookID)
		if err != nil {
			return fmt.Errorf("failed to increment copies: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = r.cache.Delete(ctx, bookmodel.CacheKey(bookID))

	return nil
}

func scanRecord(row pgx.Row) (*model.Record, error) {
	rec := &model.Record{}
	err := row.Scan(
		&rec.ID,
		&rec.UserEmail,
		&rec.BorrowDate,
		&rec.DueDate,
		&rec.BookID,
		&rec.DateReturned,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func collectRecords(rows pgx.Rows) ([]*model.Record, error) {
	var records []*model.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan borrow record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read borrow records: %w", err)
	}
	return records, nil
}
