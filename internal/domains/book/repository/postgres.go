package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"hellobooks-backend/internal/domains/book/model"
	"hellobooks-backend/pkg/cache"
)

const bookCacheTTL = 15 * time.Minute

type postgresBookRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresBookRepository(pool *pgxpool.Pool, cache cache.Cache) BookRepository {
	return &postgresBookRepository{pool: pool, cache: cache}
}

func (r *postgresBookRepository) Create(ctx context.Context, b *model.Book) error {
	query := `
		INSERT INTO books (id, title, isbn, author, genres, copies, date_modified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.ISBN,
		b.Author,
		pq.Array(b.Genres),
		b.Copies,
		b.DateModified,
		b.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrISBNExists
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := model.CacheKey(id.String())

	var cached model.Book
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	query := `
		SELECT id, title, isbn, author, genres, copies, date_modified, created_at
		FROM books
		WHERE id = $1
	`

	b := &model.Book{}
	var genres []string
	err = r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.ISBN,
		&b.Author,
		pq.Array(&genres),
		&b.Copies,
		&b.DateModified,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	b.Genres = genres

	// Cache failures never fail the request.
	_ = r.cache.Set(ctx, cacheKey, b, bookCacheTTL)

	return b, nil
}

func (r *postgresBookRepository) List(ctx context.Context, page, perPage int) ([]*model.Book, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	query := `
		SELECT id, title, isbn, author, genres, copies, date_modified, created_at
		FROM books
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		b := &model.Book{}
		var genres []string
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.ISBN,
			&b.Author,
			pq.Array(&genres),
			&b.Copies,
			&b.DateModified,
			&b.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		b.Genres = genres
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read books: %w", err)
	}

	return books, total, nil
}

func (r *postgresBookRepository) Update(ctx context.Context, b *model.Book) error {
	query := `
		UPDATE books
		SET title = $2, isbn = $3, author = $4, genres = $5, copies = $6, date_modified = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.ISBN,
		b.Author,
		pq.Array(b.Genres),
		b.Copies,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	// Write-through invalidation: next read misses and loads fresh data.
	_ = r.cache.Delete(ctx, model.CacheKey(b.ID.String()))

	return nil
}

func (r *postgresBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	_ = r.cache.Delete(ctx, model.CacheKey(id.String()))

	return nil
}
