package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hellobooks-backend/internal/domains/book/model"
	"hellobooks-backend/internal/domains/book/repository"
)

type bookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) ServiceInterface {
	return &bookService{repo: repo}
}

func (s *bookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	b := &model.Book{
		ID:           uuid.New(),
		Title:        req.Title,
		ISBN:         req.ISBN,
		Author:       req.Author,
		Genres:       req.Genres,
		Copies:       req.Copies,
		DateModified: now,
		CreatedAt:    now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) ListBooks(ctx context.Context, page, perPage int) ([]*model.Book, int, error) {
	return s.repo.List(ctx, page, perPage)
}

func (s *bookService) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.ISBN != nil {
		b.ISBN = *req.ISBN
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.Genres != nil {
		b.Genres = req.Genres
	}
	if req.Copies != nil {
		if *req.Copies < 0 {
			return nil, model.ErrNegativeCopies
		}
		b.Copies = *req.Copies
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
