package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookmodel "hellobooks-backend/internal/domains/book/model"
	bookrepo "hellobooks-backend/internal/domains/book/repository"
	"hellobooks-backend/internal/domains/borrow/model"
	"hellobooks-backend/internal/domains/borrow/repository"
	userrepo "hellobooks-backend/internal/domains/user/repository"
	"hellobooks-backend/internal/shared"
	"hellobooks-backend/internal/shared/dates"
	"hellobooks-backend/internal/shared/pagination"
)

// Policy holds the lending rules the service enforces.
type Policy struct {
	// PeriodDays bounds the due date: at most this many days past "now".
	// The reference point is the evaluation-time clock, not the supplied
	// borrow date.
	PeriodDays int

	// MaxOpen caps simultaneously open loans per user.
	MaxOpen int
}

type borrowService struct {
	borrowRepo repository.BorrowRepository
	bookRepo   bookrepo.BookRepository
	userRepo   userrepo.UserRepository
	policy     Policy
	now        func() time.Time
}

func NewBorrowService(
	borrowRepo repository.BorrowRepository,
	bookRepo bookrepo.BookRepository,
	userRepo userrepo.UserRepository,
	policy Policy,
) ServiceInterface {
	return &borrowService{
		borrowRepo: borrowRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
		policy:     policy,
		now:        time.Now,
	}
}

// NewBorrowServiceWithClock lets tests pin "now" for the due-date bound.
func NewBorrowServiceWithClock(
	borrowRepo repository.BorrowRepository,
	bookRepo bookrepo.BookRepository,
	userRepo userrepo.UserRepository,
	policy Policy,
	now func() time.Time,
) ServiceInterface {
	return &borrowService{
		borrowRepo: borrowRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
		policy:     policy,
		now:        now,
	}
}

// BorrowBook runs the borrow checks in their fixed order: book exists,
// due-date format, due-date bound, copies available, open-loan cap. The
// order decides which failure wins when several hold at once.
func (s *borrowService) BorrowBook(ctx context.Context, caller shared.Caller, bookID string, req model.BorrowRequest) (*model.BorrowConfirmation, error) {
	// Step 1: Resolve the book and the caller's open-loan count.
	book, err := s.resolveBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	openCount, err := s.borrowRepo.CountOpenByUser(ctx, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("count open borrows: %w", err)
	}

	// Step 2: Due date must be a well-formed calendar date.
	due, err := dates.Parse(req.DueDate)
	if err != nil {
		return nil, model.ErrInvalidDueDate
	}

	// Step 3: Due date may not exceed the lending period from "now".
	if !dates.WithinPeriod(due, s.now(), s.policy.PeriodDays) {
		return nil, &model.DueDateTooFarError{Days: s.policy.PeriodDays}
	}

	// Step 4: A copy must be on the shelf.
	if book.Copies < 1 {
		return nil, &model.NoCopiesError{Title: book.Title}
	}

	// Step 5: The caller must be under the open-loan cap.
	if openCount > s.policy.MaxOpen-1 {
		return nil, &model.BorrowLimitError{Max: s.policy.MaxOpen}
	}

	// Step 6: Commit the record and the copy decrement atomically.
	borrowDate := req.BorrowDate
	if borrowDate == "" {
		borrowDate = dates.Format(s.now())
	}
	rec := &model.Record{
		UserEmail:    caller.Email,
		BorrowDate:   borrowDate,
		DueDate:      req.DueDate,
		BookID:       bookID,
		DateReturned: optionalDate(req.ReturnDate),
	}

	id, err := s.borrowRepo.CreateAndDecrementCopies(ctx, rec)
	if err != nil {
		if errors.Is(err, model.ErrNoCopies) {
			// A concurrent borrow took the last copy between the check
			// and the commit.
			return nil, &model.NoCopiesError{Title: book.Title}
		}
		return nil, err
	}

	return &model.BorrowConfirmation{
		BorrowID: id,
		Message: fmt.Sprintf("You have borrowed the book %s due on %s. Borrow ID: #%d",
			book.Title, req.DueDate, id),
	}, nil
}

// ReturnBook closes an open loan. A closed record reports "already
// returned" before any ownership check.
func (s *borrowService) ReturnBook(ctx context.Context, caller shared.Caller, borrowID int64, returnDate string) (*model.ReturnConfirmation, error) {
	rec, err := s.borrowRepo.GetByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}

	if !rec.Open() {
		return nil, model.ErrAlreadyReturned
	}
	if rec.UserEmail != caller.Email {
		return nil, model.ErrNotBorrower
	}

	book, err := s.resolveBook(ctx, rec.BookID)
	if err != nil {
		return nil, err
	}

	if returnDate == "" {
		returnDate = dates.Format(s.now())
	}

	if err := s.borrowRepo.CloseAndIncrementCopies(ctx, borrowID, returnDate, rec.BookID); err != nil {
		return nil, err
	}

	return &model.ReturnConfirmation{
		Message: fmt.Sprintf("The book %s has been returned", book.Title),
	}, nil
}

func (s *borrowService) BorrowingHistory(ctx context.Context, userEmail string, params pagination.Params) (*model.Listing, error) {
	records, total, err := s.borrowRepo.ListByUser(ctx, userEmail, params.PerPage, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("list borrows: %w", err)
	}
	if err := params.CheckRange(total); err != nil {
		return nil, err
	}

	listing := &model.Listing{Total: total}
	if total == 0 {
		listing.Note = "This user has not borrowed any books yet"
		listing.Items = []model.DisplayRecord{}
		return listing, nil
	}

	items, err := s.expand(ctx, records, userEmail)
	if err != nil {
		return nil, err
	}
	listing.Items = items
	return listing, nil
}

func (s *borrowService) BooksNotReturned(ctx context.Context, userEmail string) (*model.Listing, error) {
	// Distinguish "never borrowed anything" from "everything returned".
	_, total, err := s.borrowRepo.ListByUser(ctx, userEmail, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("count borrows: %w", err)
	}

	listing := &model.Listing{Total: total, Items: []model.DisplayRecord{}}
	if total == 0 {
		listing.Note = "This user has not borrowed any books yet"
		return listing, nil
	}

	records, err := s.borrowRepo.ListOpenByUser(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("list open borrows: %w", err)
	}
	if len(records) == 0 {
		listing.Note = "All books have been returned."
		return listing, nil
	}

	items, err := s.expand(ctx, records, userEmail)
	if err != nil {
		return nil, err
	}
	listing.Items = items
	return listing, nil
}

func (s *borrowService) BooksCurrentlyOut(ctx context.Context, caller shared.Caller, params pagination.Params) (*model.Listing, error) {
	// The capability was resolved by the auth layer; only the flag is
	// consulted here.
	if !caller.IsAdmin() {
		return nil, model.ErrAdminRequired
	}

	total, err := s.borrowRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count borrows: %w", err)
	}
	if total == 0 {
		return nil, model.ErrNoRecords
	}

	records, openTotal, err := s.borrowRepo.ListOpen(ctx, params.PerPage, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("list open borrows: %w", err)
	}
	if err := params.CheckRange(openTotal); err != nil {
		return nil, err
	}

	listing := &model.Listing{Total: openTotal, Items: []model.DisplayRecord{}}
	for _, rec := range records {
		book, err := s.resolveBook(ctx, rec.BookID)
		if err != nil {
			return nil, err
		}
		user, err := s.userRepo.GetByEmail(ctx, rec.UserEmail)
		if err != nil {
			return nil, fmt.Errorf("resolve user %s: %w", rec.UserEmail, err)
		}
		listing.Items = append(listing.Items, model.NewDisplayRecord(rec, book, user))
	}
	return listing, nil
}

// expand joins records with their book and the owning user, through the
// shared display-record helper.
func (s *borrowService) expand(ctx context.Context, records []*model.Record, userEmail string) ([]model.DisplayRecord, error) {
	user, err := s.userRepo.GetByEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", userEmail, err)
	}

	items := make([]model.DisplayRecord, 0, len(records))
	for _, rec := range records {
		book, err := s.resolveBook(ctx, rec.BookID)
		if err != nil {
			return nil, err
		}
		items = append(items, model.NewDisplayRecord(rec, book, user))
	}
	return items, nil
}

func (s *borrowService) resolveBook(ctx context.Context, bookID string) (*bookmodel.Book, error) {
	id, err := uuid.Parse(bookID)
	if err != nil {
		return nil, bookmodel.ErrBookNotFound
	}
	return s.bookRepo.GetByID(ctx, id)
}

func optionalDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
