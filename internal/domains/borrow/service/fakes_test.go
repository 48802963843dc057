package service_test

import (
	"context"
	"sort"

	"github.com/google/uuid"

	bookmodel "hellobooks-backend/internal/domains/book/model"
	"hellobooks-backend/internal/domains/borrow/model"
	usermodel "hellobooks-backend/internal/domains/user/model"
)

// In-memory stand-ins for the postgres repositories. They reproduce the
// contracts the service relies on: ErrNoCopies from the guarded decrement,
// ErrAlreadyReturned from the guarded close, insertion-order listings.

type fakeBookRepo struct {
	books map[uuid.UUID]*bookmodel.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uuid.UUID]*bookmodel.Book)}
}

func (f *fakeBookRepo) Create(_ context.Context, b *bookmodel.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id uuid.UUID) (*bookmodel.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, bookmodel.ErrBookNotFound
	}
	return b, nil
}

func (f *fakeBookRepo) List(_ context.Context, page, perPage int) ([]*bookmodel.Book, int, error) {
	var all []*bookmodel.Book
	for _, b := range f.books {
		all = append(all, b)
	}
	return all, len(all), nil
}

func (f *fakeBookRepo) Update(_ context.Context, b *bookmodel.Book) error {
	if _, ok := f.books[b.ID]; !ok {
		return bookmodel.ErrBookNotFound
	}
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.books[id]; !ok {
		return bookmodel.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*usermodel.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*usermodel.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *usermodel.User) error {
	if _, ok := f.users[u.Email]; ok {
		return usermodel.ErrEmailAlreadyExists
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*usermodel.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, usermodel.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*usermodel.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, usermodel.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

type fakeBorrowRepo struct {
	records []*model.Record
	nextID  int64
	books   *fakeBookRepo
}

func newFakeBorrowRepo(books *fakeBookRepo) *fakeBorrowRepo {
	return &fakeBorrowRepo{books: books}
}

func (f *fakeBorrowRepo) GetByID(_ context.Context, id int64) (*model.Record, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, model.ErrBorrowNotFound
}

func (f *fakeBorrowRepo) CountOpenByUser(_ context.Context, userEmail string) (int, error) {
	count := 0
	for _, rec := range f.records {
		if rec.UserEmail == userEmail && rec.Open() {
			count++
		}
	}
	return count, nil
}

func (f *fakeBorrowRepo) ListByUser(_ context.Context, userEmail string, limit, offset int) ([]*model.Record, int, error) {
	var all []*model.Record
	for _, rec := range f.records {
		if rec.UserEmail == userEmail {
			all = append(all, rec)
		}
	}
	sortByID(all)
	return pageOf(all, limit, offset), len(all), nil
}

func (f *fakeBorrowRepo) ListOpenByUser(_ context.Context, userEmail string) ([]*model.Record, error) {
	var open []*model.Record
	for _, rec := range f.records {
		if rec.UserEmail == userEmail && rec.Open() {
			open = append(open, rec)
		}
	}
	sortByID(open)
	return open, nil
}

func (f *fakeBorrowRepo) ListOpen(_ context.Context, limit, offset int) ([]*model.Record, int, error) {
	var open []*model.Record
	for _, rec := range f.records {
		if rec.Open() {
			open = append(open, rec)
		}
	}
	sortByID(open)
	return pageOf(open, limit, offset), len(open), nil
}

func (f *fakeBorrowRepo) CountAll(_ context.Context) (int, error) {
	return len(f.records), nil
}

func (f *fakeBorrowRepo) CreateAndDecrementCopies(ctx context.Context, rec *model.Record) (int64, error) {
	id, err := uuid.Parse(rec.BookID)
	if err != nil {
		return 0, bookmodel.ErrBookNotFound
	}
	book, err := f.books.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if book.Copies < 1 {
		return 0, model.ErrNoCopies
	}
	book.Copies--

	f.nextID++
	stored := *rec
	stored.ID = f.nextID
	f.records = append(f.records, &stored)
	return stored.ID, nil
}

func (f *fakeBorrowRepo) CloseAndIncrementCopies(ctx context.Context, id int64, returnDate, bookID string) error {
	rec, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !rec.Open() {
		return model.ErrAlreadyReturned
	}
	rec.DateReturned = &returnDate

	bid, err := uuid.Parse(bookID)
	if err != nil {
		return bookmodel.ErrBookNotFound
	}
	book, err := f.books.GetByID(ctx, bid)
	if err != nil {
		return err
	}
	book.Copies++
	return nil
}

func sortByID(records []*model.Record) {
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
}

func pageOf(records []*model.Record, limit, offset int) []*model.Record {
	if offset >= len(records) {
		return nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
