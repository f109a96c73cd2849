package app_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/repositories"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func clockAt(day string) *fixedClock {
	d, err := entities.ParseDate(day)
	if err != nil {
		panic(err)
	}
	return &fixedClock{now: d.Add(10 * time.Hour)}
}

// memData состояние хранилища в памяти для тестов сценариев.
type memData struct {
	users   map[string]entities.User
	authors map[string]entities.Author
	books   map[string]entities.Book
	loans   map[string]entities.Loan
}

func (d *memData) clone() *memData {
	c := &memData{
		users:   make(map[string]entities.User, len(d.users)),
		authors: make(map[string]entities.Author, len(d.authors)),
		books:   make(map[string]entities.Book, len(d.books)),
		loans:   make(map[string]entities.Loan, len(d.loans)),
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.authors {
		c.authors[k] = v
	}
	for k, v := range d.books {
		c.books[k] = v
	}
	for k, v := range d.loans {
		c.loans[k] = v
	}
	return c
}

// memStore реализует repositories.UnitOfWork. Транзакции сериализуются мьютексом
// и применяются целиком только при успехе fn.
type memStore struct {
	mu      sync.Mutex
	data    *memData
	txCount int
}

var _ repositories.UnitOfWork = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{data: (&memData{}).clone()}
}

func (s *memStore) Users() repositories.UserRepository     { return memUsers{s.data} }
func (s *memStore) Authors() repositories.AuthorRepository { return memAuthors{s.data} }
func (s *memStore) Books() repositories.BookRepository     { return memBooks{s.data} }
func (s *memStore) Loans() repositories.LoanRepository     { return memLoans{s.data} }

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txCount++
	work := s.data.clone()
	if err := fn(ctx, memTx{work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *memStore) addUser(id string) {
	s.data.users[id] = entities.User{ID: id, Name: "user " + id, Email: id + "@example.com"}
}

func (s *memStore) addBook(id string, total, available int) {
	s.data.books[id] = entities.Book{
		ID: id, Title: "book " + id, AuthorID: "a1",
		PublishedDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalCopies:   total, AvailableCopies: available,
	}
}

func (s *memStore) book(id string) entities.Book {
	return s.data.books[id]
}

func (s *memStore) loan(id string) entities.Loan {
	return s.data.loans[id]
}

type memTx struct{ d *memData }

func (t memTx) Users() repositories.UserRepository     { return memUsers{t.d} }
func (t memTx) Authors() repositories.AuthorRepository { return memAuthors{t.d} }
func (t memTx) Books() repositories.BookRepository     { return memBooks{t.d} }
func (t memTx) Loans() repositories.LoanRepository     { return memLoans{t.d} }

type memUsers struct{ d *memData }

func (r memUsers) Create(_ context.Context, u *entities.User) error {
	for _, existing := range r.d.users {
		if existing.Email == u.Email {
			return entities.ErrEmailTaken
		}
	}
	r.d.users[u.ID] = *u
	return nil
}

func (r memUsers) FindByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := r.d.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return &u, nil
}

func (r memUsers) FindByIDForUpdate(ctx context.Context, id string) (*entities.User, error) {
	return r.FindByID(ctx, id)
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r memUsers) List(_ context.Context, skip, limit int) ([]*entities.User, error) {
	out := make([]*entities.User, 0, len(r.d.users))
	for _, u := range r.d.users {
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, skip, limit), nil
}

func (r memUsers) Update(_ context.Context, u *entities.User) error {
	if _, ok := r.d.users[u.ID]; !ok {
		return entities.ErrUserNotFound
	}
	r.d.users[u.ID] = *u
	return nil
}

func (r memUsers) Delete(_ context.Context, id string) error {
	if _, ok := r.d.users[id]; !ok {
		return entities.ErrUserNotFound
	}
	delete(r.d.users, id)
	for lid, l := range r.d.loans {
		if l.UserID == id {
			delete(r.d.loans, lid)
		}
	}
	return nil
}

type memAuthors struct{ d *memData }

func (r memAuthors) Create(_ context.Context, a *entities.Author) error {
	r.d.authors[a.ID] = *a
	return nil
}

func (r memAuthors) FindByID(_ context.Context, id string) (*entities.Author, error) {
	a, ok := r.d.authors[id]
	if !ok {
		return nil, entities.ErrAuthorNotFound
	}
	return &a, nil
}

func (r memAuthors) FindByName(_ context.Context, name string) (*entities.Author, error) {
	for _, a := range r.d.authors {
		if a.Name == name {
			return &a, nil
		}
	}
	return nil, entities.ErrAuthorNotFound
}

func (r memAuthors) List(_ context.Context) ([]*entities.Author, error) {
	out := make([]*entities.Author, 0, len(r.d.authors))
	for _, a := range r.d.authors {
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memAuthors) Update(_ context.Context, a *entities.Author) error {
	if _, ok := r.d.authors[a.ID]; !ok {
		return entities.ErrAuthorNotFound
	}
	r.d.authors[a.ID] = *a
	return nil
}

func (r memAuthors) Delete(_ context.Context, id string) error {
	if _, ok := r.d.authors[id]; !ok {
		return entities.ErrAuthorNotFound
	}
	delete(r.d.authors, id)
	return nil
}

type memBooks struct{ d *memData }

func (r memBooks) Create(_ context.Context, b *entities.Book) error {
	r.d.books[b.ID] = *b
	return nil
}

func (r memBooks) FindByID(_ context.Context, id string) (*entities.Book, error) {
	b, ok := r.d.books[id]
	if !ok {
		return nil, entities.ErrBookNotFound
	}
	return &b, nil
}

func (r memBooks) FindByIDForUpdate(ctx context.Context, id string) (*entities.Book, error) {
	return r.FindByID(ctx, id)
}

func (r memBooks) FindByTitle(_ context.Context, title string) (*entities.Book, error) {
	for _, b := range r.d.books {
		if b.Title == title {
			return &b, nil
		}
	}
	return nil, entities.ErrBookNotFound
}

func (r memBooks) List(_ context.Context, f entities.BookFilter) ([]*entities.Book, error) {
	out := make([]*entities.Book, 0)
	for _, b := range r.d.books {
		if f.Title != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(f.Title)) {
			continue
		}
		if f.AuthorID != "" && b.AuthorID != f.AuthorID {
			continue
		}
		if f.Available != nil && *f.Available != (b.AvailableCopies > 0) {
			continue
		}
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return page(out, f.Skip, f.Limit), nil
}

func (r memBooks) ListByAuthor(ctx context.Context, authorID string) ([]*entities.Book, error) {
	return r.List(ctx, entities.BookFilter{AuthorID: authorID})
}

func (r memBooks) ListAll(ctx context.Context) ([]*entities.Book, error) {
	return r.List(ctx, entities.BookFilter{})
}

func (r memBooks) Update(_ context.Context, b *entities.Book) error {
	if _, ok := r.d.books[b.ID]; !ok {
		return entities.ErrBookNotFound
	}
	r.d.books[b.ID] = *b
	return nil
}

func (r memBooks) Delete(_ context.Context, id string) error {
	if _, ok := r.d.books[id]; !ok {
		return entities.ErrBookNotFound
	}
	delete(r.d.books, id)
	return nil
}

func (r memBooks) DecrementAvailable(_ context.Context, id string) error {
	b, ok := r.d.books[id]
	if !ok {
		return entities.ErrBookNotFound
	}
	if b.AvailableCopies <= 0 {
		return entities.ErrBookUnavailable
	}
	b.AvailableCopies--
	r.d.books[id] = b
	return nil
}

func (r memBooks) IncrementAvailable(_ context.Context, id string) error {
	b, ok := r.d.books[id]
	if !ok {
		return entities.ErrBookNotFound
	}
	if b.AvailableCopies < b.TotalCopies {
		b.AvailableCopies++
	}
	r.d.books[id] = b
	return nil
}

type memLoans struct{ d *memData }

func (r memLoans) Create(_ context.Context, l *entities.Loan) error {
	r.d.loans[l.ID] = *l
	return nil
}

func (r memLoans) FindByID(_ context.Context, id string) (*entities.Loan, error) {
	l, ok := r.d.loans[id]
	if !ok {
		return nil, entities.ErrLoanNotFound
	}
	return &l, nil
}

func (r memLoans) FindByIDForUpdate(ctx context.Context, id string) (*entities.Loan, error) {
	return r.FindByID(ctx, id)
}

func (r memLoans) List(_ context.Context, f repositories.LoanFilter) ([]*entities.Loan, error) {
	out := make([]*entities.Loan, 0)
	for _, l := range r.d.loans {
		if f.UserID != "" && l.UserID != f.UserID {
			continue
		}
		if f.OpenOnly && !l.IsOpen() {
			continue
		}
		if f.DueBefore != nil && !l.DueDate.Before(*f.DueBefore) {
			continue
		}
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LoanDate.Equal(out[j].LoanDate) {
			return out[i].LoanDate.Before(out[j].LoanDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memLoans) CountActiveByUser(_ context.Context, userID, exceptLoanID string) (int, error) {
	n := 0
	for _, l := range r.d.loans {
		if l.UserID == userID && l.IsOpen() && l.ID != exceptLoanID {
			n++
		}
	}
	return n, nil
}

func (r memLoans) Update(_ context.Context, l *entities.Loan) error {
	if _, ok := r.d.loans[l.ID]; !ok {
		return entities.ErrLoanNotFound
	}
	r.d.loans[l.ID] = *l
	return nil
}

func (r memLoans) Delete(_ context.Context, id string) error {
	if _, ok := r.d.loans[id]; !ok {
		return entities.ErrLoanNotFound
	}
	delete(r.d.loans, id)
	return nil
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return items[:0]
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
