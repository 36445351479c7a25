package service

import (
	"context"
	"time"

	"github.com/devanshyadav01/sweetshop/internal/errs"
	"github.com/devanshyadav01/sweetshop/internal/limiter"
	"github.com/devanshyadav01/sweetshop/internal/model"
	"github.com/devanshyadav01/sweetshop/internal/repository"
)

type fakeUsers struct {
	byEmail map[string]*model.User
	nextID  int64

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*model.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) (*model.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return nil, errs.ErrAlreadyExists
	}
	f.nextID++
	cpy := *u
	cpy.ID = f.nextID
	cpy.IsAdmin = len(f.byEmail) == 0 // first account is admin
	cpy.CreatedAt = time.Now()
	f.byEmail[u.Email] = &cpy
	c := cpy
	return &c, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	successErr error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}

func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return l.successErr
}

func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}

type fakeSweets struct {
	byID   map[int64]*model.Sweet
	nextID int64

	err error // returned from every call when set
}

var _ repository.SweetRepository = (*fakeSweets)(nil)

func newFakeSweets() *fakeSweets {
	return &fakeSweets{byID: map[int64]*model.Sweet{}}
}

func (f *fakeSweets) add(n model.NewSweet) *model.Sweet {
	f.nextID++
	s := &model.Sweet{
		ID:        f.nextID,
		Name:      n.Name,
		Category:  n.Category,
		Price:     n.Price,
		Quantity:  n.Quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.byID[s.ID] = s
	return s
}

func (f *fakeSweets) Create(_ context.Context, n model.NewSweet) (*model.Sweet, error) {
	if f.err != nil {
		return nil, f.err
	}
	c := *f.add(n)
	return &c, nil
}

func (f *fakeSweets) Get(_ context.Context, id int64) (*model.Sweet, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (f *fakeSweets) List(_ context.Context) ([]model.Sweet, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Sweet
	for _, s := range f.byID {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSweets) Search(_ context.Context, flt model.SweetFilter) ([]model.Sweet, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Sweet
	for _, s := range f.byID {
		if flt.Category != "" && s.Category != flt.Category {
			continue
		}
		if flt.MinPrice != nil && s.Price < *flt.MinPrice {
			continue
		}
		if flt.MaxPrice != nil && s.Price > *flt.MaxPrice {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSweets) Update(_ context.Context, id int64, up model.SweetUpdate) (*model.Sweet, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if up.Name != nil {
		s.Name = *up.Name
	}
	if up.Category != nil {
		s.Category = *up.Category
	}
	if up.Price != nil {
		s.Price = *up.Price
	}
	if up.Quantity != nil {
		s.Quantity = *up.Quantity
	}
	s.UpdatedAt = time.Now()
	c := *s
	return &c, nil
}

func (f *fakeSweets) Delete(_ context.Context, id int64) (*model.Sweet, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	delete(f.byID, id)
	return s, nil
}

func (f *fakeSweets) AdjustQuantity(_ context.Context, id int64, delta int64) (*model.Sweet, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if s.Quantity+delta < 0 {
		return nil, &errs.InsufficientQuantityError{Available: s.Quantity, Requested: -delta}
	}
	s.Quantity += delta
	s.UpdatedAt = time.Now()
	c := *s
	return &c, nil
}
