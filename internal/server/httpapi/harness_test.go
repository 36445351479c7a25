package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devanshyadav01/sweetshop/internal/errs"
	"github.com/devanshyadav01/sweetshop/internal/limiter"
	"github.com/devanshyadav01/sweetshop/internal/model"
	"github.com/devanshyadav01/sweetshop/internal/repository"
	"github.com/devanshyadav01/sweetshop/internal/service"
	"github.com/devanshyadav01/sweetshop/internal/token"
)

// In-memory repositories so handler tests run the real service stack.

type memUsers struct {
	byEmail map[string]*model.User
	nextID  int64
}

var _ repository.UserRepository = (*memUsers)(nil)

func (m *memUsers) Create(_ context.Context, u *model.User) (*model.User, error) {
	if _, ok := m.byEmail[u.Email]; ok {
		return nil, errs.ErrAlreadyExists
	}
	m.nextID++
	cpy := *u
	cpy.ID = m.nextID
	cpy.IsAdmin = len(m.byEmail) == 0
	cpy.CreatedAt = time.Now()
	m.byEmail[u.Email] = &cpy
	c := cpy
	return &c, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

type memSweets struct {
	byID   map[int64]*model.Sweet
	nextID int64
}

var _ repository.SweetRepository = (*memSweets)(nil)

func (m *memSweets) Create(_ context.Context, n model.NewSweet) (*model.Sweet, error) {
	m.nextID++
	s := &model.Sweet{
		ID: m.nextID, Name: n.Name, Category: n.Category,
		Price: n.Price, Quantity: n.Quantity,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.byID[s.ID] = s
	c := *s
	return &c, nil
}

func (m *memSweets) Get(_ context.Context, id int64) (*model.Sweet, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (m *memSweets) List(_ context.Context) ([]model.Sweet, error) {
	var out []model.Sweet
	for _, s := range m.byID {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memSweets) Search(_ context.Context, f model.SweetFilter) ([]model.Sweet, error) {
	var out []model.Sweet
	for _, s := range m.byID {
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && s.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && s.Price > *f.MaxPrice {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *memSweets) Update(_ context.Context, id int64, up model.SweetUpdate) (*model.Sweet, error) {
	s, ok := m.byID[id]
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
	c := *s
	return &c, nil
}

func (m *memSweets) Delete(_ context.Context, id int64) (*model.Sweet, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	delete(m.byID, id)
	return s, nil
}

func (m *memSweets) AdjustQuantity(_ context.Context, id int64, delta int64) (*model.Sweet, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if s.Quantity+delta < 0 {
		return nil, &errs.InsufficientQuantityError{Available: s.Quantity, Requested: -delta}
	}
	s.Quantity += delta
	c := *s
	return &c, nil
}

type openLimiter struct{}

var _ limiter.Limiter = openLimiter{}

func (openLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	return true, 0, nil
}
func (openLimiter) Success(context.Context, string, []byte) error { return nil }
func (openLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	return false, 0, nil
}

type harness struct {
	router *chi.Mux
	sweets *memSweets
	users  *memUsers
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	users := &memUsers{byEmail: map[string]*model.User{}}
	sweets := &memSweets{byID: map[int64]*model.Sweet{}}
	iss := token.NewIssuer([]byte("test-key"), 7*24*time.Hour)

	srv := New(
		service.NewAuthService(users, iss, openLimiter{}),
		service.NewCatalogService(sweets),
		service.NewInventoryService(sweets),
		users,
		iss,
		zap.NewNop(),
	)
	return &harness{router: srv.Router(), sweets: sweets, users: users}
}

// register creates an account through the API and returns its token.
// The first call per harness yields the admin.
func (h *harness) register(t *testing.T, email string) string {
	t.Helper()
	res := h.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func (h *harness) do(t *testing.T, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}
