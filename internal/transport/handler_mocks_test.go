package transport

import (
	"context"
	"sort"
	"strings"
	"sync"

	"tienda-api/internal/domain"
	"tienda-api/internal/repository"
)

// mockStore is an in-memory Store used by the handler tests. Entity-specific
// behavior (id assignment, patching, uniqueness) is injected through the hook
// functions so each resource test can build one with a few lines.
type mockStore[T repository.Record] struct {
	mu     sync.Mutex
	items  map[int]*T
	nextID int

	setID     func(record *T, id int)
	setActive func(record *T, active bool)
	apply     func(record *T, patch map[string]any)
	// uniqueKey returns the value guarded by a unique constraint, or ""
	// when the entity has none.
	uniqueKey func(record *T) string
}

func newMockStore[T repository.Record](
	setID func(*T, int),
	setActive func(*T, bool),
	apply func(*T, map[string]any),
	uniqueKey func(*T) string,
) *mockStore[T] {
	return &mockStore[T]{
		items:     make(map[int]*T),
		nextID:    1,
		setID:     setID,
		setActive: setActive,
		apply:     apply,
		uniqueKey: uniqueKey,
	}
}

func (m *mockStore[T]) Create(ctx context.Context, record *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if key := m.uniqueKey(record); key != "" {
		for _, existing := range m.items {
			if strings.EqualFold(m.uniqueKey(existing), key) {
				return repository.ErrDuplicate
			}
		}
	}

	m.setID(record, m.nextID)
	m.items[m.nextID] = record
	m.nextID++
	return nil
}

func (m *mockStore[T]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	records := []T{}
	for _, id := range ids {
		if (*m.items[id]).Active() {
			records = append(records, *m.items[id])
		}
	}
	return records, nil
}

func (m *mockStore[T]) FindByID(ctx context.Context, id int) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.items[id]
	if !ok || !(*record).Active() {
		return nil, repository.ErrNotFound
	}
	return record, nil
}

func (m *mockStore[T]) Update(ctx context.Context, id int, patch map[string]any) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !(*record).Active() {
		return nil, repository.ErrInactive
	}

	m.apply(record, patch)
	return record, nil
}

func (m *mockStore[T]) Deactivate(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.setActive(record, false)
	return nil
}

func (m *mockStore[T]) AssertActive(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !(*record).Active() {
		return repository.ErrInactive
	}
	return nil
}

func (m *mockStore[T]) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func newMockCountryStore() *mockStore[domain.Country] {
	return newMockStore(
		func(c *domain.Country, id int) { c.ID = id },
		func(c *domain.Country, active bool) { c.IsActive = active },
		func(c *domain.Country, patch map[string]any) {
			if v, ok := patch["nombre"]; ok {
				c.Nombre = v.(string)
			}
		},
		func(c *domain.Country) string { return c.Nombre },
	)
}

func newMockProvinceStore() *mockStore[domain.Province] {
	return newMockStore(
		func(p *domain.Province, id int) { p.ID = id },
		func(p *domain.Province, active bool) { p.IsActive = active },
		func(p *domain.Province, patch map[string]any) {
			if v, ok := patch["nombre"]; ok {
				p.Nombre = v.(string)
			}
			if v, ok := patch["pais_id"]; ok {
				p.PaisID = v.(int)
			}
		},
		func(p *domain.Province) string { return p.Nombre },
	)
}

func newMockPriceStore() *mockStore[domain.Price] {
	return newMockStore(
		func(p *domain.Price, id int) { p.ID = id },
		func(p *domain.Price, active bool) { p.IsActive = active },
		func(p *domain.Price, patch map[string]any) {
			if v, ok := patch["precio_compra"]; ok {
				p.PrecioCompra = v.(float64)
			}
			if v, ok := patch["precio_venta"]; ok {
				p.PrecioVenta = v.(float64)
			}
		},
		func(p *domain.Price) string { return "" },
	)
}

// mockUserRepository backs the auth handler tests.
type mockUserRepository struct {
	*mockStore[domain.User]
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		mockStore: newMockStore(
			func(u *domain.User, id int) { u.ID = id },
			func(u *domain.User, active bool) { u.IsActive = active },
			func(u *domain.User, patch map[string]any) {
				if v, ok := patch["email"]; ok {
					u.Email = v.(string)
				}
				if v, ok := patch["password"]; ok {
					u.Password = v.(string)
				}
				if v, ok := patch["username"]; ok {
					u.Username = v.(string)
				}
				if v, ok := patch["nombre"]; ok {
					u.Nombre = v.(string)
				}
				if v, ok := patch["apellido"]; ok {
					u.Apellido = v.(string)
				}
				if v, ok := patch["dni"]; ok {
					u.DNI = v.(string)
				}
				if v, ok := patch["rol"]; ok {
					u.Rol = v.(domain.Rol)
				}
			},
			func(u *domain.User) string { return u.Email },
		),
	}
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.items {
		if user.Email == email && user.IsActive {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}
