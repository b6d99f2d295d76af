// Package memory implementa los puertos de persistencia en memoria. Se usa con STORAGE_DRIVER=memory
// (desarrollo local sin PostgreSQL) y como adaptador en los tests de casos de uso.
package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

// Store almacenamiento en memoria. Las entidades se guardan por valor y los slices se clonan
// en cada escritura, de modo que nunca se comparte memoria con el llamador.
type Store struct {
	mu        sync.RWMutex
	teams     map[string]entity.Team
	users     map[string]entity.User
	stores    map[string]entity.Store
	products  map[string]entity.Product
	carts     map[string]entity.Cart
	cartItems map[string]entity.CartItem
	orders    map[string]entity.Order
	histories map[string]entity.History
	reports   map[string]entity.Report
	graphics  map[string]entity.Graphic
}

// NewStore construye un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		teams:     make(map[string]entity.Team),
		users:     make(map[string]entity.User),
		stores:    make(map[string]entity.Store),
		products:  make(map[string]entity.Product),
		carts:     make(map[string]entity.Cart),
		cartItems: make(map[string]entity.CartItem),
		orders:    make(map[string]entity.Order),
		histories: make(map[string]entity.History),
		reports:   make(map[string]entity.Report),
		graphics:  make(map[string]entity.Graphic),
	}
}

// base comparte el Store; dentro de una transacción el lock ya está tomado por el runner.
type base struct {
	s  *Store
	tx bool
}

func (b base) rlock() {
	if !b.tx {
		b.s.mu.RLock()
	}
}

func (b base) runlock() {
	if !b.tx {
		b.s.mu.RUnlock()
	}
}

func (b base) wlock() {
	if !b.tx {
		b.s.mu.Lock()
	}
}

func (b base) wunlock() {
	if !b.tx {
		b.s.mu.Unlock()
	}
}

// Accesores de repositorios fuera de transacción.
func (s *Store) Teams() *TeamRepo         { return &TeamRepo{base{s: s}} }
func (s *Store) Users() *UserRepo         { return &UserRepo{base{s: s}} }
func (s *Store) Stores() *StoreRepo       { return &StoreRepo{base{s: s}} }
func (s *Store) Products() *ProductRepo   { return &ProductRepo{base{s: s}} }
func (s *Store) Carts() *CartRepo         { return &CartRepo{base{s: s}} }
func (s *Store) CartItems() *CartItemRepo { return &CartItemRepo{base{s: s}} }
func (s *Store) Orders() *OrderRepo       { return &OrderRepo{base{s: s}} }
func (s *Store) Histories() *HistoryRepo  { return &HistoryRepo{base{s: s}} }
func (s *Store) Reports() *ReportRepo     { return &ReportRepo{base{s: s}} }
func (s *Store) Graphics() *GraphicRepo   { return &GraphicRepo{base{s: s}} }

type snapshot struct {
	teams     map[string]entity.Team
	users     map[string]entity.User
	stores    map[string]entity.Store
	products  map[string]entity.Product
	carts     map[string]entity.Cart
	cartItems map[string]entity.CartItem
	orders    map[string]entity.Order
	histories map[string]entity.History
	reports   map[string]entity.Report
	graphics  map[string]entity.Graphic
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		teams: maps.Clone(s.teams), users: maps.Clone(s.users), stores: maps.Clone(s.stores),
		products: maps.Clone(s.products), carts: maps.Clone(s.carts), cartItems: maps.Clone(s.cartItems),
		orders: maps.Clone(s.orders), histories: maps.Clone(s.histories), reports: maps.Clone(s.reports),
		graphics: maps.Clone(s.graphics),
	}
}

func (s *Store) restore(snap snapshot) {
	s.teams, s.users, s.stores = snap.teams, snap.users, snap.stores
	s.products, s.carts, s.cartItems = snap.products, snap.carts, snap.cartItems
	s.orders, s.histories, s.reports, s.graphics = snap.orders, snap.histories, snap.reports, snap.graphics
}

// runTx serializa la transacción con el lock de escritura y restaura el estado si fn falla.
func (s *Store) runTx(fn func(b base) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(base{s: s, tx: true}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunCart implementa cart.TxRunner.
func (s *Store) RunCart(_ context.Context, fn func(
	carts repository.CartRepository,
	items repository.CartItemRepository,
	orders repository.OrderRepository,
) error) error {
	return s.runTx(func(b base) error {
		return fn(&CartRepo{b}, &CartItemRepo{b}, &OrderRepo{b})
	})
}

// RunHistory implementa history.TxRunner.
func (s *Store) RunHistory(_ context.Context, fn func(histories repository.HistoryRepository) error) error {
	return s.runTx(func(b base) error {
		return fn(&HistoryRepo{b})
	})
}

// RunTeam implementa usecase.TeamTxRunner.
func (s *Store) RunTeam(_ context.Context, fn func(teams repository.TeamRepository, users repository.UserRepository) error) error {
	return s.runTx(func(b base) error {
		return fn(&TeamRepo{b}, &UserRepo{b})
	})
}

// ── helpers ──────────────────────────────────────────────────────────────────

var folder = cases.Fold()

// containsFold coincidencia parcial sin distinguir mayúsculas (incluye plegado Unicode: "Ñ" ~ "ñ").
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(folder.String(s), folder.String(substr))
}

func byCreated[T any](list []T, created func(T) time.Time, id func(T) string) []T {
	sort.SliceStable(list, func(i, j int) bool {
		ci, cj := created(list[i]), created(list[j])
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return id(list[i]) < id(list[j])
	})
	return list
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// ── Teams ───────────────────────────────────────────────────────────────────

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo adaptador en memoria de TeamRepository.
type TeamRepo struct{ base }

func (r *TeamRepo) Create(_ context.Context, t *entity.Team) error {
	r.wlock()
	defer r.wunlock()
	for _, existing := range r.s.teams {
		if existing.OwnerID == t.OwnerID {
			return domain.ErrDuplicate
		}
	}
	r.s.teams[t.ID] = *t
	return nil
}

func (r *TeamRepo) GetByID(_ context.Context, id string) (*entity.Team, error) {
	r.rlock()
	defer r.runlock()
	t, ok := r.s.teams[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *TeamRepo) GetByOwner(_ context.Context, ownerID string) (*entity.Team, error) {
	r.rlock()
	defer r.runlock()
	for _, t := range r.s.teams {
		if t.OwnerID == ownerID {
			cp := t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *TeamRepo) Update(_ context.Context, t *entity.Team) error {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.teams[t.ID]; ok {
		r.s.teams[t.ID] = *t
	}
	return nil
}

func (r *TeamRepo) Delete(_ context.Context, id string) (int64, error) {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.teams[id]; !ok {
		return 0, nil
	}
	delete(r.s.teams, id)
	return 1, nil
}

// ── Users ───────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo adaptador en memoria de UserRepository.
type UserRepo struct{ base }

func cloneUser(u entity.User) *entity.User {
	u.StoreIDs = slices.Clone(u.StoreIDs)
	return &u
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.wlock()
	defer r.wunlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *cloneUser(*u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.rlock()
	defer r.runlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.rlock()
	defer r.runlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.users[u.ID]; ok {
		r.s.users[u.ID] = *cloneUser(*u)
	}
	return nil
}

func (r *UserRepo) SetTeam(_ context.Context, userID, teamID string) error {
	r.wlock()
	defer r.wunlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.TeamID = teamID
	u.UpdatedAt = time.Now()
	r.s.users[userID] = u
	return nil
}

func (r *UserRepo) ListByTeam(_ context.Context, teamID string) ([]*entity.User, error) {
	r.rlock()
	defer r.runlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if u.TeamID == teamID {
			out = append(out, cloneUser(u))
		}
	}
	return byCreated(out, func(u *entity.User) time.Time { return u.CreatedAt }, func(u *entity.User) string { return u.ID }), nil
}

func (r *UserRepo) Delete(_ context.Context, id string) (int64, error) {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.users[id]; !ok {
		return 0, nil
	}
	delete(r.s.users, id)
	return 1, nil
}

// ── Stores ──────────────────────────────────────────────────────────────────

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo adaptador en memoria de StoreRepository.
type StoreRepo struct{ base }

func (r *StoreRepo) Create(_ context.Context, st *entity.Store) error {
	r.wlock()
	defer r.wunlock()
	r.s.stores[st.ID] = *st
	return nil
}

func (r *StoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	r.rlock()
	defer r.runlock()
	st, ok := r.s.stores[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *StoreRepo) Update(_ context.Context, st *entity.Store) error {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.stores[st.ID]; ok {
		r.s.stores[st.ID] = *st
	}
	return nil
}

func (r *StoreRepo) ListByTeam(_ context.Context, teamID string) ([]*entity.Store, error) {
	r.rlock()
	defer r.runlock()
	out := make([]*entity.Store, 0)
	for _, st := range r.s.stores {
		if st.TeamID == teamID {
			cp := st
			out = append(out, &cp)
		}
	}
	return byCreated(out, func(s *entity.Store) time.Time { return s.CreatedAt }, func(s *entity.Store) string { return s.ID }), nil
}

func (r *StoreRepo) Delete(_ context.Context, id string) (int64, error) {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.stores[id]; !ok {
		return 0, nil
	}
	delete(r.s.stores, id)
	return 1, nil
}

// ── Products ────────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo adaptador en memoria de ProductRepository.
type ProductRepo struct{ base }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.wlock()
	defer r.wunlock()
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.rlock()
	defer r.runlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Product, error) {
	r.rlock()
	defer r.runlock()
	out := make([]*entity.Product, 0, len(ids))
	for id := range idSet(ids) {
		if p, ok := r.s.products[id]; ok {
			cp := p
			out = append(out, &cp)
		}
	}
	return byCreated(out, func(p *entity.Product) time.Time { return p.CreatedAt }, func(p *entity.Product) string { return p.ID }), nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.products[p.ID]; ok {
		r.s.products[p.ID] = *p
	}
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.rlock()
	defer r.runlock()
	all := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.StoreID != f.StoreID || !containsFold(p.Name, f.Name) {
			continue
		}
		cp := p
		all = append(all, &cp)
	}
	byCreated(all, func(p *entity.Product) time.Time { return p.CreatedAt }, func(p *entity.Product) string { return p.ID })
	total := len(all)
	if f.Offset >= total {
		return []*entity.Product{}, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < total {
		end = f.Offset + f.Limit
	}
	return all[f.Offset:end], total, nil
}

func (r *ProductRepo) ListLowStock(_ context.Context, storeID string) ([]*entity.Product, error) {
	r.rlock()
	defer r.runlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.StoreID == storeID && p.IsLowStock() {
			cp := p
			out = append(out, &cp)
		}
	}
	return byCreated(out, func(p *entity.Product) time.Time { return p.CreatedAt }, func(p *entity.Product) string { return p.ID }), nil
}

func (r *ProductRepo) ListAll(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.rlock()
	defer r.runlock()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := p
		all = append(all, &cp)
	}
	byCreated(all, func(p *entity.Product) time.Time { return p.CreatedAt }, func(p *entity.Product) string { return p.ID })
	if offset >= len(all) {
		return []*entity.Product{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) (int64, error) {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.products[id]; !ok {
		return 0, nil
	}
	delete(r.s.products, id)
	return 1, nil
}

// ── Carts ───────────────────────────────────────────────────────────────────

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo adaptador en memoria de CartRepository.
type CartRepo struct{ base }

func cloneCart(c entity.Cart) *entity.Cart {
	c.Items = slices.Clone(c.Items)
	if c.Items == nil {
		c.Items = []string{}
	}
	return &c
}

func (r *CartRepo) Create(_ context.Context, c *entity.Cart) error {
	r.wlock()
	defer r.wunlock()
	for _, existing := range r.s.carts {
		if existing.StoreID == c.StoreID && existing.UserID == c.UserID {
			return domain.ErrDuplicate
		}
	}
	r.s.carts[c.ID] = *cloneCart(*c)
	return nil
}

func (r *CartRepo) GetByID(_ context.Context, id string) (*entity.Cart, error) {
	r.rlock()
	defer r.runlock()
	c, ok := r.s.carts[id]
	if !ok {
		return nil, nil
	}
	return cloneCart(c), nil
}

func (r *CartRepo) GetByStoreAndUser(_ context.Context, storeID, userID string) (*entity.Cart, error) {
	r.rlock()
	defer r.runlock()
	for _, c := range r.s.carts {
		if c.StoreID == storeID && c.UserID == userID {
			return cloneCart(c), nil
		}
	}
	return nil, nil
}

func (r *CartRepo) GetDetails(_ context.Context, id string) (*entity.CartDetails, error) {
	r.rlock()
	defer r.runlock()
	c, ok := r.s.carts[id]
	if !ok {
		return nil, nil
	}
	d := &entity.CartDetails{
		ID:          c.ID,
		StoreID:     c.StoreID,
		UserID:      c.UserID,
		Items:       make([]*entity.CartItemDetails, 0, len(c.Items)),
		TotalPrices: c.TotalPrices,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for _, itemID := range c.Items {
		item, ok := r.s.cartItems[itemID]
		if !ok {
			continue
		}
		p, ok := r.s.products[item.ProductID]
		if !ok {
			continue
		}
		d.Items = append(d.Items, &entity.CartItemDetails{
			CartItem: item,
			ProductDetails: entity.ProductDetails{
				Name:        p.Name,
				Description: p.Description,
				UnitPrice:   p.UnitPrice,
				Picture:     p.Picture,
			},
		})
	}
	return d, nil
}

// GetDetailsForUpdate en memoria la exclusión la da el lock de escritura de la transacción.
func (r *CartRepo) GetDetailsForUpdate(ctx context.Context, id string) (*entity.CartDetails, error) {
	return r.GetDetails(ctx, id)
}

func (r *CartRepo) AppendItems(_ context.Context, cartID string, itemIDs []string) error {
	r.wlock()
	defer r.wunlock()
	c, ok := r.s.carts[cartID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Items = append(slices.Clone(c.Items), itemIDs...)
	c.UpdatedAt = time.Now()
	r.s.carts[cartID] = c
	return nil
}

func (r *CartRepo) RemoveItem(_ context.Context, cartID, itemID string) error {
	r.wlock()
	defer r.wunlock()
	c, ok := r.s.carts[cartID]
	if !ok {
		return nil
	}
	c.Items = slices.DeleteFunc(slices.Clone(c.Items), func(id string) bool { return id == itemID })
	c.UpdatedAt = time.Now()
	r.s.carts[cartID] = c
	return nil
}

func (r *CartRepo) Delete(_ context.Context, id string) (int64, error) {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.carts[id]; !ok {
		return 0, nil
	}
	delete(r.s.carts, id)
	return 1, nil
}

// ── Cart items ──────────────────────────────────────────────────────────────

var _ repository.CartItemRepository = (*CartItemRepo)(nil)

// CartItemRepo adaptador en memoria de CartItemRepository.
type CartItemRepo struct{ base }

func (r *CartItemRepo) Create(_ context.Context, it *entity.CartItem) error {
	r.wlock()
	defer r.wunlock()
	for _, existing := range r.s.cartItems {
		if existing.CartID == it.CartID && existing.ProductID == it.ProductID {
			return domain.ErrDuplicate
		}
	}
	r.s.cartItems[it.ID] = *it
	return nil
}

func (r *CartItemRepo) GetByID(_ context.Context, id string) (*entity.CartItem, error) {
	r.rlock()
	defer r.runlock()
	it, ok := r.s.cartItems[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *CartItemRepo) GetByCartAndProduct(_ context.Context, cartID, productID string) (*entity.CartItem, error) {
	r.rlock()
	defer r.runlock()
	for _, it := range r.s.cartItems {
		if it.CartID == cartID && it.ProductID == productID {
			cp := it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CartItemRepo) Update(_ context.Context, it *entity.CartItem) error {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.cartItems[it.ID]; ok {
		r.s.cartItems[it.ID] = *it
	}
	return nil
}

func (r *CartItemRepo) Delete(_ context.Context, id string) (int64, error) {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.cartItems[id]; !ok {
		return 0, nil
	}
	delete(r.s.cartItems, id)
	return 1, nil
}

func (r *CartItemRepo) DeleteByCart(_ context.Context, cartID string) (int64, error) {
	r.wlock()
	defer r.wunlock()
	var n int64
	for id, it := range r.s.cartItems {
		if it.CartID == cartID {
			delete(r.s.cartItems, id)
			n++
		}
	}
	return n, nil
}

// CountCartItems cantidad de líneas almacenadas para cartID (ayuda para inspección y tests).
func (s *Store) CountCartItems(cartID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.cartItems {
		if it.CartID == cartID {
			n++
		}
	}
	return n
}

// ── Orders ──────────────────────────────────────────────────────────────────

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo adaptador en memoria de OrderRepository.
type OrderRepo struct{ base }

func cloneOrder(o entity.Order) *entity.Order {
	o.Items = slices.Clone(o.Items)
	return &o
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.wlock()
	defer r.wunlock()
	for _, existing := range r.s.orders {
		if existing.OrderNumber == o.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.orders[o.ID] = *cloneOrder(*o)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.rlock()
	defer r.runlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Order, error) {
	r.rlock()
	defer r.runlock()
	out := make([]*entity.Order, 0, len(ids))
	for id := range idSet(ids) {
		if o, ok := r.s.orders[id]; ok {
			out = append(out, cloneOrder(o))
		}
	}
	return byCreated(out, func(o *entity.Order) time.Time { return o.CreatedAt }, func(o *entity.Order) string { return o.ID }), nil
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.orders[o.ID]; ok {
		r.s.orders[o.ID] = *cloneOrder(*o)
	}
	return nil
}

func (r *OrderRepo) ListByTeam(_ context.Context, teamID, storeID string) ([]*entity.Order, error) {
	r.rlock()
	defer r.runlock()
	out := make([]*entity.Order, 0)
	for _, o := range r.s.orders {
		if o.TeamID == teamID && (storeID == "" || o.StoreID == storeID) {
			out = append(out, cloneOrder(o))
		}
	}
	return byCreated(out, func(o *entity.Order) time.Time { return o.CreatedAt }, func(o *entity.Order) string { return o.ID }), nil
}

func (r *OrderRepo) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	r.rlock()
	defer r.runlock()
	out := make([]*entity.Order, 0)
	for _, o := range r.s.orders {
		if o.OrderedBy == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return byCreated(out, func(o *entity.Order) time.Time { return o.CreatedAt }, func(o *entity.Order) string { return o.ID }), nil
}

func (r *OrderRepo) Delete(_ context.Context, id string) (int64, error) {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.orders[id]; !ok {
		return 0, nil
	}
	delete(r.s.orders, id)
	return 1, nil
}

// ── Histories ───────────────────────────────────────────────────────────────

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo adaptador en memoria de HistoryRepository.
type HistoryRepo struct{ base }

func cloneHistory(h entity.History) *entity.History {
	h.Evolutions = slices.Clone(h.Evolutions)
	return &h
}

func (r *HistoryRepo) Create(_ context.Context, h *entity.History) error {
	r.wlock()
	defer r.wunlock()
	for _, existing := range r.s.histories {
		if existing.ProductID == h.ProductID && existing.StoreID == h.StoreID && existing.TeamID == h.TeamID {
			return domain.ErrDuplicate
		}
	}
	r.s.histories[h.ID] = *cloneHistory(*h)
	return nil
}

func (r *HistoryRepo) GetByID(_ context.Context, id string) (*entity.History, error) {
	r.rlock()
	defer r.runlock()
	h, ok := r.s.histories[id]
	if !ok {
		return nil, nil
	}
	return cloneHistory(h), nil
}

func (r *HistoryRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.History, error) {
	r.rlock()
	defer r.runlock()
	out := make([]*entity.History, 0, len(ids))
	for id := range idSet(ids) {
		if h, ok := r.s.histories[id]; ok {
			out = append(out, cloneHistory(h))
		}
	}
	return byCreated(out, func(h *entity.History) time.Time { return h.CreatedAt }, func(h *entity.History) string { return h.ID }), nil
}

func (r *HistoryRepo) GetByKey(_ context.Context, productID, storeID, teamID string) (*entity.History, error) {
	r.rlock()
	defer r.runlock()
	return r.findByKey(productID, storeID, teamID), nil
}

// GetByKeyForUpdate en memoria la exclusión la da el lock de escritura de la transacción.
func (r *HistoryRepo) GetByKeyForUpdate(ctx context.Context, productID, storeID, teamID string) (*entity.History, error) {
	return r.GetByKey(ctx, productID, storeID, teamID)
}

func (r *HistoryRepo) findByKey(productID, storeID, teamID string) *entity.History {
	for _, h := range r.s.histories {
		if h.ProductID == productID && h.StoreID == storeID && h.TeamID == teamID {
			return cloneHistory(h)
		}
	}
	return nil
}

func (r *HistoryRepo) UpdateEvolutions(_ context.Context, id string, evolutions []entity.Evolution, updatedAt time.Time) error {
	r.wlock()
	defer r.wunlock()
	h, ok := r.s.histories[id]
	if !ok {
		return domain.ErrNotFound
	}
	h.Evolutions = slices.Clone(evolutions)
	h.UpdatedAt = updatedAt
	r.s.histories[id] = h
	return nil
}

func (r *HistoryRepo) ListByScope(_ context.Context, teamID, storeID string) ([]*entity.History, error) {
	r.rlock()
	defer r.runlock()
	out := make([]*entity.History, 0)
	for _, h := range r.s.histories {
		if h.TeamID == teamID && h.StoreID == storeID {
			out = append(out, cloneHistory(h))
		}
	}
	return byCreated(out, func(h *entity.History) time.Time { return h.CreatedAt }, func(h *entity.History) string { return h.ID }), nil
}

func (r *HistoryRepo) ListByProducts(_ context.Context, teamID, storeID string, productIDs []string) ([]*entity.History, error) {
	r.rlock()
	defer r.runlock()
	wanted := idSet(productIDs)
	out := make([]*entity.History, 0, len(productIDs))
	for _, h := range r.s.histories {
		if _, ok := wanted[h.ProductID]; ok && h.TeamID == teamID && h.StoreID == storeID {
			out = append(out, cloneHistory(h))
		}
	}
	return byCreated(out, func(h *entity.History) time.Time { return h.CreatedAt }, func(h *entity.History) string { return h.ID }), nil
}

// ── Reports ─────────────────────────────────────────────────────────────────

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo adaptador en memoria de ReportRepository.
type ReportRepo struct{ base }

func cloneReport(rp entity.Report) *entity.Report {
	rp.OrderIDs = slices.Clone(rp.OrderIDs)
	return &rp
}

func (r *ReportRepo) Create(_ context.Context, rp *entity.Report) error {
	r.wlock()
	defer r.wunlock()
	r.s.reports[rp.ID] = *cloneReport(*rp)
	return nil
}

func (r *ReportRepo) GetByID(_ context.Context, id string) (*entity.Report, error) {
	r.rlock()
	defer r.runlock()
	rp, ok := r.s.reports[id]
	if !ok {
		return nil, nil
	}
	return cloneReport(rp), nil
}

func (r *ReportRepo) Update(_ context.Context, rp *entity.Report) error {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.reports[rp.ID]; ok {
		r.s.reports[rp.ID] = *cloneReport(*rp)
	}
	return nil
}

func (r *ReportRepo) ListByScope(_ context.Context, teamID, storeID string) ([]*entity.Report, error) {
	r.rlock()
	defer r.runlock()
	out := make([]*entity.Report, 0)
	for _, rp := range r.s.reports {
		if rp.TeamID == teamID && (storeID == "" || rp.StoreID == storeID) {
			out = append(out, cloneReport(rp))
		}
	}
	return byCreated(out, func(x *entity.Report) time.Time { return x.CreatedAt }, func(x *entity.Report) string { return x.ID }), nil
}

func (r *ReportRepo) Delete(_ context.Context, id string) (int64, error) {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.reports[id]; !ok {
		return 0, nil
	}
	delete(r.s.reports, id)
	return 1, nil
}

// ── Graphics ────────────────────────────────────────────────────────────────

var _ repository.GraphicRepository = (*GraphicRepo)(nil)

// GraphicRepo adaptador en memoria de GraphicRepository.
type GraphicRepo struct{ base }

func cloneGraphic(g entity.Graphic) *entity.Graphic {
	g.HistoryIDs = slices.Clone(g.HistoryIDs)
	return &g
}

func (r *GraphicRepo) Create(_ context.Context, g *entity.Graphic) error {
	r.wlock()
	defer r.wunlock()
	r.s.graphics[g.ID] = *cloneGraphic(*g)
	return nil
}

func (r *GraphicRepo) GetByID(_ context.Context, id string) (*entity.Graphic, error) {
	r.rlock()
	defer r.runlock()
	g, ok := r.s.graphics[id]
	if !ok {
		return nil, nil
	}
	return cloneGraphic(g), nil
}

func (r *GraphicRepo) Update(_ context.Context, g *entity.Graphic) error {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.graphics[g.ID]; ok {
		r.s.graphics[g.ID] = *cloneGraphic(*g)
	}
	return nil
}

func (r *GraphicRepo) ListByScope(_ context.Context, teamID, storeID string) ([]*entity.Graphic, error) {
	r.rlock()
	defer r.runlock()
	out := make([]*entity.Graphic, 0)
	for _, g := range r.s.graphics {
		if g.TeamID == teamID && g.StoreID == storeID {
			out = append(out, cloneGraphic(g))
		}
	}
	return byCreated(out, func(x *entity.Graphic) time.Time { return x.CreatedAt }, func(x *entity.Graphic) string { return x.ID }), nil
}

func (r *GraphicRepo) Delete(_ context.Context, id string) (int64, error) {
	r.wlock()
	defer r.wunlock()
	if _, ok := r.s.graphics[id]; !ok {
		return 0, nil
	}
	delete(r.s.graphics, id)
	return 1, nil
}
