package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"storefront/libs"
	"storefront/models"
	"storefront/repositories"
)

type fakeCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	hits        int
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false
	}
	c.hits++
	return json.Unmarshal(raw, dest) == nil
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, _ := json.Marshal(value)
	c.data[key] = raw
}

func (c *fakeCache) InvalidatePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, prefix)
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
}

type fakePublisher struct {
	events []libs.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, ev libs.Event) error {
	p.events = append(p.events, ev)
	return p.err
}

func (p *fakePublisher) Close() {}

func (p *fakePublisher) types() []string {
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

type fakeMailer struct {
	sent []*models.Order
	err  error
}

func (m *fakeMailer) SendOrderConfirmation(order *models.Order) error {
	m.sent = append(m.sent, order)
	return m.err
}

func testNotifier(cache libs.Cache, pub libs.Publisher) CatalogNotifier {
	return NewCatalogNotifier(cache, pub, zap.NewNop())
}

// --- variants ---

type fakeVariantRepo struct {
	variants map[int64]*models.Variant
	nextID   int64
}

var _ repositories.VariantRepositoryInterface = (*fakeVariantRepo)(nil)

func newFakeVariantRepo(variants ...models.Variant) *fakeVariantRepo {
	r := &fakeVariantRepo{variants: map[int64]*models.Variant{}, nextID: 100}
	for i := range variants {
		v := variants[i]
		r.variants[v.ID] = &v
	}
	return r
}

func (r *fakeVariantRepo) ListByProduct(_ context.Context, productID int64) ([]models.Variant, error) {
	out := []models.Variant{}
	for _, v := range r.variants {
		if v.ProductID == productID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeVariantRepo) FindByID(_ context.Context, id int64) (*models.Variant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, fmt.Errorf("variant %d: %w", id, models.ErrNotFound)
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVariantRepo) CreateMany(_ context.Context, variants []models.Variant) error {
	for i := range variants {
		for _, existing := range r.variants {
			if existing.SKU == variants[i].SKU {
				return fmt.Errorf("sku %s: %w", variants[i].SKU, models.ErrConflict)
			}
		}
		r.nextID++
		variants[i].ID = r.nextID
		v := variants[i]
		r.variants[v.ID] = &v
	}
	return nil
}

func (r *fakeVariantRepo) Update(_ context.Context, v *models.Variant) error {
	if _, ok := r.variants[v.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *v
	r.variants[v.ID] = &cp
	return nil
}

func (r *fakeVariantRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.variants[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.variants, id)
	return nil
}

func (r *fakeVariantRepo) BulkUpdate(_ context.Context, updates []models.VariantStockPrice) error {
	for _, u := range updates {
		v, ok := r.variants[u.ID]
		if !ok {
			return models.ErrNotFound
		}
		if u.Price != nil {
			v.Price = *u.Price
		}
		if u.Stock != nil {
			v.Stock = *u.Stock
		}
	}
	return nil
}

// --- carts ---

type fakeLine struct {
	ID        int64
	VariantID int64
	Quantity  int
}

type fakeCartRepo struct {
	carts      map[string]*models.Cart
	lines      map[string][]fakeLine
	variants   *fakeVariantRepo
	nextLineID int64
}

var _ repositories.CartRepositoryInterface = (*fakeCartRepo)(nil)

func newFakeCartRepo(variants *fakeVariantRepo) *fakeCartRepo {
	return &fakeCartRepo{
		carts:    map[string]*models.Cart{},
		lines:    map[string][]fakeLine{},
		variants: variants,
	}
}

func (r *fakeCartRepo) FindActiveByUser(_ context.Context, userID int64) (*models.Cart, error) {
	for _, c := range r.carts {
		if c.Status == models.CartActive && c.UserID != nil && *c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeCartRepo) FindActiveBySession(_ context.Context, token string) (*models.Cart, error) {
	for _, c := range r.carts {
		if c.Status == models.CartActive && c.UserID == nil && c.SessionToken != nil && *c.SessionToken == token {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeCartRepo) Create(_ context.Context, c *models.Cart) error {
	cp := *c
	r.carts[c.ID] = &cp
	return nil
}

func (r *fakeCartRepo) Items(_ context.Context, cartID string) ([]models.CartItem, error) {
	items := []models.CartItem{}
	for _, l := range r.lines[cartID] {
		v := r.variants.variants[l.VariantID]
		items = append(items, models.CartItem{
			ID:          l.ID,
			CartID:      cartID,
			VariantID:   v.ID,
			ProductID:   v.ProductID,
			ProductName: v.ProductName,
			VariantName: v.Name,
			SKU:         v.SKU,
			UnitPrice:   v.Price,
			Quantity:    l.Quantity,
			Stock:       v.Stock,
			Available:   v.IsActive && v.ProductActive,
		})
	}
	return items, nil
}

func (r *fakeCartRepo) SetItemQuantity(_ context.Context, cartID string, variantID int64, quantity int) error {
	lines := r.lines[cartID]
	for i := range lines {
		if lines[i].VariantID == variantID {
			lines[i].Quantity = quantity
			return nil
		}
	}
	r.nextLineID++
	r.lines[cartID] = append(lines, fakeLine{ID: r.nextLineID, VariantID: variantID, Quantity: quantity})
	return nil
}

func (r *fakeCartRepo) DeleteItem(_ context.Context, cartID string, itemID int64) error {
	lines := r.lines[cartID]
	for i := range lines {
		if lines[i].ID == itemID {
			r.lines[cartID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakeCartRepo) Clear(_ context.Context, cartID string) error {
	delete(r.lines, cartID)
	return nil
}

func (r *fakeCartRepo) AssignUser(_ context.Context, cartID string, userID int64) error {
	c, ok := r.carts[cartID]
	if !ok {
		return models.ErrNotFound
	}
	c.UserID = &userID
	c.SessionToken = nil
	return nil
}

func (r *fakeCartRepo) Discard(_ context.Context, cartID string) error {
	delete(r.carts, cartID)
	delete(r.lines, cartID)
	return nil
}

// --- orders ---

type fakeOrderRepo struct {
	orders map[int64]*models.Order
	carts  *fakeCartRepo
	nextID int64
}

var _ repositories.OrderRepositoryInterface = (*fakeOrderRepo)(nil)

func newFakeOrderRepo(carts *fakeCartRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*models.Order{}, carts: carts}
}

func (r *fakeOrderRepo) Place(_ context.Context, o *models.Order) error {
	variants := r.carts.variants.variants
	for _, it := range o.Items {
		if variants[it.VariantID].Stock < it.Quantity {
			return models.ErrOutOfStock
		}
	}
	for _, it := range o.Items {
		variants[it.VariantID].Stock -= it.Quantity
	}
	if c, ok := r.carts.carts[o.CartID]; ok {
		c.Status = models.CartConverted
	}
	r.nextID++
	o.ID = r.nextID
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id int64) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByNumber(_ context.Context, number string) (*models.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == number {
			cp := *o
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID int64, _, _ int) ([]models.Order, int, error) {
	out := []models.Order{}
	for _, o := range r.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, len(out), nil
}

func (r *fakeOrderRepo) List(_ context.Context, status, _ string, _, _ int) ([]models.Order, int, error) {
	out := []models.Order{}
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, len(out), nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, from, to string) error {
	o, ok := r.orders[id]
	if !ok {
		return models.ErrNotFound
	}
	if o.Status != from {
		return models.ErrInvalidTransition
	}
	o.Status = to
	if to == models.OrderCancelled {
		for _, it := range o.Items {
			if v, ok := r.carts.variants.variants[it.VariantID]; ok {
				v.Stock += it.Quantity
			}
		}
	}
	return nil
}

func (r *fakeOrderRepo) Stats(_ context.Context, _ int) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{OrdersByStatus: map[string]int{}}
	for _, o := range r.orders {
		stats.OrdersByStatus[o.Status]++
		stats.TotalOrders++
		if o.Status != models.OrderCancelled {
			stats.Revenue += o.Total
		}
	}
	return stats, nil
}

// --- users ---

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

var _ repositories.UserRepositoryInterface = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return models.ErrConflict
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(_ context.Context, _ string, _, _ int) ([]models.User, int, error) {
	out := []models.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id int64, role string) error {
	u, ok := r.users[id]
	if !ok {
		return models.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// --- categories ---

type fakeCategoryRepo struct {
	categories    []models.Category
	productCounts map[int64]int
	nextID        int64
}

var _ repositories.CategoryRepositoryInterface = (*fakeCategoryRepo)(nil)

func (r *fakeCategoryRepo) List(_ context.Context, includeInactive bool) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range r.categories {
		if includeInactive || c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id int64) (*models.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			cp := c
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *models.Category) error {
	r.nextID++
	c.ID = 1000 + r.nextID
	r.categories = append(r.categories, *c)
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *models.Category) error {
	for i := range r.categories {
		if r.categories[i].ID == c.ID {
			r.categories[i] = *c
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakeCategoryRepo) CountChildren(_ context.Context, id int64) (int, error) {
	n := 0
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeCategoryRepo) CountProducts(_ context.Context, id int64) (int, error) {
	return r.productCounts[id], nil
}

// --- products and types ---

type fakeProductRepo struct {
	products    map[int64]*models.Product
	variants    *fakeVariantRepo
	searchCalls int
	items       []models.ProductListItem
	nextID      int64
}

var _ repositories.ProductRepositoryInterface = (*fakeProductRepo)(nil)

func newFakeProductRepo(variants *fakeVariantRepo, products ...models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[int64]*models.Product{}, variants: variants, nextID: 500}
	for i := range products {
		p := products[i]
		r.products[p.ID] = &p
	}
	return r
}

func (r *fakeProductRepo) Search(_ context.Context, f models.ProductFilter) ([]models.ProductListItem, int, error) {
	r.searchCalls++
	return r.items, len(r.items), nil
}

func (r *fakeProductRepo) Facets(_ context.Context, _ models.ProductFilter) (*models.Facets, error) {
	return &models.Facets{Attributes: []models.AttributeFacet{}}, nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *p
	cp.Variants, _ = r.variants.ListByProduct(ctx, id)
	return &cp, nil
}

func (r *fakeProductRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	for id, p := range r.products {
		if p.Slug == slug {
			return r.FindByID(ctx, id)
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeProductRepo) AdminList(_ context.Context, _ string, _, _ int) ([]models.Product, int, error) {
	out := []models.Product{}
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) Create(ctx context.Context, p *models.Product) error {
	r.nextID++
	p.ID = r.nextID
	for i := range p.Variants {
		p.Variants[i].ProductID = p.ID
	}
	if err := r.variants.CreateMany(ctx, p.Variants); err != nil {
		return err
	}
	cp := *p
	cp.Variants = nil
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *models.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) SetAttributeValues(_ context.Context, _ int64, _ []int64) error {
	return nil
}

func (r *fakeProductRepo) UpdateImage(_ context.Context, id int64, url, publicID string) error {
	p, ok := r.products[id]
	if !ok {
		return models.ErrNotFound
	}
	p.ImageURL = url
	p.ImagePublicID = publicID
	return nil
}

type fakeTypeRepo struct {
	types map[int64]*models.ProductType
	inUse map[int64]bool
}

var _ repositories.ProductTypeRepositoryInterface = (*fakeTypeRepo)(nil)

func (r *fakeTypeRepo) List(_ context.Context) ([]models.ProductType, error) {
	out := []models.ProductType{}
	for _, pt := range r.types {
		out = append(out, *pt)
	}
	return out, nil
}

func (r *fakeTypeRepo) FindByID(_ context.Context, id int64) (*models.ProductType, error) {
	pt, ok := r.types[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *pt
	return &cp, nil
}

func (r *fakeTypeRepo) Create(_ context.Context, pt *models.ProductType, _, _ []int64) error {
	pt.ID = int64(len(r.types) + 1)
	cp := *pt
	r.types[pt.ID] = &cp
	return nil
}

func (r *fakeTypeRepo) Update(_ context.Context, pt *models.ProductType, _, _ []int64) error {
	cp := *pt
	r.types[pt.ID] = &cp
	return nil
}

func (r *fakeTypeRepo) Delete(_ context.Context, id int64) error {
	delete(r.types, id)
	return nil
}

func (r *fakeTypeRepo) IsInUse(_ context.Context, id int64) (bool, error) {
	return r.inUse[id], nil
}
