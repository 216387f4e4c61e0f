package service_test

// In-memory repository stubs. Transactions degrade to direct calls: the
// services run their tx closures with a nil *gorm.DB in unit tests, so
// every Tx-variant here ignores its tx argument.

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/model"
	"github.com/paridu/pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Products ──────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	// staleStock, when set for a product, is what FindByID reports instead
	// of the stored value — it imitates a pre-flight read that raced another
	// checkout, so the guarded decrement is what has to catch the overdraw.
	staleStock map[uuid.UUID]int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func seedProduct(r *stubProductRepo, name, barcode string, price float64, stock, minStock int) *model.Product {
	p := &model.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: "General",
		Price:    decimal.NewFromFloat(price),
		Cost:     decimal.NewFromFloat(price / 2),
		Stock:    stock,
		MinStock: minStock,
		Barcode:  barcode,
		Active:   true,
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	if stale, ok := r.staleStock[id]; ok {
		cp := *p
		cp.Stock = stale
		return &cp, nil
	}
	return p, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode && p.Active {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		if filter.Search != "" && !strings.Contains(p.Name, filter.Search) && p.Barcode != filter.Search {
			continue
		}
		if filter.Active == "" && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Archive(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Active = false
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Active = true
	return nil
}

func (r *stubProductRepo) CountLowStock(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.Active && p.Stock <= p.MinStock {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Active && p.Stock <= p.MinStock {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	if p.Stock+delta < 0 {
		return repository.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) ReplaceAllTx(_ *gorm.DB, products []model.Product) error {
	r.products = make(map[uuid.UUID]*model.Product)
	for i := range products {
		p := products[i]
		r.products[p.ID] = &p
	}
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Customers ─────────────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func seedCustomer(r *stubCustomerRepo, name, phone string, points int, spent float64) *model.Customer {
	c := &model.Customer{
		ID:         uuid.New(),
		Name:       name,
		Phone:      phone,
		Points:     points,
		TotalSpent: decimal.NewFromFloat(spent),
		Active:     true,
	}
	r.customers[c.ID] = c
	return c
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok || !c.Active {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context, _ dto.CustomerFilter) ([]model.Customer, int64, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) ListAll(_ context.Context) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Archive(_ context.Context, id uuid.UUID) error {
	c, ok := r.customers[id]
	if !ok {
		return errors.New("not found")
	}
	c.Active = false
	return nil
}

func (r *stubCustomerRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Customer, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubCustomerRepo) UpdateTx(_ *gorm.DB, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) ReplaceAllTx(_ *gorm.DB, customers []model.Customer) error {
	r.customers = make(map[uuid.UUID]*model.Customer)
	for i := range customers {
		c := customers[i]
		r.customers[c.ID] = &c
	}
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// ── Sales ─────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales      map[uuid.UUID]*model.Sale
	createErr  error
	replaceLog []string
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	return r.all(), int64(len(r.sales)), nil
}

func (r *stubSaleRepo) ListRecent(_ context.Context, limit int) ([]model.Sale, error) {
	out := r.all()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubSaleRepo) ListAll(_ context.Context) ([]model.Sale, error) {
	return r.all(), nil
}

func (r *stubSaleRepo) TotalRevenue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.sales {
		total = total.Add(s.FinalAmount)
	}
	return total, nil
}

func (r *stubSaleRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.sales)), nil
}

func (r *stubSaleRepo) RevenueByDay(_ context.Context, since time.Time) ([]repository.DailyRevenue, error) {
	byDay := make(map[time.Time]decimal.Decimal)
	for _, s := range r.sales {
		if s.CreatedAt.Before(since) {
			continue
		}
		day := s.CreatedAt.Truncate(24 * time.Hour)
		byDay[day] = byDay[day].Add(s.FinalAmount)
	}
	var rows []repository.DailyRevenue
	for day, revenue := range byDay {
		rows = append(rows, repository.DailyRevenue{Day: day, Revenue: revenue})
	}
	return rows, nil
}

func (r *stubSaleRepo) ReplaceAllTx(_ *gorm.DB, sales []model.Sale) error {
	r.replaceLog = append(r.replaceLog, "sales")
	r.sales = make(map[uuid.UUID]*model.Sale)
	for i := range sales {
		s := sales[i]
		r.sales[s.ID] = &s
	}
	return nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

func (r *stubSaleRepo) all() []model.Sale {
	var out []model.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Stock history ─────────────────────────────────────────────────────────────

type stubHistoryRepo struct {
	entries   []model.StockHistory
	createErr error
}

func (r *stubHistoryRepo) Create(_ context.Context, h *model.StockHistory) error {
	return r.CreateTx(nil, h)
}

func (r *stubHistoryRepo) CreateTx(_ *gorm.DB, h *model.StockHistory) error {
	if r.createErr != nil {
		return r.createErr
	}
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *h)
	return nil
}

func (r *stubHistoryRepo) List(_ context.Context, filter dto.StockHistoryFilter) ([]model.StockHistory, int64, error) {
	var out []model.StockHistory
	for _, e := range r.entries {
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.ProductID != "" && e.ProductID.String() != filter.ProductID {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r *stubHistoryRepo) ListAll(_ context.Context) ([]model.StockHistory, error) {
	return r.entries, nil
}

func (r *stubHistoryRepo) ReplaceAllTx(_ *gorm.DB, entries []model.StockHistory) error {
	r.entries = entries
	return nil
}

var _ repository.StockHistoryRepository = (*stubHistoryRepo)(nil)

// ── Settings ──────────────────────────────────────────────────────────────────

type stubSettingRepo struct {
	values map[string]string
}

func newStubSettingRepo() *stubSettingRepo {
	return &stubSettingRepo{values: make(map[string]string)}
}

func (r *stubSettingRepo) Get(_ context.Context, key, fallback string) (string, error) {
	if v, ok := r.values[key]; ok {
		return v, nil
	}
	return fallback, nil
}

func (r *stubSettingRepo) Set(_ context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

var _ repository.SettingRepository = (*stubSettingRepo)(nil)
