package service

import (
	"context"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/model"
	"github.com/paridu/pos-backend/internal/repository"

	"github.com/google/uuid"
)

const defaultMinStock = 10

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Archive(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	ListLowStock(ctx context.Context) ([]dto.ProductResponse, error)
}

type productService struct {
	repo        repository.ProductRepository
	historyRepo repository.StockHistoryRepository
}

func NewProductService(
	repo repository.ProductRepository,
	historyRepo repository.StockHistoryRepository,
) ProductService {
	return &productService{repo: repo, historyRepo: historyRepo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Price.IsNegative() {
		return nil, apperr.Validationf("price cannot be negative")
	}
	if existing, err := s.repo.FindByBarcode(ctx, req.Barcode); err == nil && existing != nil {
		return nil, apperr.Validationf("barcode %q is already in use", req.Barcode)
	}

	minStock := defaultMinStock
	if req.MinStock != nil {
		minStock = *req.MinStock
	}
	p := model.Product{
		ID:       uuid.New(),
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Cost:     req.Cost,
		Stock:    req.Stock,
		MinStock: minStock,
		ImageURL: req.ImageURL,
		Barcode:  req.Barcode,
		Active:   true,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, apperr.Persistence(err)
	}

	// Opening stock enters the movement ledger like any other restock.
	if p.Stock > 0 {
		entry := &model.StockHistory{
			ProductID: p.ID,
			Type:      model.StockMoveImport,
			Quantity:  p.Stock,
			Note:      "Initial stock",
		}
		if err := s.historyRepo.Create(ctx, entry); err != nil {
			return nil, apperr.Persistence(err)
		}
	}
	return productToResponse(&p), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFoundf("product %s", id)
	}
	return productToResponse(p), nil
}

func (s *productService) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, apperr.NotFoundf("no active product with barcode %q", barcode)
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFoundf("product %s", id)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperr.Validationf("price cannot be negative")
		}
		p.Price = *req.Price
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, apperr.Validationf("cost cannot be negative")
		}
		p.Cost = *req.Cost
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Barcode != nil && *req.Barcode != p.Barcode {
		if existing, err := s.repo.FindByBarcode(ctx, *req.Barcode); err == nil && existing != nil {
			return nil, apperr.Validationf("barcode %q is already in use", *req.Barcode)
		}
		p.Barcode = *req.Barcode
	}

	// Stock is deliberately not updatable here: every stock change goes
	// through the inventory service so the movement ledger stays complete.

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apperr.Persistence(err)
	}
	return productToResponse(p), nil
}

func (s *productService) Archive(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperr.NotFoundf("product %s", id)
	}
	if err := s.repo.Archive(ctx, id); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperr.NotFoundf("product %s", id)
	}
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

func (s *productService) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return items, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Cost:     p.Cost,
		Stock:    p.Stock,
		MinStock: p.MinStock,
		ImageURL: p.ImageURL,
		Barcode:  p.Barcode,
		Active:   p.Active,
	}
}
