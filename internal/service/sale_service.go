package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/model"
	"github.com/paridu/pos-backend/internal/repository"
	"github.com/paridu/pos-backend/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Loyalty ratio: one point per 10 currency units spent.
var loyaltyDivisor = decimal.NewFromInt(10)

type SaleService interface {
	ProcessSale(ctx context.Context, req dto.ProcessSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo         repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	historyRepo  repository.StockHistoryRepository
	dispatcher   *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	historyRepo repository.StockHistoryRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:         repo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		historyRepo:  historyRepo,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── ProcessSale ───────────────────────────────────────────────────────────────
// Turns a validated cart into one durable state transition:
//   1. Re-validate everything the UI should already have checked — the
//      processor is the sole authority for stock sufficiency.
//   2. Snapshot each cart line (name/price at sale time) and compute totals.
//   3. BEGIN TX: create sale+items, decrement stock, append one stock-history
//      entry per line, accrue loyalty points when a customer is linked.
//   4. COMMIT — all four collections move together or not at all.
//   5. (async) enqueue the sheet-sync job, best-effort.

func (s *saleService) ProcessSale(ctx context.Context, req dto.ProcessSaleRequest) (*dto.SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validationf("cart is empty")
	}
	if req.Discount.IsNegative() {
		return nil, apperr.Validationf("discount cannot be negative")
	}

	// Resolve products and compute totals (pre-flight, outside TX).
	type resolvedItem struct {
		productID uuid.UUID
		name      string
		price     decimal.Decimal
		quantity  int
		subtotal  decimal.Decimal
	}

	seen := make(map[uuid.UUID]int, len(req.Items))
	var resolved []resolvedItem
	total := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apperr.Validationf("invalid product_id %q", item.ProductID)
		}
		if item.Quantity < 1 {
			return nil, apperr.Validationf("quantity must be at least 1")
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apperr.NotFoundf("product %s", item.ProductID)
		}
		if !p.Active {
			return nil, apperr.Validationf("product %q is archived and cannot be sold", p.Name)
		}
		// Lines for the same product count against stock together.
		seen[pid] += item.Quantity
		if seen[pid] > p.Stock {
			return nil, apperr.Validationf("insufficient stock for %q: requested %d, available %d",
				p.Name, seen[pid], p.Stock)
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)
		resolved = append(resolved, resolvedItem{
			productID: pid,
			name:      p.Name,
			price:     p.Price,
			quantity:  item.Quantity,
			subtotal:  subtotal,
		})
	}

	if req.Discount.GreaterThan(total) {
		return nil, apperr.Validationf("discount exceeds cart total")
	}
	finalAmount := total.Sub(req.Discount)

	// Resolve the customer up front so a bad id fails before any mutation.
	var customerID *uuid.UUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, apperr.Validationf("invalid customer_id %q", *req.CustomerID)
		}
		if _, err := s.customerRepo.FindByID(ctx, cid); err != nil {
			return nil, apperr.NotFoundf("customer %s", *req.CustomerID)
		}
		customerID = &cid
	}

	sale := model.Sale{
		ID:            uuid.New(),
		TotalAmount:   total,
		Discount:      req.Discount,
		FinalAmount:   finalAmount,
		PaymentMethod: req.PaymentMethod,
		CustomerID:    customerID,
		CreatedAt:     time.Now(),
	}
	for _, r := range resolved {
		sale.Items = append(sale.Items, model.SaleItem{
			SaleID:      sale.ID,
			ProductID:   r.productID,
			ProductName: r.name,
			UnitPrice:   r.price,
			Quantity:    r.quantity,
			Subtotal:    r.subtotal,
		})
	}

	// One durability unit: sale + stock + history + loyalty commit together.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		for _, r := range resolved {
			if err := s.productRepo.UpdateStockTx(tx, r.productID, -r.quantity); err != nil {
				return fmt.Errorf("decrement stock of %q: %w", r.name, err)
			}
			saleRef := sale.ID
			entry := &model.StockHistory{
				ProductID: r.productID,
				Type:      model.StockMoveSale,
				Quantity:  -r.quantity,
				Note:      fmt.Sprintf("Sale #%s", sale.ID),
				SaleID:    &saleRef,
			}
			if err := s.historyRepo.CreateTx(tx, entry); err != nil {
				return err
			}
		}

		if customerID != nil {
			cust, err := s.customerRepo.FindByIDTx(tx, *customerID)
			if err != nil {
				return err
			}
			cust.TotalSpent = cust.TotalSpent.Add(total)
			cust.Points += int(total.Div(loyaltyDivisor).Floor().IntPart())
			if err := s.customerRepo.UpdateTx(tx, cust); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		// A losing race on the guarded decrement is a client-facing rejection,
		// not a storage fault: stock ran out between pre-flight and commit.
		if errors.Is(txErr, repository.ErrInsufficientStock) {
			return nil, apperr.Validationf("insufficient stock: another sale took the remaining units")
		}
		return nil, apperr.Persistence(txErr)
	}

	// Sheet sync is fire & forget — it must never fail the sale. The worker
	// decides whether auto-sync is actually enabled.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueSheetSync(ctx, worker.SheetSyncPayload{SaleID: sale.ID.String()})
	}

	resp := saleToResponse(&sale)
	if req.CashReceived != nil && req.PaymentMethod == "cash" && req.CashReceived.GreaterThanOrEqual(finalAmount) {
		change := req.CashReceived.Sub(finalAmount)
		resp.Change = &change
	}
	return resp, nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFoundf("sale %s", id)
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}
	var customerID *string
	if s.CustomerID != nil {
		cid := s.CustomerID.String()
		customerID = &cid
	}
	return &dto.SaleResponse{
		ID:            s.ID.String(),
		Items:         items,
		TotalAmount:   s.TotalAmount,
		Discount:      s.Discount,
		FinalAmount:   s.FinalAmount,
		PaymentMethod: s.PaymentMethod,
		CustomerID:    customerID,
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339),
	}
}
