package service

import (
	"context"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/model"
	"github.com/paridu/pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Archive(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := model.Customer{
		Name:       req.Name,
		Phone:      req.Phone,
		Points:     req.Points,
		TotalSpent: decimal.Zero,
		Active:     true,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, apperr.Persistence(err)
	}
	return customerToResponse(&c), nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFoundf("customer %s", id)
	}
	return customerToResponse(c), nil
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, *customerToResponse(&customers[i]))
	}
	return &dto.CustomerListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFoundf("customer %s", id)
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Points != nil {
		c.Points = *req.Points
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apperr.Persistence(err)
	}
	return customerToResponse(c), nil
}

func (s *customerService) Archive(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperr.NotFoundf("customer %s", id)
	}
	if err := s.repo.Archive(ctx, id); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		Phone:      c.Phone,
		Points:     c.Points,
		TotalSpent: c.TotalSpent,
	}
}
