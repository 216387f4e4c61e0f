package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/infra"
	"github.com/paridu/pos-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

const analystFallbackAnswer = "The store analyst is unavailable right now. " +
	"Sales and inventory are unaffected; please try again in a few minutes."

// recentSalesWindow bounds how much history is serialized into the prompt.
const recentSalesWindow = 20

type AnalystService interface {
	Ask(ctx context.Context, req dto.AskAnalystRequest) (*dto.AskAnalystResponse, error)
}

type analystService struct {
	client      *infra.AnalystClient
	cb          *infra.CircuitBreaker
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

func NewAnalystService(
	client *infra.AnalystClient,
	cb *infra.CircuitBreaker,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) AnalystService {
	return &analystService{
		client:      client,
		cb:          cb,
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// Ask serializes a view of the store (the catalog plus recent sales) and
// sends it with the question to the hosted model. Any failure — network,
// open circuit, bad response — degrades to a canned answer with Fallback set;
// the endpoint itself never errors because the analyst is down.
func (s *analystService) Ask(ctx context.Context, req dto.AskAnalystRequest) (*dto.AskAnalystResponse, error) {
	contextText, err := s.buildContext(ctx)
	if err != nil {
		return nil, err
	}

	var answer string
	cbErr := s.cb.Execute(func() error {
		text, err := s.client.Generate(ctx, contextText, req.Question)
		if err != nil {
			return err
		}
		answer = text
		return nil
	})
	if cbErr != nil {
		log.Warn().Err(cbErr).Msg("analyst: generation failed, serving fallback")
		return &dto.AskAnalystResponse{Answer: analystFallbackAnswer, Fallback: true}, nil
	}

	return &dto.AskAnalystResponse{Answer: answer, Fallback: false}, nil
}

func (s *analystService) buildContext(ctx context.Context) (string, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return "", apperr.Persistence(err)
	}
	sales, err := s.saleRepo.ListRecent(ctx, recentSalesWindow)
	if err != nil {
		return "", apperr.Persistence(err)
	}

	var b strings.Builder
	b.WriteString("You are a retail analyst for a small shop. Answer using only the data below.\n\n")

	b.WriteString("Catalog:\n")
	if len(products) == 0 {
		b.WriteString("  empty\n")
	}
	for i := range products {
		p := &products[i]
		fmt.Fprintf(&b, "  %s | stock %d | price %s | cost %s\n",
			p.Name, p.Stock, p.Price.StringFixed(2), p.Cost.StringFixed(2))
	}

	b.WriteString("\nRecent sales (newest first):\n")
	if len(sales) == 0 {
		b.WriteString("  none\n")
	}
	for i := range sales {
		sale := &sales[i]
		fmt.Fprintf(&b, "  %s | %s | %d lines | total %s | %s\n",
			sale.CreatedAt.Format("2006-01-02 15:04"),
			sale.PaymentMethod,
			len(sale.Items),
			sale.FinalAmount.StringFixed(2),
			sale.ID)
	}

	return b.String(), nil
}
