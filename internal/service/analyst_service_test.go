package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/infra"
	"github.com/paridu/pos-backend/internal/model"
	"github.com/paridu/pos-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAnalystSvc(baseURL string) service.AnalystService {
	saleRepo := newStubSaleRepo()
	productRepo := newStubProductRepo()
	seedProduct(productRepo, "Chocolate Cake", "885004", 85, 2, 10)
	sale := &model.Sale{
		ID:            uuid.New(),
		FinalAmount:   decimal.NewFromInt(110),
		PaymentMethod: "cash",
		CreatedAt:     time.Now(),
	}
	saleRepo.sales[sale.ID] = sale

	client := infra.NewAnalystClient(baseURL, "test-key", "test-model")
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	return service.NewAnalystService(client, cb, saleRepo, productRepo)
}

func TestAsk_ReturnsModelAnswer(t *testing.T) {
	var captured infra.AnalystRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/generate", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(infra.AnalystResponse{Text: "Cake sells best on weekends."})
	}))
	defer srv.Close()

	svc := buildAnalystSvc(srv.URL)
	resp, err := svc.Ask(context.Background(), dto.AskAnalystRequest{Question: "What sells best?"})
	require.NoError(t, err)
	assert.False(t, resp.Fallback)
	assert.Equal(t, "Cake sells best on weekends.", resp.Answer)

	// Prompt carries the store snapshot and the question as separate turns
	require.Len(t, captured.Messages, 2)
	assert.Contains(t, captured.Messages[0].Text, "Chocolate Cake")
	assert.Equal(t, "What sells best?", captured.Messages[1].Text)
}

func TestAsk_FallsBackWhenServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := buildAnalystSvc(srv.URL)
	resp, err := svc.Ask(context.Background(), dto.AskAnalystRequest{Question: "anything"})
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.NotEmpty(t, resp.Answer)
}

func TestAsk_FallsBackWhenUnreachable(t *testing.T) {
	// Closed port — connection refused
	svc := buildAnalystSvc("http://127.0.0.1:1")
	resp, err := svc.Ask(context.Background(), dto.AskAnalystRequest{Question: "anything"})
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
}
