// internal/adapters/in/http/handlers/delivery_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	usecase "reliefdesk/internal/application/usecase"
	"reliefdesk/internal/domain/common"
	deldom "reliefdesk/internal/domain/delivery"
	stockdom "reliefdesk/internal/domain/stock"
)

// ─── minimal stubs ────────────────────────────────────────────────────────────

type stubBatch struct{ ops []func() }

func (b *stubBatch) Commit(context.Context) error {
	for _, op := range b.ops {
		op()
	}
	return nil
}

type stubBatches struct{}

func (stubBatches) NewBatch() common.Batch { return &stubBatch{} }

type stubStocks struct {
	records map[string]stockdom.Record // by articleID
}

func (s *stubStocks) GetByArticleID(_ context.Context, articleID string) (stockdom.Record, error) {
	rec, ok := s.records[articleID]
	if !ok {
		return stockdom.Record{}, stockdom.ErrNotFound
	}
	return rec, nil
}

func (s *stubStocks) List(context.Context) ([]stockdom.Record, error) { return nil, nil }

func (s *stubStocks) StageCreate(b common.Batch, rec stockdom.Record) (stockdom.Record, error) {
	rec.ID = "stk-" + rec.ArticleID
	b.(*stubBatch).ops = append(b.(*stubBatch).ops, func() { s.records[rec.ArticleID] = rec })
	return rec, nil
}

func (s *stubStocks) StageAdjust(b common.Batch, id string, delta int64) error {
	b.(*stubBatch).ops = append(b.(*stubBatch).ops, func() {
		for k, rec := range s.records {
			if rec.ID == id {
				rec.Quantity += delta
				s.records[k] = rec
			}
		}
	})
	return nil
}

type stubDeliveries struct {
	byID map[string]deldom.Delivery
}

func (s *stubDeliveries) GetByID(_ context.Context, id string) (deldom.Delivery, error) {
	d, ok := s.byID[id]
	if !ok {
		return deldom.Delivery{}, deldom.ErrNotFound
	}
	return d, nil
}

func (s *stubDeliveries) List(context.Context, *time.Time, *time.Time) ([]deldom.Delivery, error) {
	return nil, nil
}

func (s *stubDeliveries) Update(_ context.Context, id string, _ deldom.UpdatePatch) (deldom.Delivery, error) {
	return deldom.Delivery{}, deldom.ErrNotFound
}

func (s *stubDeliveries) StageCreate(b common.Batch, d deldom.Delivery) (deldom.Delivery, error) {
	d.ID = "del-001"
	b.(*stubBatch).ops = append(b.(*stubBatch).ops, func() { s.byID[d.ID] = d })
	return d, nil
}

func (s *stubDeliveries) StageDelete(b common.Batch, id string) error {
	b.(*stubBatch).ops = append(b.(*stubBatch).ops, func() { delete(s.byID, id) })
	return nil
}

func newDeliveryHandlerForTest(stocks *stubStocks) http.Handler {
	ledger := usecase.NewStockLedger(stocks)
	uc := usecase.NewDeliveryUsecase(&stubDeliveries{byID: map[string]deldom.Delivery{}}, ledger, stubBatches{}, nil)
	return NewDeliveryHandler(uc)
}

// ─── tests ────────────────────────────────────────────────────────────────────

func TestDeliveryHandlerCreateOK(t *testing.T) {
	stocks := &stubStocks{records: map[string]stockdom.Record{
		"art-1": {ID: "stk-1", ArticleID: "art-1", ArticleName: "Arroz", Unit: "kg", Quantity: 50},
	}}
	h := newDeliveryHandlerForTest(stocks)

	body := `{
		"recipientName": "Família Souza",
		"items": [{"articleId": "art-1", "name": "Arroz", "unit": "kg", "quantity": 20}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Família Souza", resp["recipientName"])
	require.NotEmpty(t, resp["id"])

	require.Equal(t, int64(30), stocks.records["art-1"].Quantity)
}

func TestDeliveryHandlerInsufficientStockReturns409(t *testing.T) {
	stocks := &stubStocks{records: map[string]stockdom.Record{
		"art-1": {ID: "stk-1", ArticleID: "art-1", ArticleName: "Arroz", Unit: "kg", Quantity: 5},
	}}
	h := newDeliveryHandlerForTest(stocks)

	body := `{
		"recipientName": "Família Souza",
		"items": [{"articleId": "art-1", "name": "Arroz", "quantity": 20}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "insufficient_stock", resp["error"])
	require.Equal(t, "Arroz", resp["articleName"])
	require.Equal(t, float64(5), resp["available"])
	require.Equal(t, float64(20), resp["requested"])

	// 在庫は動いていない
	require.Equal(t, int64(5), stocks.records["art-1"].Quantity)
}

func TestDeliveryHandlerBadRequest(t *testing.T) {
	h := newDeliveryHandlerForTest(&stubStocks{records: map[string]stockdom.Record{}})

	// 受取人なし
	req := httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(`{"items":[{"articleId":"a","name":"x","quantity":1}]}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	// 壊れた JSON
	req = httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(`{`))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeliveryHandlerNotFound(t *testing.T) {
	h := newDeliveryHandlerForTest(&stubStocks{records: map[string]stockdom.Record{}})

	req := httptest.NewRequest(http.MethodGet, "/deliveries/nope", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
