// internal/application/usecase/stock_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	stockdom "reliefdesk/internal/domain/stock"
)

// StockUsecase はダッシュボード表示用の在庫読み取りです。
// 書き込みは全て StockLedger 経由で、ここには無い。
type StockUsecase struct {
	stocks stockdom.RepositoryPort
}

func NewStockUsecase(stocks stockdom.RepositoryPort) *StockUsecase {
	return &StockUsecase{stocks: stocks}
}

func (uc *StockUsecase) List(ctx context.Context) ([]stockdom.Record, error) {
	if uc == nil || uc.stocks == nil {
		return nil, errors.New("stock usecase/repo is nil")
	}
	return uc.stocks.List(ctx)
}

func (uc *StockUsecase) GetByArticleID(ctx context.Context, articleID string) (stockdom.Record, error) {
	if uc == nil || uc.stocks == nil {
		return stockdom.Record{}, errors.New("stock usecase/repo is nil")
	}
	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return stockdom.Record{}, stockdom.ErrInvalidArticle
	}
	return uc.stocks.GetByArticleID(ctx, articleID)
}
