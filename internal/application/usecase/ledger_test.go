// internal/application/usecase/ledger_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	stockdom "reliefdesk/internal/domain/stock"
)

func TestLedgerCreditCreatesRecordOnFirstMovement(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b := f.store.NewBatch()
	err := f.ledger.Apply(ctx, b, []stockdom.Movement{
		{ArticleID: "art-x", ArticleName: "água mineral", Unit: "l", Quantity: 40},
	}, stockdom.Credit)
	require.NoError(t, err)

	// commit 前は何も見えない
	_, ok := f.stockFor("art-x")
	require.False(t, ok)

	require.NoError(t, b.Commit(ctx))

	rec, ok := f.stockFor("art-x")
	require.True(t, ok)
	require.Equal(t, int64(40), rec.Quantity)
	require.Equal(t, "água mineral", rec.ArticleName)
	require.Equal(t, "l", rec.Unit)
}

func TestLedgerCreditAddsToExistingRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.stocks.seed("art-x", "arroz", "kg", 10)

	b := f.store.NewBatch()
	err := f.ledger.Apply(ctx, b, []stockdom.Movement{
		{ArticleID: "art-x", ArticleName: "arroz", Unit: "kg", Quantity: 5},
	}, stockdom.Credit)
	require.NoError(t, err)
	require.NoError(t, b.Commit(ctx))

	rec, _ := f.stockFor("art-x")
	require.Equal(t, int64(15), rec.Quantity)
}

func TestLedgerDebitNeverStockedArticle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b := f.store.NewBatch()
	err := f.ledger.Apply(ctx, b, []stockdom.Movement{
		{ArticleID: "art-ghost", ArticleName: "cobertor", Quantity: 3},
	}, stockdom.Debit)

	var insufficient *stockdom.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(0), insufficient.Available)
	require.Equal(t, int64(3), insufficient.Requested)
	require.Equal(t, "cobertor", insufficient.ArticleName)
}

func TestLedgerDebitInsufficientNamesArticleAndQuantities(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.stocks.seed("art-x", "leite em pó", "kg", 2)

	b := f.store.NewBatch()
	err := f.ledger.Apply(ctx, b, []stockdom.Movement{
		{ArticleID: "art-x", ArticleName: "leite em pó", Quantity: 7},
	}, stockdom.Debit)

	var insufficient *stockdom.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, "leite em pó", insufficient.ArticleName)
	require.Equal(t, int64(2), insufficient.Available)
	require.Equal(t, int64(7), insufficient.Requested)
	require.Contains(t, insufficient.Error(), "leite em pó")
	require.Contains(t, insufficient.Error(), "available=2")
	require.Contains(t, insufficient.Error(), "requested=7")

	// バッチは放棄される前提: 在庫は元のまま
	rec, _ := f.stockFor("art-x")
	require.Equal(t, int64(2), rec.Quantity)
}

func TestLedgerDebitExactBalanceReachesZero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.stocks.seed("art-x", "sabão", "und", 6)

	b := f.store.NewBatch()
	err := f.ledger.Apply(ctx, b, []stockdom.Movement{
		{ArticleID: "art-x", ArticleName: "sabão", Quantity: 6},
	}, stockdom.Debit)
	require.NoError(t, err)
	require.NoError(t, b.Commit(ctx))

	rec, _ := f.stockFor("art-x")
	require.Equal(t, int64(0), rec.Quantity)
}

func TestLedgerDebitDuplicateArticleCheckedAgainstNet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.stocks.seed("art-x", "arroz", "kg", 15)

	// 同一 article の 2 明細は束ねて判定される。10+10 > 15 なので
	// どちらの行も commit 済み残量 15 を下回らなくても弾かれる。
	b := f.store.NewBatch()
	err := f.ledger.Apply(ctx, b, []stockdom.Movement{
		{ArticleID: "art-x", ArticleName: "arroz", Unit: "kg", Quantity: 10},
		{ArticleID: "art-x", ArticleName: "arroz", Unit: "kg", Quantity: 10},
	}, stockdom.Debit)

	var insufficient *stockdom.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(15), insufficient.Available)
	require.Equal(t, int64(20), insufficient.Requested)

	rec, _ := f.stockFor("art-x")
	require.Equal(t, int64(15), rec.Quantity)
}

func TestLedgerDebitDuplicateArticleWithinBalance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.stocks.seed("art-x", "arroz", "kg", 15)

	b := f.store.NewBatch()
	err := f.ledger.Apply(ctx, b, []stockdom.Movement{
		{ArticleID: "art-x", ArticleName: "arroz", Unit: "kg", Quantity: 5},
		{ArticleID: "art-x", ArticleName: "arroz", Unit: "kg", Quantity: 5},
	}, stockdom.Debit)
	require.NoError(t, err)
	require.NoError(t, b.Commit(ctx))

	rec, _ := f.stockFor("art-x")
	require.Equal(t, int64(5), rec.Quantity)
}

func TestLedgerCreditDuplicateArticleCreatesSingleRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b := f.store.NewBatch()
	err := f.ledger.Apply(ctx, b, []stockdom.Movement{
		{ArticleID: "art-x", ArticleName: "feijão", Unit: "kg", Quantity: 4},
		{ArticleID: "art-x", ArticleName: "feijão", Unit: "kg", Quantity: 6},
	}, stockdom.Credit)
	require.NoError(t, err)
	require.NoError(t, b.Commit(ctx))

	// 未入庫の article に同一 id で 2 明細 → レコードは 1 件、数量は合算
	require.Len(t, f.store.stocks, 1)
	rec, ok := f.stockFor("art-x")
	require.True(t, ok)
	require.Equal(t, int64(10), rec.Quantity)
}

func TestLedgerRejectsInvalidMovement(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b := f.store.NewBatch()
	err := f.ledger.Apply(ctx, b, []stockdom.Movement{
		{ArticleID: "", ArticleName: "x", Quantity: 1},
	}, stockdom.Credit)
	require.ErrorIs(t, err, stockdom.ErrInvalidArticle)

	b = f.store.NewBatch()
	err = f.ledger.Apply(ctx, b, []stockdom.Movement{
		{ArticleID: "art-x", ArticleName: "x", Quantity: 0},
	}, stockdom.Credit)
	require.ErrorIs(t, err, stockdom.ErrInvalidQuantity)
}
