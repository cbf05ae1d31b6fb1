// internal/application/usecase/delivery_usecase_test.go
package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	deldom "reliefdesk/internal/domain/delivery"
	stockdom "reliefdesk/internal/domain/stock"
)

func TestDeliveryFulfillDebitsStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	arroz := f.seedArticle("Arroz", "kg")
	f.stocks.seed(arroz.ID, "Arroz", "kg", 50)

	d, err := f.deliveryUC.Fulfill(ctx, DeliveryFulfillInput{
		RecipientName: "Família Souza",
		Responsible:   "Carlos",
		Items: []deldom.LineItem{
			{ArticleID: arroz.ID, Name: "Arroz", Unit: "kg", Quantity: 20},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, d.ID)

	rec, _ := f.stockFor(arroz.ID)
	require.Equal(t, int64(30), rec.Quantity)

	stored, err := f.deliveries.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "Família Souza", stored.RecipientName)

	require.Len(t, f.journal.entries, 1)
	require.Equal(t, "debit", f.journal.entries[0].Direction)
	require.Equal(t, "deliveries", f.journal.entries[0].RefCollection)
}

func TestDeliveryFulfillInsufficientAbortsWholeDelivery(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	arroz := f.seedArticle("Arroz", "kg")
	feijao := f.seedArticle("Feijão", "kg")
	f.stocks.seed(arroz.ID, "Arroz", "kg", 50)
	f.stocks.seed(feijao.ID, "Feijão", "kg", 3)

	_, err := f.deliveryUC.Fulfill(ctx, DeliveryFulfillInput{
		RecipientName: "Família Souza",
		Items: []deldom.LineItem{
			{ArticleID: arroz.ID, Name: "Arroz", Quantity: 20},  // 足りている
			{ArticleID: feijao.ID, Name: "Feijão", Quantity: 8}, // 足りない
		},
	})

	var insufficient *stockdom.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, "Feijão", insufficient.ArticleName)
	require.Equal(t, int64(3), insufficient.Available)
	require.Equal(t, int64(8), insufficient.Requested)

	// 部分 debit なし・配給レコードなし・ジャーナルなし
	recArroz, _ := f.stockFor(arroz.ID)
	require.Equal(t, int64(50), recArroz.Quantity)
	recFeijao, _ := f.stockFor(feijao.ID)
	require.Equal(t, int64(3), recFeijao.Quantity)

	ds, _ := f.deliveries.List(ctx, nil, nil)
	require.Empty(t, ds)
	require.Empty(t, f.journal.entries)
}

func TestDeliveryFulfillDuplicateItemLinesDebitNet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	arroz := f.seedArticle("Arroz", "kg")
	f.stocks.seed(arroz.ID, "Arroz", "kg", 15)

	// 同一 article を 2 行に分けても正味 20 で判定され、残量 15 では弾かれる。
	// 行ごとの判定だと両方通って在庫が負になる。
	_, err := f.deliveryUC.Fulfill(ctx, DeliveryFulfillInput{
		RecipientName: "Família Souza",
		Items: []deldom.LineItem{
			{ArticleID: arroz.ID, Name: "Arroz", Unit: "kg", Quantity: 10},
			{ArticleID: arroz.ID, Name: "Arroz", Unit: "kg", Quantity: 10},
		},
	})

	var insufficient *stockdom.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(15), insufficient.Available)
	require.Equal(t, int64(20), insufficient.Requested)

	rec, _ := f.stockFor(arroz.ID)
	require.Equal(t, int64(15), rec.Quantity)
	ds, _ := f.deliveries.List(ctx, nil, nil)
	require.Empty(t, ds)
	require.Empty(t, f.journal.entries)

	// 正味が残量に収まる分割は通り、在庫はゼロ止まり
	d, err := f.deliveryUC.Fulfill(ctx, DeliveryFulfillInput{
		RecipientName: "Família Souza",
		Items: []deldom.LineItem{
			{ArticleID: arroz.ID, Name: "Arroz", Unit: "kg", Quantity: 8},
			{ArticleID: arroz.ID, Name: "Arroz", Unit: "kg", Quantity: 7},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, d.ID)
	rec, _ = f.stockFor(arroz.ID)
	require.Equal(t, int64(0), rec.Quantity)
}

func TestDeliveryFulfillNeverStockedArticle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cobertor := f.seedArticle("Cobertor", "und")
	// カタログにはあるが一度も入庫されていない

	_, err := f.deliveryUC.Fulfill(ctx, DeliveryFulfillInput{
		RecipientName: "Família Souza",
		Items: []deldom.LineItem{
			{ArticleID: cobertor.ID, Name: "Cobertor", Quantity: 2},
		},
	})

	var insufficient *stockdom.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(0), insufficient.Available)
}

func TestDeliveryFulfillValidatesInput(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.deliveryUC.Fulfill(ctx, DeliveryFulfillInput{
		RecipientName: "",
		Items:         []deldom.LineItem{{ArticleID: "a", Name: "x", Quantity: 1}},
	})
	require.ErrorIs(t, err, deldom.ErrInvalidRecipient)

	_, err = f.deliveryUC.Fulfill(ctx, DeliveryFulfillInput{
		RecipientName: "Família Souza",
	})
	require.ErrorIs(t, err, deldom.ErrInvalidItems)

	_, err = f.deliveryUC.Fulfill(ctx, DeliveryFulfillInput{
		RecipientName: "Família Souza",
		Items:         []deldom.LineItem{{ArticleID: "a", Name: "x", Quantity: -1}},
	})
	require.ErrorIs(t, err, deldom.ErrInvalidItemQty)
}

func TestDeliveryDeleteRestocks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	arroz := f.seedArticle("Arroz", "kg")
	f.stocks.seed(arroz.ID, "Arroz", "kg", 50)

	d, err := f.deliveryUC.Fulfill(ctx, DeliveryFulfillInput{
		RecipientName: "Família Souza",
		Items: []deldom.LineItem{
			{ArticleID: arroz.ID, Name: "Arroz", Unit: "kg", Quantity: 20},
		},
	})
	require.NoError(t, err)

	rec, _ := f.stockFor(arroz.ID)
	require.Equal(t, int64(30), rec.Quantity)

	// 配給の取り消しは在庫を戻す
	require.NoError(t, f.deliveryUC.Delete(ctx, d.ID))

	rec, _ = f.stockFor(arroz.ID)
	require.Equal(t, int64(50), rec.Quantity)

	_, err = f.deliveries.GetByID(ctx, d.ID)
	require.ErrorIs(t, err, deldom.ErrNotFound)

	// debit 1 行 + 取り消し credit 1 行
	require.Len(t, f.journal.entries, 2)
	require.Equal(t, "credit", f.journal.entries[1].Direction)
}

func TestDeliveryUpdateDescriptiveOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	arroz := f.seedArticle("Arroz", "kg")
	f.stocks.seed(arroz.ID, "Arroz", "kg", 50)

	d, err := f.deliveryUC.Fulfill(ctx, DeliveryFulfillInput{
		RecipientName: "Família Souza",
		Items: []deldom.LineItem{
			{ArticleID: arroz.ID, Name: "Arroz", Unit: "kg", Quantity: 10},
		},
	})
	require.NoError(t, err)

	responsible := "Ana"
	deliveredAt := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)
	updated, err := f.deliveryUC.Update(ctx, d.ID, deldom.UpdatePatch{
		Responsible: &responsible,
		DeliveredAt: &deliveredAt,
	})
	require.NoError(t, err)
	require.Equal(t, "Ana", updated.Responsible)
	require.Equal(t, deliveredAt, updated.DeliveredAt)

	// 明細・在庫はこの経路では動かない
	require.Equal(t, d.Items, updated.Items)
	rec, _ := f.stockFor(arroz.ID)
	require.Equal(t, int64(40), rec.Quantity)
}
