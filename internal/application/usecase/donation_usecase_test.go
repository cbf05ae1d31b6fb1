// internal/application/usecase/donation_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	artdom "reliefdesk/internal/domain/article"
	dondom "reliefdesk/internal/domain/donation"
)

func TestDonationIntakeGoodsCreatesCatalogStockAndRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// "Arroz" は既にカタログにある。保存済みの表記・単位が優先される。
	arroz := f.seedArticle("Arroz", "kg")

	d, err := f.donationUC.Intake(ctx, DonationIntakeInput{
		DonorName: "Maria Silva",
		Kind:      "food",
		Items: []dondom.RequestedItem{
			{Name: "  ARROZ ", Unit: "saco", Quantity: 12}, // 既存: unit は kg のまま
			{Name: "Feijão", Unit: "", Quantity: 8},        // 新規: unit は既定値
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, d.ID)
	require.Len(t, d.Items, 2)

	// 明細はカタログの正準形に置き換わっている
	require.Equal(t, arroz.ID, d.Items[0].ArticleID)
	require.Equal(t, "Arroz", d.Items[0].Name)
	require.Equal(t, "kg", d.Items[0].Unit)

	require.Equal(t, "Feijão", d.Items[1].Name)
	require.Equal(t, artdom.DefaultUnit, d.Items[1].Unit)

	// 新規 Article がカタログに追加されている
	feijao, err := f.articles.FindByNormalizedName(ctx, artdom.Normalize("feijão"))
	require.NoError(t, err)
	require.Equal(t, d.Items[1].ArticleID, feijao.ID)

	// 在庫が明細どおり credit されている
	recArroz, ok := f.stockFor(arroz.ID)
	require.True(t, ok)
	require.Equal(t, int64(12), recArroz.Quantity)

	recFeijao, ok := f.stockFor(feijao.ID)
	require.True(t, ok)
	require.Equal(t, int64(8), recFeijao.Quantity)

	// 寄付レコードが保存され、ジャーナルに 2 行
	_, err = f.donations.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, f.journal.entries, 2)
	require.Equal(t, "credit", f.journal.entries[0].Direction)
	require.Equal(t, "donations", f.journal.entries[0].RefCollection)
}

func TestDonationIntakeDuplicateItemNamesResolveOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// 同一ペイロード内で未登録の同名（正規化後）が重複しても
	// Article は 1 件、在庫レコードも 1 件で数量は合算される。
	d, err := f.donationUC.Intake(ctx, DonationIntakeInput{
		DonorName: "Maria Silva",
		Kind:      "food",
		Items: []dondom.RequestedItem{
			{Name: "Arroz", Unit: "kg", Quantity: 10},
			{Name: "  arroz ", Unit: "saco", Quantity: 5},
		},
	})
	require.NoError(t, err)
	require.Len(t, d.Items, 2)

	// 両明細が同じ Article に解決されている（表記・単位は 1 件目で確定）
	require.Equal(t, d.Items[0].ArticleID, d.Items[1].ArticleID)
	require.Equal(t, "Arroz", d.Items[1].Name)
	require.Equal(t, "kg", d.Items[1].Unit)

	require.Len(t, f.store.articles, 1)
	require.Len(t, f.store.stocks, 1)

	rec, ok := f.stockFor(d.Items[0].ArticleID)
	require.True(t, ok)
	require.Equal(t, int64(15), rec.Quantity)
}

func TestDonationIntakeMonetarySkipsInventory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	d, err := f.donationUC.Intake(ctx, DonationIntakeInput{
		DonorName: "João",
		Kind:      "money",
		Amount:    5000,
	})
	require.NoError(t, err)
	require.True(t, d.IsMonetary())
	require.Equal(t, int64(5000), d.Amount)
	require.Empty(t, d.Items)

	// 在庫・カタログ・ジャーナルは一切動かない
	stocks, _ := f.stocks.List(ctx)
	require.Empty(t, stocks)
	arts, _ := f.articles.List(ctx)
	require.Empty(t, arts)
	require.Empty(t, f.journal.entries)
}

func TestDonationIntakeMonetaryWithItemsRejected(t *testing.T) {
	f := newFixture()

	_, err := f.donationUC.Intake(context.Background(), DonationIntakeInput{
		DonorName: "João",
		Kind:      "money",
		Amount:    100,
		Items:     []dondom.RequestedItem{{Name: "arroz", Quantity: 1}},
	})
	require.ErrorIs(t, err, dondom.ErrItemsOnMoney)
}

func TestDonationIntakeGoodsWithAmountRejected(t *testing.T) {
	f := newFixture()

	_, err := f.donationUC.Intake(context.Background(), DonationIntakeInput{
		DonorName: "João",
		Kind:      "food",
		Amount:    100,
		Items:     []dondom.RequestedItem{{Name: "arroz", Quantity: 1}},
	})
	require.ErrorIs(t, err, dondom.ErrAmountOnGoods)
}

func TestDonationIntakeRejectsBadItems(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.donationUC.Intake(ctx, DonationIntakeInput{
		DonorName: "João",
		Kind:      "clothing",
		Items:     []dondom.RequestedItem{{Name: "   ", Quantity: 1}},
	})
	require.ErrorIs(t, err, dondom.ErrEmptyItemName)

	_, err = f.donationUC.Intake(ctx, DonationIntakeInput{
		DonorName: "João",
		Kind:      "clothing",
		Items:     []dondom.RequestedItem{{Name: "casaco", Quantity: 0}},
	})
	require.ErrorIs(t, err, dondom.ErrInvalidItemQty)

	// 途中失敗でも何も書かれていない
	arts, _ := f.articles.List(ctx)
	require.Empty(t, arts)
	stocks, _ := f.stocks.List(ctx)
	require.Empty(t, stocks)
}

func TestDonationIntakeUnknownKindRejected(t *testing.T) {
	f := newFixture()
	_, err := f.donationUC.Intake(context.Background(), DonationIntakeInput{
		DonorName: "João",
		Kind:      "gold",
	})
	require.ErrorIs(t, err, dondom.ErrInvalidKind)
}

func TestDonationDeleteCreditsStockBackAndAllowsRedonation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	d, err := f.donationUC.Intake(ctx, DonationIntakeInput{
		DonorName: "Maria",
		Kind:      "food",
		Items:     []dondom.RequestedItem{{Name: "água", Unit: "l", Quantity: 10}},
	})
	require.NoError(t, err)

	aguaID := d.Items[0].ArticleID
	rec, _ := f.stockFor(aguaID)
	require.Equal(t, int64(10), rec.Quantity)

	// 削除すると在庫はさらに credit される（観測された挙動の保存）
	require.NoError(t, f.donationUC.Delete(ctx, d.ID))
	_, err = f.donations.GetByID(ctx, d.ID)
	require.ErrorIs(t, err, dondom.ErrNotFound)

	rec, _ = f.stockFor(aguaID)
	require.Equal(t, int64(20), rec.Quantity)

	// 再寄付は同じ Article に積み増す
	d2, err := f.donationUC.Intake(ctx, DonationIntakeInput{
		DonorName: "Maria",
		Kind:      "food",
		Items:     []dondom.RequestedItem{{Name: "ÁGUA", Quantity: 5}},
	})
	require.NoError(t, err)
	require.Equal(t, aguaID, d2.Items[0].ArticleID)

	rec, _ = f.stockFor(aguaID)
	require.Equal(t, int64(25), rec.Quantity)
}

func TestDonationDeleteMonetaryLeavesStockAlone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	d, err := f.donationUC.Intake(ctx, DonationIntakeInput{
		DonorName: "João", Kind: "money", Amount: 300,
	})
	require.NoError(t, err)

	require.NoError(t, f.donationUC.Delete(ctx, d.ID))
	stocks, _ := f.stocks.List(ctx)
	require.Empty(t, stocks)
	require.Empty(t, f.journal.entries)
}

func TestDonationUpdateNeverTouchesInventory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	d, err := f.donationUC.Intake(ctx, DonationIntakeInput{
		DonorName: "Maria",
		Kind:      "food",
		Items:     []dondom.RequestedItem{{Name: "arroz", Unit: "kg", Quantity: 9}},
	})
	require.NoError(t, err)

	notes := "corrigido telefone"
	phone := "11 99999-0000"
	updated, err := f.donationUC.Update(ctx, d.ID, dondom.UpdatePatch{
		Notes:      &notes,
		DonorPhone: &phone,
	})
	require.NoError(t, err)
	require.Equal(t, notes, updated.Notes)
	require.Equal(t, phone, updated.DonorPhone)

	// 明細も在庫も元のまま
	require.Equal(t, d.Items, updated.Items)
	rec, _ := f.stockFor(d.Items[0].ArticleID)
	require.Equal(t, int64(9), rec.Quantity)
}

func TestDonationIntakeCommitFailureLeavesNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.commitErr = errors.New("store unavailable")

	_, err := f.donationUC.Intake(ctx, DonationIntakeInput{
		DonorName: "Maria",
		Kind:      "food",
		Items:     []dondom.RequestedItem{{Name: "arroz", Quantity: 4}},
	})
	require.Error(t, err)

	arts, _ := f.articles.List(ctx)
	require.Empty(t, arts)
	stocks, _ := f.stocks.List(ctx)
	require.Empty(t, stocks)
	dons, _ := f.donations.List(ctx, nil, nil)
	require.Empty(t, dons)
	require.Empty(t, f.journal.entries)
}

func TestDonationJournalFailureTolerated(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.journal.err = errors.New("journal down")

	d, err := f.donationUC.Intake(ctx, DonationIntakeInput{
		DonorName: "Maria",
		Kind:      "food",
		Items:     []dondom.RequestedItem{{Name: "arroz", Quantity: 4}},
	})
	// commit 済みワークフローはジャーナル障害で失敗しない
	require.NoError(t, err)

	rec, ok := f.stockFor(d.Items[0].ArticleID)
	require.True(t, ok)
	require.Equal(t, int64(4), rec.Quantity)
}

// 照合 read と commit が直列化されないことの回帰テスト。
// 2 つのバッチが両方 commit 前に同名を解決すると、カタログに重複が残り、
// 以降の解決はクエリの先頭 1 件に寄る。
func TestCatalogResolveDuplicateNameRace(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b1 := f.store.NewBatch()
	b2 := f.store.NewBatch()

	a1, err := f.resolver.Resolve(ctx, b1, "água", "l")
	require.NoError(t, err)
	a2, err := f.resolver.Resolve(ctx, b2, "água", "l")
	require.NoError(t, err)
	require.NotEqual(t, a1.ID, a2.ID)

	require.NoError(t, b1.Commit(ctx))
	require.NoError(t, b2.Commit(ctx))

	arts, _ := f.articles.List(ctx)
	require.Len(t, arts, 2)

	// マージはしない。以降の解決は決定的に先頭 1 件へ寄る
	resolved, err := f.articles.FindByNormalizedName(ctx, artdom.Normalize("água"))
	require.NoError(t, err)
	require.Equal(t, a1.ID, resolved.ID)
}

func TestCatalogResolveNormalizesNames(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b := f.store.NewBatch()
	a1, err := f.resolver.Resolve(ctx, b, "  Água Mineral ", "l")
	require.NoError(t, err)
	require.NoError(t, b.Commit(ctx))

	// 大文字小文字・前後空白が違っても同じ Article に解決される
	b2 := f.store.NewBatch()
	a2, err := f.resolver.Resolve(ctx, b2, "ÁGUA MINERAL", "garrafa")
	require.NoError(t, err)
	require.Equal(t, a1.ID, a2.ID)
	require.Equal(t, "l", a2.Unit) // 保存済みの unit が優先

	// バッチには何も積まれていない（既存ヒットなので commit 不要）
	require.Empty(t, asMemBatch(b2).ops)
}
