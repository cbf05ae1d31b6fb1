// internal/adapters/in/http/handlers/errors.go
package handlers

import (
	artdom "reliefdesk/internal/domain/article"
	deldom "reliefdesk/internal/domain/delivery"
	dondom "reliefdesk/internal/domain/donation"
	persondom "reliefdesk/internal/domain/person"
	stockdom "reliefdesk/internal/domain/stock"
	visitdom "reliefdesk/internal/domain/visit"
	voldom "reliefdesk/internal/domain/volunteer"
)

// ステータス変換用のドメインエラー一覧。
// 新しいドメインを足したらここにも並べる。
var notFoundSentinels = []error{
	artdom.ErrNotFound,
	stockdom.ErrNotFound,
	dondom.ErrNotFound,
	deldom.ErrNotFound,
	persondom.ErrNotFound,
	voldom.ErrNotFound,
	visitdom.ErrNotFound,
}

var invalidInputSentinels = []error{
	artdom.ErrInvalidID,
	artdom.ErrInvalidName,
	dondom.ErrInvalidID,
	dondom.ErrInvalidDonor,
	dondom.ErrInvalidKind,
	dondom.ErrInvalidAmount,
	dondom.ErrInvalidItems,
	dondom.ErrItemsOnMoney,
	dondom.ErrAmountOnGoods,
	dondom.ErrEmptyItemName,
	dondom.ErrInvalidItemQty,
	deldom.ErrInvalidID,
	deldom.ErrInvalidRecipient,
	deldom.ErrInvalidItems,
	deldom.ErrInvalidItemQty,
	stockdom.ErrInvalidArticle,
	stockdom.ErrInvalidQuantity,
	persondom.ErrInvalidID,
	persondom.ErrInvalidName,
	voldom.ErrInvalidID,
	voldom.ErrInvalidName,
	voldom.ErrInvalidEmail,
	visitdom.ErrInvalidID,
	visitdom.ErrInvalidPerson,
	visitdom.ErrInvalidVisitor,
}
