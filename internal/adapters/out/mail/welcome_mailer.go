// internal/adapters/out/mail/welcome_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"
)

// EmailClient は実際のメール送信クライアント（SMTP / SendGrid / SES など）を
// 抽象化した下位レベルのインターフェースです。
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// WelcomeMailer はボランティア登録完了メールを送信します。
// usecase.WelcomeMailerPort の具象実装で、内部で EmailClient を利用します。
type WelcomeMailer struct {
	client      EmailClient
	fromAddress string
}

func NewWelcomeMailer(client EmailClient, fromAddress string) *WelcomeMailer {
	return &WelcomeMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
	}
}

// SendWelcome は、usecase から呼び出される登録完了メール送信処理です。
func (m *WelcomeMailer) SendWelcome(ctx context.Context, name, email string) error {
	subject := "【ReliefDesk】ボランティア登録のお知らせ"

	body := fmt.Sprintf(
		`%s 様

ReliefDesk へのボランティア登録が完了しました。

配布活動や技術訪問の割り当てが決まり次第、担当者からご連絡します。

※本メールに心当たりがない場合は、このメッセージは破棄してください。

--
ReliefDesk`,
		strings.TrimSpace(name),
	)

	return m.client.Send(ctx, m.fromAddress, strings.TrimSpace(email), subject, body)
}
