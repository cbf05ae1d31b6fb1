// internal/adapters/out/mail/sendgrid_wire.go
package mail

import "log"

// NewWelcomeMailerWithSendGrid は、SendGrid を使った WelcomeMailer を生成します。
//
//   - apiKey   : SendGrid の API キー（Secret Manager か環境変数から解決済みのもの）
//   - fromAddr : 送信元メールアドレス
func NewWelcomeMailerWithSendGrid(apiKey, fromAddr string) *WelcomeMailer {
	if apiKey == "" {
		log.Printf("[mail] WARN: sendgrid api key is empty. WelcomeMailer will fail to send mail.")
	}
	if fromAddr == "" {
		log.Printf("[mail] WARN: from address is empty. WelcomeMailer will fail to send mail.")
	}

	client := NewSendGridClient(apiKey)
	mailer := NewWelcomeMailer(client, fromAddr)

	log.Printf("[mail] WelcomeMailerWithSendGrid initialized. from=%s", fromAddr)

	return mailer
}
