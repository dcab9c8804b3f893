// Package email delivers transactional mail over SMTP.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"bilig/internal/domain/user"
	sharedConfig "bilig/internal/shared/config"
	"bilig/internal/shared/logger"
)

// SMTPEmailService sends the welcome and payment receipt emails. Receipts
// are addressed by looking the buyer up, since orders only carry the
// numeric account ID.
type SMTPEmailService struct {
	fromAddress string
	fromName    string
	dialer      *gomail.Dialer
	userRepo    user.Repository
	logger      logger.Interface
}

func NewSMTPEmailService(cfg *sharedConfig.EmailConfig, userRepo user.Repository, logger logger.Interface) *SMTPEmailService {
	return &SMTPEmailService{
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (s *SMTPEmailService) SendWelcome(ctx context.Context, email, name string) error {
	subject := "Тавтай морилно уу | Welcome"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Сайн байна уу, %s!</h2>
			<p>Бүртгэл амжилттай үүслээ. Хичээлээ сонгоод суралцаж эхлээрэй.</p>
			<hr>
			<h2>Hello, %s!</h2>
			<p>Your account is ready. Pick a course and start learning.</p>
		</body>
		</html>
	`, name, name)

	plainBody := fmt.Sprintf(`Сайн байна уу, %s!

Бүртгэл амжилттай үүслээ. Хичээлээ сонгоод суралцаж эхлээрэй.

Hello, %s!

Your account is ready. Pick a course and start learning.
`, name, name)

	return s.send(email, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendReceipt(ctx context.Context, userID uint, orderNo string, amount int64, currency string) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up receipt recipient: %w", err)
	}
	if u == nil {
		return fmt.Errorf("receipt recipient %d not found", userID)
	}

	subject := fmt.Sprintf("Төлбөрийн баримт %s | Payment receipt", orderNo)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Төлбөр амжилттай</h2>
			<p>Захиалга: %s</p>
			<p>Дүн: %d %s</p>
			<p>Хичээл тань идэвхэжлээ.</p>
			<hr>
			<h2>Payment received</h2>
			<p>Order: %s</p>
			<p>Amount: %d %s</p>
			<p>Your course access is now active.</p>
		</body>
		</html>
	`, orderNo, amount, currency, orderNo, amount, currency)

	plainBody := fmt.Sprintf(`Төлбөр амжилттай

Захиалга: %s
Дүн: %d %s
Хичээл тань идэвхэжлээ.

Payment received

Order: %s
Amount: %d %s
Your course access is now active.
`, orderNo, amount, currency, orderNo, amount, currency)

	return s.send(u.Email().String(), subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) send(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
