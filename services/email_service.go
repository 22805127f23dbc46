package services

import (
	"fmt"
	"time"

	"creditApp/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки email
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendLoanIssuedNotification отправляет уведомление о выдаче кредита
func (s *EmailService) SendLoanIssuedNotification(to string, loanID uuid.UUID, amount decimal.Decimal, term int) error {
	subject := "Уведомление о выдаче кредита"
	body := fmt.Sprintf(`
		<h2>Уведомление о выдаче кредита</h2>
		<p>Кредит: %s</p>
		<p>Сумма кредита: %s</p>
		<p>Срок кредита: %d месяцев</p>
		<p>Дата: %s</p>
	`, loanID, amount.StringFixed(2), term, time.Now().Format("02.01.2006 15:04:05"))

	return s.SendEmail(to, subject, body)
}

// SendBillingCycleNotification отправляет уведомление о новом расчетном периоде
func (s *EmailService) SendBillingCycleNotification(to string, loanID uuid.UUID, minDue decimal.Decimal, dueDate time.Time) error {
	subject := "Выставлен минимальный платеж по кредиту"
	body := fmt.Sprintf(`
		<h2>Новый расчетный период</h2>
		<p>Кредит: %s</p>
		<p>Минимальный платеж: %s</p>
		<p>Оплатить до: %s</p>
	`, loanID, minDue.StringFixed(2), dueDate.Format("02.01.2006"))

	return s.SendEmail(to, subject, body)
}

// SendLoanPaidNotification отправляет уведомление о полном погашении кредита
func (s *EmailService) SendLoanPaidNotification(to string, loanID uuid.UUID) error {
	subject := "Поздравляем! Ваш кредит успешно погашен"
	body := fmt.Sprintf(`
		<h2>Поздравляем!</h2>
		<p>Ваш кредит %s был успешно погашен.</p>
		<p>Спасибо, что выбрали наш сервис!</p>
		<p>Если у вас возникнут вопросы, пожалуйста, свяжитесь с нами.</p>
	`, loanID)

	return s.SendEmail(to, subject, body)
}
