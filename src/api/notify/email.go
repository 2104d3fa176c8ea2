package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/teploservice/lead-api/src/api/config"
	"github.com/teploservice/lead-api/src/api/types"
)

// Email renders a plain-text lead report and hands it to SMTP. Send is a
// no-op returning false when no destination address is configured.
type Email struct {
	cfg config.Config
}

func NewEmail(cfg config.Config) *Email {
	return &Email{cfg: cfg}
}

func (e *Email) Send(lead types.Lead) bool {
	if e.cfg.NotifyEmail == "" {
		log.Printf("email: destination not configured, skipping lead %s", lead.ID)
		return false
	}

	m, err := e.message(lead)
	if err != nil {
		log.Printf("email: build lead %s: %v", lead.ID, err)
		return false
	}

	opts := []mail.Option{
		mail.WithPort(e.cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if e.cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(e.cfg.SMTPUser),
			mail.WithPassword(e.cfg.SMTPPass),
		)
	}

	client, err := mail.NewClient(e.cfg.SMTPHost, opts...)
	if err != nil {
		log.Printf("email: client: %v", err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		log.Printf("email: send lead %s: %v", lead.ID, err)
		return false
	}
	return true
}

// message assembles the outgoing mail: destination, subject with the phone
// number, Reply-To pointing back at the lead when it carries an address, and
// an urgency header for high-priority leads.
func (e *Email) message(lead types.Lead) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(e.cfg.EmailFrom); err != nil {
		return nil, fmt.Errorf("from %q: %w", e.cfg.EmailFrom, err)
	}
	if err := m.To(e.cfg.NotifyEmail); err != nil {
		return nil, fmt.Errorf("to %q: %w", e.cfg.NotifyEmail, err)
	}

	replyTo := lead.Email
	if replyTo == "" {
		replyTo = e.cfg.NotifyEmail
	}
	if err := m.ReplyTo(replyTo); err != nil {
		return nil, fmt.Errorf("reply-to %q: %w", replyTo, err)
	}

	m.Subject(e.cfg.EmailSubject + " - " + lead.Phone)
	if lead.Urgent() {
		m.SetImportance(mail.ImportanceHigh)
	}
	m.SetBodyString(mail.TypeTextPlain, renderEmail(lead))
	return m, nil
}

func orElse(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func renderEmail(lead types.Lead) string {
	banner := "📩 Новая заявка"
	if lead.Urgent() {
		banner = "🚨 СРОЧНАЯ ЗАЯВКА"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", banner)
	b.WriteString("================================\n\n")
	fmt.Fprintf(&b, "📅 Дата: %s\n", lead.Timestamp)
	fmt.Fprintf(&b, "🆔 ID: %s\n\n", lead.ID)

	b.WriteString("👤 КОНТАКТ:\n")
	fmt.Fprintf(&b, "• Имя: %s\n", orElse(lead.Name, "Не указано"))
	fmt.Fprintf(&b, "• Телефон: %s\n", lead.Phone)
	fmt.Fprintf(&b, "• Email: %s\n\n", orElse(lead.Email, "Не указан"))

	b.WriteString("📋 ДЕТАЛИ:\n")
	fmt.Fprintf(&b, "• Источник: %s\n", lead.Source)
	fmt.Fprintf(&b, "• Тип организации: %s\n", orElse(lead.OrgType, "Не указан"))
	fmt.Fprintf(&b, "• Тип объекта: %s\n", orElse(lead.ObjectType, "Не указан"))
	fmt.Fprintf(&b, "• Услуга: %s\n", orElse(lead.Service, "Не указана"))
	fmt.Fprintf(&b, "• Проблема: %s\n", orElse(lead.Problem, "Не указана"))
	fmt.Fprintf(&b, "• Адрес: %s\n", orElse(lead.Address, "Не указан"))
	fmt.Fprintf(&b, "• Удобное время: %s\n", orElse(lead.CallTime, "Любое"))
	fmt.Fprintf(&b, "• Промокод: %s\n\n", orElse(lead.Promo, "Нет"))

	b.WriteString("🔍 UTM:\n")
	fmt.Fprintf(&b, "• Source: %s\n", orElse(lead.UTMSource, "-"))
	fmt.Fprintf(&b, "• Medium: %s\n", orElse(lead.UTMMedium, "-"))
	fmt.Fprintf(&b, "• Campaign: %s\n\n", orElse(lead.UTMCampaign, "-"))

	b.WriteString("🌐 ТЕХНИЧЕСКАЯ ИНФОРМАЦИЯ:\n")
	fmt.Fprintf(&b, "• IP: %s\n", lead.IP)
	fmt.Fprintf(&b, "• Referer: %s\n\n", lead.Referer)

	b.WriteString("================================\n")
	b.WriteString("Отправлено с лендинга\n")
	return b.String()
}
