package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/teploservice/lead-api/src/api/types"
)

// Code→label tables for the categorical form fields. Unknown codes render
// as-is.
var problemLabels = map[string]string{
	"no-heat":  "Нет тепла/отопления",
	"leak":     "Течь/утечка газа",
	"noise":    "Шум/вибрация",
	"error":    "Ошибка на табло",
	"no-start": "Котёл не запускается",
	"other":    "Другое",
}

var serviceLabels = map[string]string{
	"maintenance": "Техобслуживание",
	"repair":      "Ремонт",
	"license":     "Лицензирование",
	"full":        "Полный цикл",
}

var orgTypeLabels = map[string]string{
	"tszh":       "ТСЖ/УК",
	"enterprise": "Предприятие",
	"commercial": "БЦ/ТЦ",
	"developer":  "Застройщик",
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Telegram posts a Markdown lead summary to a bot chat. Send is a no-op
// returning false when the bot is not configured.
type Telegram struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
}

func NewTelegram(token, chatID, baseURL string) *Telegram {
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	return &Telegram{
		token:   token,
		chatID:  chatID,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send reports true only when the Telegram API answered 200. Misconfiguration,
// transport errors and non-200 statuses all come back as false; the caller
// cannot tell them apart, so the distinction is logged here.
func (t *Telegram) Send(lead types.Lead) bool {
	if t.token == "" || t.chatID == "" {
		log.Printf("telegram: bot not configured, skipping lead %s", lead.ID)
		return false
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:                t.chatID,
		Text:                  renderTelegram(lead),
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	})
	if err != nil {
		log.Printf("telegram: marshal: %v", err)
		return false
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	resp, err := t.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("telegram: send lead %s: %v", lead.ID, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("telegram: send lead %s: status %d", lead.ID, resp.StatusCode)
		return false
	}
	return true
}

func label(table map[string]string, code string) string {
	if v, ok := table[code]; ok {
		return v
	}
	return code
}

func renderTelegram(lead types.Lead) string {
	emoji := "📩"
	if lead.Urgent() {
		emoji = "🚨"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *НОВАЯ ЗАЯВКА*\n\n", emoji)
	fmt.Fprintf(&b, "📞 *Телефон:* `%s`\n", lead.Phone)

	if lead.Name != "" {
		fmt.Fprintf(&b, "👤 *Имя:* %s\n", lead.Name)
	}
	if lead.Email != "" {
		fmt.Fprintf(&b, "✉️ *Email:* %s\n", lead.Email)
	}
	b.WriteString("\n")

	if lead.Problem != "" {
		fmt.Fprintf(&b, "⚠️ *Проблема:* %s\n", label(problemLabels, lead.Problem))
	}
	if lead.Service != "" {
		fmt.Fprintf(&b, "🔧 *Услуга:* %s\n", label(serviceLabels, lead.Service))
	}
	if lead.OrgType != "" {
		fmt.Fprintf(&b, "🏢 *Тип:* %s\n", label(orgTypeLabels, lead.OrgType))
	}
	if lead.Address != "" {
		fmt.Fprintf(&b, "📍 *Адрес:* %s\n", lead.Address)
	}
	if lead.Promo != "" {
		fmt.Fprintf(&b, "🎁 *Промокод:* %s\n", lead.Promo)
	}

	fmt.Fprintf(&b, "\n🕐 %s\n", lead.Timestamp)
	fmt.Fprintf(&b, "📱 Источник: %s", lead.Source)
	return b.String()
}
