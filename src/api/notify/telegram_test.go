package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teploservice/lead-api/src/api/types"
)

func TestTelegramSend(t *testing.T) {
	var calls atomic.Int64
	var gotPath string
	var gotReq sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := NewTelegram("test-token", "42", srv.URL)
	lead := types.Lead{
		ID:        "lead_1",
		Phone:     "+7 (495) 123-45-67",
		Priority:  types.PriorityNormal,
		Source:    "landing",
		Timestamp: "2026-08-30 12:00:00",
	}

	assert.True(t, tg.Send(lead))
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "42", gotReq.ChatID)
	assert.Equal(t, "Markdown", gotReq.ParseMode)
	assert.True(t, gotReq.DisableWebPagePreview)
	assert.Contains(t, gotReq.Text, "`+7 (495) 123-45-67`")
}

func TestTelegramSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tg := NewTelegram("tok", "42", srv.URL)
	assert.False(t, tg.Send(types.Lead{ID: "lead_1", Phone: "5551234"}))
}

func TestTelegramSendUnconfigured(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	testCases := []struct {
		name   string
		token  string
		chatID string
	}{
		{name: "no token", token: "", chatID: "42"},
		{name: "no chat id", token: "tok", chatID: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tg := NewTelegram(tc.token, tc.chatID, srv.URL)
			assert.False(t, tg.Send(types.Lead{Phone: "5551234"}))
			assert.Equal(t, int64(0), calls.Load(), "no API call may be attempted")
		})
	}
}

func TestRenderTelegram(t *testing.T) {
	t.Run("urgent lead with mapped labels", func(t *testing.T) {
		msg := renderTelegram(types.Lead{
			Phone:     "5551234",
			Priority:  types.PriorityHigh,
			Name:      "Анна",
			Email:     "anna@example.com",
			Problem:   "leak",
			Service:   "repair",
			OrgType:   "tszh",
			Address:   "ул. Ленина, 1",
			Promo:     "WINTER",
			Source:    "landing",
			Timestamp: "2026-08-30 12:00:00",
		})

		assert.True(t, strings.HasPrefix(msg, "🚨 *НОВАЯ ЗАЯВКА*"))
		assert.Contains(t, msg, "📞 *Телефон:* `5551234`")
		assert.Contains(t, msg, "*Проблема:* Течь/утечка газа")
		assert.Contains(t, msg, "*Услуга:* Ремонт")
		assert.Contains(t, msg, "*Тип:* ТСЖ/УК")
		assert.Contains(t, msg, "*Адрес:* ул. Ленина, 1")
		assert.Contains(t, msg, "*Промокод:* WINTER")
		assert.Contains(t, msg, "🕐 2026-08-30 12:00:00")
		assert.Contains(t, msg, "📱 Источник: landing")
	})

	t.Run("unknown code renders literally", func(t *testing.T) {
		msg := renderTelegram(types.Lead{Phone: "5551234", Problem: "xyz"})
		assert.Contains(t, msg, "*Проблема:* xyz")
	})

	t.Run("normal priority and bare fields", func(t *testing.T) {
		msg := renderTelegram(types.Lead{Phone: "5551234", Priority: types.PriorityNormal})
		assert.True(t, strings.HasPrefix(msg, "📩 *НОВАЯ ЗАЯВКА*"))
		assert.NotContains(t, msg, "*Имя:*")
		assert.NotContains(t, msg, "*Проблема:*")
		assert.NotContains(t, msg, "*Промокод:*")
	})
}
