package webserver

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/teploservice/lead-api/src/api/auditlog"
	"github.com/teploservice/lead-api/src/api/sanitize"
	"github.com/teploservice/lead-api/src/api/storage"
	"github.com/teploservice/lead-api/src/api/types"
)

const timestampFormat = "2006-01-02 15:04:05"

type Leads struct {
	store    *storage.Store
	audit    *auditlog.Logger
	email    Notifier
	telegram Notifier
}

func NewLeads(deps Deps) Leads {
	return Leads{
		store:    deps.Store,
		audit:    deps.Audit,
		email:    deps.Email,
		telegram: deps.Telegram,
	}
}

// Create runs one submission through the whole pipeline: sanitize, validate,
// persist, audit, notify. Persistence failure aborts the request; a failed
// notification channel only shows up as false in the response and never
// blocks the other channel.
func (h Leads) Create(c *gin.Context) {
	lead := buildLead(c)

	if lead.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Укажите телефон"})
		return
	}

	if err := h.store.Append(lead); err != nil {
		log.Printf("leads: store lead %s: %v", lead.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Не удалось сохранить заявку"})
		return
	}

	h.audit.Log(fmt.Sprintf("Новая заявка: %s - %s", lead.ID, lead.Phone))

	emailSent := h.email.Send(lead)
	telegramSent := h.telegram.Send(lead)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Заявка успешно отправлена",
		"lead_id": lead.ID,
		"notifications": gin.H{
			"email":    emailSent,
			"telegram": telegramSent,
		},
	})
}

// buildLead collects the form fields with their documented defaults and runs
// every text value through the sanitizer before anything downstream sees it.
func buildLead(c *gin.Context) types.Lead {
	now := time.Now()
	field := func(name string) string {
		return sanitize.String(c.PostForm(name))
	}

	lead := types.Lead{
		ID:        newLeadID(now),
		Timestamp: now.Format(timestampFormat),
		IP:        orElse(sanitize.String(c.ClientIP()), "unknown"),
		UserAgent: orElse(sanitize.String(c.Request.UserAgent()), "unknown"),
		Referer:   orElse(sanitize.String(c.Request.Referer()), "direct"),

		Name:  field("name"),
		Phone: field("phone"),
		Email: field("email"),

		OrgType:    field("org_type"),
		ObjectType: field("object_type"),
		Service:    field("service"),
		Problem:    field("problem"),
		Address:    field("address"),
		CallTime:   field("call_time"),
		Message:    field("message"),

		Source:   orElse(field("source"), "unknown"),
		Priority: orElse(field("priority"), types.PriorityNormal),
		Promo:    field("promo"),

		UTMSource:   field("utm_source"),
		UTMMedium:   field("utm_medium"),
		UTMCampaign: field("utm_campaign"),
		UTMTerm:     field("utm_term"),
		UTMContent:  field("utm_content"),
	}
	lead.PhoneClean = digits(lead.Phone)
	return lead
}

// newLeadID is time-ordered with a random suffix so concurrent requests in
// the same nanosecond still get distinct ids.
func newLeadID(now time.Time) string {
	return fmt.Sprintf("lead_%x_%s", now.UnixNano(), uuid.NewString()[:8])
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func orElse(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
