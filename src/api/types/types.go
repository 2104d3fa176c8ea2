package types

// Priority values recognized on a lead. Anything other than PriorityHigh is
// presented as a normal request.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Lead is one landing-page submission. It is created once per request and
// never mutated afterwards; the store only ever appends.
type Lead struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	Referer   string `json:"referer"`

	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`

	OrgType    string `json:"org_type"`
	ObjectType string `json:"object_type"`
	Service    string `json:"service"`
	Problem    string `json:"problem"`
	Address    string `json:"address"`
	CallTime   string `json:"call_time"`
	Message    string `json:"message"`

	Source   string `json:"source"`
	Priority string `json:"priority"`
	Promo    string `json:"promo"`

	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMTerm     string `json:"utm_term"`
	UTMContent  string `json:"utm_content"`

	// PhoneClean is Phone with every non-digit removed, computed once when
	// the lead is built.
	PhoneClean string `json:"phone_clean"`
}

func (l Lead) Urgent() bool {
	return l.Priority == PriorityHigh
}
