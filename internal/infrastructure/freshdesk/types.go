package freshdesk

import "time"

// SearchPage is one page of /api/v2/search/tickets.
type SearchPage struct {
	Total   int          `json:"total"`
	Results []TicketStub `json:"results"`
}

// TicketStub carries only what the search endpoint is trusted for.
type TicketStub struct {
	ID        int64     `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ticket is the hydrated record returned by /api/v2/tickets/{id}?include=requester,company,stats.
type Ticket struct {
	ID              int64          `json:"id"`
	Subject         string         `json:"subject"`
	Status          int            `json:"status"`
	Priority        int            `json:"priority"`
	Source          int            `json:"source"`
	Type            string         `json:"type"`
	RequesterID     *int64         `json:"requester_id"`
	CompanyID       *int64         `json:"company_id"`
	Description     string         `json:"description"`
	DescriptionText string         `json:"description_text"`
	CustomFields    map[string]any `json:"custom_fields"`
	Stats           map[string]any `json:"stats"`
	Requester       *Contact       `json:"requester"`
	Company         *Company       `json:"company"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type Contact struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Mobile string `json:"mobile"`
}

type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
