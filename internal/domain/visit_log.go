package domain

import "time"

// VisitLog records at most one visit per visitor per page per calendar day.
// ArticleID is nil for non-article pages such as the home page.
type VisitLog struct {
	ID        int64     `json:"id" db:"id"`
	VisitorID string    `json:"visitor_id" db:"visitor_id"`
	ArticleID *int64    `json:"article_id" db:"article_id"`
	VisitDate time.Time `json:"visit_date" db:"visit_date"`
	PageURL   string    `json:"page_url" db:"page_url"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	UserAgent string    `json:"user_agent" db:"user_agent"`
	Referer   string    `json:"referer" db:"referer"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Visit is the request-side capture handed to the async ingest queue.
type Visit struct {
	VisitorID string
	ArticleID *int64
	PageURL   string
	IPAddress string
	UserAgent string
	Referer   string
}
