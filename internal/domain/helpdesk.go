package domain

import "time"

// HelpdeskTicket mirrors a row of helpdesk_tickets. No service operates on it yet.
type HelpdeskTicket struct {
	ID            int64
	UserID        int64
	Complaint     *string
	ComplaintDate *time.Time
	Description   *string
	Photo         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
