package domain

import "github.com/finconsgroup/zooadmin/pkg/zoosdk"

// Ticket is a maintenance ticket. UserID is the operator who accepted
// it; unassigned tickets sit on the shared dashboard. CreationDate is a
// bare date string ("2026-08-31") to match the wire format.
type Ticket struct {
	ID              int64
	Title           string
	RecommendedRole zoosdk.OperatorType
	Urgency         zoosdk.TicketUrgency
	CreationDate    string
	Description     string
	UserID          *int64
}
