package domain

type TicketStatus string

const (
	TicketOnSale     TicketStatus = "on_sale"
	TicketSoldOut    TicketStatus = "sold_out"
	TicketComingSoon TicketStatus = "coming_soon"
)

// ParseTicketStatus validates a wire value for the ticket status enum.
func ParseTicketStatus(s string) (TicketStatus, error) {
	switch TicketStatus(s) {
	case TicketOnSale, TicketSoldOut, TicketComingSoon:
		return TicketStatus(s), nil
	}
	return "", ErrInvalidTicketStatus
}

// Event is a scheduled show as stored. Date is a calendar date in ISO 8601
// (YYYY-MM-DD); it is kept as a string because the store orders by it and
// parse faults must degrade per the display rules, not at decode time.
type Event struct {
	ID           string
	EventType    int
	Venue        string
	City         string
	Date         string
	TicketStatus TicketStatus
	TicketLink   string
	Visible      bool
}
