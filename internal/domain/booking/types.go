package booking

type Status string

const (
	StatusPending         Status = "PENDING"
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusConfirmed       Status = "CONFIRMED"
	StatusAssigned        Status = "ASSIGNED"
	StatusInProgress      Status = "IN_PROGRESS"
	StatusCompleted       Status = "COMPLETED"
	StatusCancelled       Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAwaitingPayment, StatusConfirmed, StatusAssigned,
		StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// allowedTransitions is the booking status graph as code. The lifecycle is
// linear with no skipping; CANCELLED is an alternate terminal reachable from
// any pre-ride state. An in-progress ride can only run to completion.
var allowedTransitions = map[Status][]Status{
	StatusPending:         {StatusAwaitingPayment, StatusCancelled},
	StatusAwaitingPayment: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:       {StatusAssigned, StatusCancelled},
	StatusAssigned:        {StatusInProgress, StatusCancelled},
	StatusInProgress:      {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "UNPAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentRefunded      PaymentStatus = "REFUNDED"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentUnpaid, PaymentPartiallyPaid, PaymentPaid, PaymentRefunded:
		return true
	default:
		return false
	}
}

// IsPaid reports whether any money has actually been collected.
func (p PaymentStatus) IsPaid() bool {
	return p == PaymentPaid || p == PaymentPartiallyPaid
}

type PaymentMethod string

const (
	PayLater        PaymentMethod = "PAY_LATER"
	PayCard         PaymentMethod = "CARD"
	PayBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PayLater, PayCard, PayBankTransfer:
		return true
	default:
		return false
	}
}

type Direction string

const (
	FromAirport Direction = "FROM_AIRPORT"
	ToAirport   Direction = "TO_AIRPORT"
)

func (d Direction) IsValid() bool {
	return d == FromAirport || d == ToAirport
}
