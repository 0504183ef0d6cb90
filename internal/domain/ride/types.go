package ride

type Status string

const (
	StatusPendingAssign Status = "PENDING_ASSIGN"
	StatusAssigned      Status = "ASSIGNED"
	StatusOnWay         Status = "ON_WAY"
	StatusAtPickup      Status = "AT_PICKUP"
	StatusInRide        Status = "IN_RIDE"
	StatusFinished      Status = "FINISHED"
	StatusNoShow        Status = "NO_SHOW"
	StatusCancelled     Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingAssign, StatusAssigned, StatusOnWay, StatusAtPickup,
		StatusInRide, StatusFinished, StatusNoShow, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusNoShow || s == StatusCancelled
}

// allowedTransitions encodes the operational flow: strictly linear from
// assignment to finish, with NO_SHOW and CANCELLED as alternate terminals.
// A ride cannot leave PENDING_ASSIGN except through driver assignment.
var allowedTransitions = map[Status][]Status{
	StatusPendingAssign: {StatusAssigned, StatusCancelled},
	StatusAssigned:      {StatusOnWay, StatusNoShow, StatusCancelled},
	StatusOnWay:         {StatusAtPickup, StatusNoShow, StatusCancelled},
	StatusAtPickup:      {StatusInRide, StatusNoShow, StatusCancelled},
	StatusInRide:        {StatusFinished},
}

func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
