package core

// Outcome is the result of evaluating an item against a receptacle
type Outcome uint8

const (
	OutcomeAccepted Outcome = iota
	OutcomeRejected
)

func (o Outcome) String() string {
	if o == OutcomeAccepted {
		return "Accepted"
	}
	return "Rejected"
}

// RejectReason explains a rejection
type RejectReason uint8

const (
	ReasonNone RejectReason = iota
	ReasonWrongCategory
	ReasonFull
)

func (r RejectReason) String() string {
	switch r {
	case ReasonWrongCategory:
		return "wrong category"
	case ReasonFull:
		return "receptacle full"
	default:
		return ""
	}
}
