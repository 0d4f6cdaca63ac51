package domain

import "fmt"

// State is the checkout phase. The zero value is Idle.
type State int

const (
	StateIdle State = iota
	StateAwaitingPaymentInput
	StateProcessing
	StateCompleted
)

var stateNames = map[State]string{
	StateIdle:                 "IDLE",
	StateAwaitingPaymentInput: "AWAITING_PAYMENT_INPUT",
	StateProcessing:           "PROCESSING",
	StateCompleted:            "COMPLETED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
