package domain

// Pending marks how the next free-text message from a user should be
// interpreted. Only one value is ever set at a time; anything received with
// NoPending is ignored.
type Pending int

const (
	NoPending Pending = iota
	PendingPrice
	PendingQuantity
)

// FlowState tracks the two-step onboarding conversation.
type FlowState int

const (
	FlowNone FlowState = iota
	FlowAwaitingPrice
	FlowAwaitingStartDate
)
