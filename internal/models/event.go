package models

// EventKind identifies a domain event worth telling the owner about.
type EventKind string

const (
	EventTradeWon           EventKind = "trade_won"
	EventTradeLost          EventKind = "trade_lost"
	EventObjectiveCompleted EventKind = "objective_completed"
)

// Event is emitted by a mutation or a recomputation pass. Dispatching it is
// left to the caller.
type Event struct {
	Kind EventKind
	// ID of the trade or objective concerned.
	ID string
	// Label is the trade pair or objective title.
	Label string
	// Amount is the trade result for trade events.
	Amount float64
}
