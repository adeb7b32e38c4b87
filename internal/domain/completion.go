package domain

// Actions the model may select for a turn.
const (
	ActionOrderPending = "ORDER_PENDING"
	ActionOrderReady   = "ORDER_READY"
	ActionGeneralChat  = "GENERAL_CHAT"
)

// Completion is the structured result decoded from one model response.
// It lives for a single turn; its durable projection is written into State.
type Completion struct {
	Action     string      `json:"action"`
	Summary    string      `json:"summary"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
}
