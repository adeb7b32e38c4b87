package domain

// Turn roles. Gemini names the assistant side "model", and the persisted
// history keeps the same spelling so stored turns replay into prompts
// without translation.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is a single conversation message, chronological within a history.
type Turn struct {
	Role string `json:"role" dynamodbav:"role"`
	Text string `json:"text" dynamodbav:"text"`
}

// OrderItem is one line of a proposed order.
type OrderItem struct {
	Name     string `json:"name" dynamodbav:"name"`
	Quantity int    `json:"quantity" dynamodbav:"quantity"`
}

// State is the per-sender conversation document. History is append-only
// from the orchestration's point of view; Items and Total are fully
// replaced by each successful turn.
type State struct {
	Items   []OrderItem `dynamodbav:"items"`
	Total   float64     `dynamodbav:"total"`
	History []Turn      `dynamodbav:"chatHistory"`
}
