package usecase

// Outcome classifies how a turn ended. It labels metrics and log lines;
// the customer only ever sees the reply text.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeNotConnected Outcome = "not_connected"
	OutcomeOverloaded   Outcome = "overloaded"
	OutcomeFatal        Outcome = "fatal"
	OutcomeMalformed    Outcome = "malformed"
	OutcomeInternal     Outcome = "internal"
)
