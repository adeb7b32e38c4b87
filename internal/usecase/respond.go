package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"saluz-foodbot/internal/domain"
	"saluz-foodbot/internal/menu"
	"saluz-foodbot/internal/observability/metrics"
)

// CompletionClient invokes the external language-model capability.
type CompletionClient interface {
	Complete(ctx context.Context, turns []domain.Turn) (string, error)
}

// StateStore reads and merge-writes per-sender conversation state.
type StateStore interface {
	Load(ctx context.Context, senderID string) (domain.State, error)
	Save(ctx context.Context, senderID string, state domain.State) error
}

// Service orchestrates one conversation turn: load state, compose the
// prompt, call the completion capability, interpret the result, persist.
// Every failure class is converted to its fixed customer-facing reply at
// this boundary; nothing below the transport ever sees a raw error.
type Service struct {
	catalog     *menu.Catalog
	catalogText string
	llm         CompletionClient
	store       StateStore
	logger      *slog.Logger
	metrics     *metrics.TurnMetrics

	mu      sync.Mutex
	senders map[string]*sync.Mutex
}

// TurnInput is one inbound message from one sender.
type TurnInput struct {
	SenderID string
	Message  string
}

// TurnOutput carries the reply text plus the outcome classification.
type TurnOutput struct {
	Reply   string
	Outcome Outcome
}

// NewService wires the orchestration. llm and store are optional
// capabilities: a nil llm short-circuits every turn with the
// not-connected reply, a nil store runs the bot stateless.
func NewService(catalog *menu.Catalog, llm CompletionClient, store StateStore, logger *slog.Logger, m *metrics.TurnMetrics) (*Service, error) {
	if catalog == nil {
		return nil, errors.New("usecase: catalog must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		catalog:     catalog,
		catalogText: catalog.Format(),
		llm:         llm,
		store:       store,
		logger:      logger,
		metrics:     m,
		senders:     make(map[string]*sync.Mutex),
	}, nil
}

// Respond handles one turn end to end and always produces a reply.
// Turns for the same sender are serialized so two rapid messages cannot
// load the same stale history and overwrite each other's appends.
func (s *Service) Respond(ctx context.Context, in TurnInput) (out TurnOutput) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while processing turn", "sender", in.SenderID, "panic", r)
			out = s.finish(TurnOutput{Reply: msgInternal, Outcome: OutcomeInternal})
		}
	}()

	lock := s.senderLock(in.SenderID)
	lock.Lock()
	defer lock.Unlock()

	state := s.loadState(ctx, in.SenderID)

	if s.llm == nil {
		return s.finish(TurnOutput{Reply: msgNotConnected, Outcome: OutcomeNotConnected})
	}

	conversation := buildConversation(s.catalogText, in.Message, state.History)

	start := time.Now()
	raw, err := s.llm.Complete(ctx, conversation)
	s.metrics.ObserveCompletionLatency(time.Since(start).Seconds())
	if err != nil {
		return s.finish(s.completionFailure(in.SenderID, err))
	}

	completion, err := decodeCompletion(raw)
	if err != nil {
		s.logger.Error("completion is not valid JSON", "sender", in.SenderID, "err", err)
		return s.finish(TurnOutput{Reply: msgMalformed, Outcome: OutcomeMalformed})
	}

	s.reconcileOrder(&completion)
	reply := buildReply(completion, in.Message, len(state.History) > 0)

	s.persist(ctx, in.SenderID, state, completion, in.Message, reply)

	return s.finish(TurnOutput{Reply: reply, Outcome: OutcomeOK})
}

// completionFailure maps the client's typed errors onto the fixed replies.
func (s *Service) completionFailure(senderID string, err error) TurnOutput {
	var fatal *CompletionFatalError
	switch {
	case errors.Is(err, ErrCompletionOverloaded):
		s.logger.Error("completion attempts exhausted", "sender", senderID, "err", err)
		return TurnOutput{Reply: msgOverloaded, Outcome: OutcomeOverloaded}
	case errors.As(err, &fatal):
		s.logger.Error("fatal completion failure", "sender", senderID, "err", fatal.Err)
		return TurnOutput{Reply: msgUnexpectedPrefix + fatal.Err.Error(), Outcome: OutcomeFatal}
	default:
		s.logger.Error("completion failure", "sender", senderID, "err", err)
		return TurnOutput{Reply: msgUnexpectedPrefix + err.Error(), Outcome: OutcomeFatal}
	}
}

// loadState fetches the sender's stored state. Store absence or a read
// failure degrades to an empty state; the turn still proceeds.
func (s *Service) loadState(ctx context.Context, senderID string) domain.State {
	if s.store == nil {
		return domain.State{}
	}
	state, err := s.store.Load(ctx, senderID)
	if err != nil {
		s.logger.Error("failed to load conversation state", "sender", senderID, "err", err)
		return domain.State{}
	}
	return state
}

// persist merge-writes the turn's durable projection: the history with the
// new user/model pair appended, and the order items and total replaced.
// Saving is best-effort; the reply has already been produced.
func (s *Service) persist(ctx context.Context, senderID string, prior domain.State, c domain.Completion, userMessage, reply string) {
	if s.store == nil {
		return
	}

	history := make([]domain.Turn, 0, len(prior.History)+2)
	for _, t := range prior.History {
		if t.Role == domain.RoleUser || t.Role == domain.RoleModel {
			history = append(history, t)
		}
	}
	history = append(history,
		domain.Turn{Role: domain.RoleUser, Text: userMessage},
		domain.Turn{Role: domain.RoleModel, Text: reply},
	)

	items := c.Items
	if items == nil {
		items = []domain.OrderItem{}
	}

	next := domain.State{
		Items:   items,
		Total:   c.TotalPrice,
		History: history,
	}
	if err := s.store.Save(ctx, senderID, next); err != nil {
		s.logger.Error("failed to save conversation state", "sender", senderID, "err", err)
	}
}

func (s *Service) finish(out TurnOutput) TurnOutput {
	s.metrics.ObserveTurn(string(out.Outcome))
	return out
}

// senderLock returns the serialization mutex for one sender, creating it
// on first use. Entries are never evicted; sender cardinality is bounded
// by the restaurant's customer base.
func (s *Service) senderLock(senderID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.senders[senderID]
	if !ok {
		lock = &sync.Mutex{}
		s.senders[senderID] = lock
	}
	return lock
}
