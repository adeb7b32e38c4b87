package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"saluz-foodbot/internal/domain"
	"saluz-foodbot/internal/menu"
)

type fakeLLM struct {
	text     string
	err      error
	captured []domain.Turn
	calls    int
}

func (f *fakeLLM) Complete(_ context.Context, turns []domain.Turn) (string, error) {
	f.calls++
	f.captured = turns
	return f.text, f.err
}

type fakeStore struct {
	state     domain.State
	loadErr   error
	saveErr   error
	saved     []domain.State
	savedKeys []string
}

func (f *fakeStore) Load(_ context.Context, _ string) (domain.State, error) {
	if f.loadErr != nil {
		return domain.State{}, f.loadErr
	}
	return f.state, nil
}

func (f *fakeStore) Save(_ context.Context, senderID string, state domain.State) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.state = state
	f.saved = append(f.saved, state)
	f.savedKeys = append(f.savedKeys, senderID)
	return nil
}

func newTestService(t *testing.T, llm CompletionClient, store StateStore) *Service {
	t.Helper()
	svc, err := NewService(menu.Default(), llm, store, nil, nil)
	require.NoError(t, err)
	return svc
}

func completionJSON(action, summary string, items []domain.OrderItem, total float64) string {
	c := domain.Completion{Action: action, Summary: summary, Items: items, TotalPrice: total}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf(`{"name":%q,"quantity":%d}`, it.Name, it.Quantity))
	}
	return fmt.Sprintf(`{"action":%q,"summary":%q,"items":[%s],"total_price":%v}`,
		c.Action, c.Summary, strings.Join(lines, ","), c.TotalPrice)
}

func TestRespond_FirstTurnGreetingOverride(t *testing.T) {
	for _, msg := range []string{"oi", "Oi", " OLÁ ", "ola"} {
		llm := &fakeLLM{text: completionJSON(domain.ActionGeneralChat, "resposta qualquer do modelo", nil, 0)}
		svc := newTestService(t, llm, &fakeStore{})
		out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: msg})
		require.Equal(t, OutcomeOK, out.Outcome)
		require.Equal(t, initialGreeting, out.Reply, "message %q", msg)
	}
}

func TestRespond_GreetingNotOverriddenWithHistory(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionGeneralChat, "resposta do modelo", nil, 0)}
	store := &fakeStore{state: domain.State{History: []domain.Turn{
		{Role: domain.RoleUser, Text: "oi"},
		{Role: domain.RoleModel, Text: "olá"},
	}}}
	svc := newTestService(t, llm, store)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "oi"})
	require.Equal(t, "resposta do modelo", out.Reply)
}

func TestRespond_OrderPendingFormatting(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionOrderPending, "Anotado!",
		[]domain.OrderItem{{Name: "X", Quantity: 2}}, 47.00)}
	svc := newTestService(t, llm, nil)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "quero dois X"})
	require.Equal(t, OutcomeOK, out.Outcome)
	require.Contains(t, out.Reply, "2x X")
	require.Contains(t, out.Reply, "47.00")
	require.Contains(t, out.Reply, "Posso adicionar algo mais? Se for tudo, me diga 'finalizar'.")
}

func TestRespond_OrderPendingRecomputesTotalFromCatalog(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionOrderPending, "Anotado!",
		[]domain.OrderItem{{Name: "Trono de SaLuz", Quantity: 2}}, 90.00)}
	svc := newTestService(t, llm, nil)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "dois tronos"})
	require.Contains(t, out.Reply, "94.00")
	require.NotContains(t, out.Reply, "90.00")
}

func TestRespond_OrderReadyAppendsAddressPromptOnce(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionOrderReady, "Pedido confirmado!",
		[]domain.OrderItem{{Name: "Plebeu", Quantity: 1}}, 29.00)}
	svc := newTestService(t, llm, nil)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "finalizar"})
	require.Contains(t, out.Reply, "1x Plebeu")
	require.Contains(t, out.Reply, "✅ O VALOR TOTAL É DE R$29.00.")
	require.Equal(t, 1, strings.Count(out.Reply, "Qual será o endereço de entrega?"))
}

func TestRespond_OrderReadySkipsAddressPromptWhenSummaryAsks(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionOrderReady, "Perfeito. Qual o endereço de entrega?",
		[]domain.OrderItem{{Name: "Plebeu", Quantity: 1}}, 29.00)}
	svc := newTestService(t, llm, nil)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "finalizar"})
	require.NotContains(t, out.Reply, "Obrigado por pedir no Saluz Food House!")
}

func TestRespond_SummaryFallbackWhenEmpty(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionGeneralChat, "", nil, 0)}
	svc := newTestService(t, llm, nil)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "???"})
	require.Equal(t, summaryFallback, out.Reply)
}

func TestRespond_NotConnected(t *testing.T) {
	svc := newTestService(t, nil, &fakeStore{})

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "oi"})
	require.Equal(t, OutcomeNotConnected, out.Outcome)
	require.Equal(t, msgNotConnected, out.Reply)
}

func TestRespond_OverloadedCompletion(t *testing.T) {
	llm := &fakeLLM{err: fmt.Errorf("%w: last status 503", ErrCompletionOverloaded)}
	store := &fakeStore{}
	svc := newTestService(t, llm, store)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "oi"})
	require.Equal(t, OutcomeOverloaded, out.Outcome)
	require.Equal(t, msgOverloaded, out.Reply)
	require.Empty(t, store.saved)
}

func TestRespond_FatalCompletionIncludesDetail(t *testing.T) {
	llm := &fakeLLM{err: &CompletionFatalError{Err: errors.New("tls handshake failed")}}
	svc := newTestService(t, llm, nil)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "oi"})
	require.Equal(t, OutcomeFatal, out.Outcome)
	require.Equal(t, msgUnexpectedPrefix+"tls handshake failed", out.Reply)
}

type panickyStore struct {
	fakeStore
}

func (p *panickyStore) Save(context.Context, string, domain.State) error {
	panic("state document corrupted")
}

func TestRespond_PanicYieldsInternalErrorReply(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionGeneralChat, "resposta", nil, 0)}
	svc := newTestService(t, llm, &panickyStore{})

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "tudo bem?"})
	require.Equal(t, OutcomeInternal, out.Outcome)
	require.Equal(t, msgInternal, out.Reply)

	// The sender lock was released during the unwind; the next turn must
	// not deadlock.
	out = svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "oi de novo"})
	require.Equal(t, OutcomeInternal, out.Outcome)
}

func TestRespond_MalformedCompletionLeavesStateUntouched(t *testing.T) {
	prior := domain.State{History: []domain.Turn{{Role: domain.RoleUser, Text: "oi"}}}
	llm := &fakeLLM{text: "this is not json"}
	store := &fakeStore{state: prior}
	svc := newTestService(t, llm, store)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "quero um burguer"})
	require.Equal(t, OutcomeMalformed, out.Outcome)
	require.Equal(t, msgMalformed, out.Reply)
	require.Empty(t, store.saved)

	after, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, prior, after)
}

func TestRespond_PersistsTurnPair(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionOrderPending, "Anotado!",
		[]domain.OrderItem{{Name: "Plebeu", Quantity: 1}}, 29.00)}
	store := &fakeStore{}
	svc := newTestService(t, llm, store)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "um plebeu"})
	require.Len(t, store.saved, 1)
	require.Equal(t, []string{"s1"}, store.savedKeys)

	saved := store.saved[0]
	require.Equal(t, []domain.OrderItem{{Name: "Plebeu", Quantity: 1}}, saved.Items)
	require.InDelta(t, 29.00, saved.Total, 0.001)
	require.Len(t, saved.History, 2)
	require.Equal(t, domain.Turn{Role: domain.RoleUser, Text: "um plebeu"}, saved.History[0])
	require.Equal(t, domain.Turn{Role: domain.RoleModel, Text: out.Reply}, saved.History[1])
}

func TestRespond_MergePreservesPriorTurns(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionGeneralChat, "resposta", nil, 0)}
	store := &fakeStore{}
	svc := newTestService(t, llm, store)

	svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "primeira"})
	svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "segunda"})

	require.Len(t, store.saved, 2)
	history := store.saved[1].History
	require.Len(t, history, 4)
	require.Equal(t, "primeira", history[0].Text)
	require.Equal(t, domain.RoleUser, history[0].Role)
	require.Equal(t, domain.RoleModel, history[1].Role)
	require.Equal(t, "segunda", history[2].Text)
	require.Equal(t, domain.RoleModel, history[3].Role)
}

func TestRespond_SaveFailureStillReturnsReply(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionGeneralChat, "resposta", nil, 0)}
	store := &fakeStore{saveErr: errors.New("dynamodb down")}
	svc := newTestService(t, llm, store)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "oi?"})
	require.Equal(t, OutcomeOK, out.Outcome)
	require.Equal(t, "resposta", out.Reply)
}

func TestRespond_LoadFailureProceedsWithEmptyHistory(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionGeneralChat, "qualquer coisa", nil, 0)}
	store := &fakeStore{loadErr: errors.New("dynamodb down")}
	svc := newTestService(t, llm, store)

	out := svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "oi"})
	// Empty history makes this a first turn, so the greeting override applies.
	require.Equal(t, initialGreeting, out.Reply)
}

func TestRespond_ConversationIncludesHistoryAndMarkedMessage(t *testing.T) {
	llm := &fakeLLM{text: completionJSON(domain.ActionGeneralChat, "resposta", nil, 0)}
	store := &fakeStore{state: domain.State{History: []domain.Turn{
		{Role: domain.RoleUser, Text: "oi"},
		{Role: domain.RoleModel, Text: "olá, o que deseja?"},
	}}}
	svc := newTestService(t, llm, store)

	svc.Respond(context.Background(), TurnInput{SenderID: "s1", Message: "tem hambúrguer?"})

	require.Len(t, llm.captured, 3)
	require.Equal(t, "oi", llm.captured[0].Text)
	require.Equal(t, "olá, o que deseja?", llm.captured[1].Text)
	last := llm.captured[2]
	require.Equal(t, domain.RoleUser, last.Role)
	require.Contains(t, last.Text, "[MENSAGEM DO CLIENTE]: tem hambúrguer?")
	require.NotContains(t, last.Text, "[INSTRUÇÃO ADICIONAL]")
}
