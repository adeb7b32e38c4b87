package usecase

import (
	"fmt"
	"strings"

	"saluz-foodbot/internal/domain"
)

// buildSystemPrompt renders the persona and rule block prefixed to every
// user message. catalogText is the deterministic menu listing; embedding it
// on every turn keeps the model grounded on identical text.
func buildSystemPrompt(catalogText string) string {
	return fmt.Sprintf(`[INSTRUÇÕES GERAIS]
Você é o 'Saluz Bot', o assistente de pedidos do restaurante Saluz Food House.
Seu objetivo é ser amigável, acolhedor e focado em ajudar o cliente a montar o pedido.

REGRAS CRÍTICAS (IMPERATIVAS):
1. **ENDEREÇO FIXO:** O endereço do restaurante (para retirada ou informação) é: **%s**. Se o cliente perguntar o endereço ou localização (e a action for 'GENERAL_CHAT'), você DEVE fornecer APENAS este endereço na 'summary'. NUNCA invente outros endereços.
2. **CARDÁPIO FIXO:** Você DEVE usar **APENAS** os nomes de itens listados abaixo. **NÃO INVENTE, RESUMA OU ALTERE OS NOMES DOS PRATOS.** Se o cliente pedir algo que NÃO está na lista, você DEVE responder em 'summary' dizendo *claramente* que o item não está disponível e, em seguida, **sugerir** um item similar da lista.
%s

REGRAS DE FORMATAÇÃO:
3. RESPOSTA ESTRUTURADA (JSON): Você DEVE responder usando o formato JSON ESPECIFICADO na schema.
4. PEDIDOS (Action 'ORDER_PENDING'): Se o usuário estiver mencionando itens para comprar, a 'action' DEVE ser 'ORDER_PENDING'.
5. FINALIZAÇÃO (Action 'ORDER_READY'): Se o usuário pedir para finalizar, a 'action' DEVE ser 'ORDER_READY'.
6. CONVERSA GERAL (Action 'GENERAL_CHAT'): Se o usuário perguntar sobre horários, localização, ou *pedir o cardápio*, a 'action' DEVE ser 'GENERAL_CHAT'. Se o cliente pedir o cardápio, **você DEVE incluir este link para o cardápio em PDF: %s**
[/INSTRUÇÕES GERAIS]`,
		RestaurantAddress, catalogText, MenuPDFLink)
}

// buildConversation assembles the full payload for the completion call:
// the prior history replayed as-is, followed by one user turn carrying the
// rule block and the marked raw customer message. The very first turn also
// carries the canned-greeting instruction.
func buildConversation(catalogText, userMessage string, history []domain.Turn) []domain.Turn {
	turns := make([]domain.Turn, 0, len(history)+1)
	for _, t := range history {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		turns = append(turns, t)
	}

	systemPrompt := buildSystemPrompt(catalogText)
	var text string
	if len(turns) == 0 {
		text = fmt.Sprintf(
			"%s\n\n[MENSAGEM DO CLIENTE]: %s\n\n[INSTRUÇÃO ADICIONAL]: Se a mensagem do cliente for 'Oi', use a saudação inicial: '%s'",
			systemPrompt, userMessage, initialGreeting,
		)
	} else {
		text = fmt.Sprintf("%s\n\n[MENSAGEM DO CLIENTE]: %s", systemPrompt, userMessage)
	}

	return append(turns, domain.Turn{Role: domain.RoleUser, Text: text})
}
