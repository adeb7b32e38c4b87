package usecase

// Fixed customer-facing copy. The wording is load-bearing: tests and the
// WhatsApp conversation contract depend on these exact strings.
const (
	// RestaurantAddress is the only address the bot is ever allowed to give.
	RestaurantAddress = "Av. Assis Brasil 516, Porto Alegre, Rio Grande do Sul 91030-280"

	// MenuPDFLink is handed out whenever the customer asks for the menu.
	MenuPDFLink = "https://abre.ai/n7ty"

	botLabel = "🤖 Saluz Bot:"

	initialGreeting = "Olá! Eu sou o Saluz Bot, seu assistente de pedidos. Como posso te ajudar a montar seu pedido hoje? Se precisar do cardápio, me peça 'cardápio'!"

	summaryFallback = "Desculpe, não entendi. Pode repetir?"

	msgNotConnected = "❌ Desculpe, a conexão com a Gemini API falhou. Verifique sua chave de API."

	msgOverloaded = "❌ Desculpe, o sistema de pedidos está temporariamente sobrecarregado. Por favor, tente novamente em um minuto."

	msgUnexpectedPrefix = "❌ Desculpe, ocorreu um erro inesperado ao processar seu pedido. Detalhe: "

	msgMalformed = "🤖 Saluz Bot: Desculpe, tive um erro ao processar sua solicitação de IA. Tente reformular a frase."

	msgInternal = "🤖 Saluz Bot: Ops! Tive um erro de lógica interna. Por favor, tente novamente."

	morePrompt = "\n\nPosso adicionar algo mais? Se for tudo, me diga 'finalizar'."

	addressPrompt = "\n\nObrigado por pedir no Saluz Food House! Qual será o endereço de entrega?"
)

// greetingTokens are the bare greetings that trigger the canned first-turn
// reply regardless of the model's own summary.
var greetingTokens = map[string]struct{}{
	"oi":  {},
	"olá": {},
	"ola": {},
}
