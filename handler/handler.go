package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"saluz-foodbot/internal/twilio"
	"saluz-foodbot/internal/usecase"
)

// HealthMessage is the fixed availability string served on the root path.
const HealthMessage = "✅ O Webhook WhatsApp Saluz Bot (via Twilio) está funcionando! Acesse /whatsapp para enviar um POST do Twilio."

// Responder is the orchestration boundary the transport adapters call.
type Responder interface {
	Respond(ctx context.Context, in usecase.TurnInput) usecase.TurnOutput
}

// Handler adapts Twilio webhooks onto the conversation service, whether
// delivered through API Gateway (Lambda) or straight HTTP.
type Handler struct {
	svc       Responder
	authToken string
	logger    *slog.Logger
}

type Option func(*Handler)

// WithSignatureValidation enables X-Twilio-Signature checking on the HTTP
// webhook using the given auth token.
func WithSignatureValidation(authToken string) Option {
	return func(h *Handler) {
		h.authToken = authToken
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func NewHandler(svc Responder, opts ...Option) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("handler: responder must not be nil")
	}
	h := &Handler{svc: svc, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handle is the Lambda entrypoint for the Twilio webhook behind API
// Gateway. The event body is the provider's form-encoded payload.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := correlationIDFrom(event.Headers)

	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return textResponse(http.StatusBadRequest, "invalid body encoding", correlationID), nil
		}
		body = string(decoded)
	}
	values, err := url.ParseQuery(body)
	if err != nil {
		return textResponse(http.StatusBadRequest, "invalid form body", correlationID), nil
	}

	webhook := twilio.FromValues(values)
	if webhook.From == "" {
		return textResponse(http.StatusBadRequest, "missing sender", correlationID), nil
	}

	reply := h.respond(ctx, webhook)

	resp := textResponse(http.StatusOK, twilio.MessagingResponse(reply), correlationID)
	resp.Headers["Content-Type"] = "text/xml"
	return resp, nil
}

// WhatsApp handles POST /whatsapp from Twilio directly over HTTP.
func (h *Handler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	if h.authToken != "" && !twilio.ValidateSignature(r, h.authToken, absoluteURL(r)) {
		h.logger.Warn("invalid twilio signature")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	webhook, err := twilio.ParseWebhook(r)
	if err != nil {
		h.logger.Error("failed to parse twilio webhook", "err", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if webhook.From == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	reply := h.respond(r.Context(), webhook)

	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write([]byte(twilio.MessagingResponse(reply)))
}

// Health reports process availability.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte(HealthMessage))
}

func (h *Handler) respond(ctx context.Context, webhook twilio.Webhook) string {
	h.logger.Info("inbound message", "sender", webhook.From, "sid", webhook.MessageSid)
	out := h.svc.Respond(ctx, usecase.TurnInput{
		SenderID: webhook.From,
		Message:  webhook.Body,
	})
	h.logger.Info("reply produced", "sender", webhook.From, "outcome", out.Outcome)
	return out.Reply
}

func correlationIDFrom(headers map[string]string) string {
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == "X-Correlation-Id" && v != "" {
			return v
		}
	}
	return uuid.NewString()
}

func textResponse(status int, body, correlationID string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":     "text/plain; charset=utf-8",
			"X-Correlation-Id": correlationID,
		},
		Body: body,
	}
}

func absoluteURL(r *http.Request) string {
	scheme := "https"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
