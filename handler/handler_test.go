package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"saluz-foodbot/internal/usecase"
)

type stubResponder struct {
	out usecase.TurnOutput
	in  usecase.TurnInput
}

func (s *stubResponder) Respond(_ context.Context, in usecase.TurnInput) usecase.TurnOutput {
	s.in = in
	return s.out
}

func formBody(from, body string) string {
	values := url.Values{}
	values.Set("MessageSid", "SM123")
	values.Set("From", from)
	values.Set("Body", body)
	return values.Encode()
}

func makeEvent(body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/whatsapp",
		Headers:    map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		Body:       body,
	}
}

func TestNewHandler_ValidatesDependency(t *testing.T) {
	_, err := NewHandler(nil)
	require.Error(t, err)
}

func TestHandle_HappyPath(t *testing.T) {
	stub := &stubResponder{out: usecase.TurnOutput{Reply: "Olá! Como posso ajudar?", Outcome: usecase.OutcomeOK}}
	h, err := NewHandler(stub)
	require.NoError(t, err)

	resp, err := h.Handle(context.Background(), makeEvent(formBody("whatsapp:+5551999", "oi")))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/xml", resp.Headers["Content-Type"])
	require.NotEmpty(t, resp.Headers["X-Correlation-Id"])
	require.Contains(t, resp.Body, "<Response><Message>Olá! Como posso ajudar?</Message></Response>")

	require.Equal(t, "whatsapp:+5551999", stub.in.SenderID)
	require.Equal(t, "oi", stub.in.Message)
}

func TestHandle_Base64Body(t *testing.T) {
	stub := &stubResponder{out: usecase.TurnOutput{Reply: "ok"}}
	h, err := NewHandler(stub)
	require.NoError(t, err)

	event := makeEvent(base64.StdEncoding.EncodeToString([]byte(formBody("whatsapp:+5551999", "oi"))))
	event.IsBase64Encoded = true

	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "oi", stub.in.Message)
}

func TestHandle_MissingSender(t *testing.T) {
	h, err := NewHandler(&stubResponder{})
	require.NoError(t, err)

	resp, err := h.Handle(context.Background(), makeEvent(formBody("", "oi")))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandle_UsesProvidedCorrelationID_CaseInsensitive(t *testing.T) {
	h, err := NewHandler(&stubResponder{out: usecase.TurnOutput{Reply: "ok"}})
	require.NoError(t, err)

	event := makeEvent(formBody("whatsapp:+5551999", "oi"))
	event.Headers["x-correlation-id"] = "corr-123"
	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, "corr-123", resp.Headers["X-Correlation-Id"])
}

func TestWhatsApp_HappyPath(t *testing.T) {
	stub := &stubResponder{out: usecase.TurnOutput{Reply: "Anotado!", Outcome: usecase.OutcomeOK}}
	h, err := NewHandler(stub)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/whatsapp", strings.NewReader(formBody("whatsapp:+5551999", "um plebeu")))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.WhatsApp(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/xml", w.Header().Get("Content-Type"))
	require.Contains(t, w.Body.String(), "<Message>Anotado!</Message>")
	require.Equal(t, "um plebeu", stub.in.Message)
}

func TestWhatsApp_MissingSender(t *testing.T) {
	h, err := NewHandler(&stubResponder{})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/whatsapp", strings.NewReader(formBody("", "oi")))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.WhatsApp(w, r)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWhatsApp_RejectsInvalidSignature(t *testing.T) {
	h, err := NewHandler(&stubResponder{}, WithSignatureValidation("secret"))
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/whatsapp", strings.NewReader(formBody("whatsapp:+5551999", "oi")))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.WhatsApp(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	h, err := NewHandler(&stubResponder{})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, HealthMessage, w.Body.String())
}
