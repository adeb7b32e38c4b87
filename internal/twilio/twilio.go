package twilio

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Webhook is an inbound Twilio message webhook. Only the fields the order
// bot consumes are parsed.
type Webhook struct {
	MessageSid string
	AccountSid string
	From       string
	Body       string
}

// ParseWebhook reads a Twilio form-encoded webhook from an HTTP request.
func ParseWebhook(r *http.Request) (Webhook, error) {
	if err := r.ParseForm(); err != nil {
		return Webhook{}, fmt.Errorf("twilio: parse form: %w", err)
	}
	return FromValues(r.PostForm), nil
}

// FromValues builds a Webhook from already-decoded form values. The Lambda
// adapter uses this after url-decoding the event body itself.
func FromValues(values url.Values) Webhook {
	return Webhook{
		MessageSid: values.Get("MessageSid"),
		AccountSid: values.Get("AccountSid"),
		From:       strings.TrimSpace(values.Get("From")),
		Body:       strings.TrimSpace(values.Get("Body")),
	}
}

// ValidateSignature checks the X-Twilio-Signature header against the
// HMAC-SHA1 of the webhook URL plus the sorted form parameters.
func ValidateSignature(r *http.Request, authToken, webhookURL string) bool {
	signature := r.Header.Get("X-Twilio-Signature")
	if signature == "" {
		return false
	}
	if err := r.ParseForm(); err != nil {
		return false
	}
	expected := computeSignature(buildSignaturePayload(webhookURL, r.PostForm), authToken)
	return hmac.Equal([]byte(signature), []byte(expected))
}

func buildSignaturePayload(webhookURL string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var payload strings.Builder
	payload.WriteString(webhookURL)
	for _, key := range keys {
		for _, value := range params[key] {
			payload.WriteString(key)
			payload.WriteString(value)
		}
	}
	return payload.String()
}

func computeSignature(data, key string) string {
	h := hmac.New(sha1.New, []byte(key))
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

type messagingResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// MessagingResponse renders the TwiML reply envelope for one outbound
// message, escaping the text for XML.
func MessagingResponse(text string) string {
	out, err := xml.Marshal(messagingResponse{Message: text})
	if err != nil {
		// The struct marshals unconditionally; this is unreachable with
		// valid UTF-8 input.
		return xml.Header + "<Response></Response>"
	}
	return xml.Header + string(out)
}
