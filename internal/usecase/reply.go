package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"saluz-foodbot/internal/domain"
)

var errMalformedCompletion = errors.New("usecase: completion is not valid structured data")

var (
	labelPattern     = regexp.MustCompile(`(?i)🤖\s*Saluz Bot:[\s\n]*`)
	blankLinePattern = regexp.MustCompile(`\n{3,}`)
)

// decodeCompletion parses the raw completion text against the fixed schema.
// It fails closed: unknown fields or trailing data trigger the
// malformed-completion path instead of a partial result.
func decodeCompletion(raw string) (domain.Completion, error) {
	var out domain.Completion
	dec := json.NewDecoder(bytes.NewBufferString(strings.TrimSpace(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return domain.Completion{}, fmt.Errorf("%w: %v", errMalformedCompletion, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.Completion{}, fmt.Errorf("%w: trailing data", errMalformedCompletion)
	}
	return out, nil
}

// isFirstTurnGreeting reports whether the normalized user message is a bare
// greeting on a turn with no prior history.
func isFirstTurnGreeting(userMessage string, hasHistory bool) bool {
	if hasHistory {
		return false
	}
	_, ok := greetingTokens[strings.ToLower(strings.TrimSpace(userMessage))]
	return ok
}

// reconcileOrder validates the completion's item names against the catalog.
// When every name resolves, the total is recomputed from catalog prices so
// a hallucinated total never reaches the customer. Unknown names are kept
// (the summary already tells the customer the item is unavailable) but
// logged, and the model's own total stands.
func (s *Service) reconcileOrder(c *domain.Completion) {
	if len(c.Items) == 0 {
		return
	}
	var unknown []string
	total := 0.0
	for _, it := range c.Items {
		price, ok := s.catalog.Price(it.Name)
		if !ok {
			unknown = append(unknown, it.Name)
			continue
		}
		total += price * float64(it.Quantity)
	}
	if len(unknown) > 0 {
		s.logger.Warn("completion references items outside the catalog", "items", unknown)
		return
	}
	if math.Abs(total-c.TotalPrice) > 0.005 {
		s.logger.Warn("correcting completion total from catalog prices",
			slog.Float64("model_total", c.TotalPrice),
			slog.Float64("catalog_total", total))
	}
	c.TotalPrice = total
}

// buildReply turns a decoded completion into the final customer-facing
// text: greeting override, per-action order sections, then normalization.
func buildReply(c domain.Completion, userMessage string, hasHistory bool) string {
	var b strings.Builder

	if c.Action == domain.ActionGeneralChat && isFirstTurnGreeting(userMessage, hasHistory) {
		fmt.Fprintf(&b, "%s\n\n%s", botLabel, initialGreeting)
	} else {
		summary := c.Summary
		if strings.TrimSpace(summary) == "" {
			summary = summaryFallback
		}
		fmt.Fprintf(&b, "%s\n\n%s\n", botLabel, summary)
	}

	switch c.Action {
	case domain.ActionOrderPending:
		if len(c.Items) > 0 {
			fmt.Fprintf(&b, "\nSeu pedido atual:\n%s\n", itemLines(c.Items))
			fmt.Fprintf(&b, "\nO total parcial é de R$%.2f.", c.TotalPrice)
			b.WriteString(morePrompt)
		}
	case domain.ActionOrderReady:
		fmt.Fprintf(&b, "\nSeu Pedido Final:\n%s\n", itemLines(c.Items))
		fmt.Fprintf(&b, "\n✅ O VALOR TOTAL É DE R$%.2f.", c.TotalPrice)
		lower := strings.ToLower(b.String())
		if !strings.Contains(lower, "endereço") && !strings.Contains(lower, "qual") {
			b.WriteString(addressPrompt)
		}
	}

	return normalize(b.String())
}

func itemLines(items []domain.OrderItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("- %dx %s", it.Quantity, it.Name))
	}
	return strings.Join(lines, "\n")
}

// normalize strips the bot-name label, collapses runs of three or more
// newlines to one blank line, and trims the edges. Applying it twice
// yields the same result as applying it once.
func normalize(text string) string {
	text = labelPattern.ReplaceAllString(text, "")
	text = blankLinePattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
