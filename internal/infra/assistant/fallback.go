package assistant

import (
	"context"
	"fmt"
	"strings"

	"darkstore/internal/domain/entity"
	"darkstore/internal/domain/service"
)

// SourceLocal labels answers produced without the hosted model.
const SourceLocal = "local"

// localResponder is the keyword fallback used when no API key is configured
// or the hosted model is unreachable. It only knows about prices, shipping,
// returns and direct catalog matches.
type localResponder struct{}

// NewLocalResponder creates the fallback assistant.
func NewLocalResponder() service.AssistantService {
	return &localResponder{}
}

// Answer matches the question against a small set of storefront topics.
func (r *localResponder) Answer(_ context.Context, question string, products []*entity.Product) (*service.ChatAnswer, error) {
	q := strings.ToLower(question)

	reply := func(answer string) (*service.ChatAnswer, error) {
		return &service.ChatAnswer{Answer: answer, Source: SourceLocal}, nil
	}

	switch {
	case containsAny(q, "ship", "deliver"):
		return reply("We offer free standard shipping on orders over $50. Standard delivery takes 3-5 business days.")

	case containsAny(q, "return", "refund", "exchange"):
		return reply("You can return any unused item within 30 days of delivery for a full refund.")
	}

	if matches := matchProducts(q, products); len(matches) > 0 {
		return reply(describeProducts(matches))
	}

	if containsAny(q, "price", "cost", "cheap", "expensive", "how much") {
		if answer, ok := describePriceRange(products); ok {
			return reply(answer)
		}
	}

	if containsAny(q, "stock", "available", "sell", "have", "product", "catalog") && len(products) > 0 {
		return reply(fmt.Sprintf("We currently carry %d products across categories like %s. Ask me about any of them!",
			len(products), strings.Join(categories(products), ", ")))
	}

	return reply("I can help with product details, prices, shipping, and returns. What would you like to know?")
}

func containsAny(q string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(q, keyword) {
			return true
		}
	}

	return false
}

// matchProducts finds products whose name, category or brand appears in the
// question.
func matchProducts(q string, products []*entity.Product) []*entity.Product {
	var matches []*entity.Product
	for _, p := range products {
		if nameMatches(q, p.Name) ||
			(p.Category != "" && strings.Contains(q, strings.ToLower(p.Category))) ||
			(p.Brand != "" && strings.Contains(q, strings.ToLower(p.Brand))) {
			matches = append(matches, p)
		}
	}

	if len(matches) > 3 {
		matches = matches[:3]
	}

	return matches
}

// nameMatches checks whether any word of the product name longer than three
// characters appears in the question.
func nameMatches(q, name string) bool {
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if len(word) > 3 && strings.Contains(q, word) {
			return true
		}
	}

	return false
}

func describeProducts(products []*entity.Product) string {
	var b strings.Builder
	b.WriteString("Here's what I found: ")
	for i, p := range products {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s at $%s", p.Name, p.EffectivePrice().StringFixed(2))
		if p.Discount > 0 {
			fmt.Fprintf(&b, " (%d%% off)", p.Discount)
		}
		if p.Stock == 0 {
			b.WriteString(" (currently out of stock)")
		}
	}
	b.WriteString(".")

	return b.String()
}

func describePriceRange(products []*entity.Product) (string, bool) {
	if len(products) == 0 {
		return "", false
	}

	low := products[0].EffectivePrice()
	high := low
	for _, p := range products[1:] {
		price := p.EffectivePrice()
		if price.LessThan(low) {
			low = price
		}
		if price.GreaterThan(high) {
			high = price
		}
	}

	if low.Equal(high) {
		return fmt.Sprintf("Our products are priced at $%s.", low.StringFixed(2)), true
	}

	return fmt.Sprintf("Our products range from $%s to $%s. Ask me about a specific product for details!",
		low.StringFixed(2), high.StringFixed(2)), true
}

func categories(products []*entity.Product) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}

	return out
}
