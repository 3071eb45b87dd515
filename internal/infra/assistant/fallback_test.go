package assistant

import (
	"context"
	"testing"

	"darkstore/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []*entity.Product {
	return []*entity.Product{
		{
			ID:       "p1",
			Name:     "Enamel Camping Mug",
			Price:    decimal.NewFromFloat(12.50),
			Stock:    10,
			Category: "kitchen",
			Brand:    "trailware",
		},
		{
			ID:       "p2",
			Name:     "Down Sleeping Bag",
			Price:    decimal.NewFromFloat(180.00),
			Discount: 10,
			Stock:    0,
			Category: "outdoor",
			Brand:    "northpine",
		},
	}
}

func askLocal(t *testing.T, question string) string {
	t.Helper()

	answer, err := NewLocalResponder().Answer(context.Background(), question, testCatalog())
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, answer.Source)

	return answer.Answer
}

func TestLocalResponder_Shipping(t *testing.T) {
	answer := askLocal(t, "How long does shipping take?")
	assert.Contains(t, answer, "shipping")
}

func TestLocalResponder_Returns(t *testing.T) {
	answer := askLocal(t, "Can I get a refund?")
	assert.Contains(t, answer, "30 days")
}

func TestLocalResponder_ProductMatchByName(t *testing.T) {
	answer := askLocal(t, "Tell me about the camping mug")
	assert.Contains(t, answer, "Enamel Camping Mug")
	assert.Contains(t, answer, "12.50")
}

func TestLocalResponder_ProductMatchShowsDiscountAndStock(t *testing.T) {
	answer := askLocal(t, "Do you have anything for outdoor trips?")
	assert.Contains(t, answer, "Down Sleeping Bag")
	assert.Contains(t, answer, "162.00")
	assert.Contains(t, answer, "10% off")
	assert.Contains(t, answer, "out of stock")
}

func TestLocalResponder_PriceRange(t *testing.T) {
	answer := askLocal(t, "How much do things cost here?")
	assert.Contains(t, answer, "$12.50")
	assert.Contains(t, answer, "$162.00")
}

func TestLocalResponder_DefaultAnswer(t *testing.T) {
	answer := askLocal(t, "What's the meaning of life?")
	assert.Contains(t, answer, "product details, prices, shipping, and returns")
}

func TestLocalResponder_EmptyCatalogStillAnswers(t *testing.T) {
	responder := NewLocalResponder()

	answer, err := responder.Answer(context.Background(), "how much is a mug?", nil)
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, answer.Source)
	assert.NotEmpty(t, answer.Answer)
}
