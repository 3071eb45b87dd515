package payment

import (
	"testing"
	"time"

	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

var completedEventPayload = []byte(`{
	"id": "evt_1",
	"type": "checkout.session.completed",
	"data": {"object": {"id": "cs_test_123"}}
}`)

func newTestVerifier(at time.Time) *signatureVerifier {
	return &signatureVerifier{
		secret:    testSecret,
		tolerance: DefaultSignatureTolerance,
		now:       func() time.Time { return at },
	}
}

func TestVerifyAndParse_ValidSignature(t *testing.T) {
	now := time.Now()
	verifier := newTestVerifier(now)
	header := SignPayload(testSecret, now, completedEventPayload)

	event, err := verifier.VerifyAndParse(completedEventPayload, header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, service.EventCheckoutCompleted, event.Type)
	assert.Equal(t, "cs_test_123", event.SessionID)
}

func TestVerifyAndParse_WrongSecret(t *testing.T) {
	now := time.Now()
	verifier := newTestVerifier(now)
	header := SignPayload("whsec_other", now, completedEventPayload)

	_, err := verifier.VerifyAndParse(completedEventPayload, header)
	assert.ErrorIs(t, err, domainerrors.ErrSignatureInvalid)
}

func TestVerifyAndParse_TamperedPayload(t *testing.T) {
	now := time.Now()
	verifier := newTestVerifier(now)
	header := SignPayload(testSecret, now, completedEventPayload)

	tampered := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_evil"}}}`)

	_, err := verifier.VerifyAndParse(tampered, header)
	assert.ErrorIs(t, err, domainerrors.ErrSignatureInvalid)
}

func TestVerifyAndParse_StaleTimestamp(t *testing.T) {
	now := time.Now()
	verifier := newTestVerifier(now)
	header := SignPayload(testSecret, now.Add(-DefaultSignatureTolerance-time.Minute), completedEventPayload)

	_, err := verifier.VerifyAndParse(completedEventPayload, header)
	assert.ErrorIs(t, err, domainerrors.ErrSignatureInvalid)
}

func TestVerifyAndParse_MalformedHeader(t *testing.T) {
	verifier := newTestVerifier(time.Now())

	for _, header := range []string{"", "t=abc,v1=deadbeef", "v1=deadbeef", "t=123"} {
		_, err := verifier.VerifyAndParse(completedEventPayload, header)
		assert.ErrorIs(t, err, domainerrors.ErrSignatureInvalid, "header %q", header)
	}
}

func TestVerifyAndParse_SecretNotConfigured(t *testing.T) {
	verifier := NewSignatureVerifier("")

	_, err := verifier.VerifyAndParse(completedEventPayload, SignPayload(testSecret, time.Now(), completedEventPayload))
	assert.ErrorIs(t, err, domainerrors.ErrSignatureInvalid)
}

func TestVerifyAndParse_MultipleDigests(t *testing.T) {
	now := time.Now()
	verifier := newTestVerifier(now)
	valid := SignPayload(testSecret, now, completedEventPayload)

	header := valid + ",v1=0000000000000000000000000000000000000000000000000000000000000000"

	event, err := verifier.VerifyAndParse(completedEventPayload, header)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", event.SessionID)
}
