package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/domain/service"
)

// DefaultSignatureTolerance bounds how old a webhook timestamp may be before
// the event is rejected as a possible replay.
const DefaultSignatureTolerance = 5 * time.Minute

// signatureVerifier authenticates webhook payloads with the provider's
// signature scheme: the header carries a unix timestamp and one or more
// HMAC-SHA256 digests of "<timestamp>.<payload>".
type signatureVerifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

// NewSignatureVerifier creates a verifier for the given endpoint secret.
func NewSignatureVerifier(secret string) service.WebhookVerifier {
	return &signatureVerifier{
		secret:    secret,
		tolerance: DefaultSignatureTolerance,
		now:       time.Now,
	}
}

// VerifyAndParse checks the signature header and decodes the event payload.
// Any authentication failure maps to ErrSignatureInvalid; the caller must not
// apply the event in that case.
func (v *signatureVerifier) VerifyAndParse(payload []byte, signatureHeader string) (*service.PaymentEvent, error) {
	if v.secret == "" {
		return nil, domainerrors.ErrSignatureInvalid.WrapMessage("webhook secret not configured")
	}

	timestamp, digests, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, domainerrors.ErrSignatureInvalid.WrapMessage(err.Error())
	}

	age := v.now().Sub(time.Unix(timestamp, 0))
	if age > v.tolerance || age < -v.tolerance {
		return nil, domainerrors.ErrSignatureInvalid.WrapMessage("timestamp outside tolerance")
	}

	expected := computeSignature(v.secret, timestamp, payload)
	authentic := false
	for _, digest := range digests {
		if hmac.Equal([]byte(digest), []byte(expected)) {
			authentic = true

			break
		}
	}
	if !authentic {
		return nil, domainerrors.ErrSignatureInvalid.WrapMessage("signature mismatch")
	}

	var event struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID string `json:"id"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, domainerrors.ErrSignatureInvalid.WrapMessage("malformed event payload")
	}

	return &service.PaymentEvent{
		ID:        event.ID,
		Type:      event.Type,
		SessionID: event.Data.Object.ID,
	}, nil
}

// parseSignatureHeader splits "t=<unix>,v1=<hex>[,v1=<hex>...]".
func parseSignatureHeader(header string) (int64, []string, error) {
	var timestamp int64
	var digests []string
	sawTimestamp := false

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("bad timestamp in signature header")
			}
			timestamp = parsed
			sawTimestamp = true
		case "v1":
			digests = append(digests, value)
		}
	}

	if !sawTimestamp || len(digests) == 0 {
		return 0, nil, fmt.Errorf("incomplete signature header")
	}

	return timestamp, digests, nil
}

func computeSignature(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)

	return hex.EncodeToString(mac.Sum(nil))
}

// SignPayload builds a valid signature header for a payload. The payment
// provider normally does this; it is exported for local webhook testing.
func SignPayload(secret string, at time.Time, payload []byte) string {
	timestamp := at.Unix()

	return fmt.Sprintf("t=%d,v1=%s", timestamp, computeSignature(secret, timestamp, payload))
}
