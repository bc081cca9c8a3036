// Package webhook handles incoming data-pipeline webhook events.
//
// The upstream scraper posts a full dataset export whenever candidate
// filings or election results change. Deliveries are authenticated with
// an HMAC signature over the raw body.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// Event types delivered by the pipeline.
const (
	// EventFilingsUpdated fires when the candidate filing scrape finds
	// new or changed filings.
	EventFilingsUpdated = "filings_updated"
	// EventResultsUpdated fires when certified election results are
	// published or corrected.
	EventResultsUpdated = "results_updated"
)

// VerifySignature validates the X-Scmap-Signature-256 header against the payload.
func VerifySignature(payload []byte, signature string, secret []byte) error {
	if !strings.HasPrefix(signature, "sha256=") {
		return fmt.Errorf("invalid signature format")
	}
	sig, err := hex.DecodeString(signature[7:])
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := mac.Sum(nil)

	if !hmac.Equal(sig, expected) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}

// PipelineEvent is the payload shared by every pipeline event type. Both
// filings and results deliveries carry a complete dataset export; the
// event type only records what changed upstream.
type PipelineEvent struct {
	Type    string           `json:"-"`       // from the X-Scmap-Event header
	Chamber string           `json:"chamber"` // chamber slug: "sc_house"
	Name    string           `json:"name,omitempty"`
	Cycle   string           `json:"cycle,omitempty"`
	Source  string           `json:"source,omitempty"`
	Dataset *chamber.Dataset `json:"dataset"`
}

// ParseEvent parses a webhook payload based on the event type.
func ParseEvent(eventType string, payload []byte) (*PipelineEvent, error) {
	switch eventType {
	case EventFilingsUpdated, EventResultsUpdated:
	default:
		return nil, fmt.Errorf("unsupported event type %q", eventType)
	}

	var e PipelineEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("parse %s event: %w", eventType, err)
	}
	e.Type = eventType

	if e.Chamber == "" {
		return nil, fmt.Errorf("%s event missing chamber slug", eventType)
	}
	if e.Dataset == nil {
		return nil, fmt.Errorf("%s event missing dataset", eventType)
	}
	return &e, nil
}
