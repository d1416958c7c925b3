package replay

import (
	"encoding/json"
	"fmt"
)

// Record types, one per evidence producer plus the lifecycle events.
const (
	TypeContext  = "context"
	TypeText     = "text"
	TypeNetwork  = "network"
	TypeUI       = "ui"
	TypeLocation = "location"
)

// Record is one captured evidence event. Captures are NDJSON files, one
// record per line, written by the capture side in event order. Fields
// beyond Type and Context are populated per record type.
type Record struct {
	Type string `json:"type"`

	// Context is the conversation/tab identifier the event belongs to.
	Context string `json:"context"`

	// Platform is set on context records.
	Platform string `json:"platform,omitempty"`

	// Chars is set on text records: the visible conversation length.
	Chars int `json:"chars,omitempty"`

	// URL is set on network and location records.
	URL string `json:"url,omitempty"`

	// Payload is the raw response body on network records.
	Payload string `json:"payload,omitempty"`

	// UI cue fields, set on ui records.
	Buttons string `json:"buttons,omitempty"`
	Profile string `json:"profile,omitempty"`
	Picker  string `json:"picker,omitempty"`
	Nav     string `json:"nav,omitempty"`
}

// ParseRecord decodes one capture line.
func ParseRecord(line []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, fmt.Errorf("parse capture record: %w", err)
	}
	if rec.Type == "" {
		return nil, fmt.Errorf("capture record missing type")
	}
	return &rec, nil
}
