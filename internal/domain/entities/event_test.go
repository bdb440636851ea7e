package entities

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEvent_JSONCarriesAttributes(t *testing.T) {
	e := Event{
		Type:        EventRequestStatusChanged,
		AggregateID: "r1",
		UserID:      "u1",
		OccurredAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Attributes:  map[string]string{"from": "pending", "to": "in_progress"},
	}
	raw, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["type"] != "request.status_changed" || body["aggregate_id"] != "r1" {
		t.Fatalf("unexpected envelope: %s", raw)
	}
	attrs, ok := body["attributes"].(map[string]any)
	if !ok || attrs["from"] != "pending" || attrs["to"] != "in_progress" {
		t.Fatalf("attributes missing from body: %s", raw)
	}
}

func TestEvent_JSONOmitsEmptyAttributes(t *testing.T) {
	raw, err := json.Marshal(Event{Type: EventQuoteCreated, AggregateID: "q1"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := body["attributes"]; ok {
		t.Fatalf("expected no attributes key: %s", raw)
	}
}
