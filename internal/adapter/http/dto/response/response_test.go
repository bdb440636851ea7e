package response

import (
	"encoding/json"
	"testing"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase"
)

func TestFromQuote(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	q := entities.PriceQuote{
		ID: "q-1", UserID: "u-1", ServiceID: entities.ServiceTarotReading, ServiceName: "Tarot Reading",
		QuotedPrice: 4500, Currency: "USD", ValidUntil: &past, CreatedAt: now, UpdatedAt: now,
	}

	res := FromQuote(q, now)
	if res.QuoteID != "q-1" || res.ServiceID != "tarot_reading" || res.QuotedPrice != 4500 {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.Active || !res.Expired {
		t.Fatalf("expected expired inactive quote: %+v", res)
	}
	if len(FromQuotes(nil, now)) != 0 {
		t.Fatalf("expected empty list")
	}
}

func TestFromServiceRequest(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	r := entities.NewServiceRequest("r-1", "u-1", entities.ServiceHealingRitual, "Healing Ritual", "heal", "", now)
	r.AdminNotes = "internal"
	r.RitualSteps = []entities.RitualStep{
		{StepNumber: 1, StepName: "a", Completed: true, CompletedAt: &now},
		{StepNumber: 2, StepName: "b"},
		{StepNumber: 3, StepName: "c"},
	}

	res := FromServiceRequest(r)
	if res.RequestID != "r-1" || res.Status != "pending" || res.Priority != "medium" {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.CompletionPercentage != 33 {
		t.Fatalf("expected 33%% completion, got %d", res.CompletionPercentage)
	}
	if len(res.StatusHistory) != 1 || res.StatusHistory[0].UpdatedBy != entities.SystemActor {
		t.Fatalf("unexpected history: %+v", res.StatusHistory)
	}
	if res.Tags == nil || res.RitualSteps[1].PhotoURLs == nil {
		t.Fatalf("lists must encode as [] not null")
	}

	client, err := json.Marshal(FromServiceRequestForClient(r))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	_ = json.Unmarshal(client, &body)
	if _, ok := body["admin_notes"]; ok {
		t.Fatalf("admin notes must not reach the client: %s", client)
	}
	if body["completion_percentage"] != float64(33) {
		t.Fatalf("unexpected client body: %s", client)
	}
}

func TestFromRequestPage(t *testing.T) {
	now := time.Now().UTC()
	p := usecase.RequestPage{
		Items: []entities.ServiceRequest{entities.NewServiceRequest("r-1", "u-1", entities.ServiceLuckSpell, "Luck Spell", "x", "", now)},
		Total: 7, Limit: 1, Skip: 2,
	}
	res := FromRequestPage(p)
	if len(res.Items) != 1 || res.Total != 7 || res.Limit != 1 || res.Skip != 2 {
		t.Fatalf("unexpected page: %+v", res)
	}
	client := FromRequestPageForClient(p)
	if len(client.Items) != 1 || client.Items[0].RequestID != "r-1" {
		t.Fatalf("unexpected client page: %+v", client)
	}
}

func TestFromPaymentIntent(t *testing.T) {
	now := time.Now().UTC()
	p := entities.PaymentIntent{
		ID: "pay-1", QuoteID: "q-1", RequestID: "r-1", Amount: 7720, Currency: "BRL",
		Status: entities.PaymentStatusApproved, ProviderStatus: "approved",
		ProviderPayloadRaw: json.RawMessage(`{"id":123}`), CreatedAt: now,
	}

	res := FromPaymentIntent(p)
	if res.PaymentID != "pay-1" || res.RequestID != "r-1" || res.Status != "approved" || res.Amount != 7720 {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.ProviderPayloadRaw != `{"id":123}` || res.ProviderPayload["id"] != float64(123) {
		t.Fatalf("unexpected payload: %+v", res)
	}

	p.ProviderPayloadRaw = json.RawMessage(`{`)
	res = FromPaymentIntent(p)
	if res.ProviderPayload != nil || res.ProviderPayloadRaw != "{" {
		t.Fatalf("invalid provider json should be kept raw only: %+v", res)
	}
}
