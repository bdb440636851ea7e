package request

import (
	"errors"
	"testing"

	"ritual_desk/internal/domain/entities"
)

func TestResolveProviderPayload(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{name: "empty body", body: "  ", want: `{}`},
		{name: "bare payload", body: `{"payment_method_id":"pix"}`, want: `{"payment_method_id":"pix"}`},
		{name: "wrapped payload", body: `{"mp_payload":{"payment_method_id":"pix"}}`, want: `{"payment_method_id":"pix"}`},
		{name: "wrapped null", body: `{"mp_payload":null}`, wantErr: ErrEmptyWrappedPayload},
		{name: "invalid json", body: `{`, wantErr: ErrPayloadNotJSON},
		{name: "array passes through", body: `[1]`, want: `[1]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveProviderPayload([]byte(tc.body))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCreateQuoteRequest_ToInput(t *testing.T) {
	in := CreateQuoteRequest{UserID: " u-1 ", ServiceID: " tarot_reading ", QuotedPrice: 4500, ValidDays: 3}.ToInput()
	if in.UserID != "u-1" || in.ServiceID != entities.ServiceTarotReading || in.QuotedPrice != 4500 || in.ValidDays != 3 {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestAdminListQuery_Filter(t *testing.T) {
	q := AdminListQuery{Status: " pending ", ServiceType: "luck_spell", Priority: "urgent", AssignedTo: " a-1 ", Search: "Moon"}
	f := q.Filter()
	want := entities.AdminFilter{
		Status:      entities.RequestStatusPending,
		ServiceType: entities.ServiceLuckSpell,
		AssignedTo:  "a-1",
		Priority:    entities.PriorityUrgent,
		Search:      "Moon",
	}
	if f != want {
		t.Fatalf("expected %+v, got %+v", want, f)
	}
}

func TestCreateServiceRequestRequest_ToInput(t *testing.T) {
	in := CreateServiceRequestRequest{ServiceType: "healing_ritual", Description: "d", ClientNotes: "n"}.ToInput("u-9")
	if in.UserID != "u-9" || in.ServiceType != entities.ServiceHealingRitual || in.Description != "d" || in.ClientNotes != "n" {
		t.Fatalf("unexpected input: %+v", in)
	}
}
