package event

import (
	"testing"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
)

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestNewAssignsIDAndPayload(t *testing.T) {
	t.Parallel()

	evt, err := New("region.proposed", chain.AccountID("alice"), testPayload{Name: "Japan", Count: 1})
	if err != nil {
		t.Fatalf("new event: %v", err)
	}
	if evt.ID == "" {
		t.Fatal("expected event id")
	}
	if evt.Namespace() != "region" {
		t.Fatalf("namespace = %q, want region", evt.Namespace())
	}

	var decoded testPayload
	if err := evt.Decode(&decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.Name != "Japan" || decoded.Count != 1 {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestRegistryValidateForAppend(t *testing.T) {
	t.Parallel()

	reg := NewRegistry("region.proposed")
	reg.Register("token.distributed")

	if err := reg.ValidateForAppend(Event{Type: "region.proposed"}); err != nil {
		t.Fatalf("expected registered type to validate: %v", err)
	}
	if err := reg.ValidateForAppend(Event{Type: "token.distributed"}); err != nil {
		t.Fatalf("expected registered type to validate: %v", err)
	}
	if err := reg.ValidateForAppend(Event{Type: "region.unknown"}); err == nil {
		t.Fatal("expected unregistered type to fail")
	}
	if err := reg.ValidateForAppend(Event{}); err == nil {
		t.Fatal("expected empty type to fail")
	}
}
