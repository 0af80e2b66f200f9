package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"induk-agents/internal/agents"
	"induk-agents/internal/domain"
	"induk-agents/internal/llm"
)

func TestResponderServiceRespond(t *testing.T) {
	registry := agents.NewDefaultRegistry()

	t.Run("returns model text", func(t *testing.T) {
		client := &llm.MockClient{Response: "Baik, jam berapa Anda ingin datang?"}
		svc := NewResponderService(client, registry, nil, zap.NewNop(), nil)

		got := svc.Respond(context.Background(), domain.AgentAppointments, nil, "Saya ingin membuat janji temu")
		if got != "Baik, jam berapa Anda ingin datang?" {
			t.Fatalf("unexpected reply %q", got)
		}
	})

	t.Run("empty reply becomes apology", func(t *testing.T) {
		svc := NewResponderService(&llm.MockClient{Response: ""}, registry, nil, zap.NewNop(), nil)
		if got := svc.Respond(context.Background(), domain.AgentAppointments, nil, "halo"); got != ResponderApology {
			t.Fatalf("expected apology, got %q", got)
		}
	})

	t.Run("error becomes apology", func(t *testing.T) {
		svc := NewResponderService(&llm.MockClient{Err: errors.New("quota exceeded")}, registry, nil, zap.NewNop(), nil)
		if got := svc.Respond(context.Background(), domain.AgentBillingInsurance, nil, "halo"); got != ResponderApology {
			t.Fatalf("expected apology, got %q", got)
		}
	})

	t.Run("non specialist role becomes apology", func(t *testing.T) {
		client := &llm.MockClient{Response: "should not be used"}
		svc := NewResponderService(client, registry, nil, zap.NewNop(), nil)
		if got := svc.Respond(context.Background(), domain.AgentOrchestrator, nil, "halo"); got != ResponderApology {
			t.Fatalf("expected apology, got %q", got)
		}
		if len(client.Requests()) != 0 {
			t.Fatalf("expected no llm call for orchestrator")
		}
	})
}

func TestResponderServiceRespond_Request(t *testing.T) {
	registry := agents.NewDefaultRegistry()
	client := &llm.MockClient{Response: "ok"}
	svc := NewResponderService(client, registry, nil, zap.NewNop(), nil)
	history := []domain.Turn{
		{Role: domain.MessageRoleUser, Text: "Saya mau daftar"},
		{Role: domain.MessageRoleModel, Text: "Boleh minta nama lengkap?"},
	}

	svc.Respond(context.Background(), domain.AgentPatientManagement, history, "Nama saya Budi")

	reqs := client.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected one llm call, got %d", len(reqs))
	}
	req := reqs[0]
	if req.SystemInstruction != registry.Lookup(domain.AgentPatientManagement).SystemInstruction {
		t.Fatalf("expected patient management persona")
	}
	if req.Temperature == nil || *req.Temperature != DefaultResponderTemperature {
		t.Fatalf("expected temperature %v, got %v", DefaultResponderTemperature, req.Temperature)
	}
	if len(req.History) != 2 || req.History[0].Text != "Saya mau daftar" || req.History[1].Role != domain.MessageRoleModel {
		t.Fatalf("history not passed through in order: %+v", req.History)
	}
	if req.Prompt != "Nama saya Budi" {
		t.Fatalf("unexpected prompt %q", req.Prompt)
	}
	if req.ResponseSchema != nil {
		t.Fatalf("responder must not request structured output")
	}
}

func TestResponderServiceZeroTemperature(t *testing.T) {
	registry := agents.NewDefaultRegistry()
	client := &llm.MockClient{Response: "ok"}
	zero := float32(0)
	svc := NewResponderService(client, registry, &zero, zap.NewNop(), nil)

	svc.Respond(context.Background(), domain.AgentAppointments, nil, "halo")

	reqs := client.Requests()
	if len(reqs) != 1 || reqs[0].Temperature == nil {
		t.Fatalf("expected one call with temperature, got %+v", reqs)
	}
	if *reqs[0].Temperature != 0 {
		t.Fatalf("expected temperature 0, got %v", *reqs[0].Temperature)
	}

	negative := float32(-1)
	svc = NewResponderService(client, registry, &negative, zap.NewNop(), nil)
	svc.Respond(context.Background(), domain.AgentAppointments, nil, "halo")
	reqs = client.Requests()
	if *reqs[len(reqs)-1].Temperature != DefaultResponderTemperature {
		t.Fatalf("expected default temperature for negative input")
	}
}
