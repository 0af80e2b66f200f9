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

func TestRouterServiceRoute(t *testing.T) {
	registry := agents.NewDefaultRegistry()

	cases := []struct {
		name       string
		client     *llm.MockClient
		wantAgent  domain.AgentRole
		wantReason string
	}{
		{
			name:       "valid decision",
			client:     &llm.MockClient{Response: `{"targetAgent":"APPOINTMENTS","reasoning":"scheduling keyword detected"}`},
			wantAgent:  domain.AgentAppointments,
			wantReason: "scheduling keyword detected",
		},
		{
			name:       "fenced json",
			client:     &llm.MockClient{Response: "```json\n{\"targetAgent\":\"BILLING_INSURANCE\",\"reasoning\":\"asks about BPJS\"}\n```"},
			wantAgent:  domain.AgentBillingInsurance,
			wantReason: "asks about BPJS",
		},
		{
			name:       "transport error",
			client:     &llm.MockClient{Err: errors.New("connection reset")},
			wantAgent:  domain.AgentPatientManagement,
			wantReason: RoutingFallbackReason,
		},
		{
			name:       "empty reply",
			client:     &llm.MockClient{Response: "  "},
			wantAgent:  domain.AgentPatientManagement,
			wantReason: RoutingFallbackReason,
		},
		{
			name:       "malformed reply",
			client:     &llm.MockClient{Response: "I think appointments"},
			wantAgent:  domain.AgentPatientManagement,
			wantReason: RoutingFallbackReason,
		},
		{
			name:       "target outside specialists",
			client:     &llm.MockClient{Response: `{"targetAgent":"ORCHESTRATOR","reasoning":"unsure"}`},
			wantAgent:  domain.AgentPatientManagement,
			wantReason: RoutingFallbackReason,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewRouterService(tc.client, registry, zap.NewNop(), nil)
			got := svc.Route(context.Background(), "Saya ingin membuat janji temu")
			if got.TargetAgent != tc.wantAgent {
				t.Fatalf("expected agent %s, got %s", tc.wantAgent, got.TargetAgent)
			}
			if got.Reasoning != tc.wantReason {
				t.Fatalf("expected reasoning %q, got %q", tc.wantReason, got.Reasoning)
			}
		})
	}
}

func TestRouterServiceRoute_Request(t *testing.T) {
	registry := agents.NewDefaultRegistry()
	client := &llm.MockClient{Response: `{"targetAgent":"MEDICAL_RECORDS","reasoning":"lab results"}`}
	svc := NewRouterService(client, registry, zap.NewNop(), nil)

	svc.Route(context.Background(), "Hasil lab saya sudah keluar?")

	reqs := client.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected one llm call, got %d", len(reqs))
	}
	req := reqs[0]
	if req.SystemInstruction != registry.Orchestrator().SystemInstruction {
		t.Fatalf("expected orchestrator instruction")
	}
	if req.Prompt != "Hasil lab saya sudah keluar?" {
		t.Fatalf("unexpected prompt %q", req.Prompt)
	}
	if len(req.History) != 0 {
		t.Fatalf("router must not receive history")
	}
	if req.ResponseSchema == nil || len(req.ResponseSchema.Properties["targetAgent"].Enum) != 4 {
		t.Fatalf("expected schema constrained to four specialists")
	}
}

func TestRouterServiceRoute_NotConfigured(t *testing.T) {
	var svc *RouterService
	got := svc.Route(context.Background(), "halo")
	if got != FallbackRouterResponse() {
		t.Fatalf("expected fallback for nil service, got %+v", got)
	}
}
