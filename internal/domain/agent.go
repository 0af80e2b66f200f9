package domain

import (
	"errors"
	"strings"
)

// AgentRole identifica al agente (persona) que maneja o produjo un turno.
type AgentRole string

const (
	AgentOrchestrator      AgentRole = "ORCHESTRATOR"
	AgentPatientManagement AgentRole = "PATIENT_MANAGEMENT"
	AgentAppointments      AgentRole = "APPOINTMENTS"
	AgentMedicalRecords    AgentRole = "MEDICAL_RECORDS"
	AgentBillingInsurance  AgentRole = "BILLING_INSURANCE"
)

var ErrUnknownAgentRole = errors.New("unknown agent role")

// AllRoles devuelve la enumeracion completa, orquestador primero.
func AllRoles() []AgentRole {
	return []AgentRole{
		AgentOrchestrator,
		AgentPatientManagement,
		AgentAppointments,
		AgentMedicalRecords,
		AgentBillingInsurance,
	}
}

// SpecialistRoles devuelve los cuatro destinos validos del router.
func SpecialistRoles() []AgentRole {
	return []AgentRole{
		AgentPatientManagement,
		AgentAppointments,
		AgentMedicalRecords,
		AgentBillingInsurance,
	}
}

func (r AgentRole) String() string {
	return string(r)
}

// IsSpecialist es true para todo rol salvo el orquestador.
func (r AgentRole) IsSpecialist() bool {
	switch r {
	case AgentPatientManagement, AgentAppointments, AgentMedicalRecords, AgentBillingInsurance:
		return true
	}
	return false
}

// ParseAgentRole normaliza y valida un identificador de rol.
func ParseAgentRole(s string) (AgentRole, error) {
	role := AgentRole(strings.ToUpper(strings.TrimSpace(s)))
	for _, r := range AllRoles() {
		if r == role {
			return r, nil
		}
	}
	return "", ErrUnknownAgentRole
}

// RolePtr devuelve un puntero al rol, util para Message.Agent.
func RolePtr(r AgentRole) *AgentRole {
	return &r
}

// AgentConfig es la metadata de presentacion y la instruccion de persona de un rol.
type AgentConfig struct {
	ID                AgentRole `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Icon              string    `json:"icon"`
	Color             string    `json:"color"`
	SystemInstruction string    `json:"-"`
}

// RouterResponse es la decision del orquestador. Los tags JSON son el contrato con el modelo.
type RouterResponse struct {
	TargetAgent AgentRole `json:"targetAgent"`
	Reasoning   string    `json:"reasoning"`
}
