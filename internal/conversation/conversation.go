// Package conversation implementa la maquina de estados de una conversacion:
// Idle → Routing → Generating → Idle, con un unico turno en vuelo.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"induk-agents/internal/domain"
	"induk-agents/internal/metrics"
	"induk-agents/internal/service"
)

// WelcomeMessage abre cada conversacion como aviso de sistema.
const WelcomeMessage = "Selamat datang di Sistem Operasi Rumah Sakit INDUK. Silakan sampaikan kebutuhan Anda (Pendaftaran, Janji Temu, Rekam Medis, atau Penagihan)."

// ErrorNotice se agrega cuando un turno falla fuera de los fallbacks del router y del responder.
const ErrorNotice = "Maaf, terjadi kesalahan pada sistem agen. Silakan coba lagi."

var (
	ErrBusy         = errors.New("conversation busy")
	ErrEmptyMessage = errors.New("empty message")

	errInvalidRoute = errors.New("router resolved a non-specialist role")
	errTurnPanicked = errors.New("turn panicked")
)

// Router clasifica un turno. Implementado por service.RouterService.
type Router interface {
	Route(ctx context.Context, userText string) domain.RouterResponse
}

// Responder genera la respuesta del especialista. Implementado por service.ResponderService.
type Responder interface {
	Respond(ctx context.Context, role domain.AgentRole, history []domain.Turn, userText string) string
}

// Recorder recibe cada mensaje agregado al log (archivo de transcripts).
type Recorder interface {
	Record(ctx context.Context, conversationID string, msg domain.Message) error
}

// Observer se invoca tras cada cambio de estado, fuera del lock.
type Observer func(domain.ConversationSnapshot)

type Option func(*Conversation)

// WithRoutingDelay agrega una pausa cosmetica antes de rutear. Cero la desactiva.
func WithRoutingDelay(d time.Duration) Option {
	return func(c *Conversation) {
		if d > 0 {
			c.routingDelay = d
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Conversation) { c.observer = o }
}

func WithRecorder(r Recorder) Option {
	return func(c *Conversation) { c.recorder = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Conversation) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Conversation) { c.metrics = m }
}

// Conversation es dueña del log de mensajes y de los flags de ocupacion.
type Conversation struct {
	id           string
	router       Router
	responder    Responder
	recorder     Recorder
	observer     Observer
	routingDelay time.Duration
	logger       *zap.Logger
	metrics      *metrics.Metrics

	mu            sync.Mutex
	messages      []domain.Message
	phase         domain.Phase
	activeAgent   *domain.AgentRole
	routingReason string
}

// New crea la conversacion con el mensaje de bienvenida ya en el log.
func New(id string, router Router, responder Responder, opts ...Option) *Conversation {
	c := &Conversation{
		id:        id,
		router:    router,
		responder: responder,
		logger:    zap.NewNop(),
		phase:     domain.PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("conversation_id", id))

	welcome := newMessage(domain.MessageRoleSystem, WelcomeMessage, domain.RolePtr(domain.AgentOrchestrator))
	c.messages = append(c.messages, welcome)
	c.record(context.Background(), welcome)
	return c
}

func (c *Conversation) ID() string {
	return c.id
}

// Snapshot devuelve una copia consistente del estado para la capa de presentacion.
func (c *Conversation) Snapshot() domain.ConversationSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Conversation) snapshotLocked() domain.ConversationSnapshot {
	msgs := make([]domain.Message, len(c.messages))
	copy(msgs, c.messages)

	var active *domain.AgentRole
	if c.activeAgent != nil {
		active = domain.RolePtr(*c.activeAgent)
	}

	return domain.ConversationSnapshot{
		ID:            c.id,
		Messages:      msgs,
		ActiveAgent:   active,
		IsRouting:     c.phase == domain.PhaseRouting,
		IsGenerating:  c.phase == domain.PhaseGenerating,
		RoutingReason: c.routingReason,
		Phase:         c.phase,
	}
}

// Submit procesa un turno completo y devuelve el estado final.
// Mientras hay un turno en vuelo devuelve ErrBusy sin tocar el log; no hay cola.
// Las fallas del turno se renderizan como aviso de sistema y no se propagan.
func (c *Conversation) Submit(ctx context.Context, text string) (domain.ConversationSnapshot, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return c.Snapshot(), ErrEmptyMessage
	}

	c.mu.Lock()
	if c.phase != domain.PhaseIdle {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.metrics.ObserveTurn(metrics.TurnRejected)
		return snap, ErrBusy
	}
	history := domain.HistoryFromMessages(c.messages)
	userMsg := newMessage(domain.MessageRoleUser, text, nil)
	c.messages = append(c.messages, userMsg)
	c.phase = domain.PhaseRouting
	c.activeAgent = nil
	c.routingReason = ""
	c.mu.Unlock()

	if err := c.runTurn(ctx, userMsg, history, text); err != nil {
		c.failTurn(ctx, err)
		return c.Snapshot(), nil
	}

	c.metrics.ObserveTurn(metrics.TurnCompleted)
	return c.Snapshot(), nil
}

func (c *Conversation) runTurn(ctx context.Context, userMsg domain.Message, history []domain.Turn, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errTurnPanicked, r)
		}
	}()

	c.record(ctx, userMsg)
	c.notify()

	if err := c.pace(ctx); err != nil {
		return fmt.Errorf("routing delay: %w", err)
	}

	decision := c.router.Route(ctx, text)
	if !decision.TargetAgent.IsSpecialist() {
		return fmt.Errorf("%w: %q", errInvalidRoute, decision.TargetAgent)
	}
	role := decision.TargetAgent

	c.mu.Lock()
	c.activeAgent = domain.RolePtr(role)
	c.routingReason = decision.Reasoning
	c.phase = domain.PhaseGenerating
	c.mu.Unlock()
	c.notify()

	reply := c.responder.Respond(ctx, role, history, text)
	if strings.TrimSpace(reply) == "" {
		c.logger.Warn("responder returned empty reply", zap.String("agent", string(role)))
		reply = service.ResponderApology
	}

	modelMsg := newMessage(domain.MessageRoleModel, reply, domain.RolePtr(role))
	c.mu.Lock()
	c.messages = append(c.messages, modelMsg)
	c.phase = domain.PhaseIdle
	c.mu.Unlock()

	c.record(ctx, modelMsg)
	c.notify()
	return nil
}

func (c *Conversation) failTurn(ctx context.Context, cause error) {
	c.logger.Error("turn failed", zap.Error(cause))

	notice := newMessage(domain.MessageRoleSystem, ErrorNotice, nil)
	c.mu.Lock()
	c.messages = append(c.messages, notice)
	c.phase = domain.PhaseIdle
	c.mu.Unlock()

	c.record(ctx, notice)
	c.notify()
	c.metrics.ObserveTurn(metrics.TurnFailed)
}

func (c *Conversation) pace(ctx context.Context) error {
	if c.routingDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.routingDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// record nunca falla el turno; el archivo es best-effort, incluso si el recorder entra en panico.
func (c *Conversation) record(ctx context.Context, msg domain.Message) {
	if c.recorder == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("record message panicked", zap.String("message_id", msg.ID), zap.Any("panic", r))
		}
	}()
	if err := c.recorder.Record(context.WithoutCancel(ctx), c.id, msg); err != nil {
		c.logger.Warn("record message failed", zap.String("message_id", msg.ID), zap.Error(err))
	}
}

func (c *Conversation) notify() {
	if c.observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("observer panicked", zap.Any("panic", r))
		}
	}()
	c.observer(c.Snapshot())
}

func newMessage(role, content string, agent *domain.AgentRole) domain.Message {
	// v7 ordena por tiempo de creacion
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return domain.Message{
		ID:        id.String(),
		Role:      role,
		Content:   content,
		Agent:     agent,
		Timestamp: time.Now().UTC(),
	}
}
