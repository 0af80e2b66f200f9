package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"induk-agents/internal/agents"
	"induk-agents/internal/conversation"
	"induk-agents/internal/domain"
)

// snapshotMsg llega desde el observer de la conversacion en cada cambio de fase.
type snapshotMsg domain.ConversationSnapshot

type submitDoneMsg struct {
	snap domain.ConversationSnapshot
	err  error
}

// submitter es lo que el modelo necesita de la conversacion.
type submitter interface {
	Submit(ctx context.Context, text string) (domain.ConversationSnapshot, error)
	Snapshot() domain.ConversationSnapshot
}

type model struct {
	ctx      context.Context
	conv     submitter
	registry *agents.Registry

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	md       *glamour.TermRenderer

	snap    domain.ConversationSnapshot
	lastErr error
	width   int
	ready   bool
}

func newModel(ctx context.Context, conv submitter, registry *agents.Registry) *model {
	ti := textinput.New()
	ti.Placeholder = "Tulis kebutuhan Anda..."
	ti.Prompt = "> "
	ti.CharLimit = 2000
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	return &model{
		ctx:      ctx,
		conv:     conv,
		registry: registry,
		input:    ti,
		viewport: vp,
		spinner:  s,
		snap:     conv.Snapshot(),
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, tea.WindowSize())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.ready = true
		if m.md == nil || m.width != msg.Width {
			m.md, _ = glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(max(msg.Width-8, 20)),
			)
		}
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		m.viewport.Width = msg.Width
		// header, separadores, estado, input y ayuda
		m.viewport.Height = max(msg.Height-7, 3)
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		m.apply(domain.ConversationSnapshot(msg))
		return m, nil

	case submitDoneMsg:
		m.apply(msg.snap)
		if msg.err != nil && !errors.Is(msg.err, conversation.ErrEmptyMessage) {
			m.lastErr = msg.err
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.snap.Busy() {
			return m, nil
		}
		m.input.Reset()
		m.lastErr = nil
		return m, m.submit(text)
	}

	if m.snap.Busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit corre el turno fuera del loop de eventos; las fases llegan por el observer.
func (m *model) submit(text string) tea.Cmd {
	conv := m.conv
	ctx := m.ctx
	return func() tea.Msg {
		snap, err := conv.Submit(ctx, text)
		return submitDoneMsg{snap: snap, err: err}
	}
}

func (m *model) apply(snap domain.ConversationSnapshot) {
	m.snap = snap
	if snap.Busy() {
		m.input.Blur()
	} else {
		m.input.Focus()
	}
	m.refresh()
}

func (m *model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *model) renderTranscript() string {
	var b strings.Builder
	for _, msg := range m.snap.Messages {
		switch msg.Role {
		case domain.MessageRoleSystem:
			b.WriteString(systemStyle.Render("• " + msg.Content))
		case domain.MessageRoleUser:
			b.WriteString(userLabelStyle.Render("Anda"))
			b.WriteString("\n")
			b.WriteString(userMessageStyle.Render(msg.Content))
		default:
			b.WriteString(m.agentBadge(msg.Agent))
			b.WriteString("\n")
			b.WriteString(m.renderMarkdown(msg.Content))
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) renderMarkdown(content string) string {
	if m.md == nil {
		return content
	}
	out, err := m.md.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

func (m *model) agentBadge(role *domain.AgentRole) string {
	if role == nil || m.registry == nil {
		return badgeStyle("").Render("Agen")
	}
	cfg := m.registry.Lookup(*role)
	return badgeStyle(cfg.Color).Render(cfg.Icon + " " + cfg.Name)
}

func (m *model) statusLine() string {
	switch {
	case m.snap.IsRouting:
		return m.spinner.View() + statusStyle.Render(" Orchestrator sedang menganalisis permintaan...")
	case m.snap.IsGenerating:
		name := "Agen"
		if m.snap.ActiveAgent != nil && m.registry != nil {
			name = m.registry.Lookup(*m.snap.ActiveAgent).Name
		}
		line := m.spinner.View() + statusStyle.Render(" "+name+" sedang mengetik...")
		if m.snap.RoutingReason != "" {
			line += "\n" + reasonStyle.Render("Alasan: "+m.snap.RoutingReason)
		}
		return line
	case m.lastErr != nil:
		return errorStyle.Render(m.lastErr.Error())
	}
	return ""
}

func (m *model) View() string {
	if !m.ready {
		return "Memuat...\n"
	}

	header := titleStyle.Render("INDUK Hospital OS")
	if m.snap.ActiveAgent != nil {
		header += "  " + m.agentBadge(m.snap.ActiveAgent)
	}
	sep := separatorStyle.Render(strings.Repeat("─", max(m.width, 10)))

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s\n%s",
		header,
		sep,
		m.viewport.View(),
		sep,
		m.statusLine(),
		m.input.View(),
		helpStyle.Render("enter kirim • pgup/pgdn gulir • esc keluar"),
	)
}
