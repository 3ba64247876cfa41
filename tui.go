package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mnemo/clipboard"
	"mnemo/config"
	"mnemo/dispatch"
	"mnemo/form"
	"mnemo/hotkey"
	"mnemo/label"
	"mnemo/log"
)

const labelWidth = 12

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	hintOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
)

type tuiKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Quit   key.Binding
	Reveal key.Binding
}

func newTUIKeyMap(cfg config.Config) tuiKeyMap {
	reveal := key.NewBinding(key.WithKeys(cfg.ToggleKey), key.WithHelp(cfg.ToggleKey, "show shortcuts"))
	if cfg.Policy == string(dispatch.PolicyHold) {
		reveal = key.NewBinding(key.WithKeys(), key.WithHelp(cfg.Activator+"+<letter>", "jump to field"))
	}
	return tuiKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "press button")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		Reveal: reveal,
	}
}

func (k tuiKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Next, k.Prev, k.Submit, k.Quit}
}

func (k tuiKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type tuiModel struct {
	cfg     config.Config
	form    *form.Form
	global  bool
	inputs  []textinput.Model
	labels  []string
	watches []*label.Live
	focus   int
	hints   bool
	status  string
	failed  bool
	pending []tea.Cmd
	keys    tuiKeyMap
	help    help.Model
}

func newTUIModel(cfg config.Config, global bool) *tuiModel {
	m := &tuiModel{
		cfg:    cfg,
		global: global,
		keys:   newTUIKeyMap(cfg),
		help:   help.New(),
	}
	m.form = form.New(cfg, m)
	m.form.Visibility.Subscribe(func(v bool) { m.hints = v })

	renderer := label.NewRenderer()
	renderer.Hint = renderer.Hint.Foreground(lipgloss.Color("226"))
	m.labels = make([]string, len(m.form.Fields))
	for i, f := range m.form.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs = append(m.inputs, ti)

		i := i
		m.watches = append(m.watches, label.Watch(m.form.Visibility, renderer, f.Label, func(s string) {
			m.labels[i] = s
		}))
	}
	m.setFocus(0)
	m.pending = nil
	return m
}

func (m *tuiModel) close() {
	for _, w := range m.watches {
		w.Stop()
	}
	m.form.Close()
}

// FieldFocused implements form.Sink.
func (m *tuiModel) FieldFocused(i int) {
	m.setFocus(i)
}

func (m *tuiModel) FieldValues() []string {
	values := make([]string, len(m.inputs))
	for i, ti := range m.inputs {
		values[i] = ti.Value()
	}
	return values
}

func (m *tuiModel) Submitted(pairs []clipboard.Pair, err error) {
	if err != nil {
		m.failed = true
		m.status = fmt.Sprintf("submit failed: %v", err)
		return
	}
	m.failed = false
	m.status = fmt.Sprintf("copied %d field(s) to clipboard", len(pairs))
}

func (m *tuiModel) setFocus(i int) {
	if i < 0 || i >= len(m.inputs) {
		return
	}
	m.focus = i
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	if !m.form.Fields[i].Button {
		m.pending = append(m.pending, m.inputs[i].Focus())
	}
}

func (m *tuiModel) takeCmds() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.inputs[m.focus].Focus())
}

// handleShortcut feeds a terminal key to the form and reports whether the
// key was consumed.
func (m *tuiModel) handleShortcut(msg tea.KeyMsg) bool {
	if m.global {
		return false
	}
	policy := m.form.Machine.Policy()
	events := terminalEvents(msg.String(), policy, m.cfg.Activator)
	fired := false
	for _, ev := range events {
		if m.form.HandleKey(ev) {
			fired = true
		}
	}
	if fired {
		return true
	}
	if policy == dispatch.PolicyHold {
		// unmatched activator chords never reach the inputs
		return len(events) > 0
	}
	return len(events) > 0 && strings.EqualFold(events[0].Key, m.cfg.ToggleKey)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.BlurMsg:
		m.form.Machine.Reset()

	case keyEventMsg:
		m.form.HandleKey(msg.ev)
		return m, m.takeCmds()

	case statusMsg:
		m.status = msg.text

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.handleShortcut(msg) {
			return m, m.takeCmds()
		}
		switch {
		case key.Matches(msg, m.keys.Next):
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, m.takeCmds()
		case key.Matches(msg, m.keys.Prev):
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, m.takeCmds()
		case key.Matches(msg, m.keys.Submit):
			if m.form.Fields[m.focus].Button {
				m.form.Submit()
				return m, nil
			}
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, m.takeCmds()
		}
		if m.form.Fields[m.focus].Button {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	if !m.form.Fields[m.focus].Button {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("mnemo") + "\n\n")

	for i, f := range m.form.Fields {
		marker := "  "
		style := blurredStyle
		if i == m.focus {
			marker = focusedStyle.Render("▶ ")
			style = focusedStyle
		}
		name := lipgloss.NewStyle().Width(labelWidth).Render(m.labels[i])
		if f.Button {
			b.WriteString(marker + style.Render("[ ") + m.labels[i] + style.Render(" ]") + "\n")
			continue
		}
		b.WriteString(marker + name + m.inputs[i].View() + "\n")
	}

	b.WriteString("\n")
	if m.hints {
		b.WriteString(hintOnStyle.Render("● shortcuts shown"))
	} else {
		b.WriteString(hintOffStyle.Render("○ shortcuts hidden"))
	}
	b.WriteString("\n")
	if m.status != "" {
		if m.failed {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(statusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func runTUI(ctx context.Context, cfg config.Config, global bool) error {
	m := newTUIModel(cfg, global)
	defer m.close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))

	if global {
		src := hotkey.NewWithActivator(cfg.Activator)
		if err := src.Register(); err != nil {
			return fmt.Errorf("registering key source: %w", err)
		}
		defer src.Unregister()
		go func() {
			p.Send(statusMsg{text: "listening for global shortcuts"})
			err := hotkey.Pump(ctx, src, programHandler{p: p}, nil)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("key pump: %v", err)
			}
		}()
	}

	_, err := p.Run()
	log.SessionEnd(m.form.Dispatched())
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
