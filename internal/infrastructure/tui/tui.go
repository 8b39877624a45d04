// Package tui is the interactive shell: a full-screen bubbletea program over
// an interactive scheduler session.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/infrastructure/opener"
	"github.com/doeshing/pingbot/internal/ports"
)

const (
	maxDisplayLines = 200
	chromeLines     = 6
)

// Controller is the slice of the interactive session the shell drives.
type Controller interface {
	Start() bool
	Stop()
	PingNow()
	SetInterval(time.Duration) error
	SetModel(string)
	Settings() domain.Settings
	Running() bool
	Events() <-chan domain.Event
}

type Config struct {
	Models        []domain.ModelOption
	Presets       []time.Duration
	SeedLines     int
	TrayAvailable bool
	Version       string
}

// Run blocks until the operator closes the shell.
func Run(ctl Controller, answers ports.AnswerLog, open ports.FileOpener, cfg Config) error {
	program := tea.NewProgram(newModel(ctl, answers, open, cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type mode int

const (
	modeMain mode = iota
	modeIntervalEntry
	modeConfirmQuit
	modeAbout
)

type model struct {
	ctl     Controller
	answers ports.AnswerLog
	open    ports.FileOpener
	cfg     Config

	lines     []string
	notice    string
	mode      mode
	entry     string
	remaining time.Duration
	inFlight  int
	pings     int
	stopping  bool
	minimized bool
	quitting  bool
	width     int
	height    int
}

type eventMsg struct {
	event domain.Event
}

type noticeMsg string

func newModel(ctl Controller, answers ports.AnswerLog, open ports.FileOpener, cfg Config) model {
	m := model{ctl: ctl, answers: answers, open: open, cfg: cfg}
	if cfg.SeedLines > 0 && answers != nil {
		lines, err := answers.Tail(cfg.SeedLines)
		if err != nil {
			m.notice = fmt.Sprintf("Could not read answers log: %v", err)
		}
		m.lines = lines
	}
	return m
}

func (m model) Init() tea.Cmd {
	return waitForEvent(m.ctl.Events())
}

func waitForEvent(events <-chan domain.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-events}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case eventMsg:
		m = m.applyEvent(msg.event)
		return m, waitForEvent(m.ctl.Events())
	case noticeMsg:
		m.notice = string(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) applyEvent(ev domain.Event) model {
	switch ev.Kind {
	case domain.EventCycleStarted:
		m.inFlight++
		m.remaining = 0
	case domain.EventCycleFinished:
		if m.inFlight > 0 {
			m.inFlight--
		}
		m.pings++
		m.appendLine(ev.Result.AnswerLine())
	case domain.EventCountdown:
		m.remaining = ev.Remaining
	case domain.EventStopped:
		m.stopping = false
		m.remaining = 0
	}
	return m
}

func (m *model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxDisplayLines {
		m.lines = append([]string(nil), m.lines[len(m.lines)-maxDisplayLines:]...)
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.minimized {
		m.minimized = false
		return m, nil
	}

	switch m.mode {
	case modeAbout:
		m.mode = modeMain
		return m, nil
	case modeConfirmQuit:
		if msg.String() == "y" || msg.String() == "Y" {
			m.ctl.Stop()
			m.quitting = true
			return m, tea.Quit
		}
		m.mode = modeMain
		m.notice = ""
		return m, nil
	case modeIntervalEntry:
		return m.handleEntryKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m.requestClose()
	case "s":
		if m.ctl.Start() {
			m.stopping = false
			m.notice = "Started."
		}
	case "x":
		if m.ctl.Running() {
			m.ctl.Stop()
			m.stopping = true
			m.notice = "Stopping after the current step..."
		}
	case "p":
		m.ctl.PingNow()
		m.notice = "Pinging now..."
	case "m":
		m.cycleModel()
	case "i":
		m.cyclePreset()
	case "e":
		m.mode = modeIntervalEntry
		m.entry = ""
	case "c":
		m.lines = nil
		m.notice = "Display cleared."
	case "o":
		return m, m.openAnswers()
	case "?":
		m.mode = modeAbout
	case "t":
		m.minimize()
	}
	return m, nil
}

func (m model) handleEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeMain
		m.entry = ""
		return m, nil
	case tea.KeyBackspace:
		if m.entry != "" {
			m.entry = m.entry[:len(m.entry)-1]
		}
		return m, nil
	case tea.KeyEnter:
		m.mode = modeMain
		minutes, err := strconv.Atoi(m.entry)
		m.entry = ""
		if err != nil || minutes <= 0 {
			m.notice = "Interval must be a positive number of minutes."
			return m, nil
		}
		m.setInterval(time.Duration(minutes) * time.Minute)
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' && len(m.entry) < 5 {
				m.entry += string(r)
			}
		}
	}
	return m, nil
}

func (m model) requestClose() (tea.Model, tea.Cmd) {
	if !m.ctl.Running() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.cfg.TrayAvailable {
		m.minimize()
		return m, nil
	}
	m.mode = modeConfirmQuit
	return m, nil
}

func (m *model) minimize() {
	if !m.cfg.TrayAvailable {
		m.notice = "System tray is not available in a terminal. Press q to quit."
		return
	}
	m.minimized = true
}

func (m *model) cycleModel() {
	if len(m.cfg.Models) == 0 {
		return
	}
	current := m.ctl.Settings().Model
	next := m.cfg.Models[0]
	for i, option := range m.cfg.Models {
		if option.Name == current {
			next = m.cfg.Models[(i+1)%len(m.cfg.Models)]
			break
		}
	}
	m.ctl.SetModel(next.Name)
	m.notice = fmt.Sprintf("Model set to %s (next cycle).", next.Name)
}

func (m *model) cyclePreset() {
	if len(m.cfg.Presets) == 0 {
		return
	}
	current := m.ctl.Settings().Interval
	next := m.cfg.Presets[0]
	for i, preset := range m.cfg.Presets {
		if preset == current {
			next = m.cfg.Presets[(i+1)%len(m.cfg.Presets)]
			break
		}
	}
	m.setInterval(next)
}

func (m *model) setInterval(d time.Duration) {
	if err := m.ctl.SetInterval(d); err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = fmt.Sprintf("Interval set to %s (next wait).", formatMinutes(d))
}

func (m model) openAnswers() tea.Cmd {
	if m.open == nil || m.answers == nil {
		return nil
	}
	open, path := m.open, m.answers.Path()
	return func() tea.Msg {
		err := open.Open(path)
		switch {
		case errors.Is(err, opener.ErrNotCreated):
			return noticeMsg(fmt.Sprintf("No answers yet: %s", path))
		case err != nil:
			return noticeMsg(fmt.Sprintf("Could not open answers log: %v", err))
		default:
			return noticeMsg(fmt.Sprintf("Opened %s", path))
		}
	}
}

func (m model) statusText() string {
	running := m.ctl.Running()
	switch {
	case m.stopping:
		return "Stopping"
	case m.inFlight > 0:
		return "Pinging"
	case running:
		return "Running"
	default:
		return "Stopped"
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	statusStyle = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.minimized {
		return fmt.Sprintf("pingbot: %s in background, press any key to restore", strings.ToLower(m.statusText()))
	}
	if m.mode == modeAbout {
		return boxStyle.Render(m.aboutText())
	}

	settings := m.ctl.Settings()
	modelName := settings.Model
	if modelName == "" {
		modelName = "default"
	}
	status := statusStyle.Render(fmt.Sprintf("%s | Model: %s | Every %s | Next: %s | Pings: %d",
		m.statusText(), modelName, formatMinutes(settings.Interval), m.nextText(), m.pings))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Claude Ping Bot"))
	b.WriteString("\n")
	b.WriteString(status)
	b.WriteString("\n\n")
	for _, line := range m.visibleLines() {
		b.WriteString(truncateLine(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	switch m.mode {
	case modeIntervalEntry:
		fmt.Fprintf(&b, "Interval in minutes: %s_ (enter to apply, esc to cancel)", m.entry)
	case modeConfirmQuit:
		b.WriteString(noticeStyle.Render("Ping bot is running. Stop it and quit? [y/N]"))
	default:
		if m.notice != "" {
			b.WriteString(noticeStyle.Render(m.notice))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("s start  x stop  p ping  m model  i interval  e custom  c clear  o open log  t tray  ? about  q quit"))
	}
	return b.String()
}

func (m model) nextText() string {
	if !m.ctl.Running() || m.inFlight > 0 || m.remaining <= 0 {
		return "--:--"
	}
	secs := int((m.remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (m model) visibleLines() []string {
	limit := len(m.lines)
	if m.height > 0 {
		limit = maxInt(1, m.height-chromeLines)
	}
	if len(m.lines) > limit {
		return m.lines[len(m.lines)-limit:]
	}
	return m.lines
}

func (m model) aboutText() string {
	version := m.cfg.Version
	if version == "" {
		version = "dev"
	}
	return strings.Join([]string{
		titleStyle.Render("Claude Ping Bot " + version),
		"",
		"Asks the Claude CLI a short one-word question on a schedule",
		"and records every answer in the answers log.",
		"",
		helpStyle.Render("Press any key to return."),
	}, "\n")
}

func formatMinutes(d time.Duration) string {
	if d%time.Minute == 0 {
		return fmt.Sprintf("%d min", int(d/time.Minute))
	}
	return d.String()
}

// truncateLine cuts text to width terminal cells without splitting a rune.
func truncateLine(text string, width int) string {
	if width <= 0 {
		return text
	}
	if width <= 3 {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, "...")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
