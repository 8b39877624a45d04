package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/infrastructure/opener"
)

type fakeController struct {
	running  bool
	starts   int
	stops    int
	pings    int
	settings domain.Settings
	events   chan domain.Event
}

func newFakeController() *fakeController {
	return &fakeController{
		settings: domain.Settings{Interval: 15 * time.Minute, Model: "haiku"},
		events:   make(chan domain.Event, 1),
	}
}

func (f *fakeController) Start() bool {
	if f.running {
		return false
	}
	f.running = true
	f.starts++
	return true
}

func (f *fakeController) Stop()    { f.running = false; f.stops++ }
func (f *fakeController) PingNow() { f.pings++ }

func (f *fakeController) SetInterval(d time.Duration) error {
	if d <= 0 {
		return errors.New("interval must be positive")
	}
	f.settings.Interval = d
	return nil
}

func (f *fakeController) SetModel(name string)        { f.settings.Model = name }
func (f *fakeController) Settings() domain.Settings   { return f.settings }
func (f *fakeController) Running() bool               { return f.running }
func (f *fakeController) Events() <-chan domain.Event { return f.events }

type stubAnswers struct {
	lines []string
	err   error
}

func (s stubAnswers) Append(domain.CycleResult) error { return nil }
func (s stubAnswers) Path() string                    { return "/tmp/claude-answers.txt" }
func (s stubAnswers) Tail(n int) ([]string, error) {
	if len(s.lines) > n {
		return s.lines[len(s.lines)-n:], s.err
	}
	return s.lines, s.err
}

type stubOpener struct {
	err    error
	opened []string
}

func (s *stubOpener) Open(path string) error {
	s.opened = append(s.opened, path)
	return s.err
}

func testConfig() Config {
	return Config{
		Models: []domain.ModelOption{{Name: "haiku"}, {Name: "sonnet"}, {Name: "opus"}},
		Presets: []time.Duration{
			5 * time.Minute, 15 * time.Minute, 30 * time.Minute, 60 * time.Minute,
		},
		SeedLines: 20,
	}
}

func updateModel(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return updated
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func finished(prompt, reply string) domain.Event {
	return domain.Event{Kind: domain.EventCycleFinished, Result: domain.CycleResult{
		Prompt:     prompt,
		Outcome:    domain.OutcomeSuccess,
		Reply:      reply,
		FinishedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local),
	}}
}

func TestSeedsDisplayFromAnswersTail(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	m := newModel(newFakeController(), stubAnswers{lines: lines}, nil, testConfig())

	if len(m.lines) != 20 || m.lines[0] != "line 10" {
		t.Fatalf("seeded %d lines starting %q", len(m.lines), m.lines[0])
	}
}

func TestSeedErrorIsShown(t *testing.T) {
	m := newModel(newFakeController(), stubAnswers{err: errors.New("denied")}, nil, testConfig())
	if !strings.Contains(m.View(), "Could not read answers log: denied") {
		t.Fatalf("view missing seed error:\n%s", m.View())
	}
}

func TestStartStopAndPingKeys(t *testing.T) {
	ctl := newFakeController()
	m := newModel(ctl, stubAnswers{}, nil, testConfig())

	m = updateModel(t, m, key('s'))
	if ctl.starts != 1 || m.statusText() != "Running" {
		t.Fatalf("start: starts=%d status=%s", ctl.starts, m.statusText())
	}
	m = updateModel(t, m, key('s'))
	if ctl.starts != 1 {
		t.Fatalf("second start should be a no-op, starts=%d", ctl.starts)
	}

	m = updateModel(t, m, key('p'))
	if ctl.pings != 1 {
		t.Fatalf("ping now not forwarded")
	}

	m = updateModel(t, m, key('x'))
	if ctl.stops != 1 || m.statusText() != "Stopping" {
		t.Fatalf("stop: stops=%d status=%s", ctl.stops, m.statusText())
	}
	m = updateModel(t, m, eventMsg{event: domain.Event{Kind: domain.EventStopped}})
	if m.statusText() != "Stopped" {
		t.Fatalf("status after stopped event = %s", m.statusText())
	}
}

func TestCycleEventsUpdateStatusAndDisplay(t *testing.T) {
	ctl := newFakeController()
	ctl.running = true
	m := newModel(ctl, stubAnswers{}, nil, testConfig())

	m = updateModel(t, m, eventMsg{event: domain.Event{Kind: domain.EventCycleStarted}})
	if m.statusText() != "Pinging" {
		t.Fatalf("status = %s, want Pinging", m.statusText())
	}
	m = updateModel(t, m, eventMsg{event: finished("Name any color", "blue")})
	if m.statusText() != "Running" || m.pings != 1 {
		t.Fatalf("status=%s pings=%d", m.statusText(), m.pings)
	}
	want := "[2026-03-01 09:30:00] Q: Name any color | A: blue"
	if len(m.lines) != 1 || m.lines[0] != want {
		t.Fatalf("lines = %q", m.lines)
	}

	m = updateModel(t, m, eventMsg{event: domain.Event{Kind: domain.EventCountdown, Remaining: 14*time.Minute + 59*time.Second}})
	if got := m.nextText(); got != "14:59" {
		t.Fatalf("next = %s", got)
	}
	if !strings.Contains(m.View(), "Next: 14:59") || !strings.Contains(m.View(), "Pings: 1") {
		t.Fatalf("status bar incomplete:\n%s", m.View())
	}
}

func TestDisplayIsCapped(t *testing.T) {
	m := newModel(newFakeController(), stubAnswers{}, nil, testConfig())
	for i := 0; i < maxDisplayLines+25; i++ {
		m = updateModel(t, m, eventMsg{event: finished(fmt.Sprintf("q%d", i), "a")})
	}
	if len(m.lines) != maxDisplayLines {
		t.Fatalf("display holds %d lines", len(m.lines))
	}
	if !strings.Contains(m.lines[0], "Q: q25 ") {
		t.Fatalf("oldest line = %q", m.lines[0])
	}
}

func TestModelAndPresetCycling(t *testing.T) {
	ctl := newFakeController()
	m := newModel(ctl, stubAnswers{}, nil, testConfig())

	for _, want := range []string{"sonnet", "opus", "haiku"} {
		m = updateModel(t, m, key('m'))
		if ctl.settings.Model != want {
			t.Fatalf("model = %s, want %s", ctl.settings.Model, want)
		}
	}
	for _, want := range []time.Duration{30 * time.Minute, 60 * time.Minute, 5 * time.Minute} {
		m = updateModel(t, m, key('i'))
		if ctl.settings.Interval != want {
			t.Fatalf("interval = %s, want %s", ctl.settings.Interval, want)
		}
	}
}

func TestFreeIntervalEntry(t *testing.T) {
	ctl := newFakeController()
	m := newModel(ctl, stubAnswers{}, nil, testConfig())

	m = updateModel(t, m, key('e'))
	if m.mode != modeIntervalEntry {
		t.Fatalf("expected entry mode")
	}
	for _, r := range "4x2" {
		m = updateModel(t, m, key(r))
	}
	if m.entry != "42" {
		t.Fatalf("entry = %q", m.entry)
	}
	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if ctl.settings.Interval != 42*time.Minute || m.mode != modeMain {
		t.Fatalf("interval = %s mode = %v", ctl.settings.Interval, m.mode)
	}

	m = updateModel(t, m, key('e'))
	m = updateModel(t, m, key('0'))
	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if ctl.settings.Interval != 42*time.Minute {
		t.Fatalf("zero interval applied")
	}
	if !strings.Contains(m.notice, "positive") {
		t.Fatalf("notice = %q", m.notice)
	}

	m = updateModel(t, m, key('e'))
	m = updateModel(t, m, key('7'))
	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeMain || ctl.settings.Interval != 42*time.Minute {
		t.Fatalf("esc should cancel entry")
	}
}

func TestClearDisplay(t *testing.T) {
	m := newModel(newFakeController(), stubAnswers{lines: []string{"a", "b"}}, nil, testConfig())
	m = updateModel(t, m, key('c'))
	if len(m.lines) != 0 {
		t.Fatalf("lines = %q", m.lines)
	}
}

func TestOpenAnswersLog(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "opened", want: "Opened /tmp/claude-answers.txt"},
		{name: "missing", err: fmt.Errorf("x: %w", opener.ErrNotCreated), want: "No answers yet"},
		{name: "failure", err: errors.New("no viewer"), want: "Could not open answers log: no viewer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open := &stubOpener{err: tt.err}
			m := newModel(newFakeController(), stubAnswers{}, open, testConfig())

			_, cmd := m.Update(key('o'))
			if cmd == nil {
				t.Fatal("expected open command")
			}
			m = updateModel(t, m, cmd())
			if !strings.Contains(m.notice, tt.want) {
				t.Fatalf("notice = %q, want %q", m.notice, tt.want)
			}
			if len(open.opened) != 1 || open.opened[0] != "/tmp/claude-answers.txt" {
				t.Fatalf("opened = %v", open.opened)
			}
		})
	}
}

func TestCloseWhenIdleQuits(t *testing.T) {
	m := newModel(newFakeController(), stubAnswers{}, nil, testConfig())
	next, cmd := m.Update(key('q'))
	if cmd == nil || !next.(model).quitting {
		t.Fatal("idle close should quit immediately")
	}
}

func TestCloseWhileRunningAsksForConfirmation(t *testing.T) {
	ctl := newFakeController()
	ctl.running = true
	m := newModel(ctl, stubAnswers{}, nil, testConfig())

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.mode != modeConfirmQuit {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	if !strings.Contains(m.View(), "Stop it and quit? [y/N]") {
		t.Fatalf("confirm prompt missing:\n%s", m.View())
	}

	m = updateModel(t, m, key('n'))
	if m.mode != modeMain || !ctl.running {
		t.Fatalf("declining should keep running")
	}

	m = updateModel(t, m, key('q'))
	next, cmd := m.Update(key('y'))
	if cmd == nil || !next.(model).quitting || ctl.running {
		t.Fatal("confirming should stop and quit")
	}
}

func TestCloseWhileRunningMinimizesWhenTrayAvailable(t *testing.T) {
	ctl := newFakeController()
	ctl.running = true
	cfg := testConfig()
	cfg.TrayAvailable = true
	m := newModel(ctl, stubAnswers{}, nil, cfg)

	m = updateModel(t, m, key('q'))
	if !m.minimized || m.quitting || !ctl.running {
		t.Fatalf("expected minimize, got minimized=%v quitting=%v", m.minimized, m.quitting)
	}
	if !strings.Contains(m.View(), "in background") {
		t.Fatalf("minimized view = %q", m.View())
	}
	m = updateModel(t, m, key('z'))
	if m.minimized {
		t.Fatal("any key should restore")
	}
}

func TestTrayUnavailableMessage(t *testing.T) {
	m := newModel(newFakeController(), stubAnswers{}, nil, testConfig())
	m = updateModel(t, m, key('t'))
	if m.minimized || !strings.Contains(m.notice, "not available") {
		t.Fatalf("notice = %q", m.notice)
	}
}

func TestAboutScreen(t *testing.T) {
	cfg := testConfig()
	cfg.Version = "1.2.3"
	m := newModel(newFakeController(), stubAnswers{}, nil, cfg)

	m = updateModel(t, m, key('?'))
	if !strings.Contains(m.View(), "Claude Ping Bot 1.2.3") {
		t.Fatalf("about view:\n%s", m.View())
	}
	m = updateModel(t, m, key('x'))
	if m.mode != modeMain {
		t.Fatal("any key should close about")
	}
}

func TestEventMessageReArmsListener(t *testing.T) {
	ctl := newFakeController()
	m := newModel(ctl, stubAnswers{}, nil, testConfig())

	_, cmd := m.Update(eventMsg{event: domain.Event{Kind: domain.EventCountdown, Remaining: time.Minute}})
	if cmd == nil {
		t.Fatal("expected follow-up wait command")
	}
	ctl.events <- domain.Event{Kind: domain.EventStopped}
	msg, ok := cmd().(eventMsg)
	if !ok || msg.event.Kind != domain.EventStopped {
		t.Fatalf("unexpected msg %#v", msg)
	}
}

func TestTruncateLineKeepsWideRunesWhole(t *testing.T) {
	line := "[2026-03-04 05:06:07] Q: Name any color | A: 青色青色青色"
	for _, width := range []int{2, 3, 47, 48, 49, 50} {
		got := truncateLine(line, width)
		if !utf8.ValidString(got) {
			t.Fatalf("width %d: invalid UTF-8 %q", width, got)
		}
		if w := runewidth.StringWidth(got); w > width {
			t.Fatalf("width %d: result is %d cells wide: %q", width, w, got)
		}
		if width > 3 && !strings.HasSuffix(got, "...") {
			t.Fatalf("width %d: missing ellipsis in %q", width, got)
		}
	}
	if got := truncateLine("short", 48); got != "short" {
		t.Fatalf("short line changed: %q", got)
	}
}
