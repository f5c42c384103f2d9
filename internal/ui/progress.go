package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ifj25/internal/driver"
)

const (
	defaultWidth = 80
	labelWidth   = 8
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = map[driver.Status]lipgloss.Style{
		driver.StatusQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		driver.StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		driver.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

type (
	eventMsg driver.Event
	doneMsg  struct{}
)

type progressModel struct {
	tracker
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	width   int
	done    bool
}

// NewProgressModel follows driver events for files until events is
// closed, then quits.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = statusStyle[driver.StatusWorking]
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = defaultWidth - 4
	return &progressModel{
		tracker: newTracker(files),
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		width:   defaultWidth,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next waits for one driver event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		var cmd tea.Cmd
		if m.apply(driver.Event(msg)) {
			cmd = m.bar.SetPercent(m.fraction())
		}
		return m, tea.Batch(cmd, m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n\n")

	pathWidth := max(m.width-labelWidth-20, 20)
	for _, it := range m.items {
		label := statusStyle[it.status].Render(fmt.Sprintf("%*s", labelWidth, it.label))
		fmt.Fprintf(&b, "  %s %s", label, truncate(it.path, pathWidth))
		if it.elapsed != "" {
			b.WriteString(" " + it.elapsed)
		}
		if it.tokens > 0 {
			fmt.Fprintf(&b, " (%d tokens)", it.tokens)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *progressModel) header() string {
	finished, failed := m.counts()
	h := fmt.Sprintf("%s [%d/%d]", m.title, finished, len(m.items))
	if failed > 0 {
		h += fmt.Sprintf(", %d with errors", failed)
	}
	if m.done {
		return "done: " + h
	}
	return m.spinner.View() + " " + h
}

// truncate shortens s to width display cells, marking the cut with "..."
// when there is room for it.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(s, width, tail)
}
