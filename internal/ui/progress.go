package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"marker/internal/buildspace"
)

type progressModel struct {
	title   string
	events  <-chan buildspace.Event
	spinner spinner.Model
	prog    progress.Model
	items   []crateItem
	index   map[string]int
	width   int
	done    bool
}

type crateItem struct {
	name   string
	status string
	stage  buildspace.Stage
	final  bool
}

type eventMsg buildspace.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders lint crate
// build progress. The model quits when events is closed.
func NewProgressModel(title string, crates []string, events <-chan buildspace.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]crateItem, 0, len(crates))
	index := make(map[string]int, len(crates))
	for i, crate := range crates {
		items = append(items, crateItem{name: crate, status: "queued"})
		index[crate] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(buildspace.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progModel, cmd := m.prog.Update(msg)
		m.prog = progModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.name, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s", statusStyled, name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev buildspace.Event) tea.Cmd {
	idx, ok := m.index[ev.Crate]
	if !ok {
		return nil
	}
	if label := statusLabel(ev.Stage, ev.Status); label != "" {
		m.items[idx].status = label
		m.items[idx].stage = ev.Stage
	}
	m.items[idx].final = ev.Status == buildspace.StatusDone ||
		ev.Status == buildspace.StatusCached ||
		ev.Status == buildspace.StatusError

	total := 0.0
	for _, item := range m.items {
		if item.final {
			total += 1.0
		} else {
			total += progressFromStage(item.stage)
		}
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func progressFromStage(stage buildspace.Stage) float64 {
	switch stage {
	case buildspace.StageFetch:
		return 0.3
	case buildspace.StageBuild:
		return 0.7
	default:
		return 0.0
	}
}

func statusLabel(stage buildspace.Stage, status buildspace.Status) string {
	switch status {
	case buildspace.StatusQueued:
		return "queued"
	case buildspace.StatusCached:
		return "cached"
	case buildspace.StatusDone:
		return "done"
	case buildspace.StatusError:
		return "error"
	case buildspace.StatusWorking:
		if stage == buildspace.StageFetch {
			return "fetching"
		}
		return "building"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done", "cached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "fetching", "building":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

// RenderPlain drains events as one line each, for non-interactive
// output. It returns when events is closed.
func RenderPlain(w io.Writer, events <-chan buildspace.Event) {
	for ev := range events {
		label := statusLabel(ev.Stage, ev.Status)
		if label == "" || label == "queued" {
			continue
		}
		if ev.Status == buildspace.StatusError && ev.Err != nil {
			fmt.Fprintf(w, "%12s %s: %v\n", label, ev.Crate, ev.Err)
			continue
		}
		fmt.Fprintf(w, "%12s %s\n", label, ev.Crate)
	}
}
