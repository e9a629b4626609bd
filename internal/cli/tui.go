package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/captcha/pkg/batch"
)

// Progress view styles
var (
	barDoneStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barTodoStyle  = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	listFailStyle = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	barWidth    = 30
	recentFiles = 5
)

// =============================================================================
// sampleModel - Batch rendering progress
// =============================================================================

// resultMsg carries one finished job.
type resultMsg batch.Result

// finishedMsg signals that the result channel is closed.
type finishedMsg struct{}

// sampleModel is the bubbletea model showing batch progress.
type sampleModel struct {
	results <-chan batch.Result
	cancel  context.CancelFunc

	total   int
	done    int
	failed  int
	recent  []batch.Result
	start   time.Time
	elapsed time.Duration

	finished bool
	aborted  bool
}

func newSampleModel(results <-chan batch.Result, total int, cancel context.CancelFunc) sampleModel {
	return sampleModel{
		results: results,
		cancel:  cancel,
		total:   total,
		start:   time.Now(),
	}
}

// waitForResult reads the next result from the channel.
func waitForResult(results <-chan batch.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-results
		if !ok {
			return finishedMsg{}
		}
		return resultMsg(r)
	}
}

func (m sampleModel) Init() tea.Cmd {
	return waitForResult(m.results)
}

func (m sampleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case resultMsg:
		m.done++
		if msg.Err != nil {
			m.failed++
		}
		m.recent = append(m.recent, batch.Result(msg))
		if len(m.recent) > recentFiles {
			m.recent = m.recent[len(m.recent)-recentFiles:]
		}
		m.elapsed = time.Since(m.start)
		return m, waitForResult(m.results)
	case finishedMsg:
		m.finished = true
		m.elapsed = time.Since(m.start)
		return m, tea.Quit
	}
	return m, nil
}

func (m sampleModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rendering samples"))
	b.WriteString("\n\n")
	b.WriteString(m.bar())
	b.WriteString(fmt.Sprintf("  %s/%d", StyleNumber.Render(fmt.Sprint(m.done)), m.total))
	if m.failed > 0 {
		b.WriteString(listFailStyle.Render(fmt.Sprintf("  %d failed", m.failed)))
	}
	b.WriteString("\n\n")

	for _, r := range m.recent {
		name := filepath.Base(r.Path)
		if r.Err != nil {
			b.WriteString("  " + listFailStyle.Render(iconError+" "+name))
		} else {
			b.WriteString("  " + listDimStyle.Render(iconArrow+" "+name))
		}
		b.WriteString("\n")
	}

	if !m.finished && !m.aborted {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("q quit"))
		b.WriteString("\n")
	}
	return b.String()
}

// bar renders a fixed-width progress bar.
func (m sampleModel) bar() string {
	filled := 0
	if m.total > 0 {
		filled = min(barWidth, m.done*barWidth/m.total)
	}
	return barDoneStyle.Render(strings.Repeat("█", filled)) +
		barTodoStyle.Render(strings.Repeat("░", barWidth-filled))
}
