package cli

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/johncallhub/CallHub-MCP/internal/batch"
)

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status     lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Hint       lipgloss.Color
	ProgressBg lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:     lipgloss.Color("#5FAFD7"), // light blue
	Success:    lipgloss.Color("#00D787"), // green
	Error:      lipgloss.Color("#FF005F"), // red
	Hint:       lipgloss.Color("#6C6C6C"), // dim gray
	ProgressBg: lipgloss.Color("#3A3A3A"), // dark gray
}

// Style functions for dynamic theming
func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// eventMsg carries a batch event from the running activation.
type eventMsg batch.Event

// doneMsg signals the activation run has finished.
type doneMsg struct {
	result *batch.Result
	err    error
}

// activationModel is the bubbletea model for an activation run.
type activationModel struct {
	events   <-chan batch.Event
	done     <-chan doneMsg
	cancel   func()
	last     batch.Event
	result   *batch.Result
	progress progress.Model
	theme    Theme
	finished bool
	quitting bool
	err      error
}

// newActivationModel creates a model fed by the runner's event channel.
// cancel is invoked on Ctrl+C so the run stops at the next batch boundary.
func newActivationModel(events <-chan batch.Event, done <-chan doneMsg, cancel func()) activationModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return activationModel{
		events:   events,
		done:     done,
		cancel:   cancel,
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init returns the initial command (start listening for events).
func (m activationModel) Init() tea.Cmd {
	return tea.Batch(
		m.waitForEvent(),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m activationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			// stay in the UI until the runner confirms it stopped
			return m, nil
		}

	case eventMsg:
		m.last = batch.Event(msg)
		return m, m.waitForEvent()

	case doneMsg:
		m.finished = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m activationModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m activationModel) renderContent() string {
	if m.finished {
		return m.finalView()
	}

	if m.last.Type == "" {
		return "Starting activation run...\n"
	}

	if m.quitting {
		return m.theme.hintStyle().Render("Stopping after the current batch...") + "\n"
	}

	var pct float64
	if m.last.Total > 0 {
		pct = float64(m.last.Completed) / float64(m.last.Total)
	}

	status := m.theme.statusStyle().Render(fmt.Sprintf("[batch %d/%d]", m.last.Batch, m.last.Batches))

	progressBar := m.progress.ViewAs(pct)
	counts := fmt.Sprintf("%d/%d agents", m.last.Completed, m.last.Total)
	if m.last.ETA != "" {
		counts += fmt.Sprintf("  eta %s", m.last.ETA)
	}

	hint := m.theme.hintStyle().Render("Press Ctrl+C to stop; progress is saved and resumes on rerun")

	return fmt.Sprintf("%s %s %s\n%s\n", status, progressBar, counts, hint)
}

// finalView renders the completion message.
func (m activationModel) finalView() string {
	if m.err != nil {
		if m.quitting {
			msg := "\nStopped. Completed agents are checkpointed; run 'callhub activate' again to resume.\n"
			return m.theme.hintStyle().Render(msg)
		}
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ Activation failed: %s\n", m.err))
	}

	if m.result != nil {
		r := m.result
		var output string
		output += m.theme.completedStyle().Render("✓ Done") + "\n\n"
		output += fmt.Sprintf("  Total agents:  %d\n", r.TotalAgents)
		output += fmt.Sprintf("  Activated:     %d\n", r.SuccessfulActivations)
		output += fmt.Sprintf("  Skipped:       %d\n", r.SkippedAgents)
		output += fmt.Sprintf("  Failed:        %d\n", r.FailedActivations)
		output += fmt.Sprintf("  Success rate:  %s\n", r.SuccessRate)
		if r.FailedActivations > 0 {
			output += m.theme.errorStyle().Render(fmt.Sprintf("\nFailures (%d):\n", r.FailedActivations))
			for _, d := range r.Details {
				if !d.Success {
					output += fmt.Sprintf("  • %s: %s\n", d.Username, d.Message)
				}
			}
		}
		if r.Message != "" {
			output += "\n" + r.Message + "\n"
		}
		return output
	}

	return m.theme.completedStyle().Render("✓ Done\n")
}

// waitForEvent blocks on the event channel as a command so Update stays
// responsive. Timing out keeps the key handler alive during long batches.
func (m activationModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev, ok := <-m.events:
			if !ok {
				return <-m.done
			}
			return eventMsg(ev)
		case d := <-m.done:
			return d
		case <-time.After(time.Second):
			return eventMsg(m.last)
		}
	}
}

// runActivationProgress runs the interactive progress UI for an activation.
// Returns the run's result, or an error when the run failed outright.
// Ctrl+C cancels the run but is not treated as an error.
func runActivationProgress(events <-chan batch.Event, done <-chan doneMsg, cancel func()) (*batch.Result, error) {
	model := newActivationModel(events, done, cancel)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(activationModel); ok {
		if m.quitting {
			return m.result, nil
		}
		return m.result, m.err
	}

	return nil, nil
}
