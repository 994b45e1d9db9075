// Package ui renders download progress and run summaries on the terminal.
package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/imgdl/internal/domain"
	"github.com/mmcdole/imgdl/internal/ui/styles"
)

// FormatProgress returns the one-line progress summary, e.g.
// "3/10 completed (30.0%), 7 remain."
func FormatProgress(p domain.Progress) string {
	return fmt.Sprintf("%d/%d completed (%.1f%%), %d remain.",
		p.Completed, p.Total, p.Percent(), p.Remaining())
}

// formatFailure describes a failed outcome
func formatFailure(o domain.DownloadOutcome) string {
	return fmt.Sprintf("%s %s: %s: %s", styles.FailedMark, o.Task.URL, o.Kind, o.Message())
}

// LineObserver prints one line per completed download.
type LineObserver struct {
	mu  sync.Mutex
	out io.Writer
}

// NewLineObserver creates a line observer writing to out
func NewLineObserver(out io.Writer) *LineObserver {
	return &LineObserver{out: out}
}

func (o *LineObserver) OnStart(total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if total > 0 {
		fmt.Fprintf(o.out, "Downloading %d images...\n", total)
	}
}

func (o *LineObserver) OnProgress(p domain.Progress) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !p.Outcome.OK() {
		fmt.Fprintln(o.out, formatFailure(p.Outcome))
	}
	fmt.Fprintln(o.out, FormatProgress(p))
}

func (o *LineObserver) OnFinish() {}

// Messages sent to the bar program
type (
	progressMsg domain.Progress
	finishMsg   struct{}
)

// barModel is the Bubble Tea model behind BarObserver
type barModel struct {
	bar      progress.Model
	progress domain.Progress
	done     bool
}

func newBarModel(total int) barModel {
	return barModel{
		bar:      progress.New(progress.WithGradient(styles.ProgressStart, styles.ProgressEnd)),
		progress: domain.Progress{Total: total},
	}
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-40, 10), 60)

	case progressMsg:
		m.progress = domain.Progress(msg)
		if !m.progress.Outcome.OK() {
			return m, tea.Println(formatFailure(m.progress.Outcome))
		}

	case finishMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m barModel) View() string {
	line := m.bar.ViewAs(m.progress.Percent()/100) + " " + styles.DimStyle.Render(FormatProgress(m.progress))
	if m.done {
		return line + "\n"
	}
	return line
}

// BarObserver renders an animated progress bar with bubbletea.
// It never reads from the terminal and leaves signal handling to the caller.
type BarObserver struct {
	out     io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewBarObserver creates a bar observer writing to out
func NewBarObserver(out io.Writer) *BarObserver {
	return &BarObserver{out: out}
}

func (o *BarObserver) OnStart(total int) {
	if total <= 0 {
		return
	}
	fmt.Fprintf(o.out, "Downloading %d images...\n", total)

	o.program = tea.NewProgram(newBarModel(total),
		tea.WithInput(nil),
		tea.WithOutput(o.out),
		tea.WithoutSignalHandler(),
	)
	o.done = make(chan struct{})

	go func() {
		defer close(o.done)
		_, _ = o.program.Run()
	}()
}

func (o *BarObserver) OnProgress(p domain.Progress) {
	if o.program != nil {
		o.program.Send(progressMsg(p))
	}
}

func (o *BarObserver) OnFinish() {
	if o.program == nil {
		return
	}
	o.program.Send(finishMsg{})
	<-o.done
	o.program = nil
}
