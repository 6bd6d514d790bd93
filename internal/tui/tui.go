// Package tui provides the interactive Bubble Tea review screen that
// drives a contract through upload, analysis and feedback.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/fakeyudi/clausesense/internal/report"
	"github.com/fakeyudi/clausesense/internal/workflow"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	// State badge next to the title
	stateBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("86")).
			Padding(0, 1)

	// Section heading inside a card
	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	// Key=value label
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	bulletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	riskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("238")).
			PaddingLeft(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Messages ─────────────────

type uploadDoneMsg struct{ err error }
type analyzeDoneMsg struct{ err error }
type feedbackDoneMsg struct{ err error }
type reportSavedMsg struct {
	path string
	err  error
}
type historyTickMsg time.Time
type renderTickMsg time.Time
type droppedFileMsg string

// ── Model ────────────────────

// Model is the root Bubble Tea model for the review screen.
type Model struct {
	ctrl         *workflow.Controller
	log          *zap.Logger
	outputDir    string
	pollInterval time.Duration
	dropped      <-chan string // optional drop-directory feed
	initialFile  string        // uploaded on startup when set

	pathInput    textinput.Model
	commentInput textinput.Model
	bar          progress.Model
	spin         spinner.Model
	reportView   viewport.Model

	width  int
	height int
	ready  bool

	rating      int
	showReport  bool
	showHistory bool
	status      string // one-line status or error under the content
	statusIsErr bool
}

// Params assembles a Model.
type Params struct {
	Controller   *workflow.Controller
	Logger       *zap.Logger
	OutputDir    string
	PollInterval time.Duration
	Dropped      <-chan string
	InitialFile  string
}

// New creates the review screen model.
func New(p Params) Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/contract.pdf"
	ti.Prompt = "  > "
	ti.Focus()

	ci := textinput.New()
	ci.Placeholder = "optional comments"
	ci.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.OutputDir == "" {
		p.OutputDir = "."
	}
	if p.PollInterval <= 0 {
		p.PollInterval = 30 * time.Second
	}

	return Model{
		ctrl:         p.Controller,
		log:          p.Logger,
		outputDir:    p.OutputDir,
		pollInterval: p.PollInterval,
		dropped:      p.Dropped,
		initialFile:  p.InitialFile,
		pathInput:    ti,
		commentInput: ci,
		bar:          progress.New(progress.WithDefaultGradient()),
		spin:         sp,
		rating:       0,
	}
}

// ── Commands ─────────────────

func (m Model) uploadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return uploadDoneMsg{err: m.ctrl.Upload(context.Background(), path)}
	}
}

func (m Model) analyzeCmd() tea.Cmd {
	return func() tea.Msg {
		return analyzeDoneMsg{err: m.ctrl.Analyze(context.Background())}
	}
}

func (m Model) feedbackCmd(rating int, comment string) tea.Cmd {
	return func() tea.Msg {
		return feedbackDoneMsg{err: m.ctrl.SubmitFeedback(context.Background(), rating, comment)}
	}
}

func (m Model) saveReportCmd() tea.Cmd {
	snap := m.ctrl.Snapshot()
	dir := m.outputDir
	return func() tea.Msg {
		path, err := report.Save(dir, snap.DocumentID, snap.Report)
		return reportSavedMsg{path: path, err: err}
	}
}

func (m Model) historyTick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg { return historyTickMsg(t) })
}

func (m Model) refreshHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.pollInterval)
		defer cancel()
		_ = m.ctrl.RefreshHistory(ctx)
		return nil
	}
}

func renderTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return renderTickMsg(t) })
}

func (m Model) waitForDrop() tea.Cmd {
	if m.dropped == nil {
		return nil
	}
	ch := m.dropped
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return droppedFileMsg(path)
	}
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.refreshHistoryCmd(),
		m.historyTick(),
		m.waitForDrop(),
	}
	if m.initialFile != "" {
		cmds = append(cmds, m.uploadCmd(m.initialFile), renderTick())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.bar.Width = min(m.width-20, 50)
		m.reportView = viewport.New(m.width-6, m.height-6)
		return m, nil

	case droppedFileMsg:
		snap := m.ctrl.Snapshot()
		if snap.State == workflow.StateUploading || snap.State == workflow.StateAnalyzing {
			// Busy; keep listening, the drop is skipped.
			m.setStatus("ignored dropped file while a request is running", true)
			return m, m.waitForDrop()
		}
		m.setStatus("picked up "+filepath.Base(string(msg)), false)
		return m, tea.Batch(m.uploadCmd(string(msg)), renderTick(), m.waitForDrop())

	case uploadDoneMsg:
		if msg.err != nil {
			m.log.Warn("upload failed", zap.Error(msg.err))
			m.setStatus("upload failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("document ready for analysis", false)
		}
		return m, nil

	case analyzeDoneMsg:
		if msg.err != nil {
			m.log.Warn("analysis failed", zap.Error(msg.err))
			m.setStatus("analysis failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("analysis complete", false)
			m.rating = 0
			m.commentInput.SetValue("")
		}
		return m, nil

	case feedbackDoneMsg:
		if msg.err != nil {
			m.setStatus("feedback failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("feedback recorded, thank you", false)
			m.commentInput.Blur()
		}
		return m, nil

	case reportSavedMsg:
		if msg.err != nil {
			m.setStatus("could not save report: "+msg.err.Error(), true)
		} else {
			m.setStatus("report saved to "+msg.path, false)
		}
		return m, nil

	case historyTickMsg:
		return m, tea.Batch(m.refreshHistoryCmd(), m.historyTick())

	case renderTickMsg:
		// Keep repainting while a request simulates progress.
		snap := m.ctrl.Snapshot()
		if snap.State == workflow.StateUploading || snap.State == workflow.StateAnalyzing {
			return m, renderTick()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// Report modal swallows everything except scrolling and dismissal.
	if m.showReport {
		switch key {
		case "q", "esc", "r":
			m.showReport = false
			return m, nil
		case "d":
			return m, m.saveReportCmd()
		}
		var cmd tea.Cmd
		m.reportView, cmd = m.reportView.Update(msg)
		return m, cmd
	}

	snap := m.ctrl.Snapshot()

	// Comment input captures typing while focused.
	if m.commentInput.Focused() {
		switch key {
		case "esc":
			m.commentInput.Blur()
			return m, nil
		case "enter":
			m.commentInput.Blur()
			cmd := m.submitFeedback(snap)
			return m, cmd
		}
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		return m, cmd
	}

	// Path input owns the keyboard while idle.
	if snap.State == workflow.StateIdle {
		switch key {
		case "q":
			return m, tea.Quit
		case "h":
			m.toggleHistory()
			return m, nil
		case "enter":
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				m.setStatus("enter a file path first", true)
				return m, nil
			}
			m.pathInput.SetValue("")
			return m, tea.Batch(m.uploadCmd(path), renderTick())
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "h":
		m.toggleHistory()
		return m, nil
	case "b":
		m.ctrl.Reset()
		m.rating = 0
		m.commentInput.SetValue("")
		m.pathInput.Focus()
		m.setStatus("", false)
		return m, nil
	case "t":
		m.ctrl.CycleTone()
		return m, nil
	case "s":
		m.ctrl.CycleStructure()
		return m, nil
	case "f":
		m.ctrl.CycleFocus()
		return m, nil
	}

	switch snap.State {
	case workflow.StateReady:
		if key == "a" || key == "enter" {
			return m, tea.Batch(m.analyzeCmd(), m.spin.Tick, renderTick())
		}

	case workflow.StateAnalyzed:
		switch key {
		case "1", "2", "3", "4", "5":
			if !snap.FeedbackCollected {
				m.rating = int(key[0] - '0')
			}
			return m, nil
		case "c":
			if !snap.FeedbackCollected {
				m.commentInput.Focus()
				return m, textinput.Blink
			}
		case "enter":
			cmd := m.submitFeedback(snap)
			return m, cmd
		case "r":
			m.openReport(snap)
			return m, nil
		case "d":
			return m, m.saveReportCmd()
		}
	}
	return m, nil
}

func (m *Model) submitFeedback(snap workflow.Snapshot) tea.Cmd {
	if snap.FeedbackCollected {
		m.setStatus("feedback already submitted for this session", true)
		return nil
	}
	if m.rating < 1 || m.rating > 5 {
		m.setStatus("pick a rating first (1-5)", true)
		return nil
	}
	return m.feedbackCmd(m.rating, m.commentInput.Value())
}

func (m *Model) openReport(snap workflow.Snapshot) {
	if snap.Report == "" {
		m.setStatus("no report available", true)
		return
	}
	m.reportView.SetContent(snap.Report)
	m.reportView.GotoTop()
	m.showReport = true
}

func (m *Model) toggleHistory() {
	m.showHistory = !m.showHistory
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusIsErr = isErr
}

// ── View ─────────────────────

const historyWidth = 36

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	snap := m.ctrl.Snapshot()

	title := titleStyle.Render("  clausesense ")
	badge := stateBadgeStyle.Render(strings.ToUpper(snap.State))
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, " ", badge)

	var body string
	switch snap.State {
	case workflow.StateIdle:
		body = m.renderIdle()
	case workflow.StateUploading:
		body = m.renderUploading(snap)
	case workflow.StateReady:
		body = m.renderReady(snap)
	case workflow.StateAnalyzing:
		body = m.renderAnalyzing(snap)
	case workflow.StateAnalyzed:
		body = m.renderDashboard(snap)
	}

	if m.showHistory {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.width-historyWidth).Render(body),
			sidebarStyle.Render(m.renderHistory()),
		)
	}

	if m.showReport {
		return m.renderReportModal(header)
	}

	statusLine := ""
	if m.status != "" {
		if m.statusIsErr {
			statusLine = errStyle.Render("  ✗ " + m.status)
		} else {
			statusLine = okStyle.Render("  ✓ " + m.status)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		"",
		statusLine,
		m.renderHintBar(snap),
	)
}

func (m Model) renderIdle() string {
	var sb strings.Builder
	sb.WriteString(sectionHeader.Render("  Upload a contract") + "\n\n")
	sb.WriteString("  Type the path of a document and press enter.\n")
	if m.dropped != nil {
		sb.WriteString(dimStyle.Render("  Files dropped into the watched folder are picked up automatically.") + "\n")
	}
	sb.WriteString("\n" + m.pathInput.View() + "\n")
	return sb.String()
}

func (m Model) renderUploading(snap workflow.Snapshot) string {
	var sb strings.Builder
	name := ""
	if snap.File != nil {
		name = snap.File.Name
	}
	sb.WriteString(sectionHeader.Render("  Uploading "+name) + "\n\n")
	sb.WriteString("  " + m.bar.ViewAs(float64(snap.UploadProgress)/100) + "\n\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %d%%", snap.UploadProgress)) + "\n")
	return sb.String()
}

func (m Model) renderReady(snap workflow.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(sectionHeader.Render("  Document ready") + "\n\n")
	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-12s", label)) + "  " + value + "\n")
	}
	if snap.File != nil {
		row("File:", snap.File.Name)
		row("Size:", fmt.Sprintf("%d bytes", snap.File.Size))
	}
	row("Document:", shortID(snap.DocumentID))
	sb.WriteString("\n")
	sb.WriteString(m.renderOptions())
	sb.WriteString("\n  Press " + labelStyle.Render("a") + " to analyze.\n")
	return sb.String()
}

func (m Model) renderAnalyzing(snap workflow.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(sectionHeader.Render("  Analyzing") + "\n\n")
	sb.WriteString("  " + m.spin.View() + " Running legal, finance, compliance and operations review…\n\n")
	sb.WriteString(dimStyle.Render("  Document " + shortID(snap.DocumentID)))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderOptions())
	return sb.String()
}

func (m Model) renderDashboard(snap workflow.Snapshot) string {
	a := snap.Analysis
	if a == nil {
		return dimStyle.Render("  (no analysis)")
	}

	cardW := (m.width - 8) / 2
	if m.showHistory {
		cardW = (m.width - historyWidth - 8) / 2
	}
	if cardW < 28 {
		cardW = 28
	}

	legal := m.renderCard(cardW, "Legal", findingLines(a.Legal.KeyFindings, a.Legal.Risks))
	finance := m.renderCard(cardW, "Finance", findingLines(nil, a.Finance.FinancialRisks))
	compliance := m.renderCard(cardW, "Compliance", findingLines(a.Compliance.ChecksPerformed, nil))
	operations := m.renderCard(cardW, "Operations", findingLines(a.Operations.OptimizationSuggestions, nil))

	top := lipgloss.JoinHorizontal(lipgloss.Top, legal, " ", finance)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, compliance, " ", operations)

	var sb strings.Builder
	sb.WriteString(top + "\n" + bottom + "\n\n")
	sb.WriteString(m.renderFeedback(snap))
	return sb.String()
}

func (m Model) renderCard(width int, title string, lines []string) string {
	var sb strings.Builder
	sb.WriteString(sectionHeader.Render(title) + "\n")
	if len(lines) == 0 {
		sb.WriteString(dimStyle.Render("(none)"))
	}
	for _, l := range lines {
		sb.WriteString(l + "\n")
	}
	return cardStyle.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

// findingLines renders findings as bullets and risks in the alert color.
func findingLines(findings, risks []string) []string {
	var out []string
	for _, f := range findings {
		out = append(out, bulletStyle.Render("•")+" "+f)
	}
	for _, r := range risks {
		out = append(out, riskStyle.Render("! ")+r)
	}
	return out
}

func (m Model) renderFeedback(snap workflow.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(sectionHeader.Render("  Feedback") + "\n")
	if snap.FeedbackCollected {
		fb := snap.Feedback
		sb.WriteString("  " + renderStars(fb.Rating) + "  " + okStyle.Render("submitted") + "\n")
		if fb.Comment != "" {
			sb.WriteString(dimStyle.Render("  "+fb.Comment) + "\n")
		}
		return sb.String()
	}
	sb.WriteString("  " + renderStars(m.rating) + dimStyle.Render("  (press 1-5)") + "\n")
	sb.WriteString("  " + m.commentInput.View() + "\n")
	return sb.String()
}

func renderStars(rating int) string {
	var sb strings.Builder
	for i := 1; i <= 5; i++ {
		if i <= rating {
			sb.WriteString(starStyle.Render("★"))
		} else {
			sb.WriteString(dimStyle.Render("☆"))
		}
	}
	return sb.String()
}

func (m Model) renderOptions() string {
	opts := m.ctrl.Options()
	var sb strings.Builder
	sb.WriteString(sectionHeader.Render("  Options") + "\n")
	row := func(key, label, value string) {
		sb.WriteString("  " + labelStyle.Render(key) + dimStyle.Render(" "+label+": ") + value + "\n")
	}
	row("t", "tone", opts.Tone)
	row("s", "structure", opts.Structure)
	row("f", "focus", opts.Focus)
	return sb.String()
}

func (m Model) renderHistory() string {
	entries := m.ctrl.Mirror().Entries()
	var sb strings.Builder
	sb.WriteString(sectionHeader.Render("Activity") + "\n\n")
	if len(entries) == 0 {
		sb.WriteString(dimStyle.Render("(no activity yet)") + "\n")
	}
	for _, e := range entries {
		ts := timeStyle.Render(e.Timestamp.Format("15:04:05"))
		sb.WriteString(ts + " " + e.Summary() + "\n")
	}
	last := m.ctrl.Mirror().LastSync()
	if !last.IsZero() {
		sb.WriteString("\n" + dimStyle.Render("synced "+last.Format("15:04:05")))
	}
	return sb.String()
}

func (m Model) renderReportModal(header string) string {
	hint := hintStyle.Render("  ↑/↓ scroll  d save  esc close")
	frame := cardStyle.Width(m.width - 4).Render(m.reportView.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, "", frame, hint)
}

func (m Model) renderHintBar(snap workflow.Snapshot) string {
	hint := "  q quit  h history"
	switch snap.State {
	case workflow.StateIdle:
		hint = "  enter upload" + hint
	case workflow.StateReady:
		hint = "  a analyze  t/s/f options  b start over" + hint
	case workflow.StateAnalyzed:
		if snap.FeedbackCollected {
			hint = "  r report  d save report  b new review" + hint
		} else {
			hint = "  1-5 rate  c comment  enter submit  r report  d save  b new review" + hint
		}
	}
	return statusBarStyle.Width(m.width).Render(hint)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the review screen and blocks until the user quits.
func Run(p Params) error {
	prog := tea.NewProgram(New(p), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
