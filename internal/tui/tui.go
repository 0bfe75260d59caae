package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/bjtrainer/internal/deck"
	"github.com/lox/bjtrainer/internal/game"
	"github.com/lox/bjtrainer/internal/statistics"
	"github.com/lox/bjtrainer/internal/strategy"
)

// StatsSource supplies the numbers shown in the sidebar.
type StatsSource interface {
	Snapshot() statistics.Statistics
}

// TUIModel represents the Bubble Tea model for the trainer
type TUIModel struct {
	logger *log.Logger
	stats  StatsSource

	// UI components
	logViewport viewport.Model
	help        help.Model
	keys        keyMap

	// State
	gameLog      []string
	actionResult chan ActionResult
	quitSignal   chan bool
	quitting     bool

	view        *game.RoundView
	awaiting    bool // a decision is open
	awaitingAck bool // a notice is waiting for enter
	prompt      string
	warning     string

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// ActionResult is what the model hands back to the engine side: a chosen
// action, an acknowledgement or a request to quit.
type ActionResult struct {
	Action strategy.Action
	Ack    bool
	Quit   bool
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

type stateMsg struct{ view game.RoundView }

type mistakeMsg struct{ mistake game.Mistake }

type replayMsg struct {
	record game.MistakeRecord
	auto   time.Duration
}

type resultMsg struct{ result *game.RoundResult }

// ackedMsg closes a notice that was acknowledged by the timer.
type ackedMsg struct{}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger, stats StatsSource) *TUIModel {
	return NewTUIModelWithOptions(logger, stats, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(logger *log.Logger, stats StatsSource, testMode bool) *TUIModel {
	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	keys := defaultKeyMap()
	keys.setDecision(0, false)

	return &TUIModel{
		logger:       logger.WithPrefix("tui"),
		stats:        stats,
		logViewport:  vp,
		help:         help.New(),
		keys:         keys,
		actionResult: make(chan ActionResult, 1),
		quitSignal:   make(chan bool, 1),
		testMode:     testMode,
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return m.listenForQuit()
}

// listenForQuit returns a command that listens for quit signals
func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		return m, nil

	case stateMsg:
		m.showState(msg.view)
		return m, nil

	case mistakeMsg:
		m.showMistake(msg.mistake)
		return m, nil

	case replayMsg:
		m.showReplay(msg.record, msg.auto)
		return m, nil

	case resultMsg:
		m.showResult(msg.result)
		return m, nil

	case ackedMsg:
		m.closeNotice()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *TUIModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.send(ActionResult{Quit: true})
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Continue):
		m.send(ActionResult{Ack: true})
		m.closeNotice()
		return m, nil
	}

	if a := strategy.ParseAction(msg.String()); a != strategy.NoAction {
		m.chooseAction(a)
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// chooseAction answers the open decision. Illegal choices are refused here
// with a warning so the player can try again.
func (m *TUIModel) chooseAction(a strategy.Action) {
	if !m.awaiting || m.view == nil {
		return
	}
	if !m.view.Legal.Has(a) {
		m.warning = fmt.Sprintf("%s is not allowed here", a)
		return
	}
	m.warning = ""
	m.awaiting = false
	m.keys.setDecision(0, false)
	m.AddLogEntry(fmt.Sprintf("You: %s", a))
	m.send(ActionResult{Action: a})
}

// send hands a result to the engine side without blocking the UI loop.
func (m *TUIModel) send(r ActionResult) {
	select {
	case m.actionResult <- r:
	default:
		m.logger.Debug("Dropped input, engine busy", "action", r.Action, "ack", r.Ack, "quit", r.Quit)
	}
}

func (m *TUIModel) showState(v game.RoundView) {
	if m.view == nil || m.view.Number != v.Number {
		header := fmt.Sprintf("*** ROUND %d ***", v.Number)
		if v.Replay {
			header = fmt.Sprintf("*** ROUND %d (REPLAY) ***", v.Number)
		}
		m.AddLogEntry("")
		m.AddLogEntry(header)
		if v.Reshuffled {
			m.AddLogEntry(InfoStyle.Render("Shoe reshuffled"))
		}
		m.AddLogEntry(fmt.Sprintf("Dealer shows %s", formatCards([]deck.Card{v.Upcard})))
		m.AddLogEntry(fmt.Sprintf("Dealt to you: %s", formatCards(v.Hands[0])))
	} else if len(v.Hands) > len(m.view.Hands) {
		m.AddLogEntry(fmt.Sprintf("Split into %d hands", len(v.Hands)))
	}

	m.view = &v
	m.awaiting = true
	m.warning = ""
	m.prompt = ""
	m.keys.setDecision(v.Legal, false)
}

func (m *TUIModel) showMistake(mk game.Mistake) {
	m.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("✗ %s is wrong, the chart says %s", mk.Chosen, mk.Correct)))
	m.AddLogEntry(InfoStyle.Render("  " + mk.Advice.String()))
	m.openNotice(fmt.Sprintf("Correct play: %s. Press enter to continue.", mk.Correct))
}

func (m *TUIModel) showReplay(r game.MistakeRecord, auto time.Duration) {
	m.AddLogEntry("")
	m.AddLogEntry(WarningStyle.Render(fmt.Sprintf("Replaying a missed hand: %s vs %s",
		formatCards(r.Hand), formatCards([]deck.Card{r.Upcard}))))
	prompt := "Replaying a mistake. Press enter to start."
	if auto > 0 {
		prompt = fmt.Sprintf("Replaying a mistake. Starting in %s.", auto)
	}
	m.openNotice(prompt)
}

func (m *TUIModel) showResult(r *game.RoundResult) {
	m.AddLogEntry(fmt.Sprintf("Dealer: %s (%s)", formatCards(r.Dealer), dealerTotal(r.DealerValue.Total)))
	for i, h := range r.Hands {
		o := r.Outcomes[i]
		settled := statistics.Settle(o, r.DealerValue)
		line := fmt.Sprintf("Hand %d: %s %s, %s", i+1, formatCards(h), o, settled)
		switch settled {
		case statistics.Win:
			line = SuccessStyle.Render(line)
		case statistics.Push:
			line = WarningStyle.Render(line)
		default:
			line = ErrorStyle.Render(line)
		}
		m.AddLogEntry(line)
	}
	m.view = nil
	m.openNotice("Press enter for the next hand.")
}

func (m *TUIModel) openNotice(prompt string) {
	m.awaiting = false
	m.awaitingAck = true
	m.prompt = prompt
	m.keys.setDecision(0, true)
}

func (m *TUIModel) closeNotice() {
	if !m.awaitingAck {
		return
	}
	m.awaitingAck = false
	m.prompt = ""
	m.keys.setDecision(0, false)
}

func dealerTotal(total int) string {
	if total > 21 {
		return "bust"
	}
	return fmt.Sprintf("%d", total)
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Action pane (bottom, full width)
	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent) + 2
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(activeBorder).
		Width(max(m.width-2, 1)).
		Render(actionContent)

	// Sidebar pane (right of the log, same height)
	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-actionHeight-2, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(paneBorder).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(paneBorder).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Left, topRow, actionPane)
}

// renderSidebarPane creates the sidebar content
func (m *TUIModel) renderSidebarPane() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Basic Strategy"))
	b.WriteString("\n\n")

	if m.view != nil {
		fmt.Fprintf(&b, "Round:   %d\n", m.view.Number)
		fmt.Fprintf(&b, "Shoe:    %d cards\n", m.view.ShoeRemaining)
		fmt.Fprintf(&b, "Replays: %d queued\n", m.view.PendingReplays)
		b.WriteString("\n")
	}

	if m.stats == nil {
		return b.String()
	}
	st := m.stats.Snapshot()
	fmt.Fprintf(&b, "Decisions: %d\n", st.Decisions)
	fmt.Fprintf(&b, "Accuracy:  %s\n", percent(st.Accuracy(), st.Decisions))
	fmt.Fprintf(&b, "Mistakes:  %d\n", st.Mistakes)
	fmt.Fprintf(&b, "Replays:   %d/%d passed\n", st.ReplaysPassed, st.ReplaysServed)
	b.WriteString("\n")
	for _, c := range []strategy.Chart{strategy.HardChart, strategy.SoftChart, strategy.PairChart, strategy.SurrenderChart} {
		cs := st.Chart(c)
		fmt.Fprintf(&b, "%-9s  %s\n", c, percent(cs.Accuracy(), cs.Decisions))
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("W %d  L %d  P %d",
		st.Settled(statistics.Win),
		st.Settled(statistics.Lose)+st.Settled(statistics.Bust)+st.Settled(statistics.Surrender),
		st.Settled(statistics.Push))))
	return b.String()
}

func percent(p float64, n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", p*100)
}

// renderActionPane renders the current hands, the legal actions and help
func (m *TUIModel) renderActionPane() string {
	var b strings.Builder

	switch {
	case m.view != nil:
		v := m.view
		b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Dealer: %s", formatCards([]deck.Card{v.Upcard}))))
		b.WriteString("\n")
		for i, h := range v.Hands {
			marker := "  "
			if i == v.Active {
				marker = "▶ "
			}
			line := fmt.Sprintf("%sHand %d: %s %s", marker, i+1, formatCards(h), h.Value())
			if o := v.Outcomes[i]; o.Resolved() {
				line += "  " + InfoStyle.Render(o.String())
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if m.awaiting {
			b.WriteString(renderActions(v.Legal))
			b.WriteString("\n")
		}
	default:
		b.WriteString(HandInfoStyle.Render("Waiting..."))
		b.WriteString("\n")
	}

	if m.prompt != "" {
		b.WriteString(WarningStyle.Render(m.prompt))
		b.WriteString("\n")
	}
	if m.warning != "" {
		b.WriteString(ErrorStyle.Render(m.warning))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

var actionLabels = map[strategy.Action]string{
	strategy.Hit:       "[h]it",
	strategy.Stand:     "[s]tand",
	strategy.Double:    "[d]ouble",
	strategy.Split:     "s[p]lit",
	strategy.Surrender: "su[r]render",
}

// renderActions renders every action, dimming the ones not allowed now
func renderActions(legal strategy.ActionSet) string {
	parts := make([]string, 0, len(strategy.Actions))
	for _, a := range strategy.Actions {
		label := actionLabels[a]
		if legal.Has(a) {
			parts = append(parts, ActionsStyle.Render(label))
		} else {
			parts = append(parts, DisabledActionStyle.Render(label))
		}
	}
	return "Actions: " + strings.Join(parts, " ")
}

// formatCards formats cards with colors
func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// Channel is full, quit signal already sent
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
