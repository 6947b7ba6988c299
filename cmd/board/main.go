package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/taskboard/internal/config"
	"github.com/td0m/taskboard/internal/logger"
	"github.com/td0m/taskboard/internal/ui"
	"github.com/td0m/taskboard/pkg/board"
	"github.com/td0m/taskboard/pkg/notify"
	"github.com/td0m/taskboard/pkg/persist"
	"github.com/td0m/taskboard/pkg/session"
	"github.com/td0m/taskboard/pkg/simulate"
	"github.com/td0m/taskboard/pkg/task"
)

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	cfg, err := config.Load()
	check(err)

	log, err := logger.New(cfg.Logger.Level, cfg.Logger.File)
	check(err)
	defer log.Sync()

	kv := persist.NewKV(filepath.Join(cfg.DataDir, "session"))
	sess := session.New(kv,
		session.Credentials{Username: cfg.Auth.Username, Password: cfg.Auth.Password},
		simulate.NewRandom(cfg.Delays.LoginMin, cfg.Delays.LoginMax),
		simulate.NewRandom(cfg.Delays.CookieMin, cfg.Delays.CookieMax),
	)

	store := task.NewStore(persist.NewBoard(cfg.DataDir, cfg.Board.Key), log)
	hub := notify.NewHub()
	ctrl := board.New(store, sess, board.Delays{
		Load: simulate.NewRandom(cfg.Delays.LoadMin, cfg.Delays.LoadMax),
		Save: simulate.NewRandom(cfg.Delays.SaveMin, cfg.Delays.SaveMax),
		Move: simulate.NewRandom(cfg.Delays.MoveMin, cfg.Delays.MoveMax),
	}, hub, log)

	a := newApp(ctrl, sess, hub)
	p := tea.NewProgram(a)
	p.EnterAltScreen()
	defer p.ExitAltScreen()

	if err := p.Start(); err != nil {
		log.Errorw("program exited", "error", err)
		check(err)
	}
}

type mode int

const (
	modeLogin mode = iota
	modeBoard
	modeForm
	modeComment
	modeConfirm
)

const (
	tabBoard = iota
	tabArchive
)

type (
	loadedMsg  struct{ err error }
	savedMsg   struct{ err error }
	movedMsg   struct{ err error }
	loginMsg   struct {
		ok  bool
		err error
	}
	cookieMsg struct{ err error }
	notifMsg  notify.Notification
)

type app struct {
	ctrl *board.Controller
	sess *session.Store
	hub  *notify.Hub

	notifs chan notify.Notification

	mode  mode
	tabs  ui.Tabs
	width int

	loading bool

	// board cursor
	col int
	row int

	// archive cursor
	archiveRow int

	// login form
	username textinput.Model
	password textinput.Model
	loginErr bool
	busy     bool

	// task form
	title      textinput.Model
	desc       textinput.Model
	due        ui.DateField
	formStatus task.Status
	formFocus  int

	// comment modal
	comment textinput.Model

	// last toast
	status     string
	statusKind notify.Kind
}

func newApp(ctrl *board.Controller, sess *session.Store, hub *notify.Hub) *app {
	username := textinput.NewModel()
	username.Prompt = ""
	username.Focus()
	password := textinput.NewModel()
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword

	title := textinput.NewModel()
	title.Prompt = ""
	title.CharLimit = 80
	desc := textinput.NewModel()
	desc.Prompt = ""
	desc.CharLimit = 200
	comment := textinput.NewModel()
	comment.Prompt = ""
	comment.CharLimit = 200

	m := modeBoard
	if !sess.LoggedIn() {
		m = modeLogin
	}

	return &app{
		ctrl:     ctrl,
		sess:     sess,
		hub:      hub,
		notifs:   hub.Subscribe(),
		mode:     m,
		tabs:     ui.NewTabs([]string{"Board", "Archive"}),
		loading:  true,
		username: username,
		password: password,
		title:    title,
		desc:     desc,
		due:      ui.NewDateField(),
		comment:  comment,
	}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m app) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.listenCmd())
}

func (m *app) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.ctrl.Load(context.Background())}
	}
}

func (m *app) listenCmd() tea.Cmd {
	return func() tea.Msg {
		n, ok := <-m.notifs
		if !ok {
			return nil
		}
		return notifMsg(n)
	}
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.tabs.Width = msg.Width
	case loadedMsg:
		m.loading = false
	case notifMsg:
		m.status = msg.Message
		m.statusKind = msg.Kind
		return m, m.listenCmd()
	case loginMsg:
		m.busy = false
		m.loginErr = !msg.ok
		if msg.ok {
			m.mode = modeBoard
		}
	case cookieMsg:
		m.busy = false
	case savedMsg:
		if m.ctrl.Form().Mode == board.FormClosed {
			m.mode = modeBoard
		}
	case movedMsg:
		// the toast already reports rollback; nothing else to do
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, m.keyUpdate(msg)
	}
	return m, nil
}

// handle keys differently based on the current mode
func (m *app) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case modeLogin:
		return m.loginKeys(msg)
	case modeForm:
		return m.formKeys(msg)
	case modeComment:
		return m.commentKeys(msg)
	case modeConfirm:
		return m.confirmKeys(msg)
	default:
		return m.boardKeys(msg)
	}
}

func (m *app) loginKeys(msg tea.KeyMsg) tea.Cmd {
	if m.busy {
		return nil
	}
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		if m.username.Focused() {
			m.username.Blur()
			m.password.Focus()
		} else {
			m.password.Blur()
			m.username.Focus()
		}
		return nil
	case tea.KeyEnter:
		m.busy = true
		user, pass := m.username.Value(), m.password.Value()
		return func() tea.Msg {
			ok, err := m.sess.LoginDelayed(context.Background(), user, pass)
			return loginMsg{ok: ok, err: err}
		}
	}
	var cmd tea.Cmd
	if m.username.Focused() {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

func (m *app) boardKeys(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEsc {
		return nil
	}
	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab":
		m.tabs.Set((m.tabs.Value() + 1) % 2)
	case "y":
		if !m.sess.CookieAccepted() && !m.busy {
			m.busy = true
			return func() tea.Msg {
				return cookieMsg{err: m.sess.AcceptCookie(context.Background())}
			}
		}
	case "Q":
		m.sess.Logout()
		m.mode = modeLogin
		m.username.Focus()
		m.password.Blur()
	}

	if m.tabs.Value() == tabArchive {
		return m.archiveKeys(msg)
	}

	switch msg.String() {
	case "h":
		m.setColumn(m.col - 1)
	case "l":
		m.setColumn(m.col + 1)
	case "j":
		m.setRow(m.row + 1)
	case "k":
		m.setRow(m.row - 1)
	case "H":
		return m.moveSelected(-1)
	case "L":
		return m.moveSelected(1)
	case "n":
		if err := m.ctrl.OpenCreate(); err == nil {
			m.enterForm()
		}
	case "e":
		if id, ok := m.selected(); ok {
			if err := m.ctrl.OpenEdit(id); err == nil {
				m.enterForm()
			}
		}
	case "c":
		if id, ok := m.selected(); ok {
			if err := m.ctrl.OpenComment(id); err == nil {
				m.comment.SetValue("")
				m.comment.Focus()
				m.mode = modeComment
			}
		}
	case "a":
		if id, ok := m.selected(); ok {
			if err := m.ctrl.RequestArchive(id); err == nil {
				m.mode = modeConfirm
			}
		}
	case "x":
		if id, ok := m.selected(); ok {
			if err := m.ctrl.RequestDelete(id); err == nil {
				m.mode = modeConfirm
			}
		}
	}
	return nil
}

func (m *app) archiveKeys(msg tea.KeyMsg) tea.Cmd {
	archived := m.ctrl.Archived()
	switch msg.String() {
	case "j":
		m.archiveRow = clamp(m.archiveRow+1, 0, max(len(archived)-1, 0))
	case "k":
		m.archiveRow = clamp(m.archiveRow-1, 0, max(len(archived)-1, 0))
	case "r":
		if m.archiveRow < len(archived) {
			if err := m.ctrl.RequestReopen(archived[m.archiveRow].ID); err == nil {
				m.mode = modeConfirm
			}
		}
	}
	return nil
}

func (m *app) formKeys(msg tea.KeyMsg) tea.Cmd {
	if m.ctrl.Form().Saving {
		return nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.CancelForm()
		m.mode = modeBoard
		return nil
	case tea.KeyTab:
		m.setFormFocus(m.formFocus + 1)
		return nil
	case tea.KeyShiftTab:
		m.setFormFocus(m.formFocus - 1)
		return nil
	case tea.KeyEnter:
		m.ctrl.SetTitle(m.title.Value())
		m.ctrl.SetDescription(m.desc.Value())
		m.ctrl.SetStatus(m.formStatus)
		m.ctrl.SetDueInput(m.due.Raw())
		if err := m.ctrl.CommitDueInput(); err != nil {
			return nil
		}
		return func() tea.Msg {
			return savedMsg{err: m.ctrl.SubmitForm(context.Background())}
		}
	}

	// status is a closed selection cycled with left/right
	if m.formFocus == 2 {
		switch msg.String() {
		case "left", "h":
			m.cycleStatus(-1)
		case "right", "l":
			m.cycleStatus(1)
		}
		return nil
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case 0:
		m.title, cmd = m.title.Update(msg)
	case 1:
		m.desc, cmd = m.desc.Update(msg)
	case 3:
		m.due, cmd = m.due.Update(msg)
	}
	return cmd
}

func (m *app) commentKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.CancelComment()
		m.mode = modeBoard
		return nil
	case tea.KeyEnter:
		if err := m.ctrl.AddComment(m.comment.Value()); err == nil {
			m.mode = modeBoard
		}
		// on rejection the modal stays open for correction
		return nil
	}
	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return cmd
}

func (m *app) confirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		m.ctrl.ConfirmPending()
		m.mode = modeBoard
		m.clampCursors()
	case "n", "esc":
		m.ctrl.CancelConfirm()
		m.mode = modeBoard
	}
	return nil
}

func (m *app) enterForm() {
	f := m.ctrl.Form()
	m.title.SetValue(f.Title)
	m.desc.SetValue(f.Description)
	m.formStatus = f.Status
	m.due.SetValue(f.DueDate, f.DueInput)
	m.setFormFocus(0)
	m.mode = modeForm
}

func (m *app) setFormFocus(i int) {
	m.formFocus = (i + 4) % 4
	m.title.Blur()
	m.desc.Blur()
	m.due.Blur()
	switch m.formFocus {
	case 0:
		m.title.Focus()
	case 1:
		m.desc.Focus()
	case 3:
		m.due.Focus()
	}
}

func (m *app) cycleStatus(inc int) {
	for i, s := range task.Columns {
		if s == m.formStatus {
			m.formStatus = task.Columns[(i+inc+len(task.Columns))%len(task.Columns)]
			return
		}
	}
	m.formStatus = task.Backlog
}

func (m *app) moveSelected(inc int) tea.Cmd {
	id, ok := m.selected()
	if !ok {
		return nil
	}
	target := m.col + inc
	if target < 0 || target >= len(task.Columns) {
		return nil
	}
	status := task.Columns[target]
	return func() tea.Msg {
		return movedMsg{err: m.ctrl.Move(context.Background(), id, status)}
	}
}

func (m *app) selected() (task.ID, bool) {
	tasks := m.ctrl.Column(task.Columns[m.col])
	if m.row >= len(tasks) {
		return 0, false
	}
	return tasks[m.row].ID, true
}

func (m *app) setColumn(i int) {
	m.col = clamp(i, 0, len(task.Columns)-1)
	m.setRow(m.row)
}

func (m *app) setRow(i int) {
	size := len(m.ctrl.Column(task.Columns[m.col]))
	m.row = clamp(i, 0, max(size-1, 0))
}

func (m *app) clampCursors() {
	m.setRow(m.row)
	m.archiveRow = clamp(m.archiveRow, 0, max(len(m.ctrl.Archived())-1, 0))
}

var (
	faded     = lipgloss.NewStyle().Foreground(ui.Faded)
	errStyle  = lipgloss.NewStyle().Foreground(ui.Red)
	okStyle   = lipgloss.NewStyle().Foreground(ui.Green)
	banner    = lipgloss.NewStyle().Foreground(ui.Orange)
	fieldName = lipgloss.NewStyle().Foreground(ui.Secondary)
)

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m app) View() string {
	switch m.mode {
	case modeLogin:
		return m.loginView()
	case modeForm:
		return m.formView()
	case modeComment:
		return m.commentView()
	case modeConfirm:
		return m.confirmView()
	}
	return m.boardView()
}

func (m app) loginView() string {
	s := "\n  Log in\n\n"
	s += "  " + fieldName.Render("username: ") + m.username.View() + "\n"
	s += "  " + fieldName.Render("password: ") + m.password.View() + "\n\n"
	if m.busy {
		s += "  " + faded.Render("logging in...") + "\n"
	} else if m.loginErr {
		s += "  " + errStyle.Render("invalid credentials") + "\n"
	}
	s += "\n" + faded.Render("  enter to submit, tab to switch field, ctrl+c to quit")
	return s
}

func (m app) boardView() string {
	s := m.tabs.View()

	if !m.sess.CookieAccepted() {
		line := "This website uses cookies. Press y to accept."
		if m.busy {
			line = "Accepting..."
		}
		s += "  " + banner.Render(line) + "\n\n"
	}

	if m.loading {
		return s + "  " + faded.Render("loading tasks...") + "\n"
	}

	if m.tabs.Value() == tabArchive {
		return s + m.archiveView()
	}

	colWidth := max(m.width/len(task.Columns), 24)
	cols := make([]string, len(task.Columns))
	for i, status := range task.Columns {
		selected := -1
		if i == m.col {
			selected = m.row
		}
		cols[i] = ui.Column(status.String(), m.ctrl.Column(status), colWidth, selected)
	}
	s += lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	s += "\n" + m.statusLine()
	s += faded.Render("  n new ∙ e edit ∙ c comment ∙ a archive ∙ x delete ∙ H/L move ∙ tab archive ∙ Q logout ∙ q quit")
	return s
}

func (m app) archiveView() string {
	s := "  " + fieldName.Render("Archived tasks, soonest due first") + "\n\n"
	archived := m.ctrl.Archived()
	if len(archived) == 0 {
		s += "  " + faded.Render("no archived tasks") + "\n"
	}
	for i, t := range archived {
		s += ui.ArchiveItem(t, i == m.archiveRow)
	}
	s += "\n" + m.statusLine()
	s += faded.Render("  r reopen ∙ tab board ∙ q quit")
	return s
}

func (m app) formView() string {
	f := m.ctrl.Form()
	heading := "Create a New Task"
	if f.Mode == board.FormEdit {
		heading = "Edit Task"
	}
	s := "\n  " + heading + "\n\n"
	s += "  " + fieldName.Render("title:       ") + m.title.View() + "\n"
	s += "  " + fieldName.Render("description: ") + m.desc.View() + "\n"
	s += "  " + fieldName.Render("status:      ") + m.formStatus.String() + "\n"
	s += "  " + fieldName.Render("due:         ") + m.due.View() + "\n\n"
	if f.Saving {
		s += "  " + faded.Render("Saving...") + "\n"
	}
	s += m.statusLine()
	s += faded.Render("  enter to save, tab to switch field, h/l to change status, esc to cancel")
	return s
}

func (m app) commentView() string {
	s := "\n  Add a comment\n\n"
	s += "  " + m.comment.View() + "\n\n"
	s += m.statusLine()
	s += faded.Render("  enter to add, esc to cancel")
	return s
}

func (m app) confirmView() string {
	var question string
	switch m.ctrl.Pending().Action {
	case board.ConfirmArchive:
		question = "Archive this task?"
	case board.ConfirmReopen:
		question = "Are you sure you want to move this archived task back to Backlog?"
	case board.ConfirmDelete:
		question = "Delete this task?"
	}
	return "\n  " + question + "\n\n" + faded.Render("  y confirm ∙ n cancel")
}

func (m app) statusLine() string {
	if m.status == "" {
		return "\n"
	}
	style := okStyle
	if m.statusKind == notify.Error {
		style = errStyle
	}
	return "  " + style.Render(m.status) + "\n\n"
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
