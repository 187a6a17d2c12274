package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/peek/internal/cli/formatter"
	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/panel"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// writeDoneMsg reports a gateway write that finished on a tea.Cmd goroutine.
type writeDoneMsg struct {
	field domain.FieldName
	err   error
}

type refreshTickMsg struct{}

type refreshedMsg struct {
	err error
}

// cmdDispatcher queues panel writes so the model can return them as tea.Cmds.
// It is only touched from Update.
type cmdDispatcher struct {
	pending []tea.Cmd
}

func (d *cmdDispatcher) Dispatch(ctx context.Context, field domain.FieldName, write func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	d.pending = append(d.pending, func() tea.Msg {
		return writeDoneMsg{field: field, err: write(ctx)}
	})
}

func (d *cmdDispatcher) drain() tea.Cmd {
	cmds := d.pending
	d.pending = nil
	return tea.Batch(cmds...)
}

type panelKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
}

var panelKeys = panelKeyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// panelModel is the interactive property panel of one work item.
type panelModel struct {
	app      *App
	panel    *panel.Panel
	budget   *panel.BudgetField
	dispatch *cmdDispatcher
	input    textinput.Model

	cursor  int
	picker  *picker
	toast   string
	isError bool

	refreshEvery time.Duration
	quitting     bool
}

func newPanelModel(app *App, in panel.Input) *panelModel {
	d := &cmdDispatcher{}
	m := &panelModel{
		app:          app,
		panel:        panel.New(in, app.Store, app.panelConfig(), d),
		dispatch:     d,
		refreshEvery: app.Config.RefreshInterval,
	}
	if b, ok := m.panel.MountBudget(app.Store); ok {
		m.budget = b
	}
	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.Placeholder = formatter.Placeholder
	m.input.CharLimit = 32
	m.syncInput()
	return m
}

func (m *panelModel) Init() tea.Cmd {
	return m.tick()
}

func (m *panelModel) tick() tea.Cmd {
	if m.refreshEvery <= 0 {
		return nil
	}
	return tea.Tick(m.refreshEvery, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func (m *panelModel) refresh() tea.Cmd {
	st, itemID := m.app.Store, m.panel.Input().ItemID
	return func() tea.Msg {
		return refreshedMsg{err: st.Refresh(context.Background(), itemID)}
	}
}

func (m *panelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case writeDoneMsg:
		switch {
		case msg.err != nil:
			m.flash(fmt.Sprintf("Could not save %s: %v", fieldTitle(msg.field), msg.err), true)
		case msg.field != domain.FieldBudget:
			// Budget failures are logged by the controller, so a nil error
			// does not mean the budget was saved.
			m.flash("Saved "+fieldTitle(msg.field), false)
		}
	case refreshTickMsg:
		cmd = tea.Batch(m.refresh(), m.tick())
	case refreshedMsg:
		if msg.err != nil {
			m.flash("Refresh failed: "+msg.err.Error(), true)
		}
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	default:
		if m.picker != nil {
			cmd = m.updatePicker(msg)
		}
	}
	m.clampCursor()
	m.syncInput()
	return m, tea.Batch(cmd, m.dispatch.drain())
}

func (m *panelModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.picker != nil {
		return m.updatePicker(msg)
	}

	pr, ok := m.panel.Projection()
	if !ok {
		if key.Matches(msg, panelKeys.Quit, panelKeys.Back) {
			return m.quit()
		}
		return nil
	}
	rows := visibleRows(pr)

	if m.budgetFocused(rows) {
		switch msg.Type {
		case tea.KeyUp, tea.KeyDown, tea.KeyEsc:
			m.commitBudget()
			m.input.Blur()
			m.move(msg.Type == tea.KeyDown, len(rows))
			return m.focusIfBudget(rows)
		case tea.KeyEnter:
			m.commitBudget()
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.budget.Edit(m.input.Value())
		return cmd
	}

	switch {
	case key.Matches(msg, panelKeys.Quit), key.Matches(msg, panelKeys.Back):
		return m.quit()
	case key.Matches(msg, panelKeys.Up):
		m.move(false, len(rows))
		return m.focusIfBudget(rows)
	case key.Matches(msg, panelKeys.Down):
		m.move(true, len(rows))
		return m.focusIfBudget(rows)
	case key.Matches(msg, panelKeys.Enter):
		if !m.panel.Editable() {
			m.flash("This work item is read-only", true)
			return nil
		}
		pk := m.openPicker(rows[m.cursor], pr)
		if pk == nil {
			return nil
		}
		m.picker = pk
		return pk.form.Init()
	}
	return nil
}

// updatePicker forwards msg to the open form and applies its result through
// the panel handler once the form completes.
func (m *panelModel) updatePicker(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.picker = nil
		m.flash("Cancelled.", false)
		return nil
	}
	form, cmd := m.picker.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.picker.form = f
	}
	switch m.picker.form.State {
	case huh.StateCompleted:
		pk := m.picker
		m.picker = nil
		if err := pk.apply(context.Background(), m.panel); err != nil {
			m.flash(err.Error(), true)
		}
	case huh.StateAborted:
		m.picker = nil
	}
	return cmd
}

func (m *panelModel) commitBudget() {
	if m.budget == nil {
		return
	}
	if err := m.budget.Commit(context.Background()); err != nil {
		if errors.Is(err, panel.ErrInvalidBudget) {
			m.flash("Budget must be a number", true)
			return
		}
		m.flash(err.Error(), true)
	}
}

func (m *panelModel) budgetFocused(rows []rowKind) bool {
	return m.input.Focused() && m.cursor < len(rows) && rows[m.cursor] == rowBudget
}

func (m *panelModel) focusIfBudget(rows []rowKind) tea.Cmd {
	if m.budget == nil || !m.panel.Editable() || m.cursor >= len(rows) || rows[m.cursor] != rowBudget {
		return nil
	}
	m.syncInput()
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *panelModel) move(down bool, n int) {
	if down && m.cursor < n-1 {
		m.cursor++
	}
	if !down && m.cursor > 0 {
		m.cursor--
	}
}

func (m *panelModel) clampCursor() {
	pr, ok := m.panel.Projection()
	if !ok {
		return
	}
	if n := len(visibleRows(pr)); m.cursor >= n {
		m.cursor = n - 1
	}
}

// syncInput mirrors the controller into the text input unless the user is
// mid-edit.
func (m *panelModel) syncInput() {
	if m.budget == nil || m.budget.State() == panel.BudgetEditing {
		return
	}
	if v := m.budget.Display(); v != m.input.Value() {
		m.input.SetValue(v)
	}
}

func (m *panelModel) flash(text string, isError bool) {
	m.toast = text
	m.isError = isError
}

// quit unmounts the panel. An uncommitted budget edit is discarded.
func (m *panelModel) quit() tea.Cmd {
	m.quitting = true
	if m.budget != nil {
		m.budget.Close()
	}
	return tea.Quit
}

func (m *panelModel) View() string {
	if m.quitting {
		return ""
	}
	pr, ok := m.panel.Projection()
	if !ok {
		return ""
	}
	if m.picker != nil {
		return formatter.Header(panelTitle(pr)) + "\n\n" + m.picker.form.View()
	}

	budgetText := ""
	if m.budget != nil {
		budgetText = m.budget.Display()
	}
	fields := projectionFields(pr, budgetText, m.app.now())
	rows := visibleRows(pr)
	if m.budgetFocused(rows) {
		fields[m.cursor].Value = m.input.View()
	}

	var footer []string
	if !m.panel.Editable() {
		footer = append(footer, formatter.StyleYellow.Render("read-only"))
	}
	if m.toast != "" {
		style := formatter.StyleGreen
		if m.isError {
			style = formatter.StyleRed
		}
		footer = append(footer, style.Render(m.toast))
	}
	footer = append(footer, formatter.Dim(helpLine()))
	return formatter.FormatPanel(panelTitle(pr), fields, m.cursor, strings.Join(footer, "\n"))
}

func helpLine() string {
	bindings := []key.Binding{panelKeys.Up, panelKeys.Down, panelKeys.Enter, panelKeys.Quit}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = h.Key + " " + h.Desc
	}
	return strings.Join(parts, " · ")
}

func fieldTitle(f domain.FieldName) string {
	switch f {
	case domain.FieldStateID:
		return rowTitles[rowState]
	case domain.FieldAssigneeIDs:
		return rowTitles[rowAssignees]
	case domain.FieldPriority:
		return rowTitles[rowPriority]
	case domain.FieldStartDate:
		return rowTitles[rowStartDate]
	case domain.FieldTargetDate:
		return rowTitles[rowDueDate]
	case domain.FieldEstimatePoint:
		return rowTitles[rowEstimate]
	case domain.FieldModuleIDs:
		return rowTitles[rowModules]
	case domain.FieldCycleID:
		return rowTitles[rowCycle]
	case domain.FieldParentID:
		return rowTitles[rowParent]
	case domain.FieldLabelIDs:
		return rowTitles[rowLabels]
	case domain.FieldBudget:
		return rowTitles[rowBudget]
	}
	return string(f)
}
