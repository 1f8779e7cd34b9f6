// Package tui is the terminal front-end of the contact form.  The model
// owns one bubbles input per field and forwards every edit to the same
// form.Schema reducer the HTTP front-end uses: a keystroke that changes a
// value is a Change, leaving a field with tab is a Blur, and enter on the
// Submit button is a Submit.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/yanizio/contactform/internal/form"
)

// input wraps either a single-line or a multi-line bubbles component.
type input struct {
	def       form.FieldDef
	multiline bool
	line      textinput.Model
	area      textarea.Model
}

func newInput(def form.FieldDef) input {
	in := input{def: def, multiline: def.Type == "textarea"}
	if in.multiline {
		in.area = textarea.New()
		in.area.Placeholder = def.Placeholder
		in.area.ShowLineNumbers = false
		in.area.SetHeight(4)
		in.area.SetWidth(48)
		if def.MaxLength > 0 {
			in.area.CharLimit = def.MaxLength
		}
		return in
	}
	in.line = textinput.New()
	in.line.Placeholder = def.Placeholder
	in.line.Prompt = "> "
	in.line.Width = 44
	if def.MaxLength > 0 {
		in.line.CharLimit = def.MaxLength
	}
	return in
}

func (in *input) value() string {
	if in.multiline {
		return in.area.Value()
	}
	return in.line.Value()
}

func (in *input) focus() tea.Cmd {
	if in.multiline {
		return in.area.Focus()
	}
	return in.line.Focus()
}

func (in *input) blur() {
	if in.multiline {
		in.area.Blur()
		return
	}
	in.line.Blur()
}

func (in *input) reset() {
	if in.multiline {
		in.area.Reset()
		return
	}
	in.line.Reset()
}

func (in *input) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if in.multiline {
		in.area, cmd = in.area.Update(msg)
	} else {
		in.line, cmd = in.line.Update(msg)
	}
	return cmd
}

func (in *input) view() string {
	if in.multiline {
		return in.area.View()
	}
	return in.line.View()
}

// Model is the bubbletea model.  The focus ring is every field followed by
// the Submit button.
type Model struct {
	schema *form.Schema
	state  form.State
	inputs []input
	focus  int // len(inputs) means the Submit button
	styles Styles
	log    *zap.SugaredLogger
}

var _ tea.Model = Model{}

// New builds a model over sc with focus on the first field.
func New(sc *form.Schema, log *zap.SugaredLogger) Model {
	m := Model{
		schema: sc,
		state:  sc.New(),
		styles: DefaultStyles(),
		log:    log,
	}
	for _, f := range sc.Def().Fields {
		m.inputs = append(m.inputs, newInput(f))
	}
	if len(m.inputs) > 0 {
		m.inputs[0].focus()
	}
	return m
}

// State returns the current form state.
func (m Model) State() form.State { return m.state }

// Focused names the focused field, or "submit".
func (m Model) Focused() string {
	if m.onSubmit() {
		return "submit"
	}
	return m.inputs[m.focus].def.Name
}

func (m Model) onSubmit() bool { return m.focus == len(m.inputs) }

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.forward(msg)
	}

	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+r":
		return m, m.reset()
	case "tab":
		return m, m.move(1)
	case "shift+tab":
		return m, m.move(-1)
	case "enter":
		if m.onSubmit() {
			m.submit()
			return m, nil
		}
		if !m.inputs[m.focus].multiline {
			return m, m.move(1)
		}
	}
	return m, m.forward(msg)
}

// forward hands msg to the focused input and turns a value change into a
// Change event.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	if m.onSubmit() {
		return nil
	}
	in := &m.inputs[m.focus]
	before := in.value()
	cmd := in.update(msg)
	if after := in.value(); after != before {
		st, err := m.schema.Change(m.state, in.def.Name, after)
		if err != nil {
			m.log.Errorw("tui change failed", "field", in.def.Name, "err", err)
			return cmd
		}
		m.state = st
	}
	return cmd
}

// move blurs the focused field, validating it, and focuses the next stop.
func (m *Model) move(delta int) tea.Cmd {
	if !m.onSubmit() {
		in := &m.inputs[m.focus]
		if st, err := m.schema.Blur(m.state, in.def.Name); err == nil {
			m.state = st
		}
		in.blur()
	}
	stops := len(m.inputs) + 1
	m.focus = ((m.focus+delta)%stops + stops) % stops
	if m.onSubmit() {
		return nil
	}
	return m.inputs[m.focus].focus()
}

func (m *Model) submit() {
	m.state = m.schema.Submit(m.state)
	m.log.Infow("contact form submitted",
		"front_end", "tui",
		"phase", m.state.Phase().String(),
		"errors", m.state.ErrorCount(),
	)
}

func (m *Model) reset() tea.Cmd {
	m.state = m.schema.Reset()
	for i := range m.inputs {
		m.inputs[i].reset()
		m.inputs[i].blur()
	}
	m.focus = 0
	if len(m.inputs) == 0 {
		return nil
	}
	return m.inputs[0].focus()
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	fd := m.schema.Def()

	b.WriteString(m.styles.Title.Render(fd.Title))
	b.WriteString("\n")
	if intro := fd.IntroText(); intro != "" {
		b.WriteString(m.styles.Intro.Render(intro))
		b.WriteString("\n\n")
	}

	for i := range m.inputs {
		in := &m.inputs[i]
		b.WriteString(m.styles.Label.Render(in.def.Label))
		b.WriteString("\n")
		b.WriteString(in.view())
		b.WriteString("\n")
		if msg, ok := m.state.Errors[in.def.Name]; ok {
			b.WriteString(m.styles.Error.Render("Error: " + msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	btn := m.styles.Button
	if m.onSubmit() {
		btn = m.styles.ButtonFocused
	}
	b.WriteString(btn.Render(fd.Submit))
	b.WriteString("\n")

	if m.state.Phase() == form.Submitted {
		b.WriteString(m.styles.SummaryTitle.Render("You Submitted:"))
		b.WriteString("\n")
		for _, f := range fd.Fields {
			v := m.state.Submitted[f.Name]
			if v == "" {
				continue
			}
			b.WriteString(m.styles.Summary.Render(form.SummaryLabel(f) + ": " + v))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.styles.Help.Render("tab/shift+tab move • enter submit • ctrl+r reset • esc quit"))
	b.WriteString("\n")
	return b.String()
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(sc *form.Schema, log *zap.SugaredLogger, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(sc, log), opts...).Run()
	return err
}
