package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
	"github.com/RichardEWillis/pi-label-inventory/internal/session"
)

var (
	// errRetry restarts a dialog from its first question.
	errRetry  = errors.New("retry")
	errEmpty  = errors.New("no inventory in memory")
	errNoName = errors.New("no filename entered")
)

// prompt is one question. An empty answer takes def.
type prompt struct {
	label string
	def   string
	// showDef appends the default in brackets.
	showDef bool
}

func (p *prompt) text() string {
	if p.showDef {
		return fmt.Sprintf("%s [%s] :", p.label, p.def)
	}
	return p.label + " :"
}

// flow is a sequence of questions ending in one session call. next returns
// the question that follows the answers so far, or nil when every answer is
// in. finish performs the call and returns the message to show.
type flow struct {
	title      string
	answers    []string
	transcript []string
	next       func(answers []string) (*prompt, error)
	finish     func(answers []string) (string, error)
}

func (m Model) start(f *flow) (tea.Model, tea.Cmd) {
	m.flow = f
	f.answers = nil
	f.transcript = nil
	return m.advance()
}

// advance asks the next question or finishes the flow.
func (m Model) advance() (tea.Model, tea.Cmd) {
	p, err := m.flow.next(m.flow.answers)
	if errors.Is(err, errRetry) {
		return m.start(m.flow)
	}
	if err != nil {
		return m.fail(err), nil
	}
	if p == nil {
		text, err := m.flow.finish(m.flow.answers)
		if err != nil {
			return m.fail(err), nil
		}
		return m.show(text, false), nil
	}

	m.state = statePrompt
	m.prompt = p
	m.input.Reset()
	return m, m.input.Focus()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = stateMenu
		m.flow = nil
		m.prompt = nil
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		answer := m.input.Value()
		if answer == "" {
			answer = m.prompt.def
		}
		m.flow.answers = append(m.flow.answers, answer)
		m.flow.transcript = append(m.flow.transcript, m.prompt.text()+" "+answer)
		return m.advance()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func newFlow(a action, s *session.Session) *flow {
	switch a {
	case actOpen:
		return openFlow(s)
	case actSave:
		return saveFlow(s)
	case actAdd:
		return addFlow(s)
	case actEdit:
		return editFlow(s)
	case actLabels:
		return labelsFlow(s)
	}
	panic(fmt.Sprintf("tui: no dialog for %q", a))
}

func openFlow(s *session.Session) *flow {
	return &flow{
		title: "Open Inventory File",
		next: func(answers []string) (*prompt, error) {
			if len(answers) == 0 {
				return &prompt{label: "Enter filename to load"}, nil
			}
			return nil, nil
		},
		finish: func(answers []string) (string, error) {
			if strings.TrimSpace(answers[0]) == "" {
				return "", errNoName
			}
			n, err := s.Open(answers[0])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Loaded %d record(s) from %s", n, s.Filename), nil
		},
	}
}

func saveFlow(s *session.Session) *flow {
	return &flow{
		title: "Save Inventory File",
		next: func(answers []string) (*prompt, error) {
			if len(answers) == 0 {
				label := "Enter filename to save, or hit ENTER to overwrite loaded file"
				if s.Filename != "" {
					label = fmt.Sprintf("Loaded File: {%s}\n%s", s.Filename, label)
				}
				return &prompt{label: label}, nil
			}
			return nil, nil
		},
		finish: func(answers []string) (string, error) {
			n, err := s.Save(answers[0])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("File saved. %d record(s) written to %s", n, s.Filename), nil
		},
	}
}

func addFlow(s *session.Session) *flow {
	var sn int
	return &flow{
		title: "Add Parcel",
		next: func(answers []string) (*prompt, error) {
			switch len(answers) {
			case 0:
				sn = s.Inventory.NextSerial()
				return &prompt{label: fmt.Sprintf("Serial: %03d\nWeight", sn)}, nil
			case 1:
				return &prompt{label: "Description"}, nil
			case 2:
				return confirm(sn, answers[0], answers[1]), nil
			}
			if !accepted(answers[2]) {
				return nil, errRetry
			}
			return nil, nil
		},
		finish: func(answers []string) (string, error) {
			r, err := s.AddSerial(sn, answers[0], answers[1])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added %s", r), nil
		},
	}
}

func editFlow(s *session.Session) *flow {
	var current inventory.Record
	return &flow{
		title: "Edit Parcel",
		next: func(answers []string) (*prompt, error) {
			switch len(answers) {
			case 0:
				return &prompt{label: "SerialNum to Edit?"}, nil
			case 1:
				sn, err := inventory.ParseSerial(answers[0])
				if err != nil {
					return nil, err
				}
				if _, current, err = s.Find(sn); err != nil {
					return nil, err
				}
				return &prompt{label: "Weight", def: current.Weight, showDef: true}, nil
			case 2:
				return &prompt{label: "Description", def: current.Description, showDef: true}, nil
			case 3:
				return confirm(current.Serial, answers[1], answers[2]), nil
			}
			if !accepted(answers[3]) {
				return nil, errRetry
			}
			return nil, nil
		},
		finish: func(answers []string) (string, error) {
			r, err := s.Edit(current.Serial, answers[1], answers[2])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Serial number %d updated. %s", r.Serial, r), nil
		},
	}
}

func labelsFlow(s *session.Session) *flow {
	var sel session.Selection
	return &flow{
		title: "Generate Labels",
		next: func(answers []string) (*prompt, error) {
			switch len(answers) {
			case 0:
				if s.Inventory.Size() == 0 {
					return nil, errEmpty
				}
				return &prompt{label: "Search by (I)ndex or (S)erialNumber (I/S)", def: "I", showDef: true}, nil
			case 1:
				by, err := session.ParseBy(answers[0])
				if err != nil {
					return nil, err
				}
				sel = s.DefaultSelection(by)
				if by == session.BySerial {
					return &prompt{label: "Select Starting SerialNum for print", def: strconv.Itoa(sel.From), showDef: true}, nil
				}
				return &prompt{label: "Select Start Index for print", def: strconv.Itoa(sel.From), showDef: true}, nil
			case 2:
				if sel.By == session.BySerial {
					return &prompt{label: "Select Last SerialNum to print", def: strconv.Itoa(sel.To), showDef: true}, nil
				}
				return &prompt{label: "Select Last Index to print", def: strconv.Itoa(sel.To), showDef: true}, nil
			case 3:
				if s.Filename == "" {
					return &prompt{label: "Enter a filename to save the generated labels to (PDF)"}, nil
				}
			}
			return nil, nil
		},
		finish: func(answers []string) (string, error) {
			var err error
			if sel.From, err = atoi(answers[1]); err != nil {
				return "", err
			}
			if sel.To, err = atoi(answers[2]); err != nil {
				return "", err
			}
			out := ""
			if len(answers) > 3 {
				if answers[3] == "" {
					return "", session.ErrNoFile
				}
				out = session.ReplaceExt(answers[3], ".pdf")
			}
			res, err := s.Labels(sel, out)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("PDF document %s saved to file. %d label(s) on %d page(s).", res.Path, res.Labels, res.Pages), nil
		},
	}
}

func confirm(sn int, weight, desc string) *prompt {
	return &prompt{
		label:   fmt.Sprintf("sn[%03d] weight[%s] [%s] - Accept? (Y/N)", sn, weight, desc),
		def:     "Y",
		showDef: true,
	}
}

func accepted(answer string) bool {
	return answer == "" || answer[0] == 'y' || answer[0] == 'Y'
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}

// describe turns a session error into the message shown to the user.
func describe(err error) string {
	var se *inventory.Error
	switch {
	case errors.As(err, &se) && se.Code == inventory.ErrCodeNotFound && se.Path != "":
		return "File not found, nothing loaded."
	case errors.Is(err, errEmpty):
		return "No inventory in memory"
	case errors.Is(err, errNoName):
		return "No filename entered, nothing loaded."
	case errors.Is(err, session.ErrNoFile):
		return "No loaded file, you must enter a new filename to save to"
	case errors.Is(err, fs.ErrExist):
		return fmt.Sprintf("%v. Enable labels.overwrite_existing to replace it.", err)
	}
	return err.Error()
}
