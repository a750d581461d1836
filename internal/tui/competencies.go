package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/skillboard/internal/database/repository"
)

// similarNameDistance is the largest edit distance reported as a near-duplicate name.
const similarNameDistance = 2

// CompetencyPage lists competencies, shows the selected one in detail and
// creates new ones from the name input.
type CompetencyPage struct {
	ctx     context.Context
	source  CompetencySource
	log     *zap.Logger
	opts    Options
	st      styles
	now     func() time.Time
	newID   func() string
	timeout time.Duration

	competencies []repository.Competency
	selected     *repository.Competency
	// selectedAt is the request sequence current when the user last picked a
	// card; zero means the selection was never made by the user.
	selectedAt uint64
	seq        uint64

	input        textinput.Model
	inputFocused bool
	cursor       int
	width        int
	status       string
	statusErr    bool
}

func NewCompetencyPage(ctx context.Context, source CompetencySource, opts Options) *CompetencyPage {
	opts = opts.withDefaults()
	ti := textinput.New()
	ti.Placeholder = "Enter competency name..."
	ti.Prompt = "✎ "
	ti.Width = 40
	return &CompetencyPage{
		ctx:          ctx,
		source:       source,
		log:          opts.Logger.Named("competencies"),
		opts:         opts,
		st:           newStyles(opts.HighlightColor),
		now:          opts.Now,
		newID:        opts.NewID,
		timeout:      opts.RequestTimeout,
		competencies: []repository.Competency{},
		input:        ti,
		width:        opts.Width,
	}
}

// Init issues the initial load.
func (p *CompetencyPage) Init() tea.Cmd {
	return p.reload()
}

func (p *CompetencyPage) reload() tea.Cmd {
	p.seq++
	seq := p.seq
	return func() tea.Msg {
		ctx, cancel := requestContext(p.ctx, p.timeout)
		defer cancel()
		list, err := p.source.LoadCompetencies(ctx)
		return competenciesMsg{seq: seq, op: opLoad, list: list, err: err}
	}
}

// setInput stores the pending name verbatim.
func (p *CompetencyPage) setInput(text string) {
	p.input.SetValue(text)
}

func (p *CompetencyPage) pendingInput() string {
	return p.input.Value()
}

func (p *CompetencyPage) addEnabled() bool {
	return p.pendingInput() != ""
}

// submit creates a competency from the pending input. It does nothing when
// the input is empty.
func (p *CompetencyPage) submit() tea.Cmd {
	if !p.addEnabled() {
		return nil
	}
	c := repository.Competency{
		ID:   p.newID(),
		Name: p.pendingInput(),
		Date: p.now(),
	}
	p.seq++
	seq := p.seq
	p.setStatus(fmt.Sprintf("adding %q...", c.Name), false)
	return func() tea.Msg {
		ctx, cancel := requestContext(p.ctx, p.timeout)
		defer cancel()
		list, err := p.source.CreateCompetency(ctx, c)
		return competenciesMsg{seq: seq, op: opCreate, name: c.Name, list: list, err: err}
	}
}

// remove deletes the selected competency. It does nothing when nothing is
// selected.
func (p *CompetencyPage) remove() tea.Cmd {
	if p.selected == nil {
		return nil
	}
	target := *p.selected
	p.seq++
	seq := p.seq
	p.setStatus(fmt.Sprintf("removing %q...", target.Name), false)
	return func() tea.Msg {
		ctx, cancel := requestContext(p.ctx, p.timeout)
		defer cancel()
		list, err := p.source.DeleteCompetency(ctx, target.ID)
		return competenciesMsg{seq: seq, op: opDelete, name: target.Name, list: list, err: err}
	}
}

// selectRecord makes c the only selected competency.
func (p *CompetencyPage) selectRecord(c repository.Competency) {
	sel := c
	p.selected = &sel
	p.selectedAt = p.seq
	if i := p.indexOf(c.ID); i >= 0 {
		p.cursor = i
	}
}

func (p *CompetencyPage) isSelected(id string) bool {
	return p.selected != nil && p.selected.ID == id
}

func (p *CompetencyPage) indexOf(id string) int {
	for i, c := range p.competencies {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// applyResult handles a finished request. Only the latest dispatched
// request replaces the collection and selection. Failures are always logged,
// and the outcome of a write is reported even when a later request overtook it.
func (p *CompetencyPage) applyResult(m competenciesMsg) {
	latest := m.seq == p.seq
	if m.err != nil {
		p.log.Error("competency request failed",
			zap.String("op", string(m.op)),
			zap.Uint64("seq", m.seq),
			zap.Bool("stale", !latest),
			zap.Error(m.err))
		if latest || m.op != opLoad {
			p.setStatus("error: "+m.err.Error(), true)
		}
		return
	}

	switch m.op {
	case opCreate:
		// the user may have typed something new while the create ran
		if p.pendingInput() == m.name {
			p.input.SetValue("")
		}
		p.setStatus("competency added", false)
	case opDelete:
		p.setStatus(fmt.Sprintf("removed %q", m.name), false)
	default:
		if latest {
			p.setStatus("", false)
		}
	}

	if !latest {
		p.log.Debug("stale result not applied", zap.String("op", string(m.op)), zap.Uint64("seq", m.seq), zap.Uint64("latest", p.seq))
		return
	}
	p.log.Debug("competencies replaced", zap.String("op", string(m.op)), zap.Uint64("seq", m.seq), zap.Int("count", len(m.list)))
	p.replace(m.list)
}

// replace swaps in a new collection and re-establishes the selection: the
// user's pick survives only if it was made while this request was in flight
// and the record still exists, otherwise the first record is selected.
func (p *CompetencyPage) replace(list []repository.Competency) {
	if list == nil {
		list = []repository.Competency{}
	}
	p.competencies = list

	if p.selected != nil && p.selectedAt >= p.seq {
		if i := p.indexOf(p.selected.ID); i >= 0 {
			fresh := list[i]
			p.selected = &fresh
			p.cursor = i
			return
		}
	}
	p.selectedAt = 0
	if len(list) == 0 {
		p.selected = nil
		p.cursor = 0
		return
	}
	first := list[0]
	p.selected = &first
	p.cursor = 0
}

func (p *CompetencyPage) setStatus(s string, isErr bool) {
	p.status = s
	p.statusErr = isErr
}

func (p *CompetencyPage) focusInput() tea.Cmd {
	p.inputFocused = true
	return p.input.Focus()
}

func (p *CompetencyPage) blurInput() {
	p.inputFocused = false
	p.input.Blur()
}

// capturesKeys reports whether key presses belong to the text input.
func (p *CompetencyPage) capturesKeys() bool {
	return p.inputFocused
}

func (p *CompetencyPage) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case competenciesMsg:
		p.applyResult(m)
		return nil
	case tea.WindowSizeMsg:
		p.width = m.Width
		return nil
	case tea.KeyMsg:
		if p.inputFocused {
			return p.handleInputKey(m)
		}
		return p.handleGridKey(m)
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *CompetencyPage) handleInputKey(m tea.KeyMsg) tea.Cmd {
	switch m.Type {
	case tea.KeyEnter:
		return p.submit()
	case tea.KeyEsc, tea.KeyTab:
		p.blurInput()
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(m)
	return cmd
}

func (p *CompetencyPage) handleGridKey(m tea.KeyMsg) tea.Cmd {
	perRow := cardsPerRow(p.width)
	switch m.String() {
	case "tab", "/", "a":
		return p.focusInput()
	case "left", "h":
		if p.cursor > 0 {
			p.cursor--
		}
	case "right", "l":
		if p.cursor < len(p.competencies)-1 {
			p.cursor++
		}
	case "up", "k":
		if p.cursor-perRow >= 0 {
			p.cursor -= perRow
		}
	case "down", "j":
		if p.cursor+perRow < len(p.competencies) {
			p.cursor += perRow
		}
	case "enter", " ":
		if p.cursor < len(p.competencies) {
			p.selectRecord(p.competencies[p.cursor])
		}
	case "r":
		p.setStatus("reloading...", false)
		return p.reload()
	case "x", "delete":
		return p.remove()
	}
	return nil
}

// similarName returns an existing competency whose name is close to the
// pending input, or "" if there is none.
func (p *CompetencyPage) similarName() string {
	in := strings.ToLower(strings.TrimSpace(p.pendingInput()))
	if len(in) < 3 {
		return ""
	}
	best, bestDist := "", similarNameDistance+1
	for _, c := range p.competencies {
		d := levenshtein.ComputeDistance(in, strings.ToLower(c.Name))
		if d < bestDist {
			best, bestDist = c.Name, d
		}
	}
	return best
}

func (p *CompetencyPage) cards() []card {
	out := make([]card, 0, len(p.competencies))
	for i, c := range p.competencies {
		cd := competencyCard(c, p.opts.DateFormat)
		cd.selected = p.isSelected(c.ID)
		cd.focused = !p.inputFocused && i == p.cursor
		out = append(out, cd)
	}
	return out
}

func (p *CompetencyPage) View() string {
	var b strings.Builder
	b.WriteString(p.st.title.Render("Competencies") + "\n")
	b.WriteString(p.st.subtitle.Render("Create and manage competencies, subcompetencies and indicators.") + "\n\n")

	field := lipgloss.JoinVertical(lipgloss.Left, "Competency Name", p.input.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, field, "  ", p.addButton()) + "\n")
	if name := p.similarName(); name != "" {
		b.WriteString(p.st.hint.Render(fmt.Sprintf("similar to existing competency %q", name)) + "\n")
	}
	b.WriteString("\n")

	if grid := renderCardGrid(p.cards(), p.width, p.st); grid != "" {
		b.WriteString(grid + "\n\n")
	}

	if p.selected == nil {
		b.WriteString(renderPlaceholder(p.st))
	} else {
		b.WriteString(renderDetail(*p.selected, p.opts.DateFormat, p.st))
	}

	if p.status != "" {
		style := p.st.status
		if p.statusErr {
			style = p.st.errStatus
		}
		b.WriteString("\n" + style.Render(p.status))
	}
	return b.String()
}

func (p *CompetencyPage) addButton() string {
	if p.addEnabled() {
		return p.st.button.Render("Add")
	}
	return p.st.buttonOff.Render("Add")
}

func (p *CompetencyPage) helpLine() string {
	if p.inputFocused {
		return "[enter] Add  [esc] Back to cards"
	}
	return "[←/→] Move  [enter] Select  [x] Delete  [tab] Name input  [r] Reload  [2] Profile  [q] Quit"
}

func requestContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
