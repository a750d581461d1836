package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/skillboard/internal/database/repository"
)

// ProfilePage shows every assessment available to the configured identity.
// It has no selection.
type ProfilePage struct {
	ctx      context.Context
	source   AssessmentSource
	log      *zap.Logger
	opts     Options
	st       styles
	identity string
	timeout  time.Duration

	assessments []repository.Assessment
	seq         uint64
	width       int
	status      string
	statusErr   bool
}

func NewProfilePage(ctx context.Context, source AssessmentSource, opts Options) *ProfilePage {
	opts = opts.withDefaults()
	return &ProfilePage{
		ctx:         ctx,
		source:      source,
		log:         opts.Logger.Named("profile"),
		opts:        opts,
		st:          newStyles(opts.HighlightColor),
		identity:    opts.Identity,
		timeout:     opts.RequestTimeout,
		assessments: []repository.Assessment{},
		width:       opts.Width,
	}
}

func (p *ProfilePage) Init() tea.Cmd {
	return p.reload()
}

func (p *ProfilePage) reload() tea.Cmd {
	p.seq++
	seq := p.seq
	identity := p.identity
	return func() tea.Msg {
		ctx, cancel := requestContext(p.ctx, p.timeout)
		defer cancel()
		list, err := p.source.LoadAssessments(ctx, identity)
		return assessmentsMsg{seq: seq, list: list, err: err}
	}
}

func (p *ProfilePage) applyResult(m assessmentsMsg) {
	if m.seq != p.seq {
		p.log.Debug("discarding stale result", zap.Uint64("seq", m.seq), zap.Uint64("latest", p.seq))
		return
	}
	if m.err != nil {
		p.log.Error("assessment request failed", zap.String("identity", p.identity), zap.Uint64("seq", m.seq), zap.Error(m.err))
		p.status, p.statusErr = "error: "+m.err.Error(), true
		return
	}
	if m.list == nil {
		m.list = []repository.Assessment{}
	}
	p.assessments = m.list
	p.status, p.statusErr = "", false
}

func (p *ProfilePage) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case assessmentsMsg:
		p.applyResult(m)
	case tea.WindowSizeMsg:
		p.width = m.Width
	case tea.KeyMsg:
		if m.String() == "r" {
			p.status, p.statusErr = "reloading...", false
			return p.reload()
		}
	}
	return nil
}

func (p *ProfilePage) cards() []card {
	out := make([]card, 0, len(p.assessments))
	for _, a := range p.assessments {
		out = append(out, assessmentCard(a, p.opts.DateFormat))
	}
	return out
}

func (p *ProfilePage) View() string {
	var b strings.Builder
	b.WriteString(p.st.title.Render("Profile") + "\n")
	b.WriteString(p.st.subtitle.Render("Available assessments to pass.") + "\n\n")
	if grid := renderCardGrid(p.cards(), p.width, p.st); grid != "" {
		b.WriteString(grid)
	} else if !p.statusErr {
		b.WriteString(p.st.subtitle.Render("No assessments available."))
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

func (p *ProfilePage) helpLine() string {
	return "[r] Reload  [1] Competencies  [q] Quit"
}
