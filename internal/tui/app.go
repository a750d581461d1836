package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/skillboard/internal/config"
	"github.com/jask/skillboard/internal/database"
)

// Options configures the pages. Zero values fall back to defaults.
type Options struct {
	DateFormat     string
	HighlightColor string
	RequestTimeout time.Duration
	Identity       string
	Width          int
	Logger         *zap.Logger
	Now            func() time.Time
	NewID          func() string
}

// OptionsFromConfig maps application config onto page options.
func OptionsFromConfig(cfg config.Config, logger *zap.Logger) Options {
	return Options{
		DateFormat:     cfg.UI.DateFormat,
		HighlightColor: cfg.UI.HighlightColor,
		RequestTimeout: cfg.UI.RequestTimeout,
		Identity:       cfg.Profile.Identity,
		Logger:         logger,
	}
}

func (o Options) withDefaults() Options {
	if o.DateFormat == "" {
		o.DateFormat = "Mon Jan 02 2006"
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = database.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Width <= 0 {
		o.Width = 80
	}
	return o
}

// Sources are the data sources behind the two pages.
type Sources struct {
	Competencies CompetencySource
	Assessments  AssessmentSource
}

type appState string

const (
	viewCompetencies appState = "competencies"
	viewProfile      appState = "profile"
)

// App switches between the competencies and profile pages.
type App struct {
	state        appState
	competencies *CompetencyPage
	profile      *ProfilePage
	st           styles
}

func New(ctx context.Context, sources Sources, opts Options) *App {
	return &App{
		state:        viewCompetencies,
		competencies: NewCompetencyPage(ctx, sources.Competencies, opts),
		profile:      NewProfilePage(ctx, sources.Assessments, opts),
		st:           newStyles(opts.HighlightColor),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.competencies.Init(), a.profile.Init())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.state == viewCompetencies && a.competencies.capturesKeys() {
			return a, a.competencies.Update(m)
		}
		switch m.String() {
		case "q":
			return a, tea.Quit
		case "1":
			a.state = viewCompetencies
			return a, nil
		case "2":
			a.state = viewProfile
			return a, nil
		}
		if a.state == viewProfile {
			return a, a.profile.Update(m)
		}
		return a, a.competencies.Update(m)
	case tea.WindowSizeMsg:
		return a, tea.Batch(a.competencies.Update(m), a.profile.Update(m))
	case competenciesMsg:
		return a, a.competencies.Update(m)
	case assessmentsMsg:
		return a, a.profile.Update(m)
	}
	// cursor blink and other widget messages
	return a, a.competencies.Update(msg)
}

func (a *App) View() string {
	var body, help string
	switch a.state {
	case viewProfile:
		body, help = a.profile.View(), a.profile.helpLine()
	default:
		body, help = a.competencies.View(), a.competencies.helpLine()
	}
	return body + "\n\n" + a.st.footer.Render(help)
}
