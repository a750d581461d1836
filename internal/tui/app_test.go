package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func newTestApp() (*App, *fakeCompetencies, *fakeAssessments) {
	comps := &fakeCompetencies{list: leadershipAndCommunication()}
	assess := &fakeAssessments{}
	app := New(context.Background(), Sources{Competencies: comps, Assessments: assess}, Options{Width: 200})
	return app, comps, assess
}

func TestAppInitLoadsBothPages(t *testing.T) {
	t.Parallel()

	app, comps, assess := newTestApp()
	batch, ok := app.Init()().(tea.BatchMsg)
	require.True(t, ok)
	for _, cmd := range batch {
		app.Update(cmd())
	}

	require.Equal(t, 1, comps.loads)
	require.Len(t, assess.identities, 1)
	require.Len(t, app.competencies.competencies, 2)
}

func TestAppSwitchesPages(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp()
	require.Contains(t, app.View(), "Competencies")

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	require.Equal(t, viewProfile, app.state)
	require.Contains(t, app.View(), "Available assessments to pass.")

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	require.Equal(t, viewCompetencies, app.state)
}

func TestAppQuit(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp()
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestAppRoutesKeysToFocusedInput(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp()
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, app.competencies.capturesKeys())

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q2")})
	require.Equal(t, viewCompetencies, app.state)
	require.Equal(t, "q2", app.competencies.pendingInput())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestAppWindowSizeReachesBothPages(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp()
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Equal(t, 120, app.competencies.width)
	require.Equal(t, 120, app.profile.width)
}
