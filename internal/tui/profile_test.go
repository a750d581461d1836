package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jask/skillboard/internal/database/repository"
)

type fakeAssessments struct {
	list       []repository.Assessment
	err        error
	identities []string
}

func (f *fakeAssessments) LoadAssessments(ctx context.Context, identity string) ([]repository.Assessment, error) {
	f.identities = append(f.identities, identity)
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func TestProfileRendersEveryAssessment(t *testing.T) {
	t.Parallel()

	src := &fakeAssessments{list: []repository.Assessment{
		{ID: "a", Username: "ada", FullName: "Ada Lovelace", AvatarURL: "https://img/ada.png", Description: "Leadership review", Date: fixedNow},
		{ID: "g", Username: "grace", FullName: "Grace Hopper", Description: "Communication", Date: fixedNow},
	}}
	p := NewProfilePage(context.Background(), src, Options{Identity: "ada", Width: 200})

	cmd := p.Init()
	require.NotNil(t, cmd)
	p.Update(cmd())

	require.Equal(t, []string{"ada"}, src.identities)
	view := p.View()
	for _, want := range []string{"Profile", "Available assessments to pass.", "Ada Lovelace", "Grace Hopper", "/assessments/ada", "/assessments/grace", "https://img/ada.png", "Mon Oct 19 2026"} {
		require.Contains(t, view, want)
	}
}

func TestProfileFailureSurfacesError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	src := &fakeAssessments{err: errors.New("timeout")}
	p := NewProfilePage(context.Background(), src, Options{Logger: zap.New(core)})
	p.Update(p.Init()())

	require.Empty(t, p.assessments)
	require.Contains(t, p.View(), "error: timeout")
	require.Equal(t, 1, logs.FilterMessage("assessment request failed").Len())
}

func TestProfileDiscardsStaleResult(t *testing.T) {
	t.Parallel()

	src := &fakeAssessments{list: []repository.Assessment{{ID: "old", FullName: "Old", Date: fixedNow}}}
	p := NewProfilePage(context.Background(), src, Options{})
	first := p.Init()()

	src.list = []repository.Assessment{{ID: "new", FullName: "New", Date: fixedNow}}
	second := p.reload()()

	p.Update(second)
	p.Update(first)
	require.Len(t, p.assessments, 1)
	require.Equal(t, "new", p.assessments[0].ID)
}

func TestFormatDateIgnoresLocalZone(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+10", 10*60*60)
	// 23:30 UTC on the 18th is the 19th in UTC+10
	ts := time.Date(2026, time.October, 19, 9, 30, 0, 0, loc)
	require.Equal(t, "Sun Oct 18 2026", formatDate(ts, ""))
	require.Equal(t, "2026-10-18", formatDate(ts, "2006-01-02"))
}
