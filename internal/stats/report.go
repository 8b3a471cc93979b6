package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/wordsprint/internal/model"
	"github.com/verte-zerg/wordsprint/internal/store"
)

const historyRows = 10

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions []model.SessionAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return Report{Sessions: sessions}, nil
}

// Render writes the summary, recent history, and curves for r.
func (r Report) Render(w io.Writer, curveWindow, width int, useColor bool) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if err := RenderHistory(w, r.Sessions, historyRows); err != nil {
		return err
	}
	return RenderCurves(w, r.Sessions, curveWindow, width, useColor)
}
