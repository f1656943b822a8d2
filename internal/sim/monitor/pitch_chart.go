package monitor

import (
	"bytes"
	"fmt"
	"math"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Standard pitch half-extents in millimeters, used as the minimum chart
// range so an empty pitch still renders at field scale.
const (
	pitchHalfLength = 4500.0
	pitchHalfWidth  = 3000.0
)

// handlePitchChart renders a quick scatter plot (HTML) of the latest world
// state using go-echarts. This is a debugging-only endpoint (no auth) to
// visually check robot placement and ball motion without a real UI.
func (ws *WebServer) handlePitchChart(w http.ResponseWriter, r *http.Request) {
	state := ws.Latest()
	if state == nil {
		ws.writeJSONError(w, http.StatusNotFound, "no state published yet")
		return
	}
	snap := state.Snapshot

	own := make([]opts.ScatterData, 0, len(snap.OwnTeamPlayers)+1)
	opponents := make([]opts.ScatterData, 0, len(snap.OpponentTeamPlayers))
	maxAbs := pitchHalfLength

	// Dimension 2 carries the player number for the tooltip.
	own = append(own, opts.ScatterData{
		Value: []interface{}{snap.OwnPose.Translation.X, snap.OwnPose.Translation.Y, 0},
	})
	for _, p := range snap.OwnTeamPlayers {
		if math.Abs(p.Pose.Translation.X) > maxAbs {
			maxAbs = math.Abs(p.Pose.Translation.X)
		}
		own = append(own, opts.ScatterData{
			Value: []interface{}{p.Pose.Translation.X, p.Pose.Translation.Y, p.Number},
		})
	}
	for _, p := range snap.OpponentTeamPlayers {
		if math.Abs(p.Pose.Translation.X) > maxAbs {
			maxAbs = math.Abs(p.Pose.Translation.X)
		}
		opponents = append(opponents, opts.ScatterData{
			Value: []interface{}{p.Pose.Translation.X, p.Pose.Translation.Y, p.Number},
		})
	}

	var balls []opts.ScatterData
	for _, b := range snap.Balls {
		balls = append(balls, opts.ScatterData{
			Value: []interface{}{b.Position.X, b.Position.Y, 0},
		})
	}

	pad := maxAbs * 1.05
	padY := pitchHalfWidth * 1.05

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Pitch State", Theme: "dark", Width: "900px", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Pitch State",
			Subtitle: fmt.Sprintf("robot=%s tick=%d players=%d+%d", state.Robot, state.Tick, len(snap.OwnTeamPlayers), len(snap.OpponentTeamPlayers)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (mm)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -padY, Max: padY, Name: "Y (mm)", NameLocation: "middle", NameGap: 30}),
	)

	scatter.AddSeries("own team", own, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#35b779"}))
	scatter.AddSeries("opponents", opponents, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}))
	scatter.AddSeries("ball", balls, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#fde725"}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
