// Command trajplot renders recorded ball trajectories from a pitchsim
// database as PNG plots: the XY path across the pitch and speed over time.
package main

import (
	"flag"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/pitchsim/internal/db"
)

var (
	dbFile    = flag.String("db", "pitchsim.db", "Path to the SQLite database file")
	runID     = flag.String("run", "", "Run id to plot (default: most recent run)")
	robot     = flag.String("robot", "", "Robot whose reports to plot (required)")
	outputDir = flag.String("out", "plots", "Directory to write PNG files into")
)

func main() {
	flag.Parse()

	if *robot == "" {
		log.Fatal("-robot is required")
	}

	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	run := *runID
	if run == "" {
		runs, err := database.Runs()
		if err != nil {
			log.Fatalf("Failed to list runs: %v", err)
		}
		if len(runs) == 0 {
			log.Fatal("No runs recorded")
		}
		run = runs[0].RunID
		log.Printf("Using most recent run %s", run)
	}

	points, err := database.BallTrajectory(run, *robot)
	if err != nil {
		log.Fatalf("Failed to load trajectory: %v", err)
	}
	if len(points) == 0 {
		log.Fatalf("No ball observations for robot %s in run %s", *robot, run)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	if err := plotPath(points, filepath.Join(*outputDir, "ball_path.png")); err != nil {
		log.Fatalf("Failed to plot ball path: %v", err)
	}
	if err := plotSpeed(points, filepath.Join(*outputDir, "ball_speed.png")); err != nil {
		log.Fatalf("Failed to plot ball speed: %v", err)
	}

	log.Printf("Wrote %d points to %s", len(points), *outputDir)
}

// plotPath draws the ball's XY path across the pitch in millimeters.
func plotPath(points []db.TrajectoryPoint, file string) error {
	p := plot.New()
	p.Title.Text = "Ball Path"
	p.X.Label.Text = "X (mm)"
	p.Y.Label.Text = "Y (mm)"

	pts := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		pts = append(pts, plotter.XY{X: pt.X, Y: pt.Y})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 31, G: 158, B: 137, A: 255}
	p.Add(line)

	return p.Save(10*vg.Inch, 7*vg.Inch, file)
}

// plotSpeed draws the reported ball speed against the recorded tick.
func plotSpeed(points []db.TrajectoryPoint, file string) error {
	p := plot.New()
	p.Title.Text = "Ball Speed"
	p.X.Label.Text = "Tick"
	p.Y.Label.Text = "Speed (mm/s)"

	pts := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		pts = append(pts, plotter.XY{X: float64(pt.Tick), Y: pt.Speed})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 253, G: 231, B: 37, A: 255}
	p.Add(line)

	return p.Save(14*vg.Inch, 6*vg.Inch, file)
}
