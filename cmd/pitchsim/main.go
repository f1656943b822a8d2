package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/exp/rand"

	"github.com/banshee-data/pitchsim/internal/config"
	"github.com/banshee-data/pitchsim/internal/db"
	"github.com/banshee-data/pitchsim/internal/sim"
	"github.com/banshee-data/pitchsim/internal/sim/engine"
	"github.com/banshee-data/pitchsim/internal/sim/geom"
	"github.com/banshee-data/pitchsim/internal/sim/monitor"
	"github.com/banshee-data/pitchsim/internal/version"
)

var (
	listen         = flag.String("listen", ":8082", "HTTP listen address for the monitor")
	engineVariant  = flag.String("engine", "planar", "Physics variant: planar (2d) or volumetric (3d)")
	playersPerSide = flag.Int("players", 5, "Fielded robots per team")
	dbFile         = flag.String("db", "pitchsim.db", "Path to the SQLite database file (empty to disable recording)")
	migrationsDir  = flag.String("migrations", "internal/db/migrations", "Path to the migrations directory")
	tuningPath     = flag.String("tuning", "", "Path to a tuning config JSON file (defaults apply when empty)")
	posesPath      = flag.String("setup-poses", "", "Path to a setup poses JSON file")
	seed           = flag.Uint64("seed", 1, "Seed for the ball curve random source")
	ticks          = flag.Int64("ticks", 0, "Number of simulation steps to run (0 = until interrupted)")
	recordEvery    = flag.Int64("record-every", 10, "Record a snapshot every N ticks")
	kickEvery      = flag.Int64("kick-every", 500, "Kick the ball every N ticks (0 = never)")
	realtime       = flag.Bool("realtime", true, "Pace steps at the engine step length instead of free-running")
)

func main() {
	flag.Parse()
	log.Printf("pitchsim %s (%s)", version.Version, version.GitSHA)

	// Subcommand dispatch before anything touches the schema.
	if flag.NArg() > 0 && flag.Arg(0) == "migrate" {
		db.RunMigrateCommand(flag.Args()[1:], *dbFile, *migrationsDir)
		return
	}

	tuning := &config.TuningConfig{}
	if *tuningPath != "" {
		var err error
		tuning, err = config.LoadTuningConfig(*tuningPath)
		if err != nil {
			log.Fatalf("Failed to load tuning config: %v", err)
		}
	}

	variant, err := engine.ParseVariant(*engineVariant)
	if err != nil {
		log.Fatalf("Invalid engine variant: %v", err)
	}

	stepLength := tuning.GetStepLength()

	var eng engine.Engine
	if variant == engine.Planar {
		eng = engine.NewPlanar(stepLength)
	} else {
		eng = engine.NewVolumetric(stepLength)
	}

	robotsPerTeam := tuning.GetRobotsPerTeam()
	if *playersPerSide < 1 || *playersPerSide > robotsPerTeam {
		log.Fatalf("players must be between 1 and %d, got %d", robotsPerTeam, *playersPerSide)
	}

	sc, robotObjects, ball := sim.BuildPitch(eng, sim.PitchConfig{
		PlayersPerSide: *playersPerSide,
		RobotsPerTeam:  robotsPerTeam,
		WithBall:       true,
	})

	robots := make([]*sim.Robot, 0, len(robotObjects))
	for _, obj := range robotObjects {
		robot, err := sim.NewRobot(eng, sc, obj, sim.Config{
			RobotsPerTeam:   robotsPerTeam,
			CurveSigmaScale: tuning.GetCurveSigmaScale(),
			RandomSource:    rand.NewSource(*seed),
		})
		if err != nil {
			log.Fatalf("Failed to set up robot %s: %v", obj.FullName(), err)
		}
		robot.SetBall(ball)
		robots = append(robots, robot)
	}

	if *posesPath != "" {
		poses, err := config.LoadSetupPoses(*posesPath)
		if err != nil {
			log.Fatalf("Failed to load setup poses: %v", err)
		}
		for _, robot := range robots {
			pose, err := poses.PoseOfRobot(robot.PlayerNumber())
			if err != nil {
				log.Fatalf("Failed to place robot %d: %v", robot.Number(), err)
			}
			placeRobot(robot, pose)
		}
	}

	// Recording is optional, the simulation runs fine without a database.
	var database *db.DB
	var runID string
	if *dbFile != "" {
		database, err = db.NewDB(*dbFile)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		runID, err = database.CreateRun(variant.String(), robotsPerTeam)
		if err != nil {
			log.Fatalf("Failed to create run: %v", err)
		}
		log.Printf("Recording run %s", runID)
	}

	webServer := monitor.NewWebServer(monitor.WebServerConfig{
		Address: *listen,
		DB:      database,
		RunID:   runID,
	})

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := webServer.Start(ctx); err != nil {
			log.Printf("Web server error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runLoop(ctx, eng, robots, ball, webServer, database, runID, tuning.GetBallFriction())
		stop()
	}()

	<-ctx.Done()
	wg.Wait()
	log.Println("pitchsim stopped")
}

// placeRobot moves a robot to its configured setup pose, in the robot's own
// team frame so both teams read the same pose file.
func placeRobot(robot *sim.Robot, pose config.SetupPose) {
	rotation := pose.TurnedTowards.Sub(pose.Position).Angle()
	robot.MovePerTeam(
		geom.Vector3{X: pose.Position.X, Y: pose.Position.Y},
		geom.Vector3{Z: float64(rotation)},
		true, true,
	)
}

// runLoop advances the engine and publishes world state until the context
// is cancelled or the tick budget runs out.
func runLoop(ctx context.Context, eng engine.Engine, robots []*sim.Robot, ball engine.Body,
	webServer *monitor.WebServer, database *db.DB, runID string, friction float64) {

	observer := robots[0]

	var ticker *time.Ticker
	if *realtime {
		ticker = time.NewTicker(eng.StepLength())
		defer ticker.Stop()
	}

	kick := rand.New(rand.NewSource(*seed))

	for tick := int64(1); *ticks == 0 || tick <= *ticks; tick++ {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}

		if *kickEvery > 0 && tick%*kickEvery == 1 && ball != nil {
			// Kick in a random direction at 1.5 m/s.
			dir := geom.Angle((kick.Float64()*2 - 1) * math.Pi)
			v := geom.Vector2{X: 1.5}.Rotate(dir)
			ball.SetVelocity(geom.Vector3{X: v.X, Y: v.Y})
			log.Printf("tick %d: kicked ball towards %.2f rad", tick, dir)
		}

		eng.Step()
		sim.ApplyBallFriction(eng, ball, friction)

		snap := observer.WorldState()
		webServer.Publish(tick, observer.Name(), snap)

		if database != nil && tick%*recordEvery == 0 {
			if err := database.RecordSnapshot(runID, tick, observer.Name(), snap); err != nil {
				log.Printf("Failed to record snapshot at tick %d: %v", tick, err)
			}
		}
	}

	log.Printf("tick budget exhausted after %d steps", *ticks)
}
