package db

import (
	"compress/gzip"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tailscale/tailsql/server/tailsql"
	_ "modernc.org/sqlite"
	"tailscale.com/tsweb"

	"github.com/banshee-data/pitchsim/internal/sim"
)

type DB struct {
	*sql.DB
}

func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id            TEXT PRIMARY KEY,
			engine_variant    TEXT,
			robots_per_team   BIGINT,
			started_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS snapshots (
			run_id            TEXT,
			tick              BIGINT,
			robot             TEXT,
			own_x             DOUBLE,
			own_y             DOUBLE,
			own_rot           DOUBLE,
			ball_seen         INTEGER,
			ball_x            DOUBLE,
			ball_y            DOUBLE,
			ball_z            DOUBLE,
			ball_vx           DOUBLE,
			ball_vy           DOUBLE,
			ball_vz           DOUBLE,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
		CREATE TABLE IF NOT EXISTS players (
			run_id            TEXT,
			tick              BIGINT,
			robot             TEXT,
			team              TEXT,
			number            BIGINT,
			x                 DOUBLE,
			y                 DOUBLE,
			rot               DOUBLE,
			upright           INTEGER,
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_run_tick ON snapshots (run_id, tick);
		CREATE INDEX IF NOT EXISTS idx_players_run_tick ON players (run_id, tick);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// CreateRun registers a new simulation run and returns its id.
func (db *DB) CreateRun(engineVariant string, robotsPerTeam int) (string, error) {
	runID := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO runs (run_id, engine_variant, robots_per_team) VALUES (?, ?, ?)`,
		runID, engineVariant, robotsPerTeam,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}
	return runID, nil
}

// RecordSnapshot stores one robot's view of the pitch at a tick. The ball
// rows are written only when the snapshot carries one; a missing ball is a
// legitimate state, not an error.
func (db *DB) RecordSnapshot(runID string, tick int64, robot string, snap sim.WorldSnapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ballSeen := len(snap.Balls) > 0
	var bx, by, bz, bvx, bvy, bvz float64
	if ballSeen {
		b := snap.Balls[0]
		bx, by, bz = b.Position.X, b.Position.Y, b.Position.Z
		bvx, bvy, bvz = b.Velocity.X, b.Velocity.Y, b.Velocity.Z
	}

	_, err = tx.Exec(
		`INSERT INTO snapshots (
			run_id, tick, robot, own_x, own_y, own_rot,
			ball_seen, ball_x, ball_y, ball_z, ball_vx, ball_vy, ball_vz
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, tick, robot,
		snap.OwnPose.Translation.X, snap.OwnPose.Translation.Y, float64(snap.OwnPose.Rotation),
		ballSeen, bx, by, bz, bvx, bvy, bvz,
	)
	if err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}

	record := func(team string, players []sim.PlayerSnapshot) error {
		for _, p := range players {
			_, err := tx.Exec(
				`INSERT INTO players (run_id, tick, robot, team, number, x, y, rot, upright)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				runID, tick, robot, team, p.Number,
				p.Pose.Translation.X, p.Pose.Translation.Y, float64(p.Pose.Rotation), p.Upright,
			)
			if err != nil {
				return fmt.Errorf("failed to record %s player %d: %w", team, p.Number, err)
			}
		}
		return nil
	}
	if err := record("own", snap.OwnTeamPlayers); err != nil {
		return err
	}
	if err := record("opponent", snap.OpponentTeamPlayers); err != nil {
		return err
	}

	return tx.Commit()
}

// Run is a row from the runs table. StartedAt is kept as the stored text to
// sidestep driver-specific timestamp parsing.
type Run struct {
	RunID         string `json:"run_id"`
	EngineVariant string `json:"engine_variant"`
	RobotsPerTeam int    `json:"robots_per_team"`
	StartedAt     string `json:"started_at"`
}

func (r *Run) String() string {
	return fmt.Sprintf("Run: %s, Variant: %s, RobotsPerTeam: %d, StartedAt: %s",
		r.RunID, r.EngineVariant, r.RobotsPerTeam, r.StartedAt)
}

func (db *DB) Runs() ([]Run, error) {
	rows, err := db.Query(`SELECT run_id, engine_variant, robots_per_team, started_at
		FROM runs ORDER BY started_at DESC LIMIT 100`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.EngineVariant, &r.RobotsPerTeam, &r.StartedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// TrajectoryPoint is a recorded ball position and speed at a tick, as seen
// by one robot.
type TrajectoryPoint struct {
	Tick  int64   `json:"tick"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Speed float64 `json:"speed"`
}

// BallTrajectory returns the ticks of a run where the given robot reported
// a ball, in tick order.
func (db *DB) BallTrajectory(runID, robot string) ([]TrajectoryPoint, error) {
	rows, err := db.Query(`SELECT tick, ball_x, ball_y, ball_z,
			sqrt(ball_vx*ball_vx + ball_vy*ball_vy + ball_vz*ball_vz)
		FROM snapshots
		WHERE run_id = ? AND robot = ? AND ball_seen = 1
		ORDER BY tick ASC`, runID, robot)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []TrajectoryPoint
	for rows.Next() {
		var p TrajectoryPoint
		if err := rows.Scan(&p.Tick, &p.X, &p.Y, &p.Z, &p.Speed); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

func (db *DB) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)
	// create a tailSQL instance and point it to our DB
	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		log.Fatalf("failed to create tailsql server: %v", err)
	}
	tsql.SetDB("sqlite://pitchsim.db", db.DB, &tailsql.DBOptions{
		Label: "Pitchsim DB",
	})

	// mount the tailSQL server on the debug /tailsql path
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.Handle("backup", "Create and download a backup of the database now", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		unixTime := time.Now().Unix()
		backupPath := fmt.Sprintf("backup-%d.db", unixTime)
		if _, err := db.DB.Exec("VACUUM INTO ?", backupPath); err != nil {
			http.Error(w, fmt.Sprintf("Failed to create backup: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", backupPath))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Encoding", "gzip")

		// Send the backup file to the client
		backupFile, err := os.Open(backupPath)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to open backup file: %v", err), http.StatusInternalServerError)
			return
		}

		// close the backup file after sending it
		// and remove it from the filesystem
		defer func() {
			backupFile.Close()
			if err := os.Remove(backupPath); err != nil {
				log.Printf("Failed to remove backup file: %v", err)
			}
		}()

		gzipWriter := gzip.NewWriter(w)
		defer gzipWriter.Close()

		// Copy the backup file content to the gzip writer
		if _, err := io.Copy(gzipWriter, backupFile); err != nil {
			http.Error(w, fmt.Sprintf("Failed to write backup file: %v", err), http.StatusInternalServerError)
			return
		}
	}))
}
