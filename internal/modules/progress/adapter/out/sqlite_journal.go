package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/addielponce/anki-progress-circle/internal/modules/progress/domain"
	progressout "github.com/addielponce/anki-progress-circle/internal/modules/progress/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteJournal appends every observation. Epoch numbers restart with the
// process, so rows are scoped by the run that produced them.
type SQLiteJournal struct {
	db    *sql.DB
	runID string
}

func NewSQLiteJournal(dbPath, runID string) (progressout.Journal, error) {
	if runID == "" {
		return nil, fmt.Errorf("journal run id is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	journal := &SQLiteJournal{db: db, runID: runID}
	if err := journal.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return journal, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

func (j *SQLiteJournal) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS observations (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  run_id TEXT NOT NULL,
  group_id TEXT NOT NULL,
  epoch INTEGER NOT NULL,
  new_count INTEGER NOT NULL,
  learning_count INTEGER NOT NULL,
  review_count INTEGER NOT NULL,
  remaining INTEGER NOT NULL,
  done INTEGER NOT NULL,
  total INTEGER NOT NULL,
  percent REAL NOT NULL,
  started INTEGER NOT NULL,
  observed_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS observations_epoch ON observations (run_id, group_id, epoch);
`
	if _, err := j.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create observations table: %w", err)
	}
	return nil
}

func (j *SQLiteJournal) Record(ctx context.Context, observation domain.Observation) error {
	const stmt = `
INSERT INTO observations (id, run_id, group_id, epoch, new_count, learning_count, review_count, remaining, done, total, percent, started, observed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	s := observation.Snapshot
	started := 0
	if s.Started {
		started = 1
	}
	_, err := j.db.ExecContext(ctx, stmt,
		observation.ID,
		j.runID,
		s.GroupID,
		s.Epoch,
		observation.Counts.New,
		observation.Counts.Learning,
		observation.Counts.Review,
		s.Remaining,
		s.Done,
		s.Total,
		s.Percent,
		started,
		observation.At,
	)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

func (j *SQLiteJournal) Epochs(ctx context.Context, groupID string, limit int) ([]domain.EpochSummary, error) {
	const query = `
SELECT o.group_id, o.epoch, MAX(o.total), MAX(o.done), MIN(o.observed_at), MAX(o.observed_at), COUNT(*),
  (SELECT l.percent FROM observations l
    WHERE l.run_id = o.run_id AND l.group_id = o.group_id AND l.epoch = o.epoch
    ORDER BY l.seq DESC LIMIT 1)
FROM observations o
WHERE (? = '' OR o.group_id = ?)
GROUP BY o.run_id, o.group_id, o.epoch
ORDER BY MAX(o.seq) DESC
LIMIT ?;
`
	rows, err := j.db.QueryContext(ctx, query, groupID, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("query epochs: %w", err)
	}
	defer rows.Close()

	out := []domain.EpochSummary{}
	for rows.Next() {
		e := domain.EpochSummary{}
		if err := rows.Scan(&e.GroupID, &e.Epoch, &e.Goal, &e.BestDone, &e.FirstSeen, &e.LastSeen, &e.Samples, &e.LastPercent); err != nil {
			return nil, fmt.Errorf("scan epoch: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate epochs: %w", err)
	}
	return out, nil
}
