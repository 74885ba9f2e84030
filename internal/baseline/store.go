package baseline

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"oralscan/internal/config"
	"oralscan/internal/semantics"
)

// Store manages baseline persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the baseline database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.Paths.BaselineDB)
}

// OpenPath connects to a baseline database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// NewSession records a baseline recording pass for one user and zone.
func (s *Store) NewSession(ctx context.Context, userID string, zone Zone) (*Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if !zone.Valid() {
		return nil, fmt.Errorf("zone %d outside valid range 1-%d", int(zone), ZoneCount)
	}

	session := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Zone:      zone,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO baseline_sessions (id, user_id, zone_id, created_at) VALUES (?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		int(session.Zone),
		session.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

// AppendFrames stores reference frames under a session. Frames are only ever
// appended; existing rows are never touched.
func (s *Store) AppendFrames(ctx context.Context, session *Session, frames []Frame) ([]Frame, error) {
	if session == nil {
		return nil, fmt.Errorf("session is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stored := make([]Frame, 0, len(frames))
	for _, frame := range frames {
		issuesJSON, err := json.Marshal(frame.Tags.Issues)
		if err != nil {
			return nil, fmt.Errorf("marshal issues: %w", err)
		}

		capturedAt := frame.CapturedAt
		if capturedAt.IsZero() {
			capturedAt = time.Now().UTC()
		}

		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO baseline_frames (
                session_id, user_id, zone_id, frame_index, timestamp_seconds,
                image_path, side, tooth_type, region, issues_json, confidence, captured_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID,
			session.UserID,
			int(session.Zone),
			frame.FrameIndex,
			frame.Timestamp,
			frame.ImagePath,
			string(frame.Tags.Side),
			string(frame.Tags.ToothType),
			string(frame.Tags.Region),
			string(issuesJSON),
			frame.Tags.Confidence,
			capturedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return nil, fmt.Errorf("insert frame: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}

		frame.ID = id
		frame.SessionID = session.ID
		frame.UserID = session.UserID
		frame.Zone = session.Zone
		frame.CapturedAt = capturedAt
		stored = append(stored, frame)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit frames: %w", err)
	}
	return stored, nil
}

const frameColumns = `id, session_id, user_id, zone_id, frame_index,
    timestamp_seconds, image_path, side, tooth_type, region, issues_json,
    confidence, captured_at`

// LoadSnapshot reads a user's entire baseline into memory, grouped by zone
// with each zone's frames ordered oldest capture first.
func (s *Store) LoadSnapshot(ctx context.Context, userID string) (*Snapshot, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+frameColumns+` FROM baseline_frames WHERE user_id = ? ORDER BY captured_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	snapshot := &Snapshot{UserID: userID, frames: make(map[Zone][]Frame)}
	for rows.Next() {
		frame, err := scanFrame(rows)
		if err != nil {
			return nil, err
		}
		snapshot.frames[frame.Zone] = append(snapshot.frames[frame.Zone], frame)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate frames: %w", err)
	}
	return snapshot, nil
}

// Sessions lists a user's baseline sessions, newest first.
func (s *Store) Sessions(ctx context.Context, userID string) ([]Session, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, user_id, zone_id, created_at FROM baseline_sessions
         WHERE user_id = ? ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			session   Session
			zone      int
			createdAt string
		)
		if err := rows.Scan(&session.ID, &session.UserID, &zone, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.Zone = Zone(zone)
		session.CreatedAt = parseTimestamp(createdAt)
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// Users lists every user id with stored baseline frames.
func (s *Store) Users(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM baseline_frames`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	sort.Strings(users)
	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFrame(row rowScanner) (Frame, error) {
	var (
		frame      Frame
		zone       int
		side       string
		toothType  string
		region     string
		issuesJSON string
		capturedAt string
	)
	err := row.Scan(
		&frame.ID,
		&frame.SessionID,
		&frame.UserID,
		&zone,
		&frame.FrameIndex,
		&frame.Timestamp,
		&frame.ImagePath,
		&side,
		&toothType,
		&region,
		&issuesJSON,
		&frame.Tags.Confidence,
		&capturedAt,
	)
	if err != nil {
		return Frame{}, fmt.Errorf("scan frame: %w", err)
	}

	frame.Zone = Zone(zone)
	frame.Tags.Side, _ = semantics.ParseSide(side)
	frame.Tags.ToothType, _ = semantics.ParseToothType(toothType)
	frame.Tags.Region, _ = semantics.ParseRegion(region)
	frame.CapturedAt = parseTimestamp(capturedAt)

	var issues []semantics.Issue
	if err := json.Unmarshal([]byte(issuesJSON), &issues); err == nil {
		frame.Tags.Issues = issues
	}
	return frame, nil
}

func parseTimestamp(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
