package cloud

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/omarhani/rafiq/internal/logger"
	"github.com/omarhani/rafiq/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the normalized-schema backend: per-entity rows with foreign
// keys instead of one jsonb blob. Mission completion lives on the mission row
// itself, with progress as the source of truth.
type SQLiteStore struct {
	path string
	db   *sql.DB
	log  *logger.Logger
}

func NewSQLiteStore(path string, baseLog *logger.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &SQLiteStore{path: path, db: db, log: baseLog.With("store", "sqlite")}
	if err := s.bootstrap(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) bootstrap() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS subjects (
			user_id TEXT NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			icon TEXT NOT NULL DEFAULT '',
			theme_primary TEXT NOT NULL DEFAULT '',
			theme_gradient TEXT NOT NULL DEFAULT '',
			theme_scientist TEXT NOT NULL DEFAULT '',
			lesson_days TEXT NOT NULL DEFAULT '[]',
			schedule_image TEXT NOT NULL DEFAULT '',
			containment TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS units (
			user_id TEXT NOT NULL,
			subject_id TEXT NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (user_id, subject_id, name),
			FOREIGN KEY (user_id, subject_id) REFERENCES subjects(user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS missions (
			user_id TEXT NOT NULL,
			id TEXT NOT NULL,
			subject_id TEXT NOT NULL,
			unit_name TEXT,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			duration TEXT NOT NULL DEFAULT '',
			method TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL DEFAULT '',
			priority INTEGER NOT NULL DEFAULT 0,
			deadline TEXT NOT NULL DEFAULT '',
			link_notebook TEXT NOT NULL DEFAULT '',
			link_questions TEXT NOT NULL DEFAULT '',
			progress REAL NOT NULL DEFAULT 0,
			is_completed INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL,
			PRIMARY KEY (user_id, id),
			FOREIGN KEY (user_id, subject_id) REFERENCES subjects(user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS wishes (
			user_id TEXT NOT NULL,
			id TEXT NOT NULL,
			text TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			week_anchor TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS venting_logs (
			user_id TEXT NOT NULL,
			id TEXT NOT NULL,
			content TEXT NOT NULL,
			mood TEXT NOT NULL DEFAULT '',
			feedback TEXT NOT NULL DEFAULT '',
			sentiment_score REAL NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS timeline_events (
			user_id TEXT NOT NULL,
			id TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			created_at TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}
	return nil
}

// Upsert replaces every row belonging to the identity inside one transaction,
// which keeps the operation an idempotent replace-by-key.
func (s *SQLiteStore) Upsert(ctx context.Context, rec Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"subjects", "units", "missions", "wishes", "venting_logs", "timeline_events"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE user_id = ?", table), rec.UserID); err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO users (user_id, name, updated_at) VALUES (?, ?, ?)",
		rec.UserID, rec.Progress.UserName, now,
	); err != nil {
		return err
	}

	for si, subj := range rec.Plan {
		lessonDays, err := json.Marshal(subj.LessonDays)
		if err != nil {
			return fmt.Errorf("failed to marshal lesson days: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO subjects (
				user_id, id, name, icon, theme_primary, theme_gradient, theme_scientist,
				lesson_days, schedule_image, containment, position
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.UserID, subj.ID, subj.Name, subj.Icon,
			subj.Theme.Primary, subj.Theme.Gradient, subj.Theme.Scientist,
			string(lessonDays), subj.ScheduleImage, string(subj.Containment), si,
		); err != nil {
			return err
		}

		switch subj.Containment {
		case models.ContainmentFlat:
			if err := insertMissions(ctx, tx, rec, subj.ID, nil, subj.Missions); err != nil {
				return err
			}
		case models.ContainmentUnitized:
			for ui, unit := range subj.Units {
				if err := insertGroup(ctx, tx, rec, subj.ID, unit.Name, ui, unit.Missions); err != nil {
					return err
				}
			}
		case models.ContainmentSectioned:
			for ui, sec := range subj.Sections {
				if err := insertGroup(ctx, tx, rec, subj.ID, sec.Name, ui, sec.Missions); err != nil {
					return err
				}
			}
		}
	}

	for i, w := range rec.Progress.Wishes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO wishes (user_id, id, text, completed, created_at, week_anchor, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.UserID, w.ID, w.Text, w.Completed, w.CreatedAt.UTC().Format(time.RFC3339Nano), w.WeekAnchor, i,
		); err != nil {
			return err
		}
	}
	for i, v := range rec.Progress.VentLogs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO venting_logs (user_id, id, content, mood, feedback, sentiment_score, created_at, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.UserID, v.ID, v.Content, v.Mood, v.Feedback, v.SentimentScore, v.CreatedAt.UTC().Format(time.RFC3339Nano), i,
		); err != nil {
			return err
		}
	}
	for i, e := range rec.Progress.Timeline {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO timeline_events (user_id, id, type, title, created_at, position)
			VALUES (?, ?, ?, ?, ?, ?)`,
			rec.UserID, e.ID, string(e.Type), e.Title, e.CreatedAt.UTC().Format(time.RFC3339Nano), i,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertGroup(ctx context.Context, tx *sql.Tx, rec Record, subjectID, name string, position int, missions []models.Mission) error {
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO units (user_id, subject_id, name, position) VALUES (?, ?, ?, ?)",
		rec.UserID, subjectID, name, position,
	); err != nil {
		return err
	}
	return insertMissions(ctx, tx, rec, subjectID, &name, missions)
}

func insertMissions(ctx context.Context, tx *sql.Tx, rec Record, subjectID string, unitName *string, missions []models.Mission) error {
	for mi, m := range missions {
		completed := rec.Progress.CompletedMissions[m.ID]
		progress := effectiveProgress(m.Progress, completed)
		var notebook, questions string
		if m.Links != nil {
			notebook = m.Links.Notebook
			questions = m.Links.Questions
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO missions (
				user_id, id, subject_id, unit_name, title, content, duration, method, outcome,
				priority, deadline, link_notebook, link_questions, progress, is_completed, position
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.UserID, m.ID, subjectID, unitName, m.Title, m.Content, m.Duration, m.Method, m.Outcome,
			m.Priority, m.Deadline, notebook, questions, progress, completed, mi,
		); err != nil {
			return err
		}
	}
	return nil
}

// effectiveProgress keeps progress and the completed flag in lockstep:
// progress is the source of truth, completed means progress == 100.
func effectiveProgress(progress float64, completed bool) float64 {
	if completed {
		return 100
	}
	if progress == 100 {
		return 0
	}
	return progress
}

func (s *SQLiteStore) Select(ctx context.Context, userID string) (Record, bool, error) {
	var name, updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT name, updated_at FROM users WHERE user_id = ?", userID,
	).Scan(&name, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}

	rec := Record{
		UserID:   userID,
		Progress: Progress{UserName: name, CompletedMissions: make(map[string]bool)},
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		rec.UpdatedAt = t
	}

	subjects, err := s.selectSubjects(ctx, userID, rec.Progress.CompletedMissions)
	if err != nil {
		return Record{}, false, err
	}
	rec.Plan = subjects

	if rec.Progress.Wishes, err = s.selectWishes(ctx, userID); err != nil {
		return Record{}, false, err
	}
	if rec.Progress.VentLogs, err = s.selectVents(ctx, userID); err != nil {
		return Record{}, false, err
	}
	if rec.Progress.Timeline, err = s.selectTimeline(ctx, userID); err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func (s *SQLiteStore) selectSubjects(ctx context.Context, userID string, completed map[string]bool) ([]models.Subject, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, icon, theme_primary, theme_gradient, theme_scientist,
		       lesson_days, schedule_image, containment
		FROM subjects WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		var subj models.Subject
		var lessonDays, containment string
		if err := rows.Scan(
			&subj.ID, &subj.Name, &subj.Icon,
			&subj.Theme.Primary, &subj.Theme.Gradient, &subj.Theme.Scientist,
			&lessonDays, &subj.ScheduleImage, &containment,
		); err != nil {
			return nil, err
		}
		subj.Containment = models.ContainmentKind(containment)
		if lessonDays != "" {
			if err := json.Unmarshal([]byte(lessonDays), &subj.LessonDays); err != nil {
				return nil, fmt.Errorf("malformed lesson_days for %s: %w", subj.ID, err)
			}
		}
		subjects = append(subjects, subj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range subjects {
		if err := s.fillMissions(ctx, userID, &subjects[i], completed); err != nil {
			return nil, err
		}
	}
	return subjects, nil
}

func (s *SQLiteStore) fillMissions(ctx context.Context, userID string, subj *models.Subject, completed map[string]bool) error {
	groupNames := []string{}
	if subj.Containment != models.ContainmentFlat {
		rows, err := s.db.QueryContext(ctx,
			"SELECT name FROM units WHERE user_id = ? AND subject_id = ? ORDER BY position",
			userID, subj.ID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				rows.Close()
				return err
			}
			groupNames = append(groupNames, name)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
	}

	byGroup := map[string][]models.Mission{}
	var flat []models.Mission

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, unit_name, title, content, duration, method, outcome, priority,
		       deadline, link_notebook, link_questions, progress, is_completed
		FROM missions WHERE user_id = ? AND subject_id = ? ORDER BY position`,
		userID, subj.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Mission
		var unitName sql.NullString
		var notebook, questions string
		if err := rows.Scan(
			&m.ID, &unitName, &m.Title, &m.Content, &m.Duration, &m.Method, &m.Outcome,
			&m.Priority, &m.Deadline, &notebook, &questions, &m.Progress, &m.Completed,
		); err != nil {
			return err
		}
		if notebook != "" || questions != "" {
			m.Links = &models.MissionLinks{Notebook: notebook, Questions: questions}
		}
		if m.Completed {
			completed[m.ID] = true
		}
		if unitName.Valid {
			byGroup[unitName.String] = append(byGroup[unitName.String], m)
		} else {
			flat = append(flat, m)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	switch subj.Containment {
	case models.ContainmentFlat:
		subj.Missions = flat
	case models.ContainmentUnitized:
		for _, name := range groupNames {
			subj.Units = append(subj.Units, models.Unit{Name: name, Missions: byGroup[name]})
		}
	case models.ContainmentSectioned:
		for _, name := range groupNames {
			subj.Sections = append(subj.Sections, models.Section{Name: name, Missions: byGroup[name]})
		}
	}
	return nil
}

func (s *SQLiteStore) selectWishes(ctx context.Context, userID string) ([]models.Wish, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, completed, created_at, week_anchor
		FROM wishes WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wishes []models.Wish
	for rows.Next() {
		var w models.Wish
		var createdAt string
		if err := rows.Scan(&w.ID, &w.Text, &w.Completed, &createdAt, &w.WeekAnchor); err != nil {
			return nil, err
		}
		w.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		wishes = append(wishes, w)
	}
	return wishes, rows.Err()
}

func (s *SQLiteStore) selectVents(ctx context.Context, userID string) ([]models.VentLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, mood, feedback, sentiment_score, created_at
		FROM venting_logs WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vents []models.VentLog
	for rows.Next() {
		var v models.VentLog
		var createdAt string
		if err := rows.Scan(&v.ID, &v.Content, &v.Mood, &v.Feedback, &v.SentimentScore, &createdAt); err != nil {
			return nil, err
		}
		v.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		vents = append(vents, v)
	}
	return vents, rows.Err()
}

func (s *SQLiteStore) selectTimeline(ctx context.Context, userID string) ([]models.TimelineEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, title, created_at
		FROM timeline_events WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.TimelineEvent
	for rows.Next() {
		var e models.TimelineEvent
		var kind, createdAt string
		if err := rows.Scan(&e.ID, &kind, &e.Title, &createdAt); err != nil {
			return nil, err
		}
		e.Type = models.TimelineEventType(kind)
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		events = append(events, e)
	}
	return events, rows.Err()
}

// ToggleMission flips a mission's completion in place, keeping progress and
// the flag consistent: completing sets progress to 100; uncompleting resets a
// full progress to 0 but preserves a partial one.
func (s *SQLiteStore) ToggleMission(ctx context.Context, userID, missionID string) (bool, error) {
	var progress float64
	var completed bool
	err := s.db.QueryRowContext(ctx,
		"SELECT progress, is_completed FROM missions WHERE user_id = ? AND id = ?",
		userID, missionID,
	).Scan(&progress, &completed)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, fmt.Errorf("mission %s not found", missionID)
		}
		return false, err
	}

	if !completed {
		progress = 100
		completed = true
	} else {
		completed = false
		if progress == 100 {
			progress = 0
		}
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE missions SET progress = ?, is_completed = ? WHERE user_id = ? AND id = ?",
		progress, completed, userID, missionID,
	)
	return completed, err
}

// MissionProgress reports a mission's stored progress and completion flag.
func (s *SQLiteStore) MissionProgress(ctx context.Context, userID, missionID string) (float64, bool, error) {
	var progress float64
	var completed bool
	err := s.db.QueryRowContext(ctx,
		"SELECT progress, is_completed FROM missions WHERE user_id = ? AND id = ?",
		userID, missionID,
	).Scan(&progress, &completed)
	if err != nil {
		return 0, false, err
	}
	return progress, completed, nil
}

// SetMissionProgress stores a partial progress value, deriving the completion
// flag from progress == 100.
func (s *SQLiteStore) SetMissionProgress(ctx context.Context, userID, missionID string, progress float64) error {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE missions SET progress = ?, is_completed = ? WHERE user_id = ? AND id = ?",
		progress, progress == 100, userID, missionID,
	)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
