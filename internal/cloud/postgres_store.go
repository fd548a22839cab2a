package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/omarhani/rafiq/internal/logger"
	"github.com/omarhani/rafiq/internal/models"
)

// userPlanRow is the snapshot-schema layout: one jsonb row per identity.
type userPlanRow struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	PlanData     []byte    `gorm:"column:plan_data;type:jsonb"`
	ProgressData []byte    `gorm:"column:progress_data;type:jsonb"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userPlanRow) TableName() string { return "user_plans" }

// PostgresStore keeps each identity's snapshot in a single user_plans row.
type PostgresStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresStore(dsn string, baseLog *logger.Logger) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	if err := db.AutoMigrate(&userPlanRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate user_plans: %w", err)
	}
	return &PostgresStore{db: db, log: baseLog.With("store", "postgres")}, nil
}

// Upsert replaces the identity's row. New writes always win; there is no merge
// and no version vector.
func (p *PostgresStore) Upsert(ctx context.Context, rec Record) error {
	planData, err := json.Marshal(rec.Plan)
	if err != nil {
		return fmt.Errorf("failed to serialize plan: %w", err)
	}
	progressData, err := json.Marshal(rec.Progress)
	if err != nil {
		return fmt.Errorf("failed to serialize progress: %w", err)
	}

	row := userPlanRow{
		UserID:       rec.UserID,
		PlanData:     planData,
		ProgressData: progressData,
		UpdatedAt:    time.Now().UTC(),
	}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"plan_data", "progress_data", "updated_at"}),
		}).
		Create(&row).Error
}

func (p *PostgresStore) Select(ctx context.Context, userID string) (Record, bool, error) {
	var row userPlanRow
	err := p.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}

	rec := Record{UserID: row.UserID, UpdatedAt: row.UpdatedAt}
	if len(row.PlanData) > 0 {
		if err := json.Unmarshal(row.PlanData, &rec.Plan); err != nil {
			return Record{}, false, fmt.Errorf("malformed plan_data for %s: %w", userID, err)
		}
	}
	if len(row.ProgressData) > 0 {
		if err := json.Unmarshal(row.ProgressData, &rec.Progress); err != nil {
			return Record{}, false, fmt.Errorf("malformed progress_data for %s: %w", userID, err)
		}
	}
	if rec.Progress.CompletedMissions == nil {
		rec.Progress.CompletedMissions = make(map[string]bool)
	}
	if rec.Plan == nil {
		rec.Plan = []models.Subject{}
	}
	return rec, true, nil
}

func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
