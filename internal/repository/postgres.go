package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GunarsK-portfolio/portfolio-common/database"
	"github.com/GunarsK-portfolio/profile-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type preferencesRow struct {
	UserID         string    `gorm:"column:user_id;primaryKey"`
	Theme          *string   `gorm:"column:theme"`
	DisplayName    *string   `gorm:"column:display_name;size:100"`
	DisplayPicture *string   `gorm:"column:display_picture;size:1024"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"`
}

var preferenceColumns = map[models.Field]string{
	models.FieldTheme:          "theme",
	models.FieldDisplayName:    "display_name",
	models.FieldDisplayPicture: "display_picture",
}

type postgresRepository struct {
	db    *gorm.DB
	table string
}

// OpenPostgres connects through the shared pooled connector and silences
// gorm's query log; misses are expected and reported as ErrNotFound.
func OpenPostgres(cfg database.PostgresConfig) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	db.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	return db, nil
}

func NewPostgres(db *gorm.DB, table string) Repository {
	return &postgresRepository{db: db, table: table}
}

// MigratePostgres creates the preferences table when it does not exist.
func MigratePostgres(ctx context.Context, db *gorm.DB, table string) error {
	if err := db.WithContext(ctx).Table(table).AutoMigrate(&preferencesRow{}); err != nil {
		return fmt.Errorf("failed to migrate table %s: %w", table, err)
	}
	return nil
}

func (r *postgresRepository) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	var row preferencesRow
	err := r.db.WithContext(ctx).Table(r.table).Where("user_id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences for %s: %w", userID, err)
	}
	return row.toModel(), nil
}

// UpsertPreferences issues a single INSERT ... ON CONFLICT DO UPDATE that
// assigns only the patched columns, so concurrent writers to different
// fields never overwrite each other.
func (r *postgresRepository) UpsertPreferences(ctx context.Context, userID string, patch models.PreferencesPatch) (*models.UserPreferences, error) {
	now := time.Now().UTC()
	row := preferencesRow{UserID: userID, UpdatedAt: now}
	assignments := map[string]interface{}{"updated_at": now}

	for _, f := range patch.SetFields() {
		value := patch.Set[f]
		assignments[preferenceColumns[f]] = value
		row.set(f, &value)
	}
	for _, f := range patch.Clear {
		assignments[preferenceColumns[f]] = nil
	}

	err := r.db.WithContext(ctx).
		Table(r.table).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(assignments),
			},
			clause.Returning{},
		).
		Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert preferences for %s: %w", userID, err)
	}
	return row.toModel(), nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (row *preferencesRow) set(f models.Field, v *string) {
	switch f {
	case models.FieldTheme:
		row.Theme = v
	case models.FieldDisplayName:
		row.DisplayName = v
	case models.FieldDisplayPicture:
		row.DisplayPicture = v
	}
}

func (row *preferencesRow) toModel() *models.UserPreferences {
	return &models.UserPreferences{
		UserID:         row.UserID,
		Theme:          row.Theme,
		DisplayName:    row.DisplayName,
		DisplayPicture: row.DisplayPicture,
	}
}
