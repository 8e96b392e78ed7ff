// Package sciencemesh persists the single ScienceMesh settings row and
// publishes the public feature settings of the site.
package sciencemesh

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sciencemesh/sciencemesh-admin/internal/db/models"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrProviderNil is returned when no configuration provider is given.
	ErrProviderNil = errors.New("configuration provider is nil")
	// ErrStorageWrite is the only error Replace reports.
	ErrStorageWrite = errors.New("storage failure")

	replaceTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "sciencemesh_settings_replace_total",
			Help: "Number of settings replace operations, differentiated by result.",
		},
		[]string{"result"},
	)
)

// Provider reports the feature settings published on the public endpoint.
// Implementations must return the current values on every call.
type Provider interface {
	Formats() []string
	SameTab() bool
	ShareAttributesVersion() string
}

// PublicSettings is the read only feature configuration exposed without authentication.
type PublicSettings struct {
	Formats                []string `json:"formats"`
	SameTab                bool     `json:"sameTab"`
	ShareAttributesVersion string   `json:"shareAttributesVersion"`
}

// Store reads and replaces the settings row.
type Store struct {
	db       *gorm.DB
	provider Provider
	log      zerolog.Logger
}

// New creates a Store on top of an already migrated database.
func New(db *gorm.DB, provider Provider, logger zerolog.Logger) (*Store, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if provider == nil {
		return nil, ErrProviderNil
	}

	return &Store{
		db:       db,
		provider: provider,
		log:      logger,
	}, nil
}

// Get returns the stored settings, or the default record if nothing was saved yet.
// If more than one row exists the one with the lowest id wins.
// Read errors are logged and reported as the default record.
func (s *Store) Get(ctx context.Context) models.SettingsRecord {
	var rec models.SettingsRecord

	// Find instead of First: an empty table is not an error
	res := s.db.WithContext(ctx).Order("id").Limit(1).Find(&rec)
	switch {
	case res.Error != nil:
		s.log.Error().Err(res.Error).Str("table", models.SettingsTable).Msg("sciencemesh settings could not be read")
		return models.DefaultSettingsRecord()
	case res.RowsAffected == 0:
		return models.DefaultSettingsRecord()
	default:
		return rec
	}
}

// Replace stores rec as the only settings row and returns it.
//
// The upsert of the singleton row and the removal of any other row run in one
// transaction, so readers never see an empty table and concurrent callers
// resolve to the last committed write. On failure nothing changes.
func (s *Store) Replace(ctx context.Context, rec models.SettingsRecord) (models.SettingsRecord, error) {
	rec.ID = models.SettingsID

	if err := rec.CheckCounters(); err != nil {
		replaceTotal.WithLabelValues(resultError).Inc()
		s.log.Warn().Err(err).Str("table", models.SettingsTable).Msg("sciencemesh settings rejected")

		return models.SettingsRecord{}, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&rec)
		if upsert.Error != nil {
			return upsert.Error
		}

		return tx.Where("id <> ?", models.SettingsID).Delete(&models.SettingsRecord{}).Error
	})
	if err != nil {
		replaceTotal.WithLabelValues(resultError).Inc()
		s.log.Error().Err(err).Str("table", models.SettingsTable).Msg("sciencemesh database could not be updated")

		return models.SettingsRecord{}, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	replaceTotal.WithLabelValues(resultOK).Inc()

	return rec, nil
}

// PublicSettings reads the feature settings from the provider at call time.
func (s *Store) PublicSettings() PublicSettings {
	return PublicSettings{
		Formats:                s.provider.Formats(),
		SameTab:                s.provider.SameTab(),
		ShareAttributesVersion: s.provider.ShareAttributesVersion(),
	}
}
