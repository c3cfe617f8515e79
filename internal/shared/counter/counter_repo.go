package counter

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Counter backs sequential human-readable codes such as EMP-000042.
type Counter struct {
	Name      string `gorm:"type:varchar(50);primaryKey"`
	LastValue int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetNextValue(ctx context.Context, counterName string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetNextValue(ctx context.Context, counterName string) (int64, error) {
	var nextValue int64

	// atomic upsert keeps concurrent creates from sharing a value
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (name, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (name) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterName).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
