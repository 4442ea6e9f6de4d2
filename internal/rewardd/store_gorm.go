package rewardd

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type anglerRow struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:64"`
	Points    int
	UpdatedAt time.Time
}

func (anglerRow) TableName() string { return "anglers" }

type quotaRow struct {
	ID     uint   `gorm:"primaryKey"`
	Angler string `gorm:"uniqueIndex:idx_quota_angler_day;size:64"`
	Day    string `gorm:"uniqueIndex:idx_quota_angler_day;size:10"`
	Used   int
}

func (quotaRow) TableName() string { return "autofish_quota" }

type catchRow struct {
	ID         uint   `gorm:"primaryKey"`
	Angler     string `gorm:"index;size:64"`
	Fish       string `gorm:"size:64"`
	Rarity     string `gorm:"size:16"`
	Points     int
	ReactionMs int
	Auto       bool
	CaughtAt   time.Time `gorm:"index"`
}

func (catchRow) TableName() string { return "catches" }

// GormStore persists angler standing in Postgres.
type GormStore struct {
	db *gorm.DB
}

// OpenPostgres connects and migrates the reward schema.
func OpenPostgres(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an existing connection and migrates the reward
// schema on it.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&anglerRow{}, &quotaRow{}, &catchRow{}); err != nil {
		return nil, fmt.Errorf("migrate reward schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) AddPoints(angler string, delta int) (int, error) {
	var row anglerRow
	err := g.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{
				"points":     gorm.Expr("anglers.points + ?", delta),
				"updated_at": time.Now(),
			}),
		}).Create(&anglerRow{Name: angler, Points: delta, UpdatedAt: time.Now()}).Error
		if err != nil {
			return err
		}
		return tx.Where("name = ?", angler).First(&row).Error
	})
	if err != nil {
		return 0, err
	}
	return row.Points, nil
}

func (g *GormStore) Points(angler string) (int, error) {
	var row anglerRow
	if err := g.db.Where("name = ?", angler).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Points, nil
}

func (g *GormStore) AutofishUsed(angler, day string) (int, error) {
	var row quotaRow
	err := g.db.Where("angler = ? AND day = ?", angler, day).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Used, nil
}

func (g *GormStore) BumpAutofish(angler, day string) (int, error) {
	var row quotaRow
	err := g.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "angler"}, {Name: "day"}},
			DoUpdates: clause.Assignments(map[string]any{
				"used": gorm.Expr("autofish_quota.used + 1"),
			}),
		}).Create(&quotaRow{Angler: angler, Day: day, Used: 1}).Error
		if err != nil {
			return err
		}
		return tx.Where("angler = ? AND day = ?", angler, day).First(&row).Error
	})
	if err != nil {
		return 0, err
	}
	return row.Used, nil
}

func (g *GormStore) RecordCatch(rec CatchRecord) error {
	row := catchRow{
		Angler:     rec.Angler,
		Fish:       rec.Fish,
		Rarity:     rec.Rarity,
		Points:     rec.Points,
		ReactionMs: rec.ReactionMs,
		Auto:       rec.Auto,
		CaughtAt:   rec.CaughtAt,
	}
	return g.db.Create(&row).Error
}

func (g *GormStore) RecentCatches(angler string, n int) ([]CatchRecord, error) {
	var rows []catchRow
	err := g.db.Where("angler = ?", angler).
		Order("caught_at DESC, id DESC").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]CatchRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, CatchRecord{
			Angler:     r.Angler,
			Fish:       r.Fish,
			Rarity:     r.Rarity,
			Points:     r.Points,
			ReactionMs: r.ReactionMs,
			Auto:       r.Auto,
			CaughtAt:   r.CaughtAt,
		})
	}
	return out, nil
}
