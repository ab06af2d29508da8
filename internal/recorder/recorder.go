// Package recorder persists simulation runs and generated zones to SQLite.
package recorder

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Garsondee/Zone-Sense/internal/game"
	"github.com/Garsondee/Zone-Sense/internal/world"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrClosed is returned by every call after Close.
var ErrClosed = errors.New("recorder closed")

// Recorder wraps a gorm handle on a SQLite file.
type Recorder struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open opens or creates the database at path and migrates the schema. An
// empty path opens a private in-memory database.
func Open(path string, log zerolog.Logger) (*Recorder, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        2000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	// one connection keeps an in-memory database alive across calls
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}
	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	if path != "" {
		log.Info().Str("path", path).Msg("using SQLite recorder")
	}
	return &Recorder{db: db, log: log}, nil
}

// Close releases the underlying connection.
func (r *Recorder) Close() error {
	if r.db == nil {
		return ErrClosed
	}
	sqlDB, err := r.db.DB()
	r.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveRun stores a run report with its event log and returns the run ID.
func (r *Recorder) SaveRun(rep game.RunReport, events []game.SimLogEntry) (uint, error) {
	if r.db == nil {
		return 0, ErrClosed
	}
	factions, err := json.Marshal(rep.Factions)
	if err != nil {
		return 0, fmt.Errorf("marshal factions: %w", err)
	}
	run := Run{
		Seed:     rep.Seed,
		Ticks:    rep.Ticks,
		ZoneX:    rep.ZoneX,
		ZoneY:    rep.ZoneY,
		ZoneType: rep.ZoneType,
		Outcome:  rep.Outcome.String(),
		Winner:   rep.Winner,
		Kills:    rep.Kills,
		Shots:    rep.Shots,
		Hits:     rep.Hits,
		Jams:     rep.Jams,
		Retreats: rep.Retreats,
		Weather:  rep.FinalWeather,
		Factions: factions,
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Events").Create(&run).Error; err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		rows := make([]Event, len(events))
		for i, e := range events {
			rows[i] = Event{
				RunID:    run.ID,
				Tick:     e.Tick,
				Actor:    e.Actor,
				Faction:  e.Faction,
				Category: e.Category,
				Key:      e.Key,
				Value:    e.Value,
				NumVal:   e.NumVal,
			}
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return 0, fmt.Errorf("save run seed=%d: %w", rep.Seed, err)
	}
	r.log.Debug().Uint("run", run.ID).Int("events", len(events)).Msg("run recorded")
	return run.ID, nil
}

// ZoneStats is the JSON breakdown stored with each zone.
type ZoneStats struct {
	Structures  map[string]int `json:"structures"`
	Anomalies   map[string]int `json:"anomalies"`
	Spawns      map[string]int `json:"spawns"`
	Connections map[string]int `json:"connections"`
}

// CollectZoneStats summarises z.
func CollectZoneStats(z *world.Zone) ZoneStats {
	st := ZoneStats{
		Structures:  map[string]int{},
		Anomalies:   map[string]int{},
		Spawns:      map[string]int{},
		Connections: map[string]int{},
	}
	for _, s := range z.Structures {
		st.Structures[s.Kind]++
	}
	for _, a := range z.Anomalies {
		st.Anomalies[a.Type.String()]++
	}
	for _, s := range z.Spawns {
		st.Spawns[s.Template]++
	}
	for d, p := range z.Connections {
		// edge offset along the shared border
		if d == world.North || d == world.South {
			st.Connections[d.String()] = p.X
		} else {
			st.Connections[d.String()] = p.Y
		}
	}
	return st
}

// SaveZone stores z generated from seed. Saving the same seed and
// coordinate again replaces the earlier record.
func (r *Recorder) SaveZone(seed int64, z *world.Zone) error {
	if r.db == nil {
		return ErrClosed
	}
	stats, err := json.Marshal(CollectZoneStats(z))
	if err != nil {
		return fmt.Errorf("marshal zone stats: %w", err)
	}
	rec := ZoneRecord{
		Seed:      seed,
		X:         z.Coord.X,
		Y:         z.Coord.Y,
		Type:      z.Type.String(),
		Width:     z.Width,
		Height:    z.Height,
		Walkable:  z.WalkableCount(),
		Anomalies: len(z.Anomalies),
		Spawns:    len(z.Spawns),
		Stats:     stats,
		ASCII:     z.ASCII(nil),
	}
	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "seed"}, {Name: "x"}, {Name: "y"}},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save zone (%d,%d): %w", z.Coord.X, z.Coord.Y, err)
	}
	return nil
}

// Runs returns every recorded run, oldest first, without events.
func (r *Recorder) Runs() ([]Run, error) {
	if r.db == nil {
		return nil, ErrClosed
	}
	var runs []Run
	if err := r.db.Order("id").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Events returns the events of one run in tick order, optionally limited
// to a category.
func (r *Recorder) Events(runID uint, category string) ([]Event, error) {
	if r.db == nil {
		return nil, ErrClosed
	}
	q := r.db.Where("run_id = ?", runID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var events []Event
	if err := q.Order("tick, id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events of run %d: %w", runID, err)
	}
	return events, nil
}

// Zones returns recorded zones for seed.
func (r *Recorder) Zones(seed int64) ([]ZoneRecord, error) {
	if r.db == nil {
		return nil, ErrClosed
	}
	var zones []ZoneRecord
	if err := r.db.Where("seed = ?", seed).Order("y, x").Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	return zones, nil
}

// DecodeStats unmarshals the stored stats of a zone record.
func (z ZoneRecord) DecodeStats() (ZoneStats, error) {
	var st ZoneStats
	err := json.Unmarshal(z.Stats, &st)
	return st, err
}

// DecodeFactions unmarshals the stored faction counts of a run.
func (r Run) DecodeFactions() ([]game.FactionCount, error) {
	var fc []game.FactionCount
	err := json.Unmarshal(r.Factions, &fc)
	return fc, err
}
