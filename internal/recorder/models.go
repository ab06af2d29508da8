package recorder

import (
	"time"

	"gorm.io/datatypes"
)

// Run is one recorded simulation run.
type Run struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	Seed      int64 `gorm:"index"`
	Ticks     int
	ZoneX     int
	ZoneY     int
	ZoneType  string
	Outcome   string `gorm:"index"`
	Winner    string
	Kills     int
	Shots     int
	Hits      int
	Jams      int
	Retreats  int
	Weather   string
	// Factions holds the []game.FactionCount of the run.
	Factions datatypes.JSON `json:"factions"`
	Events   []Event        `gorm:"constraint:OnDelete:CASCADE"`
}

func (Run) TableName() string { return "runs" }

// Event is one SimLog entry of a run.
type Event struct {
	ID       uint `gorm:"primarykey"`
	RunID    uint `gorm:"index"`
	Tick     int  `gorm:"index"`
	Actor    string
	Faction  string
	Category string `gorm:"index:idx_event_kind"`
	Key      string `gorm:"index:idx_event_kind"`
	Value    string
	NumVal   float64
}

func (Event) TableName() string { return "events" }

// ZoneRecord is a generated zone with its summary statistics.
type ZoneRecord struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	Seed      int64 `gorm:"uniqueIndex:idx_zone_coord"`
	X         int   `gorm:"uniqueIndex:idx_zone_coord"`
	Y         int   `gorm:"uniqueIndex:idx_zone_coord"`
	Type      string
	Width     int
	Height    int
	Walkable  int
	Anomalies int
	Spawns    int
	// Stats holds structure, anomaly and spawn breakdowns.
	Stats datatypes.JSON `json:"stats"`
	ASCII string
}

func (ZoneRecord) TableName() string { return "zones" }

var models = []any{&Run{}, &Event{}, &ZoneRecord{}}
