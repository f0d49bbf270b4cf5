package storage

import (
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/lcalzada-xor/hsmap/internal/core/domain"
)

// SQLiteAdapter implements ports.NetworkStore using GORM and SQLite.
type SQLiteAdapter struct {
	db        *gorm.DB
	sessionID string
}

// NetworkModel is the GORM model for discovered networks. SSID octets are
// stored raw (hex) together with the extended capabilities so that loading a
// row reruns the same deferred text decode as a live scan.
type NetworkModel struct {
	Key       string `gorm:"primaryKey"`
	SessionID string `gorm:"index"`

	SSIDHex *string
	BSSID   string `gorm:"index"`
	HESSID  string

	StationCount       int
	ChannelUtilization int
	Capacity           int

	Ant        *int
	Internet   bool
	VenueGroup *int
	VenueType  *int

	HSRelease    *int
	AnqpDomainID int
	AnqpOICount  int
	RoamingOIs   *string // JSON-encoded []uint64, nil if element absent

	ExtendedCaps *string // hex-encoded 64-bit field, nil if element absent

	FirstSeen time.Time
	LastSeen  time.Time
}

// NewSQLiteAdapter initializes the database and migrates schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Trace queries through the global OpenTelemetry provider.
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		log.Printf("Warning: could not enable gorm tracing: %v", err)
	}

	if err := db.AutoMigrate(&NetworkModel{}); err != nil {
		return nil, err
	}

	// Create Indices for Performance
	db.Exec("CREATE INDEX IF NOT EXISTS idx_networks_last_seen ON network_models(last_seen)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_networks_bssid ON network_models(bssid)")

	return &SQLiteAdapter{db: db}, nil
}

// SetSessionID tags subsequently saved rows with the scan session.
func (a *SQLiteAdapter) SetSessionID(id string) {
	a.sessionID = id
}

// SaveNetwork saves or updates a network descriptor, preserving FirstSeen
// across re-scans.
func (a *SQLiteAdapter) SaveNetwork(nd domain.NetworkDescriptor) error {
	model := toModel(nd, a.sessionID)

	var existing NetworkModel
	err := a.db.Where("key = ?", model.Key).First(&existing).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		now := time.Now()
		model.FirstSeen = now
		model.LastSeen = now
	case err != nil:
		return err
	default:
		model.FirstSeen = existing.FirstSeen
		model.LastSeen = time.Now()
	}

	return a.db.Save(&model).Error
}

// LoadNetworks reconstructs all persisted descriptors. Rows that no longer
// decode (schema drift, manual edits) are skipped with a warning rather than
// failing the whole load.
func (a *SQLiteAdapter) LoadNetworks() ([]domain.NetworkDescriptor, error) {
	var models []NetworkModel
	if err := a.db.Find(&models).Error; err != nil {
		return nil, err
	}

	networks := make([]domain.NetworkDescriptor, 0, len(models))
	for _, model := range models {
		nd, err := toDomain(model)
		if err != nil {
			log.Printf("Warning: skipping undecodable network row %s: %v", model.Key, err)
			continue
		}
		networks = append(networks, nd)
	}
	return networks, nil
}

// Close releases the underlying database handle.
func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
