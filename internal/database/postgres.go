package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"airea-platform/internal/models"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormDB wraps the GORM connection plus capability flags
type GormDB struct {
	db      *gorm.DB
	postgis bool
}

// NewGormDB opens a PostgreSQL connection with lib/pq and hands it to GORM.
func NewGormDB(host, port, user, password, dbname, sslmode string) (*GormDB, error) {
	if sslmode == "" {
		sslmode = "disable"
	}
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	gdb := &GormDB{db: db}
	gdb.detectPostGIS()
	return gdb, nil
}

// NewGormDBFromDB creates a GormDB wrapper from an existing gorm.DB instance
func NewGormDBFromDB(db *gorm.DB) *GormDB {
	return &GormDB{db: db}
}

// DB returns the underlying gorm.DB instance
func (gdb *GormDB) DB() *gorm.DB {
	return gdb.db
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HasPostGIS reports whether spatial SQL can be used
func (gdb *GormDB) HasPostGIS() bool {
	return gdb.postgis
}

func (gdb *GormDB) detectPostGIS() {
	var version string
	if err := gdb.db.Raw("SELECT PostGIS_Version()").Scan(&version).Error; err != nil {
		log.Printf("PostGIS not available, spatial queries fall back to Haversine: %v", err)
		gdb.postgis = false
		return
	}
	log.Printf("PostGIS detected: %s", version)
	gdb.postgis = true
}

// InitSchema creates tables using GORM AutoMigrate
func (gdb *GormDB) InitSchema() error {
	return gdb.db.AutoMigrate(
		&models.Property{},
		&models.PropertyImage{},
		&models.Agent{},
		&models.TransportStation{},
		&models.Favorite{},
		&models.Inquiry{},
		&models.CalendarEvent{},
		&models.SavedSearch{},
		&models.Notification{},
		&models.LocationAbbreviation{},
		&models.KnownLocation{},
		&models.PriceSnapshot{},
		&models.PriceChange{},
		&models.DeleteLog{},
	)
}
