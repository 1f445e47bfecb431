package database

import (
	"errors"
	"strings"

	"airea-platform/internal/geo"
	"airea-platform/internal/models"

	"gorm.io/gorm"
)

// LookupAbbreviation returns the expansion for a shorthand, bumping its hit count.
func (gdb *GormDB) LookupAbbreviation(short string) (string, error) {
	short = strings.ToLower(strings.TrimSpace(short))

	var row models.LocationAbbreviation
	err := gdb.db.Where("short = ?", short).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	gdb.db.Model(&row).UpdateColumn("hit_count", gorm.Expr("hit_count + 1"))
	return row.Expansion, nil
}

// SaveAbbreviation persists an expansion, keeping the first writer's value.
func (gdb *GormDB) SaveAbbreviation(short, expansion, source string) error {
	short = strings.ToLower(strings.TrimSpace(short))

	var existing models.LocationAbbreviation
	err := gdb.db.Where("short = ?", short).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return gdb.db.Create(&models.LocationAbbreviation{
		Short:     short,
		Expansion: expansion,
		Source:    source,
	}).Error
}

// ListAbbreviations returns all stored abbreviations
func (gdb *GormDB) ListAbbreviations() ([]models.LocationAbbreviation, error) {
	var rows []models.LocationAbbreviation
	err := gdb.db.Order("short").Find(&rows).Error
	return rows, err
}

// LookupKnownLocation resolves an exact name match in the knowledge table.
// Implements geo.LocationStore.
func (gdb *GormDB) LookupKnownLocation(name string) (*geo.Point, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var row models.KnownLocation
	err := gdb.db.Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &geo.Point{Latitude: row.Latitude, Longitude: row.Longitude}, nil
}

// FuzzyKnownLocation resolves a substring match in the knowledge table.
// Implements geo.LocationStore.
func (gdb *GormDB) FuzzyKnownLocation(name string) (*geo.Point, string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, "", nil
	}

	var row models.KnownLocation
	err := gdb.db.Where("name ILIKE ?", "%"+name+"%").Order("length(name)").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return &geo.Point{Latitude: row.Latitude, Longitude: row.Longitude}, row.Name, nil
}

// SaveKnownLocation persists an externally resolved location.
// Implements geo.LocationStore.
func (gdb *GormDB) SaveKnownLocation(name string, p geo.Point, kind string) error {
	name = strings.ToLower(strings.TrimSpace(name))

	var existing models.KnownLocation
	err := gdb.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return gdb.db.Create(&models.KnownLocation{
		Name:      name,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Kind:      kind,
	}).Error
}

// ListKnownLocations returns the knowledge table contents
func (gdb *GormDB) ListKnownLocations() ([]models.KnownLocation, error) {
	var rows []models.KnownLocation
	err := gdb.db.Order("name").Find(&rows).Error
	return rows, err
}

// KnownLocationNames returns every name in the knowledge table, used to
// build the typo-correction dictionary.
func (gdb *GormDB) KnownLocationNames() ([]string, error) {
	var names []string
	err := gdb.db.Model(&models.KnownLocation{}).Pluck("name", &names).Error
	return names, err
}

// SeedKnownLocations loads built-in locations that are not yet present
func (gdb *GormDB) SeedKnownLocations(seeds []geo.SeedLocation) error {
	for _, s := range seeds {
		if err := gdb.SaveKnownLocation(s.Name, s.Point, s.Kind); err != nil {
			return err
		}
	}
	return nil
}
