package database

import (
	"sort"

	"airea-platform/internal/geo"
	"airea-platform/internal/models"
)

// SaveStations upserts transport stations by (name, line)
func (gdb *GormDB) SaveStations(stations []models.TransportStation) error {
	for i := range stations {
		var existing models.TransportStation
		err := gdb.db.Where("name = ? AND line = ?", stations[i].Name, stations[i].Line).
			First(&existing).Error
		if err == nil {
			stations[i].ID = existing.ID
			if err := gdb.db.Save(&stations[i]).Error; err != nil {
				return err
			}
			continue
		}
		if err := gdb.db.Create(&stations[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedStations loads the built-in station list, upserting by (name, line)
func (gdb *GormDB) SeedStations(seeds []geo.SeedStation) error {
	stations := make([]models.TransportStation, len(seeds))
	for i, s := range seeds {
		stations[i] = models.TransportStation{
			Name:        s.Name,
			Line:        s.Line,
			StationType: s.Type,
			Latitude:    s.Point.Latitude,
			Longitude:   s.Point.Longitude,
		}
	}
	return gdb.SaveStations(stations)
}

// GetStations returns all transport stations
func (gdb *GormDB) GetStations() ([]models.TransportStation, error) {
	var stations []models.TransportStation
	err := gdb.db.Order("line, name").Find(&stations).Error
	return stations, err
}

// NearestStations returns the closest stations to a point, nearest first.
func (gdb *GormDB) NearestStations(center geo.Point, limit int) ([]models.StationProximity, error) {
	if limit <= 0 {
		limit = 3
	}

	if gdb.postgis {
		return gdb.nearestStationsPostGIS(center, limit)
	}
	return gdb.nearestStationsHaversine(center, limit)
}

func (gdb *GormDB) nearestStationsPostGIS(center geo.Point, limit int) ([]models.StationProximity, error) {
	type stationDistance struct {
		models.TransportStation
		DistanceMeters float64
	}

	var rows []stationDistance
	err := gdb.db.Raw(`
		SELECT *, ST_Distance(
			ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
			ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
		) AS distance_meters
		FROM transport_stations
		ORDER BY distance_meters
		LIMIT ?`, center.Longitude, center.Latitude, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]models.StationProximity, len(rows))
	for i, r := range rows {
		results[i] = models.StationProximity{
			Station:        r.TransportStation,
			DistanceMeters: r.DistanceMeters,
			WalkMinutes:    geo.WalkMinutes(r.DistanceMeters),
		}
	}
	return results, nil
}

func (gdb *GormDB) nearestStationsHaversine(center geo.Point, limit int) ([]models.StationProximity, error) {
	stations, err := gdb.GetStations()
	if err != nil {
		return nil, err
	}

	results := make([]models.StationProximity, 0, len(stations))
	for _, s := range stations {
		d := geo.HaversineMeters(center, geo.Point{Latitude: s.Latitude, Longitude: s.Longitude})
		results = append(results, models.StationProximity{
			Station:        s,
			DistanceMeters: d,
			WalkMinutes:    geo.WalkMinutes(d),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
