package database

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"airea-platform/internal/geo"
	"airea-platform/internal/models"

	"gorm.io/gorm"
)

// PropertyFilters are the structured filters applied to listing queries.
// Pointer fields are unset when nil.
type PropertyFilters struct {
	PropertyTypes []string
	ListingType   string
	Status        string
	MinPrice      *float64
	MaxPrice      *float64
	Bedrooms      *int
	MinBedrooms   *int
	Area          string
	AgentID       string
	Query         string
	Featured      *bool
	SortBy        string
	Limit         int
	Offset        int
}

// PagedProperties is a page of listing results
type PagedProperties struct {
	Properties []models.Property `json:"properties"`
	Total      int64             `json:"total"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
}

// PropertyDistance pairs a listing with its distance from a search center
type PropertyDistance struct {
	Property       models.Property `json:"property"`
	DistanceMeters float64         `json:"distanceMeters"`
}

func (f PropertyFilters) apply(q *gorm.DB) *gorm.DB {
	if len(f.PropertyTypes) > 0 {
		q = q.Where("property_type IN ?", f.PropertyTypes)
	}
	if f.ListingType != "" {
		q = q.Where("listing_type = ?", f.ListingType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		q = q.Where("bedrooms = ?", *f.Bedrooms)
	}
	if f.MinBedrooms != nil {
		q = q.Where("bedrooms >= ?", *f.MinBedrooms)
	}
	if f.Area != "" {
		pattern := "%" + f.Area + "%"
		q = q.Where("area ILIKE ? OR address ILIKE ? OR title ILIKE ? OR city ILIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if f.AgentID != "" {
		q = q.Where("agent_id = ?", f.AgentID)
	}
	if f.Query != "" {
		q = q.Where("title ILIKE ?", "%"+f.Query+"%")
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	return q
}

func orderClause(sortBy string) string {
	switch sortBy {
	case "price_asc":
		return "price ASC"
	case "price_desc":
		return "price DESC"
	case "newest":
		return "created_at DESC"
	case "oldest":
		return "created_at ASC"
	default:
		return "featured DESC, created_at DESC"
	}
}

// GetPropertiesWithFilters returns a page of listings matching the filters
func (gdb *GormDB) GetPropertiesWithFilters(f PropertyFilters) (*PagedProperties, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	q := f.apply(gdb.db.Model(&models.Property{}))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var properties []models.Property
	err := q.Order(orderClause(f.SortBy)).
		Limit(f.Limit).
		Offset(f.Offset).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}

	return &PagedProperties{
		Properties: properties,
		Total:      total,
		Limit:      f.Limit,
		Offset:     f.Offset,
	}, nil
}

// GetPropertyByID retrieves a listing with its images
func (gdb *GormDB) GetPropertyByID(id string) (*models.Property, error) {
	var property models.Property
	err := gdb.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("id = ?", id).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetPropertiesByIDs retrieves listings for a set of ids. Unknown ids
// are skipped; no particular order is guaranteed.
func (gdb *GormDB) GetPropertiesByIDs(ids []string) ([]models.Property, error) {
	if len(ids) == 0 {
		return []models.Property{}, nil
	}
	var properties []models.Property
	err := gdb.db.Where("id IN ?", ids).Find(&properties).Error
	return properties, err
}

// CreateProperty inserts a listing and its images in a transaction
func (gdb *GormDB) CreateProperty(p *models.Property) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		images := p.Images
		p.Images = nil
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].PropertyID = p.ID
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		p.Images = images
		return nil
	})
}

// UpdateProperty saves listing fields, keeping the original CreatedAt
func (gdb *GormDB) UpdateProperty(p *models.Property) error {
	var existing models.Property
	if err := gdb.db.Where("id = ?", p.ID).First(&existing).Error; err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	return gdb.db.Omit("Images").Save(p).Error
}

// SetPropertyStatus transitions a listing's lifecycle state
func (gdb *GormDB) SetPropertyStatus(id string, status models.PropertyStatus) error {
	updates := map[string]interface{}{"status": status}
	if status == models.PropertyStatusExpired {
		now := time.Now()
		updates["expired_at"] = &now
	}
	return gdb.db.Model(&models.Property{}).Where("id = ?", id).Updates(updates).Error
}

// CountPropertyImages returns the number of images attached to a listing
func (gdb *GormDB) CountPropertyImages(id string) (int, error) {
	var count int64
	err := gdb.db.Model(&models.PropertyImage{}).Where("property_id = ?", id).Count(&count).Error
	return int(count), err
}

// SetPropertyCoordinates stores geocoded coordinates for a listing
func (gdb *GormDB) SetPropertyCoordinates(id string, lat, lon float64) error {
	return gdb.db.Model(&models.Property{}).Where("id = ?", id).
		Updates(map[string]interface{}{"latitude": lat, "longitude": lon}).Error
}

// SearchOnlineProperties returns online listings matching the filters,
// featured first, newest first.
func (gdb *GormDB) SearchOnlineProperties(f PropertyFilters, limit int) ([]models.Property, error) {
	if limit <= 0 {
		limit = 50
	}
	f.Status = string(models.PropertyStatusOnline)

	var properties []models.Property
	err := f.apply(gdb.db.Model(&models.Property{})).
		Order("featured DESC, created_at DESC").
		Limit(limit).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&properties).Error
	return properties, err
}

// NearbyOnlineProperties returns online listings within radiusMeters of the
// center, nearest first. Uses PostGIS when available, Haversine in Go otherwise.
func (gdb *GormDB) NearbyOnlineProperties(f PropertyFilters, center geo.Point, radiusMeters float64, limit int) ([]PropertyDistance, error) {
	if limit <= 0 {
		limit = 50
	}

	if gdb.postgis {
		return gdb.nearbyPostGIS(f, center, radiusMeters, limit)
	}
	return gdb.nearbyHaversine(f, center, radiusMeters, limit)
}

func (gdb *GormDB) nearbyPostGIS(f PropertyFilters, center geo.Point, radiusMeters float64, limit int) ([]PropertyDistance, error) {
	conds := []string{
		"status = 'online'",
		"latitude IS NOT NULL",
		"longitude IS NOT NULL",
		"ST_DWithin(ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)",
	}
	args := []interface{}{center.Longitude, center.Latitude, radiusMeters}

	if len(f.PropertyTypes) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(f.PropertyTypes)), ",")
		conds = append(conds, fmt.Sprintf("property_type IN (%s)", placeholders))
		for _, t := range f.PropertyTypes {
			args = append(args, t)
		}
	}
	if f.ListingType != "" {
		conds = append(conds, "listing_type = ?")
		args = append(args, f.ListingType)
	}
	if f.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		conds = append(conds, "bedrooms = ?")
		args = append(args, *f.Bedrooms)
	}

	query := fmt.Sprintf(`
		SELECT id, ST_Distance(
			ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
			ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
		) AS distance_meters
		FROM properties
		WHERE %s
		ORDER BY distance_meters
		LIMIT ?`, strings.Join(conds, " AND "))

	fullArgs := append([]interface{}{center.Longitude, center.Latitude}, args...)
	fullArgs = append(fullArgs, limit)

	type idDistance struct {
		ID             string
		DistanceMeters float64
	}
	var rows []idDistance
	if err := gdb.db.Raw(query, fullArgs...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}

	var properties []models.Property
	err := gdb.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("id IN ?", ids).Find(&properties).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}

	results := make([]PropertyDistance, 0, len(rows))
	for _, r := range rows {
		if p, ok := byID[r.ID]; ok {
			results = append(results, PropertyDistance{Property: p, DistanceMeters: r.DistanceMeters})
		}
	}
	return results, nil
}

func (gdb *GormDB) nearbyHaversine(f PropertyFilters, center geo.Point, radiusMeters float64, limit int) ([]PropertyDistance, error) {
	f.Status = string(models.PropertyStatusOnline)

	var candidates []models.Property
	err := f.apply(gdb.db.Model(&models.Property{})).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	results := make([]PropertyDistance, 0, len(candidates))
	for _, p := range candidates {
		d := geo.HaversineMeters(center, geo.Point{Latitude: *p.Latitude, Longitude: *p.Longitude})
		if d <= radiusMeters {
			results = append(results, PropertyDistance{Property: p, DistanceMeters: d})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetDistinctTitles returns online listing titles with their property type,
// used by the autocomplete fuzzy matcher.
func (gdb *GormDB) GetDistinctTitles() ([]TitleType, error) {
	var rows []TitleType
	err := gdb.db.Model(&models.Property{}).
		Select("DISTINCT title, property_type").
		Where("status = ?", models.PropertyStatusOnline).
		Scan(&rows).Error
	return rows, err
}

// TitleType is a listing title and its property type
type TitleType struct {
	Title        string `json:"title"`
	PropertyType string `json:"propertyType"`
}

// PropertiesMissingCoordinates returns online listings awaiting geocoding
func (gdb *GormDB) PropertiesMissingCoordinates(limit int) ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.Where("status = ? AND (latitude IS NULL OR longitude IS NULL)",
		models.PropertyStatusOnline).
		Limit(limit).
		Find(&properties).Error
	return properties, err
}

// ExpireOnlineListings marks online listings older than cutoff as expired.
// Returns the affected listings.
func (gdb *GormDB) ExpireOnlineListings(cutoff time.Time) ([]models.Property, error) {
	var stale []models.Property
	err := gdb.db.Where("status = ? AND created_at < ?", models.PropertyStatusOnline, cutoff).
		Find(&stale).Error
	if err != nil {
		return nil, err
	}
	if len(stale) == 0 {
		return nil, nil
	}

	ids := make([]string, len(stale))
	for i, p := range stale {
		ids[i] = p.ID
	}
	now := time.Now()
	err = gdb.db.Model(&models.Property{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     models.PropertyStatusExpired,
			"expired_at": &now,
		}).Error
	return stale, err
}

// OnlinePropertiesSince returns listings that went online after the given time
func (gdb *GormDB) OnlinePropertiesSince(since time.Time) ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.Where("status = ? AND updated_at >= ?", models.PropertyStatusOnline, since).
		Find(&properties).Error
	return properties, err
}

// GetAllOnlineProperties returns every online listing, newest first
func (gdb *GormDB) GetAllOnlineProperties() ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.Where("status = ?", models.PropertyStatusOnline).
		Order("created_at DESC").
		Find(&properties).Error
	return properties, err
}
