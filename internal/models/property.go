package models

import "time"

type Property struct {
	ID          string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string  `gorm:"type:text;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	AgentID     string  `gorm:"type:varchar(36);not null;index" json:"agentId"`

	// Filter attributes
	PropertyType PropertyType `gorm:"type:varchar(20);not null;index" json:"propertyType"`
	ListingType  ListingType  `gorm:"type:varchar(10);not null;index" json:"listingType"`
	Price        float64      `gorm:"type:decimal(14,2);not null;index" json:"price"`
	Bedrooms     int          `gorm:"type:int;index" json:"bedrooms"`
	Bathrooms    int          `gorm:"type:int" json:"bathrooms"`
	SquareFeet   *int         `gorm:"type:int" json:"squareFeet,omitempty"`

	// Location
	Address    string   `gorm:"type:text" json:"address,omitempty"`
	Area       string   `gorm:"type:varchar(100);index" json:"area,omitempty"`
	City       string   `gorm:"type:varchar(100)" json:"city,omitempty"`
	State      string   `gorm:"type:varchar(100)" json:"state,omitempty"`
	PostalCode string   `gorm:"type:varchar(10)" json:"postalCode,omitempty"`
	Latitude   *float64 `gorm:"type:decimal(10,7)" json:"latitude,omitempty"`
	Longitude  *float64 `gorm:"type:decimal(10,7)" json:"longitude,omitempty"`

	Amenities string `gorm:"type:text" json:"amenities,omitempty"`
	Featured  bool   `gorm:"not null;default:false;index" json:"featured"`

	// Status lifecycle
	Status    PropertyStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	ExpiredAt *time.Time     `gorm:"type:timestamp" json:"expiredAt,omitempty"`

	Images []PropertyImage `gorm:"foreignKey:PropertyID;references:ID" json:"images,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;autoCreateTime;index:idx_properties_created_at,sort:desc" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;autoUpdateTime" json:"updatedAt"`
}

// PropertyStatus is the listing lifecycle state
type PropertyStatus string

const (
	PropertyStatusDraft   PropertyStatus = "draft"
	PropertyStatusOnline  PropertyStatus = "online"
	PropertyStatusOffline PropertyStatus = "offline"
	PropertyStatusExpired PropertyStatus = "expired"
	PropertyStatusSold    PropertyStatus = "sold"
	PropertyStatusRented  PropertyStatus = "rented"
)

// PropertyType is the kind of property listed
type PropertyType string

const (
	PropertyTypeApartment   PropertyType = "apartment"
	PropertyTypeCondominium PropertyType = "condominium"
	PropertyTypeHouse       PropertyType = "house"
	PropertyTypeTownhouse   PropertyType = "townhouse"
	PropertyTypeOffice      PropertyType = "office"
	PropertyTypeRetailSpace PropertyType = "retail-space"
	PropertyTypeShopOffice  PropertyType = "shop-office"
	PropertyTypeCommercial  PropertyType = "commercial"
	PropertyTypeIndustrial  PropertyType = "industrial"
	PropertyTypeLand        PropertyType = "land"
)

// ListingType is sale or rent
type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

func (Property) TableName() string {
	return "properties"
}

// IsOnline reports whether the listing is publicly visible
func (p *Property) IsOnline() bool {
	return p.Status == PropertyStatusOnline
}

// HasCoordinates reports whether the listing has been geocoded
func (p *Property) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// ValidPropertyStatus reports whether s is a member of the status enum
func ValidPropertyStatus(s PropertyStatus) bool {
	switch s {
	case PropertyStatusDraft, PropertyStatusOnline, PropertyStatusOffline,
		PropertyStatusExpired, PropertyStatusSold, PropertyStatusRented:
		return true
	}
	return false
}

// ValidPropertyType reports whether t is a member of the type enum
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeCondominium, PropertyTypeHouse,
		PropertyTypeTownhouse, PropertyTypeOffice, PropertyTypeRetailSpace,
		PropertyTypeShopOffice, PropertyTypeCommercial, PropertyTypeIndustrial,
		PropertyTypeLand:
		return true
	}
	return false
}

// MinOnlineImages is the minimum photo count required for a listing to go online.
const MinOnlineImages = 3

// CanGoOnline checks the publishing invariants: enough photos and a positive price.
func (p *Property) CanGoOnline(imageCount int) bool {
	return imageCount >= MinOnlineImages && p.Price > 0
}
