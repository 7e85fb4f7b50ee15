package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Well types accepted for Borewell.WellType.
const (
	WellTypeDug     = "dug-well"
	WellTypeDrilled = "drilled-well"
	WellTypeOther   = "other"
)

// Borewell is a registered water well. Latitude and longitude are kept as
// the decimal-degree strings the owner submitted.
type Borewell struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CustomerID       uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	Customer         *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer,omitempty"`
	Latitude         string    `gorm:"type:varchar(16);not null;index:idx_borewells_lat_lng,priority:1" json:"latitude"`
	Longitude        string    `gorm:"type:varchar(16);not null;index:idx_borewells_lat_lng,priority:2" json:"longitude"`
	WellType         string    `gorm:"type:varchar(16);not null;index" json:"wellType"`
	DepthType        string    `gorm:"type:varchar(100);not null;default:''" json:"depthType"`
	WallType         string    `gorm:"type:varchar(100);not null;default:''" json:"wallType"`
	SupplySystem     string    `gorm:"type:varchar(100);not null;default:''" json:"supplySystem"`
	ExactDepth       float64   `gorm:"not null;default:0" json:"exactDepth"`
	MotorOperated    bool      `gorm:"not null;default:false" json:"motorOperated"`
	AuthoritiesAware bool      `gorm:"not null;default:false" json:"authoritiesAware"`
	Description      string    `gorm:"type:varchar(500);not null;default:''" json:"description"`
	CreatedAt        time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Location is the coordinate pair exposed alongside a serialized borewell.
type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Location returns the record's coordinates.
func (b Borewell) Location() Location {
	return Location{Latitude: b.Latitude, Longitude: b.Longitude}
}

// MarshalJSON adds the derived location object.
func (b Borewell) MarshalJSON() ([]byte, error) {
	type plain Borewell
	return json.Marshal(struct {
		plain
		Location Location `json:"location"`
	}{plain: plain(b), Location: b.Location()})
}

// MapEntry is the public, flattened view of a borewell and its owner used
// by the map listings.
type MapEntry struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// NewMapEntries flattens borewells with preloaded owners. Records whose owner
// is missing keep their coordinates with blank contact fields.
func NewMapEntries(items []Borewell) []MapEntry {
	out := make([]MapEntry, 0, len(items))
	for _, b := range items {
		e := MapEntry{Latitude: b.Latitude, Longitude: b.Longitude}
		if b.Customer != nil {
			e.Name = b.Customer.Name
			e.Address = b.Customer.Address
			e.Phone = b.Customer.PhoneNumber
			e.Email = b.Customer.Email
		}
		out = append(out, e)
	}
	return out
}
