package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray stores an ordered list of strings as a JSON column
type StringArray []string

// Value implements database/sql/driver.Valuer
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements database/sql.Scanner
func (s *StringArray) Scan(value interface{}) error {
	return scanJSON(value, s, "StringArray")
}

// SocialLinks holds a business's social media handles
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Tiktok    string `json:"tiktok,omitempty"`
	Website   string `json:"website,omitempty"`
}

func (l SocialLinks) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *SocialLinks) Scan(value interface{}) error {
	return scanJSON(value, l, "SocialLinks")
}

// MarketplaceLinks holds a business's marketplace storefront links
type MarketplaceLinks struct {
	Tokopedia string `json:"tokopedia,omitempty"`
	Shopee    string `json:"shopee,omitempty"`
}

func (l MarketplaceLinks) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *MarketplaceLinks) Scan(value interface{}) error {
	return scanJSON(value, l, "MarketplaceLinks")
}

// Location is a WGS84 coordinate pair
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l Location) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *Location) Scan(value interface{}) error {
	return scanJSON(value, l, "Location")
}

// Product is a showcase item on a business's detail page. Prices are plain
// Rupiah amounts; formatting happens at the presentation layer.
type Product struct {
	Name        string `json:"name"`
	Price       int64  `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProductList stores the ordered product showcase as a JSON column
type ProductList []Product

func (p ProductList) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *ProductList) Scan(value interface{}) error {
	return scanJSON(value, p, "ProductList")
}

func scanJSON(value interface{}, dest interface{}, typeName string) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("failed to scan " + typeName)
	}
}

// Umkm is a directory entry for a local small business. IDs are uuids
// generated before insert so the image storage namespace (umkm/<id>) is
// known up front and image uploads can precede the row write.
type Umkm struct {
	ID          string            `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string            `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Name        string            `gorm:"type:varchar(150);not null" json:"name"`
	CategoryID  string            `gorm:"type:uuid;index;not null" json:"category_id"`
	Category    *Category         `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Description string            `gorm:"type:text" json:"description"`
	Address     string            `gorm:"type:text" json:"address"`
	Logo        string            `json:"logo,omitempty"`
	Images      StringArray       `gorm:"type:jsonb" json:"images,omitempty"`
	Whatsapp    string            `gorm:"type:varchar(30)" json:"whatsapp,omitempty"`
	Social      *SocialLinks      `gorm:"type:jsonb" json:"social,omitempty"`
	Marketplace *MarketplaceLinks `gorm:"type:jsonb" json:"marketplace,omitempty"`
	OwnerStory  string            `gorm:"type:text" json:"owner_story,omitempty"`
	Featured    bool              `gorm:"default:false;index" json:"featured"`
	Location    *Location         `gorm:"type:jsonb" json:"location,omitempty"`
	Products    ProductList       `gorm:"type:jsonb" json:"products,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (Umkm) TableName() string {
	return "umkm"
}

func (u *Umkm) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
