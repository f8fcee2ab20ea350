package models

// PropertyStatus represents the lifecycle state of the asset itself,
// independent of any payment schedule attached to it.
type PropertyStatus string

const (
	PropertyStatusActive     PropertyStatus = "active"
	PropertyStatusHandedOver PropertyStatus = "handed_over"
	PropertyStatusCancelled  PropertyStatus = "cancelled"
)

// PropertyPurpose represents what the property is operated as.
type PropertyPurpose string

const (
	PropertyPurposeShortTermRental PropertyPurpose = "short_term_rental"
	PropertyPurposeOffPlan         PropertyPurpose = "off_plan"
	PropertyPurposeBoth            PropertyPurpose = "both"
)

// Property represents a managed real-estate unit.
type Property struct {
	Base
	Name          string          `gorm:"not null" json:"name"`
	Emirate       string          `gorm:"not null" json:"emirate"`
	Developer     string          `json:"developer"`
	Community     string          `json:"community"`
	Bedrooms      int             `json:"bedrooms"`
	Purpose       PropertyPurpose `gorm:"not null" json:"purpose"`
	Status        PropertyStatus  `gorm:"not null;default:'active'" json:"status"`
	PurchasePrice int64           `gorm:"type:bigint" json:"purchase_price"`

	// Relationships
	Investments []Investment     `gorm:"foreignKey:PropertyID" json:"investments,omitempty"`
	Bookings    []Booking        `gorm:"foreignKey:PropertyID" json:"bookings,omitempty"`
	Expenses    []Expense        `gorm:"foreignKey:PropertyID" json:"expenses,omitempty"`
	Contracts   []TenancyContract `gorm:"foreignKey:PropertyID" json:"contracts,omitempty"`
}
