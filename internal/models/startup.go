package models

import "time"

// Moderation states a startup moves through after submission.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Target market of a startup, also the feed partitioning key.
const (
	GeoRussia    = "Russia"
	GeoWorldwide = "Worldwide"
)

const DefaultPriceRub = 290

type Startup struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	Name              string     `json:"name" gorm:"not null"`
	Logo              string     `json:"logo"`
	ShortDescription  string     `json:"short_description" gorm:"not null"`
	LongDescription   string     `json:"long_description" gorm:"not null"`
	Geo               string     `json:"geo" gorm:"not null;index"`
	Stage             string     `json:"stage" gorm:"not null"`
	Tags              string     `json:"tags"`
	TelegramUsername  string     `json:"telegram_username"`
	Email             string     `json:"email"`
	Website           string     `json:"website"`
	SeekingInvestment bool       `json:"seeking_investment"`
	IsFeatured        bool       `json:"is_featured"`
	Status            string     `json:"status" gorm:"not null;default:pending;index"`
	RejectReason      string     `json:"reject_reason"`
	PaymentStatus     string     `json:"payment_status" gorm:"not null;default:unpaid"`
	PriceRub          int64      `json:"price_rub" gorm:"not null;default:290"`
	PaidAt            *time.Time `json:"paid_at"`
	PublishedAt       *time.Time `json:"published_at"`
	UserID            *uint      `json:"user_id" gorm:"index"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Relationships
	Votes    []Vote    `json:"-" gorm:"foreignKey:StartupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:StartupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Payments []Payment `json:"-" gorm:"foreignKey:StartupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// Published reports whether the startup passed moderation and paid for
// its listing, which is what gates the public rating view.
func (s *Startup) Published() bool {
	return s.Status == StatusApproved && s.PaymentStatus == PaymentPaid
}
