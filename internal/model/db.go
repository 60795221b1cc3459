package model

import "time"

type Credential struct {
	Key       string `gorm:"primaryKey;size:32;not null"`
	Token     string `gorm:"not null"`
	Roles     string `gorm:"size:256"` // comma separated
	UpdatedAt time.Time
}

type Cart struct {
	ID          string `gorm:"primaryKey;size:64;not null"` // uuid
	Channel     string `gorm:"size:16;index;not null"`      // STOREFRONT | CASHIER
	PhoneNumber string `gorm:"size:32"`

	// Snapshot of the active voucher, at most one per checkout session.
	VoucherCode        string `gorm:"size:64"`
	VoucherType        string `gorm:"size:16"`
	VoucherDiscount    float64
	VoucherMaxDiscount int64
	VoucherMinPurchase int64

	// Codes consumed during this session, comma separated. A code in this
	// list cannot be applied again.
	UsedCodes string `gorm:"size:512"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartLine struct {
	ID        uint   `gorm:"primaryKey"`
	CartID    string `gorm:"size:64;uniqueIndex:idx_cart_variant;not null"`
	VariantID int64  `gorm:"uniqueIndex:idx_cart_variant;not null"`
	UnitPrice int64  `gorm:"not null"` // whole VND
	Quantity  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
