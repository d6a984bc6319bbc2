package domain

// User Model
type User struct {
	ID            uint    `gorm:"primaryKey" json:"id"`                       // Primary key
	Name          string  `gorm:"type:text;not null" json:"name"`             // Display name
	Email         string  `gorm:"size:768;uniqueIndex;not null" json:"email"` // Unique email
	Phone         string  `gorm:"type:text;not null" json:"phone"`            // Phone number
	WalletBalance float64 `gorm:"not null;default:0" json:"wallet_balance"`   // Signed running balance
}
