package domain

import "time"

// OTP holds at most one live passcode per email; later writes overwrite.
// Expiry is an explicit column so any backend can enforce it: reads treat
// expired rows as missing and a background sweep deletes them.
type OTP struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:255;not null"`
	Code      string    `gorm:"size:6;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

func (o OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
