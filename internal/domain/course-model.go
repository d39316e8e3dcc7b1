package domain

import "gorm.io/gorm"

type Course struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Title           string `gorm:"not null" json:"title"`
	Category        string `gorm:"index;not null" json:"category"`
	ImageURL        string `json:"image_url,omitempty"`
	AuthorName      string `gorm:"not null" json:"author_name"`
	WillLearn       string `json:"will_learn,omitempty"`
	Description     string `gorm:"not null" json:"description"`
	DescriptionLong string `json:"description_long,omitempty"`
	Requirement     string `json:"requirement,omitempty"`
	Price           string `json:"price,omitempty"`

	CreatorID uint `gorm:"index;not null" json:"creator_id"`

	Videos []CourseVideo `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"videos,omitempty"`

	// Running rating aggregate. RatingFinal = RatingSum / RatingCount.
	RatingSum   float64 `gorm:"not null;default:0" json:"-"`
	RatingCount int     `gorm:"not null;default:0" json:"-"`
	RatingFinal float64 `gorm:"not null;default:0" json:"rating"`

	gorm.Model
}

type CourseVideo struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	CourseID uint   `gorm:"index;not null" json:"course_id"`
	VideoURL string `gorm:"not null" json:"video_url"`

	WatchedBy []User `gorm:"many2many:video_watchers" json:"-"`
	gorm.Model
}
