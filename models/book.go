package models

import "time"

const BookTable = "lib_books"

// Book is a catalog entry. AvailableCopies is the number of copies not
// currently on an active loan; it stays within [0, TotalCopies] and is
// only changed through conditional updates in the db layer.
type Book struct {
	ID              string `gorm:"primaryKey;type:uuid" json:"id"`
	Title           string `gorm:"size:255;not null;index" json:"title"`
	Author          string `gorm:"size:255;not null" json:"author"`
	Genre           string `gorm:"size:100;not null;index" json:"genre"`
	Description     string `gorm:"type:text;not null" json:"description"`
	Rating          int    `gorm:"not null" json:"rating"` // 1..5
	CoverColor      string `gorm:"size:7;not null" json:"coverColor"`
	CoverURL        string `gorm:"size:500;not null" json:"coverUrl"`
	VideoURL        string `gorm:"size:500" json:"videoUrl"`
	Summary         string `gorm:"type:text" json:"summary"`
	TotalCopies     int    `gorm:"not null;default:1" json:"totalCopies"`
	AvailableCopies int    `gorm:"not null;default:0" json:"availableCopies"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Book) TableName() string { return BookTable }
