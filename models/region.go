package models

type Region struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"uniqueIndex;not null"`
	Country string `json:"country" gorm:"default:'Tunisie'"`
}
