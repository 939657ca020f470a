package db_models

type Tag struct {
	BaseModel
	Name   string  `gorm:"unique;not null"`
	Places []Place `gorm:"many2many:place_tags"`
}
