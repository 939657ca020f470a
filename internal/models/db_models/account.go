package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string

	Places  []Place       `gorm:"foreignKey:UserID"`
	Courses []SavedCourse `gorm:"foreignKey:UserID"`
}
