package infra

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"log"
)

func InitPostgresql(cfg Config) *gorm.DB {

	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	return connectionPool
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
