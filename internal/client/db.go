package client

import (
	"log"

	"apparel-backoffice/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitSqliteClient opens the local SQLite database holding checkout carts
// and the durable credential. Everything else lives behind the commerce
// API.
func InitSqliteClient(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	if err := db.AutoMigrate(
		&model.Credential{},
		&model.Cart{},
		&model.CartLine{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
