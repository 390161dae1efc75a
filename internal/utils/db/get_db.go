package db

import (
	"os"
	"strconv"

	"gorm.io/gorm"
)

// GetDB reads connection settings from the environment and connects.
func GetDB() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	port, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 32)
	if err != nil {
		port = 5432
	}
	name := os.Getenv("DB_NAME")
	return ConnectDatabase(uint(port), host, name)
}
