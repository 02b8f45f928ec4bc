package services

import (
	"fmt"
	"restaurant_pos/internal/database"
	"restaurant_pos/internal/models"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Named shared-memory database so every pooled connection sees the
	// same schema, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedEstablishment(t *testing.T, db *gorm.DB, serviceCharge float64) *models.Establishment {
	t.Helper()
	est := &models.Establishment{Name: "test-house", ServiceCharge: serviceCharge}
	if err := db.Create(est).Error; err != nil {
		t.Fatalf("failed to seed establishment: %v", err)
	}
	return est
}

func seedTable(t *testing.T, db *gorm.DB, establishmentID uint, number int, status models.TableStatus) *models.Table {
	t.Helper()
	table := &models.Table{Number: number, Status: status, EstablishmentID: establishmentID}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}
