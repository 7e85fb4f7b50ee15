package repository

import (
	"gorm.io/gorm"

	"github.com/bhujal/registry/internal/models"
)

// registeredModels lists every table owned by the registry.
func registeredModels() []any {
	return []any{
		&models.Customer{},
		&models.Borewell{},
	}
}

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	if err := enableUUIDExtension(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(registeredModels()...); err != nil {
		return err
	}
	for _, m := range []func(*gorm.DB) error{
		addBorewellOwnerRecencyIndex,
		addCustomerEmailLowerCheck,
	} {
		if err := m(db); err != nil {
			return err
		}
	}
	return nil
}

// enableUUIDExtension ensures gen_random_uuid() is available.
func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// addBorewellOwnerRecencyIndex serves "my borewells, newest first".
func addBorewellOwnerRecencyIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_borewells_customer_created
		ON borewells(customer_id, created_at DESC)
	`).Error
}

func addCustomerEmailLowerCheck(db *gorm.DB) error {
	return db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'chk_customers_email_lower'
			) THEN
				ALTER TABLE customers
				ADD CONSTRAINT chk_customers_email_lower CHECK (email = lower(email));
			END IF;
		END
		$$;
	`).Error
}
