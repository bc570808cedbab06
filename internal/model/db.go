package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Asset{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Texture{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Material{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Geometry{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Project{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&User{}); err != nil {
		return err
	}

	return db.AutoMigrate(&Edge{})
}
