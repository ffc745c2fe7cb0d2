package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Indexable{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Post{}, &Term{}, &User{}); err != nil {
		return err
	}

	return db.AutoMigrate(&Setting{})
}
