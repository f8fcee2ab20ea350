package services

import "gorm.io/gorm"

// testContext carries the objects shared between a test's setup and
// its assertions.
type testContext struct {
	db *gorm.DB
}
