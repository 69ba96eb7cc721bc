// Package storetest provides a migrated SQLite database and request fixtures
// for tests of packages built on the store.
package storetest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"manufacturing-backend/internal/model"
)

// Open creates a file-backed SQLite database in a temp dir with foreign keys
// enforced and the full schema migrated.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=ON&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// ContactFields returns a complete contact create body.
func ContactFields(name string) map[string]any {
	return map[string]any{
		"Description": "Contact " + name,
		"Diameter":    "1.5",
		"Insertdepth": "3.2",
		"Name":        name,
		"ZF_ContNumb": "ZF-" + name,
	}
}

// WireFields returns a complete wire create body.
func WireFields(name string) map[string]any {
	return map[string]any{
		"name":               name,
		"description":        "Wire " + name,
		"cross_section":      "0.75",
		"isolation_diameter": "1.9",
		"wire_diameter":      "1.1",
		"color":              "red",
	}
}

// ProcessFields returns a complete process create body.
func ProcessFields(name string) map[string]any {
	return map[string]any{
		"name":                         name,
		"crimping_depth_d":             "0.8",
		"crimping_depth_offset_d":      "0.05",
		"holding_value_delta_d":        "0.1",
		"insertion_depth_delta_d":      "0.2",
		"sf_performance_d":             "75",
		"sf_frequence_d":               "50",
		"extendable_feeder_tuble_s":    "1",
		"loading_holding_jaws_s":       "0",
		"catact_monitoring_s":          "1",
		"wayback_d":                    "2.5",
		"stripping_position":           "4.0",
		"stripping_function":           "1",
		"crimping_position_monitoring": "1",
	}
}

// RecipeFields returns a complete recipe create body.
func RecipeFields(description string, contactID, wireID, processID int64) map[string]any {
	return map[string]any{
		"description": description,
		"contact_id":  contactID,
		"wire_id":     wireID,
		"process_id":  processID,
	}
}
