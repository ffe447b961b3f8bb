package database

import (
	"context"
	"fmt"
	"time"

	"charsheet-restful/config"
	"charsheet-restful/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database. Driver errors are translated
// so that unique violations surface as gorm.ErrDuplicatedKey.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.URL)
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	// GORM logger configuration
	gormLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true, // keep password hashes and tokens out of the log
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer; one connection also keeps an
		// in-memory database alive for the lifetime of the pool.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// mysqlTableOptions gives new tables a binary collation, so that unique
// indexes and lookups on usernames, nicknames, tokens and character names
// are case-sensitive like they are on sqlite.
const mysqlTableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"

// tableOptions returns the CREATE TABLE suffix for the given dialect.
func tableOptions(dialect string) string {
	if dialect == "mysql" {
		return mysqlTableOptions
	}
	return ""
}

// Migrate creates or updates the users and characters tables.
func Migrate(db *gorm.DB) error {
	if opts := tableOptions(db.Dialector.Name()); opts != "" {
		db = db.Set("gorm:table_options", opts)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Character{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// StarterCharacters are inserted by SeedInitialData.
var StarterCharacters = []models.Character{
	{
		Name:         "Aldric Stonehelm",
		Backstory:    "A dwarven smith who left the forge to reclaim his clan's hall.",
		Profession:   "Fighter",
		Race:         "Dwarf",
		Strength:     "16",
		Dexterity:    "10",
		Constitution: "15",
		Intelligence: "10",
		Wisdom:       "12",
		Charisma:     "8",
	},
	{
		Name:         "Lirael Nightbloom",
		Backstory:    "Raised by the archivists of a drowned city.",
		Profession:   "Wizard",
		Race:         "Elf",
		Strength:     "8",
		Dexterity:    "14",
		Constitution: "12",
		Intelligence: "17",
		Wisdom:       "13",
		Charisma:     "10",
	},
	{
		Name:         "Pip Underbough",
		Profession:   "Rogue",
		Race:         "Halfling",
		Strength:     "9",
		Dexterity:    "17",
		Constitution: "12",
		Intelligence: "13",
		Wisdom:       "10",
		Charisma:     "+2",
	},
}

// SeedInitialData inserts StarterCharacters, skipping names that already
// exist. It returns the number of characters actually created.
func SeedInitialData(ctx context.Context, db *gorm.DB, log *zap.Logger) (int, error) {
	created := 0
	for _, c := range StarterCharacters {
		character := c
		result := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
			Create(&character)
		if result.Error != nil {
			return created, fmt.Errorf("seed character %s: %w", c.Name, result.Error)
		}
		if result.RowsAffected == 0 {
			log.Debug("Character already present", zap.String("name", c.Name))
			continue
		}
		created++
		log.Info("Seeded character", zap.String("name", c.Name))
	}
	return created, nil
}
