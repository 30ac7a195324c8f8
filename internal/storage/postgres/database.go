package postgres

import (
	"fmt"

	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/logging"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// InitDB открывает соединение с PostgreSQL или SQLite в зависимости от cfg.Storage
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err = gorm.Open("postgres", cfg.DB.PostgresDSN())
	case config.StorageSQLite:
		db, err = gorm.Open("sqlite3", cfg.DB.SQLitePath)
		if err == nil {
			// у SQLite один писатель
			db.DB().SetMaxOpenConns(1)
			err = db.Exec("PRAGMA foreign_keys = ON").Error
		}
	default:
		return nil, fmt.Errorf("storage %q is not relational", cfg.Storage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	db.LogMode(cfg.DB.LogQueries)
	logging.Info().Str("dialect", db.Dialect().GetName()).Msg("Successfully connected to the database")
	return db, nil
}

// CloseDB закрывает соединение с базой данных
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	err := db.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %w", err)
	}

	logging.Info().Msg("Database connection closed")
	return nil
}

type foreignKey struct {
	model    interface{}
	table    string
	field    string
	dest     string
	onDelete string
}

var foreignKeys = []foreignKey{
	{&models.Post{}, "posts", "author_id", "users(id)", "CASCADE"},
	{&models.Post{}, "posts", "group_id", "post_groups(id)", "SET NULL"},
	{&models.Comment{}, "comments", "post_id", "posts(id)", "CASCADE"},
	{&models.Comment{}, "comments", "author_id", "users(id)", "CASCADE"},
	{&models.Follow{}, "follows", "user_id", "users(id)", "CASCADE"},
	{&models.Follow{}, "follows", "author_id", "users(id)", "CASCADE"},
}

// Migrate создает таблицы; внешние ключи добавляются только в PostgreSQL,
// SQLite не умеет ALTER TABLE ADD CONSTRAINT
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(models.All()...).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if db.Dialect().GetName() != "postgres" {
		return nil
	}

	for _, fk := range foreignKeys {
		keyName := db.Dialect().BuildKeyName(fk.table, fk.field, fk.dest, "foreign")
		if db.Dialect().HasForeignKey(fk.table, keyName) {
			continue
		}
		err := db.Model(fk.model).AddForeignKey(fk.field, fk.dest, fk.onDelete, "CASCADE").Error
		if err != nil {
			return fmt.Errorf("failed to add foreign key %s: %w", keyName, err)
		}
	}

	return nil
}

func wrapNotFound(err error, format string, args ...interface{}) error {
	if gorm.IsRecordNotFoundError(err) {
		return fmt.Errorf(format+": %w", append(args, storage.ErrNotFound)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
