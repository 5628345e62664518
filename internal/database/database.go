package database

import (
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/config"
)

func Connect() (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", config.DBDSN())
	if err != nil {
		return nil, err
	}

	// Pool settings
	n := config.DBMaxOpenConns()
	db.SetMaxOpenConns(n)
	db.SetMaxIdleConns(n)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}
