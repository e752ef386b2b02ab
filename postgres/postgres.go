package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	DBName   string
	DBUser   string
	Password string
	Host     string
	Port     string
	SSLMode  bool
}

func (opts Options) dsn() string {
	sslmode := "disable"
	if opts.SSLMode {
		sslmode = "require"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		opts.Host, opts.Port, opts.DBUser, opts.Password, opts.DBName, sslmode,
	)
}

func NewConnection(opts Options) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(opts.dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// OpenDB opens a plain database/sql handle through lib/pq. Migrations run on it.
func OpenDB(opts Options) (*sql.DB, error) {
	db, err := sql.Open("postgres", opts.dsn())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// sqlState extracts the SQLSTATE code from driver errors of both pgx and lib/pq.
func sqlState(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	return "", ""
}

func isUniqueViolation(err error, constraint string) bool {
	code, name := sqlState(err)
	return code == pgerrcode.UniqueViolation && name == constraint
}

func isForeignKeyViolation(err error) bool {
	code, _ := sqlState(err)
	return code == pgerrcode.ForeignKeyViolation
}
