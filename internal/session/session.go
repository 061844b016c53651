// Package session opens the data-source connection the editor runs against.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rsql-tui/rsql/internal/config"
	"github.com/rsql-tui/rsql/internal/logger"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrUnsupportedVariant = errors.New("unsupported sql variant")
)

// DialTimeout bounds how long Connect waits for the server.
const DialTimeout = 5 * time.Second

// Variant names an SQL dialect. Only MySQL is supported.
type Variant string

const VariantMySQL Variant = "mysql"

// ParseVariant accepts a variant name case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantMySQL:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedVariant, s)
	}
}

// DbConfig is everything needed to reach a database.
type DbConfig struct {
	Variant  Variant
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// FromConfig converts the [database] config section.
func FromConfig(c config.DatabaseConfig) (DbConfig, error) {
	v, err := ParseVariant(c.Variant)
	if err != nil {
		return DbConfig{}, err
	}
	return DbConfig{
		Variant:  v,
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		Name:     c.Name,
	}, nil
}

// Validate reports the first missing required field.
func (c DbConfig) Validate() error {
	switch {
	case c.User == "":
		return fmt.Errorf("%w: username", ErrMissingField)
	case c.Name == "":
		return fmt.Errorf("%w: db", ErrMissingField)
	case c.Host == "":
		return fmt.Errorf("%w: host", ErrMissingField)
	case c.Port <= 0:
		return fmt.Errorf("%w: port", ErrMissingField)
	}
	if c.Variant != VariantMySQL {
		return fmt.Errorf("%w: %q", ErrUnsupportedVariant, c.Variant)
	}
	return nil
}

// DSN returns the driver connection string.
func (c DbConfig) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Name
	mc.Timeout = DialTimeout
	mc.ParseTime = true
	return mc.FormatDSN()
}

// String describes the target without the password.
func (c DbConfig) String() string {
	return fmt.Sprintf("%s://%s@%s/%s", c.Variant, c.User, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Name)
}

// Session is a live connection handle.
type Session struct {
	cfg DbConfig
	db  *sql.DB
}

// Connect validates cfg, opens the pool and pings the server.
func Connect(ctx context.Context, cfg DbConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(string(cfg.Variant), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", cfg, err)
	}

	logger.Infof("Connected to %s", cfg)
	return &Session{cfg: cfg, db: db}, nil
}

// DB returns the underlying pool.
func (s *Session) DB() *sql.DB {
	return s.db
}

func (s *Session) Config() DbConfig {
	return s.cfg
}

// Close releases the pool.
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	logger.Debugf("Closing session %s", s.cfg)
	return s.db.Close()
}
