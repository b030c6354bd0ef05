package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront-orders/internal/interfaces"
	"storefront-orders/internal/metrics"
	"storefront-orders/models"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var _ interfaces.BackupStore = (*BackupStore)(nil)

// BackupStore keeps failure backups in a failed_orders table. Rows are only
// ever inserted; reading them back is an ops task.
type BackupStore struct {
	Conn   *sql.DB
	driver string
}

// Open connects to the backup database and pings it.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown backup driver %q", driver)
	}
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if driver == DriverSQLite {
		// sqlite не любит параллельную запись
		conn.SetMaxOpenConns(1)
	}
	return conn, nil
}

func NewBackupStore(conn *sql.DB, driver string) *BackupStore {
	return &BackupStore{Conn: conn, driver: driver}
}

func (s *BackupStore) Close() error {
	return s.Conn.Close()
}

func (s *BackupStore) SaveFailedOrder(ctx context.Context, key string, backup *models.FailureBackup) error {
	if backup == nil {
		return fmt.Errorf("backup %s is nil", key)
	}
	payload, err := json.Marshal(backup)
	if err != nil {
		metrics.BackupWrites.WithLabelValues("sql", "error").Inc()
		return fmt.Errorf("encode backup %s: %w", key, err)
	}

	query := `INSERT INTO failed_orders(backup_key, reason, payload, created_at) VALUES($1, $2, $3, $4)`
	if s.driver == DriverSQLite {
		query = `INSERT INTO failed_orders(backup_key, reason, payload, created_at) VALUES(?, ?, ?, ?)`
	}

	if _, err := s.Conn.ExecContext(ctx, query, key, backup.Reason, string(payload), backup.Timestamp.UTC()); err != nil {
		metrics.BackupWrites.WithLabelValues("sql", "error").Inc()
		return fmt.Errorf("save backup %s: %w", key, err)
	}
	metrics.BackupWrites.WithLabelValues("sql", "success").Inc()
	return nil
}

// KeyGenerator produces failed_order_{epoch-millis} keys that strictly increase
// even when several failures happen within the same millisecond.
type KeyGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{now: time.Now}
}

func (g *KeyGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("%s%d", models.FailureBackupPrefix, ms)
}

// Tee writes every backup to all stores. Each store is tried even if an
// earlier one failed; the errors are joined.
type Tee []interfaces.BackupStore

func (t Tee) SaveFailedOrder(ctx context.Context, key string, backup *models.FailureBackup) error {
	var errs []error
	for _, store := range t {
		if store == nil {
			continue
		}
		if err := store.SaveFailedOrder(ctx, key, backup); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
