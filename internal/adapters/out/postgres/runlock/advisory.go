// Package runlock provides the single-run guard for the performance aggregation.
package runlock

import (
	"context"
	"database/sql"
	"sync"

	"gorm.io/gorm"
)

// AggregationLockKey identifies the aggregation run among Postgres advisory locks.
const AggregationLockKey int64 = 7_301_001

// AdvisoryLocker combines an in-process mutex with a session-level Postgres
// advisory lock, so only one run proceeds per process and across processes.
// The advisory lock lives on a dedicated pooled connection that is held until
// release.
type AdvisoryLocker struct {
	db  *gorm.DB
	key int64
	mu  sync.Mutex
}

func NewAdvisoryLocker(db *gorm.DB, key int64) *AdvisoryLocker {
	return &AdvisoryLocker{db: db, key: key}
}

// TryLock never blocks. ok is false when another run holds either lock.
func (l *AdvisoryLocker) TryLock(ctx context.Context) (func(), bool, error) {
	if !l.mu.TryLock() {
		return nil, false, nil
	}

	conn, acquired, err := l.acquire(ctx)
	if err != nil || !acquired {
		l.mu.Unlock()
		return nil, false, err
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			_, _ = conn.ExecContext(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", l.key)
			_ = conn.Close()
			l.mu.Unlock()
		})
	}
	return release, true, nil
}

func (l *AdvisoryLocker) acquire(ctx context.Context) (*sql.Conn, bool, error) {
	sqlDB, err := l.db.DB()
	if err != nil {
		return nil, false, err
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, false, err
	}

	var acquired bool
	if err = conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", l.key).Scan(&acquired); err != nil {
		_ = conn.Close()
		return nil, false, err
	}
	if !acquired {
		_ = conn.Close()
		return nil, false, nil
	}

	return conn, true, nil
}
