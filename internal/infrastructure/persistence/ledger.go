// Package persistence stores the local deployment history.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// LedgerFileName is the database file inside the home directory.
const LedgerFileName = "deployments.db"

var bucketDeployments = []byte("deployments")

// keyTimeFormat is fixed width so that byte order equals time order.
const keyTimeFormat = "2006-01-02T15:04:05.000000000Z"

// BoltLedger implements ports.DeploymentLedger using BoltDB.
type BoltLedger struct {
	db   *bolt.DB
	path string
}

// OpenLedger opens or creates the ledger at path. The file lock is held until
// Close, so concurrent runs against the same home fail after one second.
func OpenLedger(path string) (*BoltLedger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &WriteError{Path: path, Message: err.Error()}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketDeployments); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketDeployments, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltLedger{db: db, path: path}, nil
}

// Path returns the database file path.
func (l *BoltLedger) Path() string {
	return l.path
}

// Close closes the database.
func (l *BoltLedger) Close() error {
	return l.db.Close()
}

func recordKey(rec *deploy.DeploymentRecord) []byte {
	return []byte(rec.CreatedAt.UTC().Format(keyTimeFormat) + "/" + rec.RunID)
}

// Record stores rec. Records are immutable; writing the same run twice fails.
func (l *BoltLedger) Record(ctx context.Context, rec *deploy.DeploymentRecord) error {
	if rec.RunID == "" {
		return &WriteError{Path: l.path, Message: "record has no run id"}
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDeployments)
		if b == nil {
			return fmt.Errorf("deployments bucket not found")
		}

		key := recordKey(rec)
		if b.Get(key) != nil {
			return &AlreadyExistsError{Key: string(key)}
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// List returns up to limit records, newest first. A limit of zero or less
// returns everything.
func (l *BoltLedger) List(ctx context.Context, limit int) ([]*deploy.DeploymentRecord, error) {
	return l.scan(ctx, limit, func(*deploy.DeploymentRecord) bool { return true })
}

// Latest returns the newest record of the given kind.
func (l *BoltLedger) Latest(ctx context.Context, kind deploy.Kind) (*deploy.DeploymentRecord, error) {
	recs, err := l.scan(ctx, 1, func(r *deploy.DeploymentRecord) bool { return r.Kind == kind })
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, &NotFoundError{Path: l.path, Kind: string(kind)}
	}
	return recs[0], nil
}

func (l *BoltLedger) scan(ctx context.Context, limit int, keep func(*deploy.DeploymentRecord) bool) ([]*deploy.DeploymentRecord, error) {
	var recs []*deploy.DeploymentRecord

	err := l.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDeployments)
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec deploy.DeploymentRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return &ReadError{Path: l.path, Message: fmt.Sprintf("corrupt record %s: %v", k, err)}
			}
			if !keep(&rec) {
				continue
			}
			recs = append(recs, &rec)
			if limit > 0 && len(recs) >= limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}
