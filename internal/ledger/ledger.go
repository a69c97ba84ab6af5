// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/tourism-pipeline/internal/logging"
)

// ErrClosed is returned by operations on a closed ledger.
var ErrClosed = errors.New("ledger is closed")

// keyPrefix namespaces upload records.
const keyPrefix = "upload:"

// Entry records one file published to a repository.
type Entry struct {
	RepoID     string    `json:"repo_id"`
	Path       string    `json:"path"` // path in the repository
	SHA256     string    `json:"sha256"`
	Size       int64     `json:"size"`
	CommitOID  string    `json:"commit_oid"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Ledger is a persistent record of published files, used to skip files
// that were already uploaded with the same content when a batch is re-run.
type Ledger struct {
	db     *badger.DB
	mu     sync.RWMutex
	closed bool
}

// Open opens or creates a ledger in dir.
func Open(dir string) (*Ledger, error) {
	opts := badger.DefaultOptions(dir)
	opts.SyncWrites = true

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	logging.Debug().Str("path", dir).Msg("Upload ledger opened")
	return &Ledger{db: db}, nil
}

// OpenInMemory opens a ledger that is discarded on Close.
func OpenInMemory() (*Ledger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory ledger: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the database.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.db.Close()
}

func (l *Ledger) checkNotClosed() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrClosed
	}
	return nil
}

func entryKey(repoID, path string) []byte {
	return []byte(keyPrefix + repoID + "\x00" + path)
}

// Lookup returns the record for a file, or nil when there is none.
func (l *Ledger) Lookup(ctx context.Context, repoID, path string) (*Entry, error) {
	if err := l.checkNotClosed(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entry *Entry
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKey(repoID, path))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			entry = &Entry{}
			return json.Unmarshal(val, entry)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("lookup %s/%s: %w", repoID, path, err)
	}
	return entry, nil
}

// Published reports whether path was already uploaded to repoID with the
// given content hash.
func (l *Ledger) Published(ctx context.Context, repoID, path, sha string) (bool, error) {
	entry, err := l.Lookup(ctx, repoID, path)
	if err != nil {
		return false, err
	}
	return entry != nil && entry.SHA256 == sha, nil
}

// Record stores or replaces the record for e.RepoID and e.Path.
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	if err := l.checkNotClosed(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.UploadedAt.IsZero() {
		e.UploadedAt = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal ledger entry: %w", err)
	}
	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(entryKey(e.RepoID, e.Path), data))
	})
	if err != nil {
		return fmt.Errorf("record %s/%s: %w", e.RepoID, e.Path, err)
	}
	return nil
}

// Entries returns every record for repoID ordered by path.
func (l *Ledger) Entries(ctx context.Context, repoID string) ([]Entry, error) {
	if err := l.checkNotClosed(); err != nil {
		return nil, err
	}

	var entries []Entry
	prefix := []byte(keyPrefix + repoID + "\x00")
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list entries for %s: %w", repoID, err)
	}
	return entries, nil
}

// HashFile returns the hex SHA-256 and size of a file.
func HashFile(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()

	h := sha256.New()
	n, err := io.Copy(h, file)
	if err != nil {
		return "", 0, fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
