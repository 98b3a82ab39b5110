package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/log"
	"github.com/LOOKALIKE-AI/Leads/pkg/models"
	"github.com/LOOKALIKE-AI/Leads/pkg/utils"
)

const (
	domainKeyPrefix = "domain:"  // Prefix for store-domain keys in DB
	leadsDBDir      = "leads_db" // Subdirectory name within stateDir for Badger DB files
)

// BadgerStore implements the LeadStore interface using BadgerDB
type BadgerStore struct {
	db       *badger.DB
	log      *logrus.Entry
	ctx      context.Context // Parent context
	keyCount atomic.Int64    // Cached key count for O(1) ProcessedCount
}

// NewBadgerStore initializes and returns a new BadgerStore
func NewBadgerStore(ctx context.Context, stateDir, batchName string, resume bool, logger *logrus.Entry) (*BadgerStore, error) {
	store := &BadgerStore{
		log: logger,
		ctx: ctx,
	}

	// Create a unique directory path for this batch's DB within the base state directory
	dbDirName := utils.SanitizeFilename(batchName) + "_" + leadsDBDir
	dbPath := filepath.Join(stateDir, dbDirName)

	if !resume {
		logger.Warnf("Resume flag is false. REMOVING existing state directory: %s", dbPath)
		if err := os.RemoveAll(dbPath); err != nil {
			// Log error but attempt to continue; Badger might recover or create new files
			logger.Errorf("Failed to remove existing state directory %s: %v", dbPath, err)
		}
	}

	logger.Infof("Initializing lead database at: %s (Resume: %v)", dbPath, resume)

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("cannot create state directory %s: %w", dbPath, err)
	}

	// Configure Badger options
	badgerLogger := log.NewBadgerLogrusAdapter(logger.WithField("component", "badgerdb"))
	opts := badger.DefaultOptions(dbPath).
		WithLogger(badgerLogger). // Use custom logrus adapter
		WithNumVersionsToKeep(1)  // Only keep the latest state per domain

	// Open the database
	var err error
	store.db, err = badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", dbPath, err)
	}

	// Initialize key count from existing data (matters for resume mode)
	if resume {
		count, err := store.countKeys()
		if err != nil {
			logger.Warnf("Failed to count existing keys on resume: %v", err)
		} else {
			store.keyCount.Store(int64(count))
			logger.Infof("Loaded existing key count on resume: %d", count)
		}
	}

	logger.Info("Lead database initialized successfully.")
	return store, nil
}

// countKeys performs a one-time full key scan (used only during initialization on resume).
func (s *BadgerStore) countKeys() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

const maxConflictRetries = 10

// dbUpdate wraps db.Update with a retry loop for BadgerDB transaction conflicts.
// Concurrent MVCC transactions on overlapping keys can return badger.ErrConflict;
// these resolve in microseconds, so a tight retry loop is sufficient.
func (s *BadgerStore) dbUpdate(fn func(txn *badger.Txn) error) error {
	for i := range maxConflictRetries {
		err := s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		s.log.Debugf("BadgerDB transaction conflict (attempt %d/%d), retrying", i+1, maxConflictRetries)
	}
	return fmt.Errorf("%w: transaction conflict not resolved after %d retries", utils.ErrDatabase, maxConflictRetries)
}

// MarkDomainPending implements the LeadStore interface
func (s *BadgerStore) MarkDomainPending(domain string) (bool, error) {
	if s.db == nil {
		return false, errors.New("leadsDB not initialized")
	}
	added := false
	key := []byte(domainKeyPrefix + domain)

	err := s.dbUpdate(func(txn *badger.Txn) error {
		_, errGet := txn.Get(key)
		if errors.Is(errGet, badger.ErrKeyNotFound) {
			// Key doesn't exist, add it with an empty value.
			e := badger.NewEntry(key, []byte{})
			errSet := txn.SetEntry(e)
			if errSet == nil {
				added = true
			}
			return errSet
		}
		// Key already exists or another error occurred
		return errGet
	})

	if err != nil {
		s.log.WithField("key", string(key)).Errorf("DB Update error in MarkDomainPending: %v", err)
		return false, fmt.Errorf("%w: marking domain key '%s': %w", utils.ErrDatabase, string(key), err)
	}
	if added {
		s.keyCount.Add(1)
	}

	return added, nil
}

// CheckDomain implements the LeadStore interface
func (s *BadgerStore) CheckDomain(domain string) (models.DomainStatus, *models.LeadDBEntry, error) {
	status := models.DomainStatusNotFound
	var entry *models.LeadDBEntry = nil
	key := []byte(domainKeyPrefix + domain)

	errView := s.db.View(func(txn *badger.Txn) error {
		item, errGet := txn.Get(key)
		if errors.Is(errGet, badger.ErrKeyNotFound) {
			status = models.DomainStatusNotFound
			return nil // Key not found is not an error for this function's purpose
		}
		if errGet != nil {
			return fmt.Errorf("%w: failed getting domain key '%s': %w", utils.ErrDatabase, string(key), errGet)
		}

		// Key found, now get the value
		return item.Value(func(val []byte) error {
			if len(val) == 0 {
				status = models.DomainStatusPending // Key exists but has no data yet
				return nil
			}

			var decodedEntry models.LeadDBEntry
			if errJson := json.Unmarshal(val, &decodedEntry); errJson != nil {
				s.log.Warnf("Failed to unmarshal LeadDBEntry for key '%s': %v. Treating as 'pending'.", string(key), errJson)
				status = models.DomainStatusPending
				return nil
			}

			entry = &decodedEntry
			status = decodedEntry.Status
			s.log.Debugf("Domain key '%s' found, decoded status: %s", string(key), status)
			return nil
		})
	})

	if errView != nil {
		s.log.Errorf("DB View error in CheckDomain for key '%s': %v", string(key), errView)
		status = models.DomainStatusDBError
		return status, nil, errView
	}

	return status, entry, nil
}

// UpdateDomain implements the LeadStore interface
func (s *BadgerStore) UpdateDomain(domain string, entry *models.LeadDBEntry) error {
	if s.db == nil {
		return errors.New("leadsDB not initialized")
	}
	key := []byte(domainKeyPrefix + domain)

	entryBytes, errJson := json.Marshal(entry)
	if errJson != nil {
		wrappedErr := fmt.Errorf("%w: failed to marshal LeadDBEntry for key '%s': %w", utils.ErrParsing, string(key), errJson)
		s.log.Error(wrappedErr)
		return wrappedErr
	}

	isNew := false
	err := s.dbUpdate(func(txn *badger.Txn) error {
		_, errGet := txn.Get(key)
		if errors.Is(errGet, badger.ErrKeyNotFound) {
			isNew = true
		}
		e := badger.NewEntry(key, entryBytes)
		return txn.SetEntry(e)
	})

	if err != nil {
		s.log.WithField("key", string(key)).Errorf("DB Update error in UpdateDomain: %v", err)
		return fmt.Errorf("%w: failed setting domain status for key '%s': %w", utils.ErrDatabase, string(key), err)
	}
	if isNew {
		s.keyCount.Add(1)
	}

	s.log.Debugf("Successfully updated domain '%s' to status '%s'", domain, entry.Status)
	return nil
}

// ProcessedCount implements the LeadStore interface.
// Returns the cached key count (O(1)) maintained by atomic increments on writes.
func (s *BadgerStore) ProcessedCount() (int, error) {
	return int(s.keyCount.Load()), nil
}

// CollectLeads implements the LeadStore interface
func (s *BadgerStore) CollectLeads(ctx context.Context) ([]models.ScoredLead, error) {
	var leads []models.ScoredLead
	scanStartTime := time.Now()

	scanErr := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true // Need values to decode entries
		it := txn.NewIterator(opts)
		defer it.Close()

		keyPrefixBytes := []byte(domainKeyPrefix)

		for it.Seek(keyPrefixBytes); it.ValidForPrefix(keyPrefixBytes); it.Next() {
			select {
			case <-ctx.Done():
				s.log.Warnf("Lead scan interrupted by context cancellation: %v", ctx.Err())
				return ctx.Err()
			default:
			}

			item := it.Item()
			keyBytes := item.KeyCopy(nil)
			domain := string(keyBytes[len(keyPrefixBytes):])

			errGetValue := item.Value(func(valBytes []byte) error {
				if len(valBytes) == 0 {
					return nil // Pending entry, nothing to export
				}
				var entry models.LeadDBEntry
				if errJson := json.Unmarshal(valBytes, &entry); errJson != nil {
					s.log.Errorf("Lead scan: failed unmarshal LeadDBEntry for '%s': %v. Skipping.", domain, errJson)
					return nil
				}
				if entry.Status == models.DomainStatusSuccess && entry.Lead != nil {
					leads = append(leads, *entry.Lead)
				}
				return nil
			})
			if errGetValue != nil {
				if errors.Is(errGetValue, context.Canceled) || errors.Is(errGetValue, context.DeadlineExceeded) {
					return errGetValue
				}
				s.log.Errorf("Lead scan: error getting value for domain '%s': %v", domain, errGetValue)
			}
		}
		return nil
	})

	s.log.Infof("Lead scan complete: collected %d leads in %v.", len(leads), time.Since(scanStartTime))
	if scanErr != nil {
		return leads, scanErr
	}
	return leads, nil
}

// RunGC runs BadgerDB's garbage collection periodically
func (s *BadgerStore) RunGC(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute // Default interval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("BadgerDB GC goroutine started.")

	for {
		select {
		case <-ticker.C:
			if s.db == nil || s.db.IsClosed() {
				s.log.Info("DB GC: Database is nil or closed, skipping GC cycle.")
				continue
			}

			s.log.Info("Running BadgerDB value log garbage collection...")
			var err error
			// Loop GC until it returns ErrNoRewrite or another error
			for {
				// Run GC if log is at least 50% reclaimable space
				err = s.db.RunValueLogGC(0.5)
				if err == nil {
					s.log.Info("BadgerDB GC cycle completed.")
				} else {
					break
				}
			}

			if errors.Is(err, badger.ErrNoRewrite) {
				s.log.Info("BadgerDB GC finished (no rewrite needed).")
			} else {
				s.log.Errorf("BadgerDB GC error: %v", err)
			}

		case <-ctx.Done():
			s.log.Infof("Stopping BadgerDB garbage collection goroutine due to context cancellation: %v", ctx.Err())
			return
		}
	}
}

// Close implements the LeadStore interface
func (s *BadgerStore) Close() error {
	if s.db == nil || s.db.IsClosed() {
		return nil
	}
	s.log.Info("Closing lead database...")
	if err := s.db.Close(); err != nil {
		s.log.Errorf("Error closing lead database: %v", err)
		return err
	}
	s.log.Info("Lead database closed.")
	return nil
}
