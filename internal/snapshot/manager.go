package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/michaelscutari/dutop/internal/db"
	"github.com/michaelscutari/dutop/internal/entry"
	"github.com/michaelscutari/dutop/internal/pathutil"

	_ "modernc.org/sqlite"
)

// Manager saves scans into the history database, holding an exclusive
// lock for the duration of each write and enforcing per-root retention.
type Manager struct {
	dbPath    string
	retention int
	lockFile  *os.File
	log       logr.Logger
}

// NewManager creates a new snapshot manager. retention <= 0 keeps every scan.
func NewManager(dbPath string, retention int) *Manager {
	return &Manager{
		dbPath:    dbPath,
		retention: retention,
		log:       logr.Discard(),
	}
}

// SetLogger sets the logger used for warnings and save events.
func (m *Manager) SetLogger(log logr.Logger) {
	m.log = log.WithName("snapshot")
}

// Path returns the history database location.
func (m *Manager) Path() string {
	return m.dbPath
}

// Save stores one scan of root and prunes older scans of the same root.
func (m *Manager) Save(ctx context.Context, meta entry.ScanMeta, inv entry.Inventory) (int64, error) {
	dir := filepath.Dir(m.dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create history directory: %w", err)
	}

	if err := m.acquireLock(); err != nil {
		return 0, fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer m.releaseLock()

	database, err := sql.Open("sqlite", m.dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := db.ApplyWritePragmas(database); err != nil {
		return 0, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := db.InitSchema(database); err != nil {
		return 0, fmt.Errorf("failed to initialize schema: %w", err)
	}

	meta.RootPath = pathutil.Normalize(meta.RootPath)
	id, err := db.SaveScan(ctx, database, meta, inv)
	if err != nil {
		return 0, err
	}
	m.log.V(1).Info("saved scan", "id", id, "root", meta.RootPath, "entries", inv.Len())

	if removed, err := db.PruneScans(ctx, database, meta.RootPath, m.retention); err != nil {
		m.log.Error(err, "failed to prune old scans", "root", meta.RootPath)
	} else if removed > 0 {
		m.log.V(1).Info("pruned old scans", "root", meta.RootPath, "removed", removed)
	}

	return id, nil
}

// Open opens the history database for read-only queries.
func (m *Manager) Open() (*sql.DB, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return nil, fmt.Errorf("no saved scans at %s: %w", m.dbPath, err)
	}

	database, err := sql.Open("sqlite", m.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.ApplyReadPragmas(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	return database, nil
}

func (m *Manager) lockPath() string {
	return m.dbPath + ".lock"
}

func (m *Manager) releaseLock() {
	if m.lockFile != nil {
		unlockFile(m.lockFile)
		m.lockFile.Close()
		m.lockFile = nil
	}
}

func (m *Manager) acquireLock() error {
	f, err := os.OpenFile(m.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return fmt.Errorf("another save is in progress")
	}
	m.lockFile = f
	return nil
}
