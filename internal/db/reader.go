package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/michaelscutari/dutop/internal/entry"
	"github.com/michaelscutari/dutop/internal/pathutil"
)

// ErrScanNotFound is returned when a scan ID does not exist.
var ErrScanNotFound = errors.New("scan not found")

const selectScanColumns = `id, root_path, scanned_at, duration_ms, total_size, entry_count`

// ListScans returns saved scans, newest first. An empty root lists every
// root; limit <= 0 means no limit.
func ListScans(ctx context.Context, db *sql.DB, root string, limit int) ([]entry.ScanMeta, error) {
	query := `SELECT ` + selectScanColumns + ` FROM scans`
	var args []any
	if root != "" {
		query += ` WHERE root_path = ?`
		args = append(args, pathutil.Normalize(root))
	}
	query += ` ORDER BY scanned_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var scans []entry.ScanMeta
	for rows.Next() {
		m, err := scanMeta(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, m)
	}
	return scans, rows.Err()
}

// LoadScan returns a saved scan with its entries in ranked order.
func LoadScan(ctx context.Context, db *sql.DB, id int64) (entry.ScanMeta, entry.Inventory, error) {
	row := db.QueryRowContext(ctx, `SELECT `+selectScanColumns+` FROM scans WHERE id = ?`, id)
	meta, err := scanMeta(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entry.ScanMeta{}, entry.Inventory{}, fmt.Errorf("%w: %d", ErrScanNotFound, id)
	}
	if err != nil {
		return entry.ScanMeta{}, entry.Inventory{}, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT path, name, size, kind FROM scan_entries
		WHERE scan_id = ? ORDER BY position ASC
	`, id)
	if err != nil {
		return entry.ScanMeta{}, entry.Inventory{}, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	inv := entry.Inventory{Entries: make([]entry.Entry, 0, meta.EntryCount), TotalSize: meta.TotalSize}
	for rows.Next() {
		var e entry.Entry
		var size int64
		if err := rows.Scan(&e.Path, &e.Name, &size, &e.Kind); err != nil {
			return entry.ScanMeta{}, entry.Inventory{}, fmt.Errorf("scan failed: %w", err)
		}
		e.Size = uint64(size)
		e.IsDir = e.Kind == entry.KindDir
		inv.Entries = append(inv.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return entry.ScanMeta{}, entry.Inventory{}, err
	}

	return meta, inv, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeta(row rowScanner) (entry.ScanMeta, error) {
	var m entry.ScanMeta
	var scannedAt, durationMs, totalSize int64
	if err := row.Scan(&m.ID, &m.RootPath, &scannedAt, &durationMs, &totalSize, &m.EntryCount); err != nil {
		return entry.ScanMeta{}, err
	}
	m.ScannedAt = time.Unix(scannedAt, 0)
	m.Duration = time.Duration(durationMs) * time.Millisecond
	m.TotalSize = uint64(totalSize)
	return m, nil
}
