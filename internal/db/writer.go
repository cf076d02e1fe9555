package db

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/michaelscutari/dutop/internal/entry"
)

const insertScanSQL = `INSERT INTO scans (root_path, scanned_at, duration_ms, total_size, entry_count) VALUES (?, ?, ?, ?, ?)`
const insertScanEntrySQL = `INSERT INTO scan_entries (scan_id, position, path, name, size, kind) VALUES (?, ?, ?, ?, ?, ?)`

// SaveScan stores an inventory and its metadata in one transaction and
// returns the new scan ID. Entry positions preserve the ranking.
func SaveScan(ctx context.Context, db *sql.DB, meta entry.ScanMeta, inv entry.Inventory) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertScanSQL,
		meta.RootPath,
		meta.ScannedAt.Unix(),
		meta.Duration.Milliseconds(),
		clampInt64(inv.TotalSize),
		inv.Len(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan: %w", err)
	}
	scanID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read scan id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertScanEntrySQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare entry statement: %w", err)
	}
	defer stmt.Close()

	for i, e := range inv.Entries {
		if _, err := stmt.ExecContext(ctx, scanID, i, e.Path, e.Name, clampInt64(e.Size), e.Kind); err != nil {
			return 0, fmt.Errorf("failed to insert entry %s: %w", e.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit scan: %w", err)
	}
	return scanID, nil
}

// PruneScans deletes the oldest scans of root so that at most keep remain.
// keep <= 0 disables pruning. It returns the number of scans removed.
func PruneScans(ctx context.Context, db *sql.DB, root string, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const staleSQL = `
		SELECT id FROM scans WHERE root_path = ?
		ORDER BY scanned_at DESC, id DESC
		LIMIT -1 OFFSET ?
	`
	rows, err := tx.QueryContext(ctx, staleSQL, root, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to find stale scans: %w", err)
	}
	var stale []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to read scan id: %w", err)
		}
		stale = append(stale, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, id := range stale {
		if _, err := tx.ExecContext(ctx, `DELETE FROM scan_entries WHERE scan_id = ?`, id); err != nil {
			return 0, fmt.Errorf("failed to delete entries of scan %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM scans WHERE id = ?`, id); err != nil {
			return 0, fmt.Errorf("failed to delete scan %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune: %w", err)
	}
	return int64(len(stale)), nil
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
