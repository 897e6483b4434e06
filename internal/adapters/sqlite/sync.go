package sqlite

import (
	"fmt"
	"time"

	"flowboard/internal/domain"
)

// SyncTask replaces the cached rows for one task. Delete and reinsert happen
// in a single transaction so queries never observe a half-synced task.
func (idx *Index) SyncTask(task *domain.Task) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{TasksSynced: 1}

	tx, err := idx.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin sync: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM nodes WHERE task_id = ?`, task.ID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil {
		stats.NodesDeleted = int(n)
	}
	res, err = tx.Exec(`DELETE FROM edges WHERE task_id = ?`, task.ID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil {
		stats.EdgesDeleted = int(n)
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO tasks (id, title) VALUES (?, ?)`,
		task.ID, task.Title); err != nil {
		return nil, err
	}

	for _, node := range task.Nodes {
		if _, err := tx.Exec(`
			INSERT INTO nodes (id, task_id, label, status)
			VALUES (?, ?, ?, ?)
		`, node.ID, task.ID, node.Label, string(node.Status)); err != nil {
			return nil, err
		}
		stats.NodesAdded++
	}
	for _, edge := range task.Edges() {
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO edges (task_id, source_id, target_id)
			VALUES (?, ?, ?)
		`, task.ID, edge.SourceID, edge.TargetID); err != nil {
			return nil, err
		}
		stats.EdgesAdded++
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sync: %w", err)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// RemoveTask drops all cached rows for a task
func (idx *Index) RemoveTask(taskID string) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin removal: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM nodes WHERE task_id = ?`,
		`DELETE FROM edges WHERE task_id = ?`,
		`DELETE FROM tasks WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, taskID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
