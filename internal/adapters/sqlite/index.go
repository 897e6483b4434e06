package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"flowboard/internal/domain"
	"flowboard/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// Index implements ports.TaskIndex using SQLite
type Index struct {
	db           *sql.DB
	workspaceDir string
	dbPath       string
}

// Ensure Index implements TaskIndex
var _ ports.TaskIndex = (*Index)(nil)

// NewIndex creates a new SQLite index
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index for the given workspace directory
func (idx *Index) Open(workspaceDir string) error {
	// Expand ~ in path
	if len(workspaceDir) > 0 && workspaceDir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		workspaceDir = filepath.Join(home, workspaceDir[1:])
	}

	idx.workspaceDir = workspaceDir
	idx.dbPath = databasePath(workspaceDir)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite3", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			label TEXT NOT NULL,
			status TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS edges (
			task_id TEXT NOT NULL,
			source_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			PRIMARY KEY (source_id, target_id)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_task ON nodes(task_id);
		CREATE INDEX IF NOT EXISTS idx_nodes_label ON nodes(label);
		CREATE INDEX IF NOT EXISTS idx_edges_task ON edges(task_id);
		CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id);
		CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_id);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	// Update metadata
	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// databasePath returns the path for the SQLite database
func databasePath(workspaceDir string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	// Hash workspace path for unique DB name
	hash := hashWorkspacePath(workspaceDir)

	return filepath.Join(dataHome, "flowboard", hash+".db")
}

// hashWorkspacePath returns a short hash of the workspace path
func hashWorkspacePath(workspaceDir string) string {
	h := sha256.Sum256([]byte(workspaceDir))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// updateMeta updates the schema version and workspace path hash
func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('workspace_hash', ?);
	`, schemaVersion, hashWorkspacePath(idx.workspaceDir))
	return err
}

// SearchNodes finds nodes whose label matches the query, across tasks
func (idx *Index) SearchNodes(query string) ([]domain.NodeHit, error) {
	rows, err := idx.db.Query(`
		SELECT n.id, n.task_id, n.label, n.status, t.title
		FROM nodes n
		JOIN tasks t ON t.id = n.task_id
		WHERE n.label LIKE '%' || ? || '%'
		ORDER BY t.title, n.label
	`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []domain.NodeHit
	for rows.Next() {
		var hit domain.NodeHit
		var status string
		if err := rows.Scan(&hit.NodeID, &hit.TaskID, &hit.Label, &status, &hit.TaskTitle); err != nil {
			return nil, err
		}
		hit.Status = domain.Status(status)
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

// FindEdgesTo returns all cached edges pointing at a node
func (idx *Index) FindEdgesTo(nodeID string) ([]domain.IndexedEdge, error) {
	return idx.queryEdges(`SELECT task_id, source_id, target_id FROM edges WHERE target_id = ?`, nodeID)
}

// FindEdgesFrom returns all cached edges leaving a node
func (idx *Index) FindEdgesFrom(nodeID string) ([]domain.IndexedEdge, error) {
	return idx.queryEdges(`SELECT task_id, source_id, target_id FROM edges WHERE source_id = ?`, nodeID)
}

func (idx *Index) queryEdges(query string, arg any) ([]domain.IndexedEdge, error) {
	rows, err := idx.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []domain.IndexedEdge
	for rows.Next() {
		var e domain.IndexedEdge
		if err := rows.Scan(&e.TaskID, &e.SourceID, &e.TargetID); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// Stats returns row counts for diagnostics
func (idx *Index) Stats() (tasks, nodes, edges int, err error) {
	if err = idx.db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&tasks); err != nil {
		return
	}
	if err = idx.db.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&nodes); err != nil {
		return
	}
	err = idx.db.QueryRow(`SELECT COUNT(*) FROM edges`).Scan(&edges)
	return
}
