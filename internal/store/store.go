package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// OppKind labels the detector a row came from.
type OppKind string

const (
	KindArb      OppKind = "arb"
	KindValue    OppKind = "value"
	KindMisvalue OppKind = "misvalue"
)

// Opportunity is one detected play, flat enough to query across kinds.
// Edge is the detector's headline number: arb margin, EV, or deviation.
type Opportunity struct {
	ID        string
	Kind      OppKind
	League    string
	Outcome   string
	Book      string
	Price     int
	Edge      float64
	Detail    string
	CreatedAt time.Time
}

// DB handles opportunity storage
type DB struct {
	db *sql.DB
}

// NewDB opens (and if needed creates) the opportunity log at dbPath.
func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS opportunities (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		league TEXT NOT NULL,
		outcome TEXT NOT NULL,
		book TEXT NOT NULL,
		price INTEGER NOT NULL,
		edge REAL NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_opps_kind ON opportunities(kind, created_at);
	CREATE INDEX IF NOT EXISTS idx_opps_outcome ON opportunities(outcome, book);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// Add records a detected opportunity.
func (d *DB) Add(opp Opportunity) error {
	createdAt := opp.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := d.db.Exec(`
		INSERT INTO opportunities (id, kind, league, outcome, book, price, edge, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, opp.ID, string(opp.Kind), opp.League, opp.Outcome, opp.Book, opp.Price, opp.Edge, opp.Detail, createdAt)
	if err != nil {
		return fmt.Errorf("inserting opportunity: %w", err)
	}
	return nil
}

// Get retrieves an opportunity by ID, nil when absent.
func (d *DB) Get(id string) (*Opportunity, error) {
	row := d.db.QueryRow(`
		SELECT id, kind, league, outcome, book, price, edge, detail, created_at
		FROM opportunities WHERE id = ?
	`, id)

	var opp Opportunity
	var kind string
	err := row.Scan(&opp.ID, &kind, &opp.League, &opp.Outcome, &opp.Book,
		&opp.Price, &opp.Edge, &opp.Detail, &opp.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning opportunity: %w", err)
	}
	opp.Kind = OppKind(kind)

	return &opp, nil
}

// Recent retrieves opportunities of one kind logged since the cutoff,
// newest first.
func (d *DB) Recent(kind OppKind, since time.Time) ([]Opportunity, error) {
	rows, err := d.db.Query(`
		SELECT id, kind, league, outcome, book, price, edge, detail, created_at
		FROM opportunities
		WHERE kind = ? AND created_at >= ?
		ORDER BY created_at DESC
	`, string(kind), since)
	if err != nil {
		return nil, fmt.Errorf("querying opportunities: %w", err)
	}
	defer rows.Close()

	return scanOpportunities(rows)
}

// ByOutcome retrieves the history for one outcome at one book, newest
// first.
func (d *DB) ByOutcome(outcome, book string) ([]Opportunity, error) {
	rows, err := d.db.Query(`
		SELECT id, kind, league, outcome, book, price, edge, detail, created_at
		FROM opportunities
		WHERE outcome = ? AND book = ?
		ORDER BY created_at DESC
	`, outcome, book)
	if err != nil {
		return nil, fmt.Errorf("querying opportunities by outcome: %w", err)
	}
	defer rows.Close()

	return scanOpportunities(rows)
}

func scanOpportunities(rows *sql.Rows) ([]Opportunity, error) {
	var opps []Opportunity
	for rows.Next() {
		var opp Opportunity
		var kind string
		if err := rows.Scan(&opp.ID, &kind, &opp.League, &opp.Outcome, &opp.Book,
			&opp.Price, &opp.Edge, &opp.Detail, &opp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning opportunity row: %w", err)
		}
		opp.Kind = OppKind(kind)
		opps = append(opps, opp)
	}

	return opps, rows.Err()
}

// Prune deletes rows older than the cutoff and reports how many went.
func (d *DB) Prune(before time.Time) (int64, error) {
	result, err := d.db.Exec("DELETE FROM opportunities WHERE created_at < ?", before)
	if err != nil {
		return 0, fmt.Errorf("pruning opportunities: %w", err)
	}
	return result.RowsAffected()
}
