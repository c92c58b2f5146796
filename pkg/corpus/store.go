package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// SetupSchema initializes the corpus table in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const schemaDocuments = `
CREATE TABLE IF NOT EXISTS corpus_documents (
    doc_id INTEGER PRIMARY KEY,
    doc_name TEXT NOT NULL UNIQUE,
    doc_text TEXT NOT NULL,
    token_count INTEGER NOT NULL,
    added_at INTEGER NOT NULL
);
`

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaDocuments); err != nil {
		return fmt.Errorf("could not create corpus schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Document holds the metadata of a stored corpus.
type Document struct {
	Id         int
	Name       string
	TokenCount int
	AddedAt    time.Time
}

// Store is a library of named corpora kept in a SQLite database.
type Store struct {
	db         *sql.DB
	stmtPut    *sql.Stmt
	stmtGet    *sql.Stmt
	stmtList   *sql.Stmt
	stmtRemove *sql.Stmt
	logger     *slog.Logger
}

// NewStore prepares the statements used by the Store. SetupSchema must have
// been called on db beforehand.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	err := prepareAll(db, []preparedStmt{
		{&s.stmtPut, `INSERT INTO corpus_documents (doc_name, doc_text, token_count, added_at) VALUES (?, ?, ?, ?)
ON CONFLICT(doc_name) DO UPDATE SET doc_text = excluded.doc_text, token_count = excluded.token_count, added_at = excluded.added_at
RETURNING doc_id;`},
		{&s.stmtGet, `SELECT doc_text FROM corpus_documents WHERE doc_name = ?;`},
		{&s.stmtList, `SELECT doc_id, doc_name, token_count, added_at FROM corpus_documents ORDER BY doc_name;`},
		{&s.stmtRemove, `DELETE FROM corpus_documents WHERE doc_name = ?;`},
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// preparedStmt pairs a query with the field that receives its statement.
type preparedStmt struct {
	dst   **sql.Stmt
	query string
}

// prepareAll prepares every query in order. On failure the statements
// prepared so far are closed before the error is returned.
func prepareAll(db *sql.DB, stmts []preparedStmt) error {
	for i, p := range stmts {
		stmt, err := db.Prepare(p.query)
		if err != nil {
			for _, done := range stmts[:i] {
				_ = (*done.dst).Close()
			}
			return fmt.Errorf("could not prepare statement: %w", err)
		}
		*p.dst = stmt
	}
	return nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtPut.Close()
	_ = s.stmtGet.Close()
	_ = s.stmtList.Close()
	_ = s.stmtRemove.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Put stores text under name, replacing any corpus already stored with that name.
func (s *Store) Put(ctx context.Context, name, text string) (Document, error) {
	if name == "" {
		return Document{}, fmt.Errorf("corpus name must not be empty")
	}

	doc := Document{
		Name:       name,
		TokenCount: len(strings.Fields(text)),
		AddedAt:    time.Now().UTC().Truncate(time.Second),
	}
	err := s.stmtPut.QueryRowContext(ctx, name, text, doc.TokenCount, doc.AddedAt.Unix()).Scan(&doc.Id)
	if err != nil {
		return Document{}, fmt.Errorf("could not store corpus '%s': %w", name, err)
	}

	s.logger.InfoContext(ctx, "Corpus stored",
		slog.String("corpus_name", name),
		slog.Int("corpus_id", doc.Id),
		slog.Int("tokens", doc.TokenCount),
	)
	return doc, nil
}

// Get returns the text stored under name. If no such corpus exists the error
// is sql.ErrNoRows.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	var text string
	if err := s.stmtGet.QueryRowContext(ctx, name).Scan(&text); err != nil {
		return "", err
	}
	return text, nil
}

// List returns the metadata of every stored corpus, sorted by name.
func (s *Store) List(ctx context.Context) ([]Document, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var docs []Document
	for rows.Next() {
		var doc Document
		var addedAt int64
		if err = rows.Scan(&doc.Id, &doc.Name, &doc.TokenCount, &addedAt); err != nil {
			return nil, err
		}
		doc.AddedAt = time.Unix(addedAt, 0).UTC()
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Remove deletes the corpus stored under name. It returns sql.ErrNoRows if
// nothing was stored under that name.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.stmtRemove.ExecContext(ctx, name)
	if err != nil {
		return fmt.Errorf("could not remove corpus '%s': %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not count removed rows for corpus '%s': %w", name, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	s.logger.InfoContext(ctx, "Corpus removed", slog.String("corpus_name", name))
	return nil
}
