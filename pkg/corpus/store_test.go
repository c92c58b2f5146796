package corpus

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestStore creates a new SQLite database and a Store for testing.
// It uses t.Cleanup to ensure resources are released.
func setupTestStore(t *testing.T) (*sql.DB, *Store) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}
	// Running it twice must be harmless.
	if err := SetupSchema(db); err != nil {
		t.Fatalf("second SetupSchema() failed: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return db, s
}

func TestPutAndGet(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	doc, err := s.Put(ctx, "greetings", "Hi there. Hi world. ")
	if err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if doc.Id == 0 || doc.Name != "greetings" || doc.TokenCount != 4 {
		t.Errorf("got unexpected document: %+v", doc)
	}

	text, err := s.Get(ctx, "greetings")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if text != "Hi there. Hi world. " {
		t.Errorf("Get() = %q", text)
	}

	_, err = s.Get(ctx, "nonexistent")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for nonexistent corpus, got %v", err)
	}

	if _, err = s.Put(ctx, "", "text"); err == nil {
		t.Error("expected an error for an empty corpus name")
	}
}

func TestPutReplaces(t *testing.T) {
	db, s := setupTestStore(t)
	ctx := context.Background()

	first, err := s.Put(ctx, "doc", "old text")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Put(ctx, "doc", "new text with more words")
	if err != nil {
		t.Fatal(err)
	}
	if first.Id != second.Id {
		t.Errorf("expected replacement to keep id %d, got %d", first.Id, second.Id)
	}

	var count int
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM corpus_documents").Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 stored corpus, found %d", count)
	}

	text, _ := s.Get(ctx, "doc")
	if text != "new text with more words" {
		t.Errorf("expected replaced text, got %q", text)
	}
}

func TestListAndRemove(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	_, _ = s.Put(ctx, "zeta", "z z z")
	_, _ = s.Put(ctx, "alpha", "a")

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 corpora, got %d", len(docs))
	}
	if docs[0].Name != "alpha" || docs[1].Name != "zeta" {
		t.Errorf("expected corpora sorted by name, got %+v", docs)
	}
	if docs[1].TokenCount != 3 || docs[1].AddedAt.IsZero() {
		t.Errorf("unexpected metadata: %+v", docs[1])
	}

	if err = s.Remove(ctx, "alpha"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if err = s.Remove(ctx, "alpha"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows removing a missing corpus, got %v", err)
	}

	docs, _ = s.List(ctx)
	if len(docs) != 1 || docs[0].Name != "zeta" {
		t.Errorf("expected only 'zeta' to remain, got %+v", docs)
	}
}

func TestNewStoreWithoutSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err = NewStore(db); err == nil {
		t.Error("expected NewStore to fail before SetupSchema")
	}
}

func TestPrepareAllClosesOnFailure(t *testing.T) {
	db, _ := setupTestStore(t)

	var good, bad *sql.Stmt
	err := prepareAll(db, []preparedStmt{
		{&good, `SELECT 1;`},
		{&bad, `SELECT * FROM no_such_table;`},
	})
	if err == nil {
		t.Fatal("expected an error for a query on a missing table")
	}
	if bad != nil {
		t.Error("failed statement should not be assigned")
	}
	if good == nil {
		t.Fatal("expected the first statement to have been prepared")
	}
	var one int
	if err = good.QueryRow().Scan(&one); err == nil || !strings.Contains(err.Error(), "statement is closed") {
		t.Errorf("expected the prepared statement to be closed, got %v", err)
	}
}
