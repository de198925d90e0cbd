package ingestion

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"examportal-server/db"
)

const seedYAML = `questions:
  - question: "Which planet is closest to the sun?"
    options: ["Venus", "Mercury", "Earth", "Mars"]
    correct: 2
    marks: 3
  - question: "How many bits in a byte?"
    options: ["4", "8", "16", "32"]
    correct: 2
    marks: 1
`

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	if err := db.InitSchema(conn, db.DriverSQLite, "admin", "admin123"); err != nil {
		t.Fatalf("initializing schema: %v", err)
	}
	return conn
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing seed file: %v", err)
	}
	return path
}

func TestSeedFromFile(t *testing.T) {
	conn := newTestDB(t)
	path := writeSeedFile(t, seedYAML)

	added, err := SeedFromFile(conn, path)
	if err != nil {
		t.Fatalf("SeedFromFile returned error: %v", err)
	}
	if added != 2 {
		t.Errorf("SeedFromFile added %d questions, want 2", added)
	}

	questions, err := db.ListQuestions(conn)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("bank has %d questions after seed, want 2", len(questions))
	}
	if questions[0].CorrectOption != 2 || questions[0].Marks != 3 {
		t.Errorf("first seeded question = %+v, want correct 2 marks 3", questions[0])
	}
}

func TestSeedFromFileIsIdempotent(t *testing.T) {
	conn := newTestDB(t)
	path := writeSeedFile(t, seedYAML)

	if _, err := SeedFromFile(conn, path); err != nil {
		t.Fatalf("first SeedFromFile returned error: %v", err)
	}
	added, err := SeedFromFile(conn, path)
	if err != nil {
		t.Fatalf("second SeedFromFile returned error: %v", err)
	}
	if added != 0 {
		t.Errorf("second seed added %d questions, want 0", added)
	}

	questions, err := db.ListQuestions(conn)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("bank has %d questions after double seed, want 2", len(questions))
	}
}

func TestSeedFromFileValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"correct option out of range", `questions:
  - question: "bad"
    options: ["a", "b", "c", "d"]
    correct: 5
    marks: 1
`},
		{"wrong option count", `questions:
  - question: "bad"
    options: ["a", "b"]
    correct: 1
    marks: 1
`},
		{"negative marks", `questions:
  - question: "bad"
    options: ["a", "b", "c", "d"]
    correct: 1
    marks: -2
`},
		{"empty question text", `questions:
  - question: ""
    options: ["a", "b", "c", "d"]
    correct: 1
    marks: 1
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := newTestDB(t)
			path := writeSeedFile(t, tt.yaml)

			if _, err := SeedFromFile(conn, path); err == nil {
				t.Fatal("SeedFromFile accepted an invalid seed question")
			}
			questions, err := db.ListQuestions(conn)
			if err != nil {
				t.Fatalf("ListQuestions: %v", err)
			}
			if len(questions) != 0 {
				t.Errorf("invalid seed inserted %d questions", len(questions))
			}
		})
	}
}

func TestSeedFromFileMissingFile(t *testing.T) {
	conn := newTestDB(t)
	if _, err := SeedFromFile(conn, filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("SeedFromFile of a missing file returned no error")
	}
}
