// --- examportal-server/db/db.go ---
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite

	"examportal-server/models"
	"examportal-server/utils"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open opens the database and verifies the connection.
func Open(driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	conn, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Printf("Connected to %s database", driver)
	return conn, nil
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS admin (
	username TEXT PRIMARY KEY,
	password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT NOT NULL,
	option1 TEXT NOT NULL,
	option2 TEXT NOT NULL,
	option3 TEXT NOT NULL,
	option4 TEXT NOT NULL,
	correct_option INTEGER NOT NULL,
	marks INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	student TEXT NOT NULL,
	score INTEGER NOT NULL,
	total INTEGER NOT NULL,
	submitted_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	student TEXT NOT NULL,
	action TEXT NOT NULL,
	time INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS admin (
	username VARCHAR(255) PRIMARY KEY,
	password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
	id SERIAL PRIMARY KEY,
	question TEXT NOT NULL,
	option1 TEXT NOT NULL,
	option2 TEXT NOT NULL,
	option3 TEXT NOT NULL,
	option4 TEXT NOT NULL,
	correct_option INT NOT NULL,
	marks INT NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	id SERIAL PRIMARY KEY,
	student TEXT NOT NULL,
	score INT NOT NULL,
	total INT NOT NULL,
	submitted_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
	id SERIAL PRIMARY KEY,
	student TEXT NOT NULL,
	action TEXT NOT NULL,
	time BIGINT NOT NULL
);
`

// InitSchema creates the four tables if absent and seeds the default admin
// credential. Safe to call on every startup.
func InitSchema(conn *sql.DB, driver, adminUser, adminPass string) error {
	schema := schemaSQLite
	if driver == DriverPostgres {
		schema = schemaPostgres
	}
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	_, err := conn.Exec(`
		INSERT INTO admin (username, password) VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`, adminUser, adminPass)
	if err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}
	return nil
}

// FindAdmin looks up an admin credential by exact username and password match.
// Returns nil when no row matches. Comparison is plaintext on purpose: the
// portal stores credentials unhashed and the login form is compared as-is.
func FindAdmin(conn *sql.DB, username, password string) (*models.AdminCredential, error) {
	var cred models.AdminCredential
	err := conn.QueryRow(`
		SELECT username, password FROM admin WHERE username = $1 AND password = $2
	`, username, password).Scan(&cred.Username, &cred.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query admin credential: %w", err)
	}
	return &cred, nil
}

// ListQuestions returns the full question bank in insertion order.
func ListQuestions(conn *sql.DB) ([]models.Question, error) {
	rows, err := conn.Query(`
		SELECT id, question, option1, option2, option3, option4, correct_option, marks
		FROM questions ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(
			&q.ID, &q.Text, &q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3],
			&q.CorrectOption, &q.Marks,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ScoringFields returns the grading projection of the bank: id, correct option
// and marks per question, in insertion order.
func ScoringFields(conn *sql.DB) ([]models.ScoringField, error) {
	rows, err := conn.Query(`SELECT id, correct_option, marks FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scoring fields: %w", err)
	}
	defer rows.Close()

	var fields []models.ScoringField
	for rows.Next() {
		var f models.ScoringField
		if err := rows.Scan(&f.ID, &f.CorrectOption, &f.Marks); err != nil {
			return nil, fmt.Errorf("failed to scan scoring field row: %w", err)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// InsertQuestion adds a question to the bank and returns its assigned id.
func InsertQuestion(conn *sql.DB, q models.Question) (int, error) {
	var id int
	err := conn.QueryRow(`
		INSERT INTO questions (question, option1, option2, option3, option4, correct_option, marks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, q.Text, q.Options[0], q.Options[1], q.Options[2], q.Options[3], q.CorrectOption, q.Marks).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert question: %w", err)
	}
	return id, nil
}

// DeleteQuestion removes a question by id. Deleting an id that does not exist
// is a no-op, not an error.
func DeleteQuestion(conn *sql.DB, id int) error {
	if _, err := conn.Exec(`DELETE FROM questions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	return nil
}

// QuestionTextExists reports whether a question with the exact text is already
// in the bank. Used by seeding to avoid duplicate imports.
func QuestionTextExists(conn *sql.DB, text string) (bool, error) {
	var one int
	err := conn.QueryRow(`SELECT 1 FROM questions WHERE question = $1`, text).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check question text: %w", err)
	}
	return true, nil
}

// InsertResult records one graded submission.
func InsertResult(conn *sql.DB, r models.Result) error {
	_, err := conn.Exec(`
		INSERT INTO results (student, score, total, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, r.Student, r.Score, r.Total, r.SubmittedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// LogAttempt appends an entry to the attempt audit trail. Failures are logged
// and swallowed so the audit trail never fails the request that produced it.
func LogAttempt(conn *sql.DB, student, action string) {
	_, err := conn.Exec(`
		INSERT INTO attempts (student, action, time) VALUES ($1, $2, $3)
	`, student, action, time.Now().Unix())
	if err != nil {
		log.Printf("ERROR: Failed to log attempt to database: %v. Event: %s by %s", err, action, student)
	}
}

// ListAttempts returns the audit trail in insertion order. No handler reads it
// today; it exists for future reporting and for tests.
func ListAttempts(conn *sql.DB) ([]models.AttemptLogEntry, error) {
	rows, err := conn.Query(`SELECT student, action, time FROM attempts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var entries []models.AttemptLogEntry
	for rows.Next() {
		var e models.AttemptLogEntry
		var ts int64
		if err := rows.Scan(&e.Student, &e.Action, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan attempt row: %w", err)
		}
		e.Time = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanResults(rows *sql.Rows) ([]models.Result, error) {
	var results []models.Result
	for rows.Next() {
		var r models.Result
		var ts int64
		if err := rows.Scan(&r.Student, &r.Score, &r.Total, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		r.SubmittedAt = time.Unix(ts, 0)
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListResults returns every result in submission order.
func ListResults(conn *sql.DB) ([]models.Result, error) {
	rows, err := conn.Query(`SELECT student, score, total, submitted_at FROM results ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// ResultsFor returns one student's results in submission order.
func ResultsFor(conn *sql.DB, student string) ([]models.Result, error) {
	rows, err := conn.Query(`
		SELECT student, score, total, submitted_at FROM results
		WHERE student = $1 ORDER BY id
	`, student)
	if err != nil {
		return nil, fmt.Errorf("failed to query results for %s: %w", student, err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// Leaderboard returns all results ranked by score descending. Ties keep
// submission order (earlier submission first).
func Leaderboard(conn *sql.DB) ([]models.LeaderboardRow, error) {
	rows, err := conn.Query(`
		SELECT student, score, total FROM results ORDER BY score DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var leaders []models.LeaderboardRow
	for rows.Next() {
		var row models.LeaderboardRow
		if err := rows.Scan(&row.Student, &row.Score, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		leaders = append(leaders, row)
	}
	return leaders, rows.Err()
}

// AggregateResults computes the dashboard analytics: result count, highest
// score and average score rounded to 2 decimals, all zero when no results.
func AggregateResults(conn *sql.DB) (models.Aggregate, error) {
	var agg models.Aggregate
	var avg sql.NullFloat64
	err := conn.QueryRow(`
		SELECT COUNT(*), COALESCE(MAX(score), 0), AVG(score) FROM results
	`).Scan(&agg.Count, &agg.Highest, &avg)
	if err != nil {
		return models.Aggregate{}, fmt.Errorf("failed to query aggregate stats: %w", err)
	}
	if avg.Valid {
		agg.Average = utils.Round2(avg.Float64)
	}
	return agg, nil
}
