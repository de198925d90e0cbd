// --- examportal-server/ingestion/ingestion.go ---
package ingestion

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"examportal-server/db"
	"examportal-server/models"
	"examportal-server/utils"
)

// SeedFromFile reads a YAML question seed file and inserts its questions into
// the bank. Questions whose text is already present (in the bank or earlier in
// the same file) are skipped so repeated seeding stays idempotent. Returns the
// number of questions inserted.
func SeedFromFile(conn *sql.DB, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var seed models.SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	added := 0
	var seen []string
	for i, sq := range seed.Questions {
		if err := validateSeedQuestion(sq); err != nil {
			return added, fmt.Errorf("seed question %d: %w", i+1, err)
		}

		if utils.ContainsString(seen, sq.Question) {
			log.Printf("Skipping duplicate seed question: %q", sq.Question)
			continue
		}
		seen = append(seen, sq.Question)

		exists, err := db.QuestionTextExists(conn, sq.Question)
		if err != nil {
			return added, fmt.Errorf("seed question %d: %w", i+1, err)
		}
		if exists {
			log.Printf("Skipping already-imported seed question: %q", sq.Question)
			continue
		}

		q := models.Question{
			Text:          sq.Question,
			Options:       [4]string{sq.Options[0], sq.Options[1], sq.Options[2], sq.Options[3]},
			CorrectOption: sq.Correct,
			Marks:         sq.Marks,
		}
		if _, err := db.InsertQuestion(conn, q); err != nil {
			return added, fmt.Errorf("seed question %d: %w", i+1, err)
		}
		added++
	}
	return added, nil
}

func validateSeedQuestion(sq models.SeedQuestion) error {
	if sq.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(sq.Options) != 4 {
		return fmt.Errorf("expected 4 options, got %d", len(sq.Options))
	}
	for i, opt := range sq.Options {
		if opt == "" {
			return fmt.Errorf("option %d is empty", i+1)
		}
	}
	if sq.Correct < 1 || sq.Correct > 4 {
		return fmt.Errorf("correct option %d out of range [1,4]", sq.Correct)
	}
	if sq.Marks < 0 {
		return fmt.Errorf("marks %d is negative", sq.Marks)
	}
	return nil
}
