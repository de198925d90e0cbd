// --- examportal-server/exam/score.go ---
package exam

import (
	"net/url"
	"strconv"
	"strings"

	"examportal-server/models"
)

// AnswerSheet maps a question id to the option number the student selected.
// Questions the student left blank simply have no entry.
type AnswerSheet map[int]int

// ParseAnswerSheet extracts submitted answers from exam form values. Each
// answered question arrives as a field named "q<id>" holding the selected
// option number. Fields that are not of that shape, or whose value is not an
// integer, are dropped: a malformed answer grades as wrong, never as an error.
func ParseAnswerSheet(form url.Values) AnswerSheet {
	sheet := make(AnswerSheet)
	for field, values := range form {
		idStr, ok := strings.CutPrefix(field, "q")
		if !ok || len(values) == 0 {
			continue
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		selected, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			continue
		}
		sheet[id] = selected
	}
	return sheet
}

// Score grades an answer sheet against the question bank. Every question in
// the bank contributes its marks to total whether or not it was answered;
// score only accumulates marks for questions whose submitted answer equals the
// correct option. Total therefore always reflects the full exam definition.
func Score(fields []models.ScoringField, sheet AnswerSheet) (score, total int) {
	for _, f := range fields {
		total += f.Marks
		if selected, ok := sheet[f.ID]; ok && selected == f.CorrectOption {
			score += f.Marks
		}
	}
	return score, total
}
