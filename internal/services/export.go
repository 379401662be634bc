package services

import (
	"bytes"
	"encoding/csv"
	"sort"
	"time"
)

// ExportResultsCSV renders one row per stored Result, ordered by user id
// for stable output.
func ExportResultsCSV(results []*Result) ([]byte, error) {
	rows := make([]*Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UserID < rows[j].UserID })

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"user_id"}
	for _, c := range Categories {
		header = append(header, string(c))
	}
	header = append(header, "dominant_category", "created_at")
	_ = w.Write(header)
	for _, r := range rows {
		rec := []string{r.UserID}
		for _, c := range Categories {
			rec = append(rec, itoa(r.Scores[c]))
		}
		rec = append(rec, string(r.Dominant), r.CreatedAt.UTC().Format(time.RFC3339))
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportAnswersCSV renders the raw answer log in long format, one row per
// (user, question) pair, joined with the catalog for the category column.
func ExportAnswersCSV(records []AnswerRecord, catalog *Catalog) ([]byte, error) {
	rows := append([]AnswerRecord(nil), records...)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].UserID == rows[j].UserID {
			return rows[i].QuestionID < rows[j].QuestionID
		}
		return rows[i].UserID < rows[j].UserID
	})

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"user_id", "question_id", "category", "answer", "submitted_at"})
	for _, r := range rows {
		category := ""
		if catalog != nil {
			if c, ok := catalog.CategoryOf(r.QuestionID); ok {
				category = string(c)
			}
		}
		rec := []string{
			r.UserID,
			itoa(r.QuestionID),
			category,
			itoa(r.Value),
			r.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func itoa(i int) string {
	// local small int->string to avoid importing strconv everywhere
	if i == 0 {
		return "0"
	}
	neg := false
	if i < 0 {
		neg = true
		i = -i
	}
	var b [20]byte
	bp := len(b)
	for i > 0 {
		bp--
		b[bp] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		bp--
		b[bp] = '-'
	}
	return string(b[bp:])
}
