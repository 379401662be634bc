package services

import "fmt"

const (
	AnswerDisagree = 0
	AnswerAgree    = 1
)

// Answer is a single submitted (question, value) pair. Value is a pointer
// so a question that was never answered is distinguishable from an explicit
// disagree: a missing "answer" field decodes to nil, not to 0.
type Answer struct {
	QuestionID int  `json:"question_id"`
	Value      *int `json:"answer"`
}

// ResponseSet maps question id to a validated binary answer. A validated
// set covers the catalog exactly: one answer per question, nothing else.
type ResponseSet map[int]int

// ValidateAnswers checks a submission against the catalog and returns the
// validated set, or the first validation failure found. It has no side
// effects.
func ValidateAnswers(catalog *Catalog, answers []Answer) (ResponseSet, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, NewInvalidError("question catalog is empty")
	}
	set := make(ResponseSet, len(answers))
	for _, a := range answers {
		if _, ok := catalog.CategoryOf(a.QuestionID); !ok {
			return nil, NewValidationError(ErrorUnknownQuestion,
				fmt.Sprintf("question %d is not in the catalog", a.QuestionID))
		}
		if _, dup := set[a.QuestionID]; dup {
			return nil, NewValidationError(ErrorDuplicateAnswer,
				fmt.Sprintf("question %d answered more than once", a.QuestionID))
		}
		if a.Value == nil {
			return nil, NewValidationError(ErrorIncompleteSubmission,
				fmt.Sprintf("question %d has no answer", a.QuestionID))
		}
		if *a.Value != AnswerDisagree && *a.Value != AnswerAgree {
			return nil, NewValidationError(ErrorInvalidAnswerValue,
				fmt.Sprintf("question %d: answer must be 0 or 1, got %d", a.QuestionID, *a.Value))
		}
		set[a.QuestionID] = *a.Value
	}
	if len(set) < catalog.Len() {
		for _, q := range catalog.Questions() {
			if _, ok := set[q.ID]; !ok {
				return nil, NewValidationError(ErrorIncompleteSubmission,
					fmt.Sprintf("question %d is unanswered", q.ID))
			}
		}
	}
	return set, nil
}
