package models

// Lesson is static reference content: a short video plus a fixed quiz.
// Lessons are not user-generated and live in the built-in catalog, not
// in the database.
type Lesson struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Level       string         `json:"level"` // Easy | Medium | Hard
	VideoURL    string         `json:"video_url"`
	Description string         `json:"description"`
	Quiz        []QuizQuestion `json:"quiz"`
}

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}
