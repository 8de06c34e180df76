package websocket

import "github.com/thounda/employee-polls-be/internal/views"

// Actions pushed by the hub.
const (
	ActionQuestionCreated    = "question.created"
	ActionTallyChanged       = "tally.changed"
	ActionLeaderboardUpdated = "leaderboard.updated"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// TallyPayload carries a tally together with its question ID so clients on
// the global feed can tell which question changed.
type TallyPayload struct {
	QuestionID string      `json:"questionId"`
	Tally      views.Tally `json:"tally"`
}
