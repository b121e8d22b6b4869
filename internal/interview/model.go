package interview

import "time"

// QuestionCount is the fixed number of questions per interview.
const QuestionCount = 10

// TabSwitchLimit is the number of tab switches that terminates a session.
const TabSwitchLimit = 3

// JobRoles is the fixed enumeration of interviewable roles.
var JobRoles = []string{
	"Full Stack Developer",
	"Data Analyst",
	"Data Scientist",
	"Web Developer",
	"Java Developer",
	"Python Developer",
	"Frontend Developer",
	"Backend Developer",
}

// ValidRole reports whether role is in the fixed enumeration.
func ValidRole(role string) bool {
	for _, r := range JobRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Answer is one (question, answer) pair recorded during a session.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Interview is one candidate's attempt at an interview for a given role.
//
// Answers is append-only while the session is active and bounded by
// QuestionCount. Score and Feedback are empty until completion and set
// exactly once. After Completed flips true the record is read-only.
type Interview struct {
	ID          string     `json:"id"`
	Role        string     `json:"role"`
	Answers     []Answer   `json:"answers"`
	Score       int        `json:"score"`
	Feedback    string     `json:"feedback"`
	TabSwitches int        `json:"tabSwitches"`
	Duration    int        `json:"duration"` // elapsed seconds
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// QuestionIndex is the index of the question currently awaiting an answer.
// It is derived from the answers recorded so far, so it can never disagree
// with them.
func (iv *Interview) QuestionIndex() int {
	if len(iv.Answers) >= QuestionCount {
		return QuestionCount - 1
	}
	return len(iv.Answers)
}
