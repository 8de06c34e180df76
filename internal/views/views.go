// Package views computes read models from domain state: the dashboard
// partition, per-question vote tallies and the leaderboard. Everything here
// is a pure function of its inputs; nothing is cached between calls.
package views

import (
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/thounda/employee-polls-be/internal/models"
)

// Dashboard splits all question IDs into unanswered and answered for the
// given viewer, both newest first. Ties on timestamp fall back to question
// ID so the ordering is deterministic.
type Dashboard struct {
	Unanswered []string `json:"unanswered"`
	Answered   []string `json:"answered"`
}

// OptionTally is the result breakdown for a single option.
type OptionTally struct {
	Text       string `json:"text"`
	Votes      int    `json:"votes"`
	Percentage int    `json:"percentage"`
}

// Tally is the vote breakdown for a question. Percentages are rounded
// independently per option and may not sum to exactly 100.
type Tally struct {
	QuestionID string      `json:"questionId"`
	TotalVotes int         `json:"totalVotes"`
	OptionOne  OptionTally `json:"optionOne"`
	OptionTwo  OptionTally `json:"optionTwo"`
}

// RankedUser is one leaderboard row.
type RankedUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarURL,omitempty"`
	Answered  int    `json:"answered"`
	Created   int    `json:"created"`
	Total     int    `json:"total"`
}

// NewDashboard partitions the questions for the given viewer. Every
// question lands in exactly one of the two lists.
func NewDashboard(questions map[string]models.Question, viewerID string) Dashboard {
	ordered := lo.Values(questions)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Timestamp != ordered[j].Timestamp {
			return ordered[i].Timestamp > ordered[j].Timestamp
		}
		return ordered[i].ID < ordered[j].ID
	})

	d := Dashboard{Unanswered: []string{}, Answered: []string{}}
	for _, q := range ordered {
		if _, answered := q.AnswerOf(viewerID); answered {
			d.Answered = append(d.Answered, q.ID)
		} else {
			d.Unanswered = append(d.Unanswered, q.ID)
		}
	}
	return d
}

// NewTally computes counts and percentages for a question. With no votes
// both percentages are zero; there is no division by zero.
func NewTally(q models.Question) Tally {
	one := len(q.OptionOne.Votes)
	two := len(q.OptionTwo.Votes)
	total := one + two

	return Tally{
		QuestionID: q.ID,
		TotalVotes: total,
		OptionOne: OptionTally{
			Text:       q.OptionOne.Text,
			Votes:      one,
			Percentage: percentage(one, total),
		},
		OptionTwo: OptionTally{
			Text:       q.OptionTwo.Text,
			Votes:      two,
			Percentage: percentage(two, total),
		},
	}
}

func percentage(votes, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(votes) / float64(total) * 100))
}

// NewLeaderboard ranks users by answered plus created, descending. Ties
// break on name, case-insensitively, so the display order is stable.
// An empty users map yields an empty slice.
func NewLeaderboard(users map[string]models.User) []RankedUser {
	ranked := lo.MapToSlice(users, func(_ string, u models.User) RankedUser {
		return RankedUser{
			ID:        u.ID,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
			Answered:  len(u.Answers),
			Created:   len(u.Questions),
			Total:     len(u.Answers) + len(u.Questions),
		}
	})

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		ni, nj := strings.ToLower(ranked[i].Name), strings.ToLower(ranked[j].Name)
		if ni != nj {
			return ni < nj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
