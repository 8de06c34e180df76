package datastore

import "github.com/thounda/employee-polls-be/internal/models"

// SeedUsers returns the static mock accounts. Credentials are plaintext on
// purpose; this store is a stand-in, not a security boundary.
func SeedUsers() map[string]models.User {
	return map[string]models.User{
		"sarahedo": {
			ID:         "sarahedo",
			Name:       "Sarah Edo",
			AvatarURL:  "https://i.pravatar.cc/150?u=sarahedo",
			Credential: "password123",
			Answers: map[string]models.Option{
				"8xf0y6ziyjabvozdd253nd": models.OptionOne,
				"6ni6ok3ym7mf1p33lnez":   models.OptionTwo,
				"am8ehyc8byjqgar0jgpub9": models.OptionTwo,
			},
			Questions: []string{"8xf0y6ziyjabvozdd253nd", "am8ehyc8byjqgar0jgpub9"},
		},
		"tylermcginnis": {
			ID:         "tylermcginnis",
			Name:       "Tyler McGinnis",
			AvatarURL:  "https://i.pravatar.cc/150?u=tylermcginnis",
			Credential: "abc321",
			Answers: map[string]models.Option{
				"loxhs1bqm25b708cmbf3g":  models.OptionTwo,
				"vthrdm985a262al8qx3do":  models.OptionOne,
				"6ni6ok3ym7mf1p33lnez":   models.OptionOne,
				"8xf0y6ziyjabvozdd253nd": models.OptionTwo,
			},
			Questions: []string{"loxhs1bqm25b708cmbf3g", "vthrdm985a262al8qx3do"},
		},
		"johndoe": {
			ID:         "johndoe",
			Name:       "John Doe",
			Credential: "xyz123",
			Answers: map[string]models.Option{
				"xj352vofupe1dqz9emx13r": models.OptionOne,
				"vthrdm985a262al8qx3do":  models.OptionTwo,
				"6ni6ok3ym7mf1p33lnez":   models.OptionTwo,
			},
			Questions: []string{"6ni6ok3ym7mf1p33lnez", "xj352vofupe1dqz9emx13r"},
		},
	}
}

// SeedQuestions returns the static mock polls, consistent with SeedUsers:
// every recorded answer appears in exactly one option's votes and every
// authored ID is listed on its author.
func SeedQuestions() map[string]models.Question {
	return map[string]models.Question{
		"8xf0y6ziyjabvozdd253nd": {
			ID:        "8xf0y6ziyjabvozdd253nd",
			Author:    "sarahedo",
			Timestamp: 1467166872634,
			OptionOne: models.QuestionOption{Text: "Build our new application with Javascript", Votes: []string{"sarahedo"}},
			OptionTwo: models.QuestionOption{Text: "Build our new application with Typescript", Votes: []string{"tylermcginnis"}},
		},
		"6ni6ok3ym7mf1p33lnez": {
			ID:        "6ni6ok3ym7mf1p33lnez",
			Author:    "johndoe",
			Timestamp: 1468479767190,
			OptionOne: models.QuestionOption{Text: "Hire more frontend developers", Votes: []string{"tylermcginnis"}},
			OptionTwo: models.QuestionOption{Text: "Hire more backend developers", Votes: []string{"johndoe", "sarahedo"}},
		},
		"am8ehyc8byjqgar0jgpub9": {
			ID:        "am8ehyc8byjqgar0jgpub9",
			Author:    "sarahedo",
			Timestamp: 1488579767190,
			OptionOne: models.QuestionOption{Text: "Conduct a release retrospective once a month", Votes: []string{}},
			OptionTwo: models.QuestionOption{Text: "Conduct a release retrospective after every release", Votes: []string{"sarahedo"}},
		},
		"loxhs1bqm25b708cmbf3g": {
			ID:        "loxhs1bqm25b708cmbf3g",
			Author:    "tylermcginnis",
			Timestamp: 1482579767190,
			OptionOne: models.QuestionOption{Text: "Have a standing desk", Votes: []string{}},
			OptionTwo: models.QuestionOption{Text: "Have a sitting desk", Votes: []string{"tylermcginnis"}},
		},
		"vthrdm985a262al8qx3do": {
			ID:        "vthrdm985a262al8qx3do",
			Author:    "tylermcginnis",
			Timestamp: 1489579767190,
			OptionOne: models.QuestionOption{Text: "Take a course on ReactJS", Votes: []string{"tylermcginnis"}},
			OptionTwo: models.QuestionOption{Text: "Take a course on unit testing with Jest", Votes: []string{"johndoe"}},
		},
		"xj352vofupe1dqz9emx13r": {
			ID:        "xj352vofupe1dqz9emx13r",
			Author:    "johndoe",
			Timestamp: 1493579767190,
			OptionOne: models.QuestionOption{Text: "Deploy to production once every two weeks", Votes: []string{"johndoe"}},
			OptionTwo: models.QuestionOption{Text: "Deploy to production once every month", Votes: []string{}},
		},
	}
}
