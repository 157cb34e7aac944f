package service

import (
	"testing"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcqCreateRequest() dto.QuestionCreateDTO {
	return dto.QuestionCreateDTO{
		Title:         "HTTP status codes",
		Content:       "Which status code means Not Found?",
		Type:          model.QuestionTypeMcq,
		Difficulty:    model.DifficultyEasy,
		Options:       []string{"200", "301", "404", "500"},
		CorrectOption: ptrOf(2),
	}
}

func TestCreateQuestion_MCQ(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuestionService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)

	resp, err := svc.CreateQuestion(admin.ID, mcqCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, model.QuestionTypeMcq, resp.Type)
	assert.Equal(t, admin.ID, resp.CreatorID)
	require.NotNil(t, resp.Detail)
	assert.Equal(t, []string{"200", "301", "404", "500"}, resp.Detail.Options)
	require.NotNil(t, resp.Detail.CorrectOption)
	assert.Equal(t, 2, *resp.Detail.CorrectOption)

	assert.EqualValues(t, 1, count(t, db, &model.Question{}))
	assert.EqualValues(t, 1, count(t, db, &model.McqDetail{}))
}

func TestCreateQuestion_MCQInvalid(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuestionService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)

	t.Run("correct option out of range", func(t *testing.T) {
		req := mcqCreateRequest()
		req.CorrectOption = ptrOf(4)

		_, err := svc.CreateQuestion(admin.ID, req)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "correct_option")
	})

	t.Run("too few options", func(t *testing.T) {
		req := mcqCreateRequest()
		req.Options = []string{"only one"}
		req.CorrectOption = ptrOf(0)

		_, err := svc.CreateQuestion(admin.ID, req)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "options")
	})

	// Failed creates must leave nothing behind.
	assert.EqualValues(t, 0, count(t, db, &model.Question{}))
	assert.EqualValues(t, 0, count(t, db, &model.McqDetail{}))
}

func TestCreateQuestion_CodingArrayLengths(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuestionService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)

	req := dto.QuestionCreateDTO{
		Title:           "FizzBuzz",
		Content:         "Implement fizzbuzz.",
		Type:            model.QuestionTypeCoding,
		Difficulty:      model.DifficultyMedium,
		Language:        ptrOf("go"),
		TestCases:       []string{"1", "3", "15"},
		ExpectedOutputs: []string{"1", "Fizz"},
	}
	_, err := svc.CreateQuestion(admin.ID, req)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "expected_outputs")

	req.ExpectedOutputs = []string{"1", "Fizz", "FizzBuzz"}
	resp, err := svc.CreateQuestion(admin.ID, req)
	require.NoError(t, err)

	// Arrays survive the JSON column round trip intact and ordered.
	got, err := svc.GetQuestion(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "15"}, got.Detail.TestCases)
	assert.Equal(t, []string{"1", "Fizz", "FizzBuzz"}, got.Detail.ExpectedOutputs)
}

func TestUpdateQuestion_TypeImmutable(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuestionService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)

	created, err := svc.CreateQuestion(admin.ID, mcqCreateRequest())
	require.NoError(t, err)

	// The payload asks for a different type; the stored type wins and the
	// MCQ detail is updated in place.
	updated, err := svc.UpdateQuestion(created.ID, dto.QuestionUpdateDTO{
		Title:         "HTTP status codes, revised",
		Content:       "Which status code means Not Found?",
		Type:          model.QuestionTypeCoding,
		Difficulty:    model.DifficultyMedium,
		Options:       []string{"204", "404"},
		CorrectOption: ptrOf(1),
	})
	require.NoError(t, err)

	assert.Equal(t, model.QuestionTypeMcq, updated.Type)
	assert.Equal(t, []string{"204", "404"}, updated.Detail.Options)
	assert.EqualValues(t, 1, count(t, db, &model.McqDetail{}))
	assert.EqualValues(t, 0, count(t, db, &model.CodingDetail{}))
}

func TestUpdateQuestion_TagPartitionsIndependent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuestionService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)

	req := mcqCreateRequest()
	req.Tags = []string{"http", "basics"}
	req.Categories = []string{"Networking"}
	created, err := svc.CreateQuestion(admin.ID, req)
	require.NoError(t, err)
	require.Len(t, created.Tags, 2)
	require.Len(t, created.Categories, 1)

	// Nil categories leaves that partition alone; the non-nil tag list is
	// synced as a set.
	updated, err := svc.UpdateQuestion(created.ID, dto.QuestionUpdateDTO{
		Title:         req.Title,
		Content:       req.Content,
		Difficulty:    req.Difficulty,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		Tags:          []string{"http", "rest"},
	})
	require.NoError(t, err)

	tagNames := make([]string, len(updated.Tags))
	for i, tag := range updated.Tags {
		tagNames[i] = tag.Name
	}
	assert.ElementsMatch(t, []string{"http", "rest"}, tagNames)

	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "Networking", updated.Categories[0].Name)

	// Detached tags stay in the registry; only join rows go.
	assert.EqualValues(t, 4, count(t, db, &model.Tag{}))
}

func TestDeleteQuestion_Cascade(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuestionService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	candidate := seedUser(t, db, "candidate@example.com", model.RoleCandidate)

	req := mcqCreateRequest()
	req.Tags = []string{"http"}
	created, err := svc.CreateQuestion(admin.ID, req)
	require.NoError(t, err)

	interview := &model.Interview{CreatorID: admin.ID, Title: "Backend screen", Type: model.InterviewTypeInstant, Status: model.InterviewStatusActive}
	require.NoError(t, db.Create(interview).Error)
	section := &model.InterviewSection{InterviewID: interview.ID, Title: "Basics", Order: 1}
	require.NoError(t, db.Create(section).Error)
	require.NoError(t, db.Create(&model.SectionQuestion{InterviewSectionID: section.ID, QuestionID: created.ID, Order: 1}).Error)

	attempt := &model.CandidateInterview{CandidateID: candidate.ID, InterviewID: interview.ID, Status: model.CandidateInterviewStatusInProgress}
	require.NoError(t, db.Create(attempt).Error)
	response := &model.CandidateResponse{CandidateInterviewID: attempt.ID, QuestionID: created.ID, ResponseContent: "404"}
	require.NoError(t, db.Create(response).Error)
	require.NoError(t, db.Create(&model.ResponseEvaluation{CandidateResponseID: response.ID, IsCorrect: ptrOf(true)}).Error)

	require.NoError(t, svc.DeleteQuestion(created.ID))

	assert.EqualValues(t, 0, count(t, db, &model.Question{}))
	assert.EqualValues(t, 0, count(t, db, &model.McqDetail{}))
	assert.EqualValues(t, 0, count(t, db, &model.QuestionTag{}))
	assert.EqualValues(t, 0, count(t, db, &model.SectionQuestion{}))
	assert.EqualValues(t, 0, count(t, db, &model.CandidateResponse{}))
	assert.EqualValues(t, 0, count(t, db, &model.ResponseEvaluation{}))

	// The tag registry and the interview structure survive.
	assert.EqualValues(t, 1, count(t, db, &model.Tag{}))
	assert.EqualValues(t, 1, count(t, db, &model.InterviewSection{}))

	assert.ErrorIs(t, svc.DeleteQuestion(created.ID), ErrQuestionNotFound)
}

func TestListQuestions_Filters(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuestionService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)

	mcq := mcqCreateRequest()
	mcq.Tags = []string{"http"}
	_, err := svc.CreateQuestion(admin.ID, mcq)
	require.NoError(t, err)

	tf := dto.QuestionCreateDTO{
		Title:         "TCP is connectionless",
		Content:       "True or false: TCP is connectionless.",
		Type:          model.QuestionTypeTrueFalse,
		Difficulty:    model.DifficultyHard,
		CorrectAnswer: ptrOf(false),
	}
	_, err = svc.CreateQuestion(admin.ID, tf)
	require.NoError(t, err)

	t.Run("by type", func(t *testing.T) {
		list, err := svc.ListQuestions(dto.QuestionListQuery{Type: model.QuestionTypeTrueFalse})
		require.NoError(t, err)
		assert.EqualValues(t, 1, list.Total)
		require.Len(t, list.Questions, 1)
		assert.Equal(t, "TCP is connectionless", list.Questions[0].Title)
	})

	t.Run("by tag", func(t *testing.T) {
		list, err := svc.ListQuestions(dto.QuestionListQuery{Tag: "http"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, list.Total)
	})

	t.Run("search", func(t *testing.T) {
		list, err := svc.ListQuestions(dto.QuestionListQuery{Search: "Not Found"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, list.Total)
	})

	t.Run("pagination", func(t *testing.T) {
		list, err := svc.ListQuestions(dto.QuestionListQuery{Page: 2, PerPage: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 2, list.Total)
		assert.Len(t, list.Questions, 1)
	})
}
