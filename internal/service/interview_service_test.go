package service

import (
	"testing"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInterview_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInterviewService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)

	t.Run("scheduled requires a time", func(t *testing.T) {
		_, err := svc.CreateInterview(admin.ID, dto.InterviewCreateDTO{
			Title: "Backend screen",
			Type:  model.InterviewTypeScheduled,
		})
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "scheduled_at")
	})

	t.Run("instant starts as draft", func(t *testing.T) {
		created, err := svc.CreateInterview(admin.ID, dto.InterviewCreateDTO{
			Title: "Backend screen",
			Type:  model.InterviewTypeInstant,
		})
		require.NoError(t, err)
		assert.Equal(t, model.InterviewStatusDraft, created.Status)
	})
}

func TestSectionQuestionManagement(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInterviewService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)

	interview, err := svc.CreateInterview(admin.ID, dto.InterviewCreateDTO{
		Title: "Backend screen",
		Type:  model.InterviewTypeInstant,
	})
	require.NoError(t, err)

	section, err := svc.AddSection(interview.ID, dto.SectionCreateDTO{Title: "Basics", Order: 1})
	require.NoError(t, err)

	question := seedQuestion(t, db, admin.ID, "What is a goroutine")

	require.NoError(t, svc.AddQuestionToSection(section.ID, dto.SectionQuestionDTO{
		QuestionID: question.ID,
		Order:      1,
	}))

	// The (section, question) pair is unique.
	err = svc.AddQuestionToSection(section.ID, dto.SectionQuestionDTO{
		QuestionID: question.ID,
		Order:      2,
	})
	assert.ErrorIs(t, err, ErrQuestionAlreadyInSection)

	require.NoError(t, svc.RemoveQuestionFromSection(section.ID, question.ID))
	assert.EqualValues(t, 0, count(t, db, &model.SectionQuestion{}))

	err = svc.RemoveQuestionFromSection(section.ID, question.ID)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestReorderSectionQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInterviewService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)

	interview, err := svc.CreateInterview(admin.ID, dto.InterviewCreateDTO{
		Title: "Backend screen",
		Type:  model.InterviewTypeInstant,
	})
	require.NoError(t, err)
	section, err := svc.AddSection(interview.ID, dto.SectionCreateDTO{Title: "Basics", Order: 1})
	require.NoError(t, err)

	q1 := seedQuestion(t, db, admin.ID, "q1")
	q2 := seedQuestion(t, db, admin.ID, "q2")
	require.NoError(t, svc.AddQuestionToSection(section.ID, dto.SectionQuestionDTO{QuestionID: q1.ID, Order: 1}))
	require.NoError(t, svc.AddQuestionToSection(section.ID, dto.SectionQuestionDTO{QuestionID: q2.ID, Order: 2}))

	require.NoError(t, svc.ReorderSectionQuestions(section.ID, dto.SectionReorderDTO{
		Questions: []dto.SectionQuestionDTO{
			{QuestionID: q1.ID, Order: 2},
			{QuestionID: q2.ID, Order: 1},
		},
	}))

	questions, err := svc.GetAllQuestions(interview.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, q2.ID, questions[0].ID)
	assert.Equal(t, q1.ID, questions[1].ID)
}

func TestGetAllQuestions_MergeWithoutDedup(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInterviewService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)

	interview, err := svc.CreateInterview(admin.ID, dto.InterviewCreateDTO{
		Title: "Backend screen",
		Type:  model.InterviewTypeInstant,
	})
	require.NoError(t, err)

	first, err := svc.AddSection(interview.ID, dto.SectionCreateDTO{Title: "First", Order: 1})
	require.NoError(t, err)
	second, err := svc.AddSection(interview.ID, dto.SectionCreateDTO{Title: "Second", Order: 2})
	require.NoError(t, err)

	shared := seedQuestion(t, db, admin.ID, "shared")
	only := seedQuestion(t, db, admin.ID, "only-first")
	require.NoError(t, svc.AddQuestionToSection(first.ID, dto.SectionQuestionDTO{QuestionID: only.ID, Order: 1}))
	require.NoError(t, svc.AddQuestionToSection(first.ID, dto.SectionQuestionDTO{QuestionID: shared.ID, Order: 2}))
	require.NoError(t, svc.AddQuestionToSection(second.ID, dto.SectionQuestionDTO{QuestionID: shared.ID, Order: 1}))

	// The flattened sequence keeps the duplicate: section order first, slot
	// order within each section.
	questions, err := svc.GetAllQuestions(interview.ID)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, only.ID, questions[0].ID)
	assert.Equal(t, shared.ID, questions[1].ID)
	assert.Equal(t, shared.ID, questions[2].ID)
}

func TestDeleteInterview_Cascade(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInterviewService(db)
	candidateSvc := newTestCandidateService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	candidate := seedUser(t, db, "candidate@example.com", model.RoleCandidate)

	interview, err := svc.CreateInterview(admin.ID, dto.InterviewCreateDTO{
		Title: "Backend screen",
		Type:  model.InterviewTypeInstant,
	})
	require.NoError(t, err)
	section, err := svc.AddSection(interview.ID, dto.SectionCreateDTO{Title: "Basics", Order: 1})
	require.NoError(t, err)
	question := seedQuestion(t, db, admin.ID, "q1")
	require.NoError(t, svc.AddQuestionToSection(section.ID, dto.SectionQuestionDTO{QuestionID: question.ID, Order: 1}))

	attempt, err := candidateSvc.AssignCandidate(interview.ID, candidate.ID)
	require.NoError(t, err)
	_, err = candidateSvc.Start(attempt.ID)
	require.NoError(t, err)
	resp, err := candidateSvc.SubmitResponse(attempt.ID, dto.SubmitResponseDTO{
		QuestionID:      question.ID,
		ResponseContent: "answer",
	})
	require.NoError(t, err)
	_, err = candidateSvc.RecordEvaluation(resp.ID, dto.EvaluationDTO{IsCorrect: ptrOf(true)})
	require.NoError(t, err)
	_, err = candidateSvc.FinalizeResult(attempt.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInterview(interview.ID))

	assert.EqualValues(t, 0, count(t, db, &model.Interview{}))
	assert.EqualValues(t, 0, count(t, db, &model.InterviewSection{}))
	assert.EqualValues(t, 0, count(t, db, &model.SectionQuestion{}))
	assert.EqualValues(t, 0, count(t, db, &model.CandidateInterview{}))
	assert.EqualValues(t, 0, count(t, db, &model.CandidateResponse{}))
	assert.EqualValues(t, 0, count(t, db, &model.ResponseEvaluation{}))
	assert.EqualValues(t, 0, count(t, db, &model.InterviewResult{}))

	// The question bank is untouched.
	assert.EqualValues(t, 1, count(t, db, &model.Question{}))
}
