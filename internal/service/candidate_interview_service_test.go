package service

import (
	"testing"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedInterview builds an active interview with one empty section and returns
// both IDs.
func seedInterview(t *testing.T, db *gorm.DB, creatorID uint) (uint, uint) {
	t.Helper()
	interview := &model.Interview{
		CreatorID: creatorID,
		Title:     "Backend screen",
		Type:      model.InterviewTypeInstant,
		Status:    model.InterviewStatusActive,
	}
	require.NoError(t, db.Create(interview).Error)
	section := &model.InterviewSection{InterviewID: interview.ID, Title: "Main", Order: 1}
	require.NoError(t, db.Create(section).Error)
	return interview.ID, section.ID
}

func seedQuestion(t *testing.T, db *gorm.DB, creatorID uint, title string) *model.Question {
	t.Helper()
	q := &model.Question{
		CreatorID:  creatorID,
		Title:      title,
		Content:    title + "?",
		Type:       model.QuestionTypeShortAnswer,
		Difficulty: model.DifficultyEasy,
	}
	require.NoError(t, db.Create(q).Error)
	require.NoError(t, db.Create(&model.ShortAnswerDetail{QuestionID: q.ID, ModelAnswer: "answer"}).Error)
	return q
}

func attachQuestion(t *testing.T, db *gorm.DB, sectionID, questionID uint, order int) {
	t.Helper()
	require.NoError(t, db.Create(&model.SectionQuestion{
		InterviewSectionID: sectionID,
		QuestionID:         questionID,
		Order:              order,
	}).Error)
}

func TestAssignCandidate_DuplicatePair(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCandidateService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	candidate := seedUser(t, db, "candidate@example.com", model.RoleCandidate)
	interviewID, _ := seedInterview(t, db, admin.ID)

	first, err := svc.AssignCandidate(interviewID, candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CandidateInterviewStatusPending, first.Status)

	_, err = svc.AssignCandidate(interviewID, candidate.ID)
	assert.ErrorIs(t, err, ErrDuplicateAttempt)
	assert.EqualValues(t, 1, count(t, db, &model.CandidateInterview{}))

	_, err = svc.AssignCandidate(9999, candidate.ID)
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestAttemptStateMachine(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCandidateService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	candidate := seedUser(t, db, "candidate@example.com", model.RoleCandidate)
	interviewID, _ := seedInterview(t, db, admin.ID)

	attempt, err := svc.AssignCandidate(interviewID, candidate.ID)
	require.NoError(t, err)

	// Complete before Start is not a legal move.
	_, err = svc.Complete(attempt.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	started, err := svc.Start(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CandidateInterviewStatusInProgress, started.Status)
	assert.NotNil(t, started.StartedAt)

	// The machine only moves forward; starting twice is rejected.
	_, err = svc.Start(attempt.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	completed, err := svc.Complete(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CandidateInterviewStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	_, err = svc.Expire(attempt.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExpireAttempt(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCandidateService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	interviewID, _ := seedInterview(t, db, admin.ID)

	t.Run("from pending", func(t *testing.T) {
		c := seedUser(t, db, "p@example.com", model.RoleCandidate)
		attempt, err := svc.AssignCandidate(interviewID, c.ID)
		require.NoError(t, err)

		expired, err := svc.Expire(attempt.ID)
		require.NoError(t, err)
		assert.Equal(t, model.CandidateInterviewStatusExpired, expired.Status)
	})

	t.Run("from in_progress", func(t *testing.T) {
		c := seedUser(t, db, "ip@example.com", model.RoleCandidate)
		attempt, err := svc.AssignCandidate(interviewID, c.ID)
		require.NoError(t, err)
		_, err = svc.Start(attempt.ID)
		require.NoError(t, err)

		expired, err := svc.Expire(attempt.ID)
		require.NoError(t, err)
		assert.Equal(t, model.CandidateInterviewStatusExpired, expired.Status)
	})
}

func TestSubmitResponse_Upsert(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCandidateService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	candidate := seedUser(t, db, "candidate@example.com", model.RoleCandidate)
	interviewID, sectionID := seedInterview(t, db, admin.ID)
	question := seedQuestion(t, db, admin.ID, "What is a goroutine")
	attachQuestion(t, db, sectionID, question.ID, 1)

	attempt, err := svc.AssignCandidate(interviewID, candidate.ID)
	require.NoError(t, err)

	// Responses are rejected until the attempt is started.
	_, err = svc.SubmitResponse(attempt.ID, dto.SubmitResponseDTO{
		QuestionID:      question.ID,
		ResponseContent: "too early",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Start(attempt.ID)
	require.NoError(t, err)

	first, err := svc.SubmitResponse(attempt.ID, dto.SubmitResponseDTO{
		QuestionID:      question.ID,
		ResponseContent: "a lightweight thread",
	})
	require.NoError(t, err)

	second, err := svc.SubmitResponse(attempt.ID, dto.SubmitResponseDTO{
		QuestionID:      question.ID,
		ResponseContent: "a lightweight thread managed by the runtime",
	})
	require.NoError(t, err)

	// Same row, new content.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "a lightweight thread managed by the runtime", second.ResponseContent)
	assert.EqualValues(t, 1, count(t, db, &model.CandidateResponse{}))
}

func TestProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCandidateService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	candidate := seedUser(t, db, "candidate@example.com", model.RoleCandidate)
	interviewID, sectionID := seedInterview(t, db, admin.ID)

	attempt, err := svc.AssignCandidate(interviewID, candidate.ID)
	require.NoError(t, err)
	_, err = svc.Start(attempt.ID)
	require.NoError(t, err)

	t.Run("zero slots means zero progress", func(t *testing.T) {
		progress, err := svc.Progress(attempt.ID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, progress)
	})

	q1 := seedQuestion(t, db, admin.ID, "q1")
	q2 := seedQuestion(t, db, admin.ID, "q2")
	q3 := seedQuestion(t, db, admin.ID, "q3")
	attachQuestion(t, db, sectionID, q1.ID, 1)
	attachQuestion(t, db, sectionID, q2.ID, 2)
	attachQuestion(t, db, sectionID, q3.ID, 3)

	second := &model.InterviewSection{InterviewID: interviewID, Title: "Repeat", Order: 2}
	require.NoError(t, db.Create(second).Error)
	attachQuestion(t, db, second.ID, q1.ID, 1)

	// Four slots total: q1 appears in both sections and counts twice.
	t.Run("one answer over four slots", func(t *testing.T) {
		_, err := svc.SubmitResponse(attempt.ID, dto.SubmitResponseDTO{
			QuestionID:      q2.ID,
			ResponseContent: "answer",
		})
		require.NoError(t, err)

		progress, err := svc.Progress(attempt.ID)
		require.NoError(t, err)
		assert.Equal(t, 25.0, progress)
	})

	t.Run("duplicated question fills both its slots", func(t *testing.T) {
		_, err := svc.SubmitResponse(attempt.ID, dto.SubmitResponseDTO{
			QuestionID:      q1.ID,
			ResponseContent: "answer",
		})
		require.NoError(t, err)

		progress, err := svc.Progress(attempt.ID)
		require.NoError(t, err)
		assert.Equal(t, 75.0, progress)
	})
}

func TestRecordEvaluation_SingleRow(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCandidateService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	candidate := seedUser(t, db, "candidate@example.com", model.RoleCandidate)
	interviewID, sectionID := seedInterview(t, db, admin.ID)
	question := seedQuestion(t, db, admin.ID, "q1")
	attachQuestion(t, db, sectionID, question.ID, 1)

	attempt, err := svc.AssignCandidate(interviewID, candidate.ID)
	require.NoError(t, err)
	_, err = svc.Start(attempt.ID)
	require.NoError(t, err)
	response, err := svc.SubmitResponse(attempt.ID, dto.SubmitResponseDTO{
		QuestionID:      question.ID,
		ResponseContent: "answer",
	})
	require.NoError(t, err)

	first, err := svc.RecordEvaluation(response.ID, dto.EvaluationDTO{
		EvaluatorID: ptrOf(admin.ID),
		IsCorrect:   ptrOf(false),
		Score:       ptrOf(0.0),
		Feedback:    "missed the edge case",
	})
	require.NoError(t, err)

	second, err := svc.RecordEvaluation(response.ID, dto.EvaluationDTO{
		EvaluatorID: ptrOf(admin.ID),
		IsCorrect:   ptrOf(true),
		Score:       ptrOf(1.0),
		Feedback:    "revised after appeal",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, *second.IsCorrect)
	assert.EqualValues(t, 1, count(t, db, &model.ResponseEvaluation{}))

	_, err = svc.RecordEvaluation(9999, dto.EvaluationDTO{})
	assert.ErrorIs(t, err, ErrResponseNotFound)
}

func TestFinalizeResult(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCandidateService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	candidate := seedUser(t, db, "candidate@example.com", model.RoleCandidate)
	interviewID, sectionID := seedInterview(t, db, admin.ID)

	q1 := seedQuestion(t, db, admin.ID, "q1")
	q2 := seedQuestion(t, db, admin.ID, "q2")
	q3 := seedQuestion(t, db, admin.ID, "q3")
	q4 := seedQuestion(t, db, admin.ID, "q4")
	for i, q := range []*model.Question{q1, q2, q3, q4} {
		attachQuestion(t, db, sectionID, q.ID, i+1)
	}

	attempt, err := svc.AssignCandidate(interviewID, candidate.ID)
	require.NoError(t, err)
	_, err = svc.Start(attempt.ID)
	require.NoError(t, err)

	for _, submission := range []struct {
		questionID uint
		correct    bool
		score      float64
	}{
		{q1.ID, true, 1},
		{q2.ID, true, 1},
		{q3.ID, false, 0.5},
	} {
		resp, err := svc.SubmitResponse(attempt.ID, dto.SubmitResponseDTO{
			QuestionID:      submission.questionID,
			ResponseContent: "answer",
		})
		require.NoError(t, err)
		_, err = svc.RecordEvaluation(resp.ID, dto.EvaluationDTO{
			EvaluatorID: ptrOf(admin.ID),
			IsCorrect:   ptrOf(submission.correct),
			Score:       ptrOf(submission.score),
		})
		require.NoError(t, err)
	}

	result, err := svc.FinalizeResult(attempt.ID, "solid fundamentals")
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 3, result.AttemptedQuestions)
	assert.Equal(t, 2, result.CorrectAnswers)
	require.NotNil(t, result.TotalScore)
	assert.Equal(t, 2.5, *result.TotalScore)
	require.NotNil(t, result.ScorePercentage)
	assert.Equal(t, 62.5, *result.ScorePercentage)
	assert.Equal(t, 75.0, result.CompletionPercentage)
	assert.Equal(t, "solid fundamentals", result.Summary)

	// Finalizing again replaces the aggregate instead of adding a row.
	again, err := svc.FinalizeResult(attempt.ID, "updated summary")
	require.NoError(t, err)
	assert.Equal(t, result.ID, again.ID)
	assert.EqualValues(t, 1, count(t, db, &model.InterviewResult{}))

	fetched, err := svc.GetResult(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated summary", fetched.Summary)
}

func TestResultDerivedValues_EmptyInterview(t *testing.T) {
	result := model.InterviewResult{TotalQuestions: 0, TotalScore: ptrOf(3.0)}
	assert.Nil(t, result.ScorePercentage())
	assert.Equal(t, 0.0, result.CompletionPercentage())
}
