package service

import (
	"testing"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/model"
	"github.com/assessly-hq/assessly/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestUserService(db *gorm.DB) UserService {
	return NewUserService(repository.NewUserRepository(db), db)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)

	created, err := svc.CreateUser(dto.UserCreateDTO{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.NotEqual(t, "correct horse battery", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse battery")))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)

	req := dto.UserCreateDTO{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery",
		Role:     model.RoleAdmin,
	}
	_, err := svc.CreateUser(req)
	require.NoError(t, err)

	req.Name = "Other Ada"
	_, err = svc.CreateUser(req)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdateUser_PasswordOptional(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)

	created, err := svc.CreateUser(dto.UserCreateDTO{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)

	var before model.User
	require.NoError(t, db.First(&before, created.ID).Error)

	// Empty password keeps the stored hash.
	_, err = svc.UpdateUser(created.ID, dto.UserUpdateDTO{
		Name:  "Ada L.",
		Email: "ada@example.com",
		Role:  model.RoleAdmin,
	})
	require.NoError(t, err)

	var after model.User
	require.NoError(t, db.First(&after, created.ID).Error)
	assert.Equal(t, before.Password, after.Password)
	assert.Equal(t, "Ada L.", after.Name)

	_, err = svc.UpdateUser(created.ID, dto.UserUpdateDTO{
		Name:     "Ada L.",
		Email:    "ada@example.com",
		Role:     model.RoleAdmin,
		Password: "a brand new passphrase",
	})
	require.NoError(t, err)
	require.NoError(t, db.First(&after, created.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(after.Password), []byte("a brand new passphrase")))
}

func TestDeleteUser_SelfDeleteGuard(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	other := seedUser(t, db, "other@example.com", model.RoleAdmin)

	assert.ErrorIs(t, svc.DeleteUser(admin.ID, admin.ID), ErrSelfDelete)
	assert.ErrorIs(t, svc.DeleteUser(admin.ID, 9999), ErrUserNotFound)

	require.NoError(t, svc.DeleteUser(admin.ID, other.ID))
	assert.EqualValues(t, 1, count(t, db, &model.User{}))
}

func TestDeleteUser_NullsEvaluatorReferences(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	grader := seedUser(t, db, "grader@example.com", model.RoleAdmin)
	candidate := seedUser(t, db, "candidate@example.com", model.RoleCandidate)

	interviewID, sectionID := seedInterview(t, db, admin.ID)
	question := seedQuestion(t, db, admin.ID, "q1")
	attachQuestion(t, db, sectionID, question.ID, 1)

	attempt := &model.CandidateInterview{CandidateID: candidate.ID, InterviewID: interviewID, Status: model.CandidateInterviewStatusInProgress}
	require.NoError(t, db.Create(attempt).Error)
	response := &model.CandidateResponse{CandidateInterviewID: attempt.ID, QuestionID: question.ID, ResponseContent: "answer"}
	require.NoError(t, db.Create(response).Error)
	require.NoError(t, db.Create(&model.ResponseEvaluation{
		CandidateResponseID: response.ID,
		EvaluatorID:         ptrOf(grader.ID),
		IsCorrect:           ptrOf(true),
	}).Error)

	require.NoError(t, svc.DeleteUser(admin.ID, grader.ID))

	// The evaluation survives with a nulled evaluator.
	var evaluation model.ResponseEvaluation
	require.NoError(t, db.Where("candidate_response_id = ?", response.ID).First(&evaluation).Error)
	assert.Nil(t, evaluation.EvaluatorID)
	require.NotNil(t, evaluation.IsCorrect)
	assert.True(t, *evaluation.IsCorrect)
}
