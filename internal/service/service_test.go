package service

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/assessly-hq/assessly/internal/model"
	"github.com/assessly-hq/assessly/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. TranslateError is on
// so unique-constraint violations surface as gorm.ErrDuplicatedKey, same as
// production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A plain ":memory:" DSN gives every pooled connection its own empty
	// database, so transactions (which use a second connection) would see no
	// tables. A named shared-cache DSN keeps connections on one database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.McqDetail{},
		&model.TrueFalseDetail{},
		&model.ShortAnswerDetail{},
		&model.CodingDetail{},
		&model.Tag{},
		&model.CategoryHierarchy{},
		&model.QuestionTag{},
		&model.Interview{},
		&model.InterviewSection{},
		&model.SectionQuestion{},
		&model.CandidateInterview{},
		&model.CandidateResponse{},
		&model.ResponseEvaluation{},
		&model.InterviewResult{},
	))
	return db
}

func newTestQuestionService(db *gorm.DB) QuestionService {
	tagSvc := NewTagService(repository.NewTagRepository(db), db)
	return NewQuestionService(repository.NewQuestionRepository(db), tagSvc, db)
}

func newTestInterviewService(db *gorm.DB) InterviewService {
	questionRepo := repository.NewQuestionRepository(db)
	return NewInterviewService(
		repository.NewInterviewRepository(db),
		questionRepo,
		newTestQuestionService(db),
		db,
	)
}

func newTestCandidateService(db *gorm.DB) CandidateInterviewService {
	return NewCandidateInterviewService(
		repository.NewCandidateInterviewRepository(db),
		repository.NewInterviewRepository(db),
		db,
	)
}

func count(t *testing.T, db *gorm.DB, value any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(value).Count(&n).Error)
	return n
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *model.User {
	t.Helper()
	user := &model.User{Name: "Test User", Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func ptrOf[T any](v T) *T {
	return &v
}
