package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/internal/pkg/queue"
	"github.com/elimuhub/homework_go_server/internal/repository"
	"github.com/elimuhub/homework_go_server/internal/service"
	"github.com/elimuhub/homework_go_server/internal/testutil"
)

// setupQuestionHandler returns the test database plus a router builder,
// so fixtures can be created before the mocked auth identity is chosen.
func setupQuestionHandler(t *testing.T) (*gorm.DB, func(userID int64) *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	cfg := testConfig()
	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	entitlement := service.NewEntitlementService(userRepo, cfg)
	jobQueue := queue.NewQueue(client, "test_questions")
	svc := service.NewQuestionService(questionRepo, childRepo, userRepo, entitlement, jobQueue, cfg)
	h := NewQuestionHandler(svc)

	build := func(userID int64) *gin.Engine {
		r := gin.New()
		authed := r.Group("/api/v1", mockAuth(userID))
		authed.POST("/questions", h.Create)
		authed.GET("/questions", h.List)
		authed.GET("/questions/:id", h.Get)
		authed.POST("/questions/:id/rate", h.Rate)
		return r
	}
	return db, build
}

func TestQuestionHandler_Create(t *testing.T) {
	db, build := setupQuestionHandler(t)

	t.Run("free user submits", func(t *testing.T) {
		user := testutil.TestUser(t, db, testutil.WithCredits(3))
		r := build(user.ID)

		w := postJSON(t, r, "/api/v1/questions", gin.H{
			"type":        "text",
			"content":     "What is 12 x 8?",
			"subject":     "Mathematics",
			"grade_level": "Grade 5",
		})

		body := decodeEnvelope(t, w)
		assert.Equal(t, float64(0), body["code"])
		data := body["data"].(map[string]interface{})
		assert.NotEmpty(t, data["question_id"])
		assert.Equal(t, float64(2), data["credits_remaining"])
	})

	t.Run("out of credits", func(t *testing.T) {
		user := testutil.TestUser(t, db, testutil.WithCredits(0))
		r := build(user.ID)

		w := postJSON(t, r, "/api/v1/questions", gin.H{
			"type":        "text",
			"content":     "help",
			"subject":     "Science",
			"grade_level": "Grade 3",
		})

		body := decodeEnvelope(t, w)
		assert.Equal(t, float64(1004), body["code"])
	})

	t.Run("invalid payload", func(t *testing.T) {
		user := testutil.TestUser(t, db)
		r := build(user.ID)

		w := postJSON(t, r, "/api/v1/questions", gin.H{"type": "text"})

		body := decodeEnvelope(t, w)
		assert.Equal(t, float64(1000), body["code"])
	})

	t.Run("another parent's child", func(t *testing.T) {
		owner := testutil.TestUser(t, db)
		child := testutil.TestChild(t, db, owner.ID)
		user := testutil.TestUser(t, db)
		r := build(user.ID)

		w := postJSON(t, r, "/api/v1/questions", gin.H{
			"type":        "text",
			"content":     "test",
			"subject":     "Mathematics",
			"grade_level": "Grade 5",
			"child_id":    child.ID,
		})

		body := decodeEnvelope(t, w)
		assert.Equal(t, float64(1003), body["code"])
	})
}

func TestQuestionHandler_Get(t *testing.T) {
	db, build := setupQuestionHandler(t)

	owner := testutil.TestUser(t, db)
	stranger := testutil.TestUser(t, db)
	question := testutil.TestQuestion(t, db, owner.ID, testutil.WithProcessed("96"))

	t.Run("owner reads the answer", func(t *testing.T) {
		r := build(owner.ID)

		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/questions/%d", question.ID), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		body := decodeEnvelope(t, w)
		assert.Equal(t, float64(0), body["code"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "96", data["ai_response"])
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		r := build(stranger.ID)

		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/questions/%d", question.ID), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		body := decodeEnvelope(t, w)
		assert.Equal(t, float64(1003), body["code"])
	})

	t.Run("bad id", func(t *testing.T) {
		r := build(owner.ID)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/questions/abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		body := decodeEnvelope(t, w)
		assert.Equal(t, float64(1000), body["code"])
	})
}

func TestQuestionHandler_List(t *testing.T) {
	db, build := setupQuestionHandler(t)

	user := testutil.TestUser(t, db)
	for i := 0; i < 3; i++ {
		testutil.TestQuestion(t, db, user.ID)
	}
	r := build(user.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/questions?page=1&page_size=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := decodeEnvelope(t, w)
	require.Equal(t, float64(0), body["code"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(2), data["page_size"])
	assert.Len(t, data["items"], 2)
}

func TestQuestionHandler_Rate(t *testing.T) {
	db, build := setupQuestionHandler(t)

	user := testutil.TestUser(t, db)
	r := build(user.ID)

	t.Run("rates an answered question", func(t *testing.T) {
		question := testutil.TestQuestion(t, db, user.ID, testutil.WithProcessed("done"))

		w := postJSON(t, r, fmt.Sprintf("/api/v1/questions/%d/rate", question.ID), gin.H{
			"rating":   5,
			"feedback": "clear explanation",
		})

		body := decodeEnvelope(t, w)
		assert.Equal(t, float64(0), body["code"])
	})

	t.Run("unanswered question is a param error", func(t *testing.T) {
		question := testutil.TestQuestion(t, db, user.ID)

		w := postJSON(t, r, fmt.Sprintf("/api/v1/questions/%d/rate", question.ID), gin.H{"rating": 4})

		body := decodeEnvelope(t, w)
		assert.Equal(t, float64(1000), body["code"])
	})
}
