package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/auth/token"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/interview"
	ivhandler "github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/interview/handler"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/middleware"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/question"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bank, err := question.LoadBank()
	require.NoError(t, err)

	store := interview.NewMemStore()
	lifecycle := interview.NewLifecycle(store, bank, 900)
	h := ivhandler.NewHandler(lifecycle, store, bank, bank)

	tokens := token.NewIssuer("test-secret", token.NewMemStore())
	signed, err := tokens.Issue(context.Background(), "user-1", "alice")
	require.NoError(t, err)

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(middleware.NewAuthMiddleware(tokens)))
	h.RegisterRoutes(api)

	return router, signed
}

func doJSON(t *testing.T, router *gin.Engine, bearer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeInterview(t *testing.T, body []byte) interview.Interview {
	t.Helper()
	var iv interview.Interview
	require.NoError(t, json.Unmarshal(body, &iv))
	return iv
}

func TestRoutesRequireBearerToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, "", http.MethodPost, "/api/interviews", gin.H{"role": "Python Developer"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "bogus-token", http.MethodGet, "/api/questions/Python%20Developer/0", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateInterviewValidation(t *testing.T) {
	router, bearer := newTestRouter(t)

	w := doJSON(t, router, bearer, http.MethodPost, "/api/interviews", gin.H{"role": "Astronaut"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, bearer, http.MethodPost, "/api/interviews", gin.H{"role": "Python Developer"})
	require.Equal(t, http.StatusCreated, w.Code)

	iv := decodeInterview(t, w.Body.Bytes())
	require.NotEmpty(t, iv.ID)
	require.Equal(t, "Python Developer", iv.Role)
	require.False(t, iv.Completed)
}

func TestGetInterviewNotFound(t *testing.T) {
	router, bearer := newTestRouter(t)

	w := doJSON(t, router, bearer, http.MethodGet, "/api/interviews/unknown", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFullInterviewFlow(t *testing.T) {
	router, bearer := newTestRouter(t)

	w := doJSON(t, router, bearer, http.MethodPost, "/api/interviews", gin.H{"role": "Data Analyst"})
	require.Equal(t, http.StatusCreated, w.Code)
	iv := decodeInterview(t, w.Body.Bytes())

	// Empty answers are rejected and do not advance the session.
	w = doJSON(t, router, bearer, http.MethodPost, "/api/interviews/"+iv.ID+"/answers",
		gin.H{"question": "q", "answer": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	long := strings.Repeat("a thorough answer ", 4)
	for i := 0; i < interview.QuestionCount; i++ {
		w = doJSON(t, router, bearer, http.MethodPost, "/api/interviews/"+iv.ID+"/answers",
			gin.H{"question": fmt.Sprintf("q%d", i), "answer": long})
		require.Equal(t, http.StatusOK, w.Code)
	}

	final := decodeInterview(t, w.Body.Bytes())
	require.True(t, final.Completed)
	require.Equal(t, interview.QuestionCount, final.Score)
	require.NotEmpty(t, final.Feedback)
}

func TestTabSwitchEventsTerminate(t *testing.T) {
	router, bearer := newTestRouter(t)

	w := doJSON(t, router, bearer, http.MethodPost, "/api/interviews", gin.H{"role": "Java Developer"})
	iv := decodeInterview(t, w.Body.Bytes())

	var resp struct {
		Interview interview.Interview `json:"interview"`
		Notice    string              `json:"notice"`
	}

	for i := 0; i < interview.TabSwitchLimit; i++ {
		w = doJSON(t, router, bearer, http.MethodPost, "/api/interviews/"+iv.ID+"/events",
			gin.H{"type": "tab_switch"})
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}

	require.True(t, resp.Interview.Completed)
	require.Contains(t, resp.Notice, "policy violation")
}

func TestInformationalEventsDoNotTerminate(t *testing.T) {
	router, bearer := newTestRouter(t)

	w := doJSON(t, router, bearer, http.MethodPost, "/api/interviews", gin.H{"role": "Web Developer"})
	iv := decodeInterview(t, w.Body.Bytes())

	for _, typ := range []string{"window_restored", "camera_hidden"} {
		w = doJSON(t, router, bearer, http.MethodPost, "/api/interviews/"+iv.ID+"/events",
			gin.H{"type": typ})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(t, router, bearer, http.MethodGet, "/api/interviews/"+iv.ID, nil)
	got := decodeInterview(t, w.Body.Bytes())
	require.False(t, got.Completed)
	require.Zero(t, got.TabSwitches)

	w = doJSON(t, router, bearer, http.MethodPost, "/api/interviews/"+iv.ID+"/events",
		gin.H{"type": "mystery"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatchCompletedComputesScoreAndFeedback(t *testing.T) {
	router, bearer := newTestRouter(t)

	w := doJSON(t, router, bearer, http.MethodPost, "/api/interviews", gin.H{"role": "Python Developer"})
	iv := decodeInterview(t, w.Body.Bytes())

	answers := []interview.Answer{
		{Question: "q0", Answer: strings.Repeat("a", 60)},
		{Question: "q1", Answer: "short"},
	}

	w = doJSON(t, router, bearer, http.MethodPatch, "/api/interviews/"+iv.ID, gin.H{
		"answers":   answers,
		"duration":  120,
		"completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	done := decodeInterview(t, w.Body.Bytes())
	require.True(t, done.Completed)
	require.Equal(t, 1, done.Score)
	require.Contains(t, done.Feedback, "1")
	require.Equal(t, 120, done.Duration)

	// Round-trip: patching a completed session changes nothing.
	w = doJSON(t, router, bearer, http.MethodPatch, "/api/interviews/"+iv.ID, gin.H{
		"answers":   []interview.Answer{},
		"duration":  999,
		"completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	again := decodeInterview(t, w.Body.Bytes())
	require.Equal(t, done.Score, again.Score)
	require.Equal(t, done.Feedback, again.Feedback)
	require.Equal(t, done.Duration, again.Duration)
	require.Equal(t, done.Answers, again.Answers)
}

func TestPatchRejectsOversizedAnswers(t *testing.T) {
	router, bearer := newTestRouter(t)

	w := doJSON(t, router, bearer, http.MethodPost, "/api/interviews", gin.H{"role": "Frontend Developer"})
	iv := decodeInterview(t, w.Body.Bytes())

	oversized := make([]interview.Answer, interview.QuestionCount+5)
	for i := range oversized {
		oversized[i] = interview.Answer{
			Question: fmt.Sprintf("q%d", i),
			Answer:   strings.Repeat("a", 60),
		}
	}

	w = doJSON(t, router, bearer, http.MethodPatch, "/api/interviews/"+iv.ID, gin.H{
		"answers": oversized,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing was persisted: the session still has no answers and cannot
	// finalize with a score above the question count.
	w = doJSON(t, router, bearer, http.MethodGet, "/api/interviews/"+iv.ID, nil)
	got := decodeInterview(t, w.Body.Bytes())
	require.Empty(t, got.Answers)

	w = doJSON(t, router, bearer, http.MethodPatch, "/api/interviews/"+iv.ID, gin.H{
		"answers":   oversized,
		"completed": true,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, bearer, http.MethodGet, "/api/interviews/"+iv.ID, nil)
	got = decodeInterview(t, w.Body.Bytes())
	require.False(t, got.Completed)
	require.LessOrEqual(t, got.Score, interview.QuestionCount)
}

func TestQuestionEndpoint(t *testing.T) {
	router, bearer := newTestRouter(t)

	w := doJSON(t, router, bearer, http.MethodGet, "/api/questions/Astronaut/0", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, bearer, http.MethodGet, "/api/questions/Python%20Developer/10", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, bearer, http.MethodGet, "/api/questions/Python%20Developer/0", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Question string `json:"question"`
		Kind     string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.Question, "Tell me about yourself")
	require.Equal(t, "text", resp.Kind)
}
