// Package handler exposes the interview REST surface: session CRUD, the
// lifecycle operations (answers, proctoring events) and question retrieval.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/interview"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/logger"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/question"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	lifecycle *interview.Lifecycle
	store     interview.Store
	source    question.Source
	bank      *question.Bank
}

func NewHandler(
	lifecycle *interview.Lifecycle,
	store interview.Store,
	source question.Source,
	bank *question.Bank,
) *Handler {
	return &Handler{
		lifecycle: lifecycle,
		store:     store,
		source:    source,
		bank:      bank,
	}
}

// RegisterRoutes attaches the protected interview routes to the group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/interviews", h.Create)
	api.GET("/interviews/:id", h.Get)
	api.PATCH("/interviews/:id", h.Patch)
	api.POST("/interviews/:id/answers", h.SubmitAnswer)
	api.POST("/interviews/:id/events", h.RecordEvent)
	api.GET("/questions/:role/:index", h.Question)
}

type createRequest struct {
	Role string `json:"role"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	iv, err := h.lifecycle.Start(c.Request.Context(), req.Role)
	if err != nil {
		if errors.Is(err, interview.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown job role"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create interview"})
		return
	}

	c.JSON(http.StatusCreated, iv)
}

func (h *Handler) Get(c *gin.Context) {
	iv, err := h.lifecycle.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

type patchRequest struct {
	Answers     []interview.Answer `json:"answers"`
	TabSwitches *int               `json:"tabSwitches"`
	Duration    *int               `json:"duration"`
	Completed   *bool              `json:"completed"`
}

// Patch applies a partial update. Score and feedback are never accepted
// from the client: when completed:true arrives on an active session the
// server computes both during finalization. An answers array longer than
// the question count is rejected. A completed session is returned
// unchanged.
func (h *Handler) Patch(c *gin.Context) {
	id := c.Param("id")

	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	iv, err := h.store.Update(c.Request.Context(), id, interview.Patch{
		Answers:     req.Answers,
		TabSwitches: req.TabSwitches,
		Duration:    req.Duration,
	})
	if err != nil {
		if errors.Is(err, interview.ErrTooManyAnswers) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "answers exceed the question count"})
			return
		}
		h.storeError(c, err)
		return
	}

	if req.Completed != nil && *req.Completed {
		iv, err = h.lifecycle.Finalize(c.Request.Context(), id)
		if err != nil {
			h.storeError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, iv)
}

type answerRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (h *Handler) SubmitAnswer(c *gin.Context) {
	id := c.Param("id")

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	// The client reports the question it displayed; if it doesn't, fall
	// back to the deterministic bank text for the current index.
	if req.Question == "" {
		iv, err := h.lifecycle.Get(c.Request.Context(), id)
		if err != nil {
			h.storeError(c, err)
			return
		}
		q, err := h.bank.Question(c.Request.Context(), iv.Role, iv.QuestionIndex())
		if err != nil {
			q = h.bank.Fallback(iv.Role)
		}
		req.Question = q.Prompt
	}

	iv, err := h.lifecycle.SubmitAnswer(c.Request.Context(), id, req.Question, req.Answer)
	if err != nil {
		if errors.Is(err, interview.ErrEmptyAnswer) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "answer must not be empty"})
			return
		}
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, iv)
}

type eventRequest struct {
	Type    string `json:"type"`
	Elapsed int    `json:"elapsed"` // seconds, heartbeat only
}

// RecordEvent ingests proctoring signals. Only tab_switch enforces
// termination; heartbeat drives the timer; the remaining signals are
// informational and change nothing (the enforcement asymmetry is a
// product decision, see DESIGN.md).
func (h *Handler) RecordEvent(c *gin.Context) {
	id := c.Param("id")

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	switch req.Type {
	case "tab_switch":
		iv, violation, err := h.lifecycle.RecordTabSwitch(c.Request.Context(), id)
		if err != nil {
			h.storeError(c, err)
			return
		}
		if violation {
			c.JSON(http.StatusOK, gin.H{
				"interview": iv,
				"notice":    "interview terminated for policy violation",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"interview": iv})

	case "heartbeat":
		iv, err := h.lifecycle.Tick(c.Request.Context(), id, req.Elapsed)
		if err != nil {
			h.storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"interview": iv})

	case "window_restored", "camera_hidden":
		logger.Info("proctoring signal",
			zap.String("interview_id", id), zap.String("type", req.Type))
		iv, err := h.lifecycle.Get(c.Request.Context(), id)
		if err != nil {
			h.storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"interview": iv})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event type"})
	}
}

// Question serves the question for (role, index). Generation failures are
// absorbed by the source's fallbacks, so a response always carries usable
// question text.
func (h *Handler) Question(c *gin.Context) {
	role := c.Param("role")
	if !interview.ValidRole(role) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job role"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= interview.QuestionCount {
		c.JSON(http.StatusNotFound, gin.H{"error": "question index out of range"})
		return
	}

	q, err := h.source.Question(c.Request.Context(), role, index)
	if err != nil {
		// Guaranteed fallback text, never a bare error.
		q = h.bank.Fallback(role)
		c.JSON(http.StatusInternalServerError, gin.H{
			"question": q.Prompt,
			"kind":     q.Kind,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question": q.Prompt,
		"kind":     q.Kind,
	})
}

func (h *Handler) storeError(c *gin.Context, err error) {
	if errors.Is(err, interview.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "interview not found"})
		return
	}
	logger.Error("interview store error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
