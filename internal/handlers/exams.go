package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"culture-passport/internal/auth"
	"culture-passport/internal/models"
	"culture-passport/internal/query"
	"culture-passport/internal/store"
)

// ExamTemplateCRUD hides answer keys from everyone but admins.
func (h *Handler) ExamTemplateCRUD() *CRUD[models.ExamTemplate, store.ExamTemplatePatch] {
	r := NewCRUD[models.ExamTemplate, store.ExamTemplatePatch](h, h.ExamTemplates, "exam_template")
	r.Present = func(p auth.Principal, t models.ExamTemplate) models.ExamTemplate {
		if p.IsAdmin() {
			return t
		}
		return t.Redacted()
	}
	return r
}

// ListExamScores restricts employees to their own scores whatever user_id
// they ask for; managers see their department.
func (h *Handler) ListExamScores(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	scope, ok := h.scope(c, p, query.ExamScores)
	if !ok {
		return
	}
	scores, err := h.Exams.Scores(c.Request.Context(), scope, c.Query("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

type attemptRequest struct {
	Answers []int `json:"answers"`
}

func (h *Handler) SubmitExamAttempt(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req attemptRequest
	if !bindJSON(c, &req) {
		return
	}
	score, err := h.Exams.RecordAttempt(c.Request.Context(), c.Param("id"), p.UserID, req.Answers)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, score)
}
