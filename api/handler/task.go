package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskforge/backend/api/transport"
	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/pkg/httpcontext"
	taskUC "github.com/taskforge/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// Generate produces candidate task titles for a topic; nothing is persisted.
func (h *TaskHandler) Generate(ctx *fasthttp.RequestCtx) {
	claims := h.claims(ctx)
	if claims == nil {
		return
	}

	var req transport.GenerateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || strings.TrimSpace(req.Topic) == "" {
		h.respondInvalid(ctx, "topic is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	titles, err := h.uc.GenerateTitles(stdCtx, claims.SubjectID, req.Topic)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if titles == nil {
		titles = []string{}
	}
	h.respondJSON(ctx, http.StatusOK, transport.TitlesResponse{Tasks: titles})
}

// Save persists one generated title as an incomplete task for the caller.
func (h *TaskHandler) Save(ctx *fasthttp.RequestCtx) {
	claims := h.claims(ctx)
	if claims == nil {
		return
	}

	var req transport.SaveTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || strings.TrimSpace(req.Title) == "" {
		h.respondInvalid(ctx, "title is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	saved, err := h.uc.SaveTask(stdCtx, claims.SubjectID, req.Title, req.Topic)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.TaskResponse{Task: saved})
}

// List returns every saved task owned by the caller.
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	claims := h.claims(ctx)
	if claims == nil {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, claims.SubjectID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondJSON(ctx, http.StatusOK, transport.TaskListResponse{Tasks: tasks})
}

// SetStatus toggles a task between completed and incomplete.
func (h *TaskHandler) SetStatus(ctx *fasthttp.RequestCtx) {
	claims := h.claims(ctx)
	if claims == nil {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	var req transport.StatusUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Status == "" {
		h.respondInvalid(ctx, "status is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetStatus(stdCtx, claims.SubjectID, id, req.Status); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.SuccessResponse{Success: true})
}

// Delete removes an owned task.
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	claims := h.claims(ctx)
	if claims == nil {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, claims.SubjectID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.SuccessResponse{Success: true})
}
