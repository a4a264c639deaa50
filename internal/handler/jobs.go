package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

// pathID 解析路径中的数字 ID，失败时已经写好响应
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("Invalid id "+chi.URLParam(r, name)))
		return 0, false
	}
	return id, true
}

func (h *Handler) FindAllJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.FindAll(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Find All Jobs Success", jobs)
}

func (h *Handler) FindAllJobsByEmail(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.FindAllByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Find All Jobs By Email Success", jobs)
}

func (h *Handler) FindJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	job, err := h.jobs.FindByID(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Find One Job Success", job)
}

func (h *Handler) GetJobTitles(w http.ResponseWriter, r *http.Request) {
	titles, err := h.jobs.JobTitles(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Find Job Titles Success", titles)
}

func (h *Handler) AddJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email" validate:"required,email"`
		Title       string `json:"title" validate:"required"`
		Description string `json:"description" validate:"required"`
		Instruction string `json:"instruction" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	job, err := h.jobs.Add(r.Context(), req.Email, req.Title, req.Description, req.Instruction)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Add Job Success", job)
}

// UpdateJob 是全量替换，未提供的字段会被清空
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Title               string `json:"title" validate:"required"`
		Description         string `json:"description"`
		Instruction         string `json:"instruction"`
		RecruiterName       string `json:"recruiterName"`
		AdCompany           string `json:"adCompany"`
		AdEmail             string `json:"adEmail" validate:"omitempty,email"`
		AdPhone             string `json:"adPhone"`
		ApplicationDeadline string `json:"applicationDeadline"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	job, err := h.jobs.Update(r.Context(), id, domain.JobUpdate(req))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Update Job Success", job)
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.jobs.Delete(r.Context(), chi.URLParam(r, "email"), id); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Delete Job Success", nil)
}

func (h *Handler) GenerateAd(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	job, ad, err := h.jobs.Generate(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.notifyAdGenerated(r.Context(), job, ad)
	h.successResponse(w, r, "Generate Ad Success", ad.HTMLCode)
}
