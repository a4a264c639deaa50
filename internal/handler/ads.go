package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) FindAllAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.ads.FindAll(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Find All Ads Success", ads)
}

func (h *Handler) FindAd(w http.ResponseWriter, r *http.Request) {
	ad, err := h.ads.FindByID(r.Context(), chi.URLParam(r, "adId"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Find One Ad Success", ad)
}

func (h *Handler) FindAdsByJobID(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.pathID(w, r, "jobId")
	if !ok {
		return
	}

	ads, err := h.ads.FindByJobID(r.Context(), jobID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Find Ads By Job Id Success", ads)
}

func (h *Handler) FindUserByAdID(w http.ResponseWriter, r *http.Request) {
	user, err := h.ads.FindUserByAdID(r.Context(), chi.URLParam(r, "adId"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Find User By Ad Id Success", user)
}

func (h *Handler) SaveAd(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.pathID(w, r, "jobId")
	if !ok {
		return
	}

	var req struct {
		HTMLCode string `json:"htmlCode" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ad, err := h.ads.Save(r.Context(), jobID, req.HTMLCode)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Save Ad Success", ad)
}
