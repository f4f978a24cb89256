package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"spendbook/internal/core"
	"spendbook/internal/services"
)

type createRecordRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Category string `json:"category" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type updateRecordRequest struct {
	Name     string `json:"name" validate:"omitempty,max=200"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type recordResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	CategoryIcon string  `json:"categoryIcon"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
}

type categoryResponse struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Selected bool   `json:"selected,omitempty"`
}

type listResponse struct {
	Records          []recordResponse   `json:"records"`
	Total            float64            `json:"total"`
	TotalDisplay     string             `json:"totalDisplay"`
	Months           []string           `json:"months"`
	Categories       []categoryResponse `json:"categories"`
	SelectedCategory string             `json:"selectedCategory,omitempty"`
	SelectedDate     string             `json:"selectedDate,omitempty"`
}

type editResponse struct {
	Record     recordResponse     `json:"record"`
	Categories []categoryResponse `json:"categories"`
}

func toRecordResponse(r core.Record) recordResponse {
	return recordResponse{
		ID:           r.ID,
		Name:         r.Name,
		Category:     r.Category,
		CategoryIcon: r.CategoryIcon,
		Amount:       r.Amount,
		Date:         r.Date,
	}
}

func toListResponse(res *services.ListResult) listResponse {
	out := listResponse{
		Records:          make([]recordResponse, 0, len(res.Records)),
		Total:            res.Total,
		TotalDisplay:     res.TotalDisplay,
		Months:           res.Months,
		Categories:       toCategoryResponses(res.Categories),
		SelectedCategory: res.SelectedCategory,
		SelectedDate:     res.SelectedDate,
	}
	if out.Months == nil {
		out.Months = []string{}
	}
	for _, r := range res.Records {
		out.Records = append(out.Records, toRecordResponse(r))
	}
	return out
}

func toCategoryResponses(cats []services.CategoryOption) []categoryResponse {
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryResponse{Name: c.Name, Icon: c.Icon, Selected: c.Selected})
	}
	return out
}

// handleHome serves the unfiltered overview of the owner's records.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ownerID := OwnerIDFromContext(r.Context())

	res, err := s.records.Overview(r.Context(), ownerID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toListResponse(res))
}

// handleNewRecordForm serves the category choices for the create form.
func (s *Server) handleNewRecordForm(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.All(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryResponse{Name: c.Name, Icon: c.Icon})
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	ownerID := OwnerIDFromContext(r.Context())

	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	rec, err := s.records.Create(r.Context(), ownerID, services.RecordInput{
		Name:     req.Name,
		Category: req.Category,
		Amount:   req.Amount,
		Date:     req.Date,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toRecordResponse(rec))
}

// handleListRecords serves the filtered listing. Without criteria the
// client is redirected to the overview instead.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	ownerID := OwnerIDFromContext(r.Context())

	q := r.URL.Query()
	res, err := s.records.List(r.Context(), ownerID, q.Get("category"), q.Get("date"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if res.NoFilter {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	respondWithJSON(w, http.StatusOK, toListResponse(res))
}

func (s *Server) handleEditRecord(w http.ResponseWriter, r *http.Request) {
	ownerID := OwnerIDFromContext(r.Context())
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	view, err := s.records.EditView(r.Context(), ownerID, id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, editResponse{
		Record:     toRecordResponse(view.Record),
		Categories: toCategoryResponses(view.Categories),
	})
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	ownerID := OwnerIDFromContext(r.Context())
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	var req updateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	rec, err := s.records.Update(r.Context(), ownerID, id, services.RecordInput{
		Name:     req.Name,
		Category: req.Category,
		Amount:   req.Amount,
		Date:     req.Date,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toRecordResponse(rec))
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	ownerID := OwnerIDFromContext(r.Context())
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	if err := s.records.Delete(r.Context(), ownerID, id); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		respondWithError(w, http.StatusBadRequest, "invalid record id")
		return 0, false
	}
	return id, true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request payload"
	}
	f := verrs[0]
	switch f.Tag() {
	case "required":
		return f.Field() + " is required"
	case "max":
		return f.Field() + " is too long"
	case "datetime":
		return f.Field() + " must be YYYY-MM-DD"
	}
	return f.Field() + " is invalid"
}
