package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotrodebabi/internal/adapters/geo"
	"hotrodebabi/internal/app"
	"hotrodebabi/internal/catalog"
	"hotrodebabi/internal/domain"
)

type Handlers struct {
	Store      *catalog.Store
	Hotels     *app.HotelService
	Monitor    *app.ExpiryMonitor
	Dispatcher *app.Dispatcher
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/search", h.search)
	s.mux.Get("/v1/communes", h.communes)

	s.mux.Post("/v1/jobs/subscription-expiry", h.runMonitor)
	s.mux.Post("/v1/admin/notifications", h.dispatchNotification)

	s.mux.Route("/v1/admin/hotels", func(r chi.Router) {
		r.Get("/", h.listHotels)
		r.Post("/", h.createHotel)
		r.Get("/{id}", h.getHotel)
		r.Put("/{id}", h.updateHotel)
		r.Post("/{id}/status", h.setHotelStatus)
		r.Delete("/{id}", h.deleteHotel)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// ---- search ----

type accommodationView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Price       int      `json:"price"`
	Amenities   []string `json:"amenities"`
	Features    []string `json:"features"`
	IsDiscrete  bool     `json:"isDiscrete"`
	Reviews     int      `json:"reviews"`
}

type searchResponse struct {
	Count   int                 `json:"count"`
	Sort    string              `json:"sort"`
	Results []accommodationView `json:"results"`
}

func toViews(in []domain.Accommodation) []accommodationView {
	out := make([]accommodationView, len(in))
	for i, a := range in {
		out[i] = accommodationView{
			ID: a.ID, Name: a.Name, Location: a.Location, Description: a.Description,
			Rating: a.Rating, Price: a.Price, Amenities: a.Amenities, Features: a.Features,
			IsDiscrete: a.IsDiscrete, Reviews: a.Reviews,
		}
	}
	return out
}

// search rebuilds the controller from the request's query string, mirroring
// the one-way URL -> state sync: the response never rewrites the URL.
func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var lat, lon *float64
	if v, err := strconv.ParseFloat(q.Get("lat"), 64); err == nil {
		lat = &v
	}
	if v, err := strconv.ParseFloat(q.Get("lon"), 64); err == nil {
		lon = &v
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	c := app.NewSearchController(h.Store, geo.NewStatic(lat, lon), rng)
	c.SeedFromQuery(q)
	c.SetQuery(q.Get("q"))

	if pr := q.Get("price"); pr != "" {
		c.SetPriceRange(app.PriceRange(pr))
	}
	if mr, err := strconv.ParseFloat(q.Get("min_rating"), 64); err == nil {
		c.SetMinRating(mr)
	}
	if q.Get("apply_filters") == "true" {
		c.SetApplyFilters(true)
	}

	if mode := q.Get("sort"); mode != "" && app.SortMode(mode) != app.SortDefault {
		if err := c.ToggleSort(r.Context(), app.SortMode(mode)); err != nil {
			if errors.Is(err, domain.ErrCapabilityDenied) {
				writeProblem(w, http.StatusForbidden, "Location unavailable",
					"proximity sort needs a position; pass lat and lon")
				return
			}
			writeProblem(w, http.StatusBadRequest, "Invalid sort", err.Error())
			return
		}
	}

	resp := searchResponse{
		Count:   len(c.Results()),
		Sort:    string(c.SortMode()),
		Results: toViews(c.Results()),
	}
	if c.SortMode() == app.SortProximity {
		// randomized order, not cacheable
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeCached(w, r, resp)
}

func (h *Handlers) communes(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, map[string]any{"communes": domain.Communes})
}

// ---- scheduled-job trigger ----

type monitorResponse struct {
	Success   bool                  `json:"success"`
	Timestamp time.Time             `json:"timestamp"`
	Summary   *domain.ExpirySummary `json:"summary,omitempty"`
	Error     string                `json:"error,omitempty"`
}

func (h *Handlers) runMonitor(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Monitor.Run(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, monitorResponse{
			Success: false, Timestamp: time.Now().UTC(), Error: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, monitorResponse{
		Success: true, Timestamp: time.Now().UTC(), Summary: &sum,
	})
}

// ---- admin notification dispatch ----

type dispatchResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	EmailID   string    `json:"emailId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

func (h *Handlers) dispatchNotification(w http.ResponseWriter, r *http.Request) {
	var req app.DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dispatchResponse{
			Success: false, Timestamp: time.Now().UTC(), Error: "invalid JSON body",
		})
		return
	}
	res, err := h.Dispatcher.Dispatch(r.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrValidation) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, dispatchResponse{
			Success: false, Timestamp: time.Now().UTC(), Error: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, dispatchResponse{
		Success: true, Message: "notification sent", EmailID: res.EmailID, Timestamp: res.Timestamp,
	})
}

// ---- admin hotels ----

type hotelPayload struct {
	OwnerID     *string  `json:"ownerId,omitempty"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Price       int      `json:"price"`
	Amenities   []string `json:"amenities"`
	Features    []string `json:"features"`
	IsDiscrete  bool     `json:"isDiscrete"`
	AdminNotes  *string  `json:"adminNotes,omitempty"`
}

type hotelView struct {
	ID string `json:"id"`
	hotelPayload
	Status     domain.HotelStatus `json:"status"`
	ApprovedAt *time.Time         `json:"approvedAt,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

func toHotelView(h domain.Hotel) hotelView {
	return hotelView{
		ID: h.ID,
		hotelPayload: hotelPayload{
			OwnerID: h.OwnerID, Name: h.Name, Location: h.Location, Description: h.Description,
			Rating: h.Rating, Price: h.Price, Amenities: h.Amenities, Features: h.Features,
			IsDiscrete: h.IsDiscrete, AdminNotes: h.AdminNotes,
		},
		Status: h.Status, ApprovedAt: h.ApprovedAt, CreatedAt: h.CreatedAt, UpdatedAt: h.UpdatedAt,
	}
}

func (p hotelPayload) toDomain() domain.Hotel {
	return domain.Hotel{
		OwnerID: p.OwnerID, Name: p.Name, Location: p.Location, Description: p.Description,
		Rating: p.Rating, Price: p.Price, Amenities: p.Amenities, Features: p.Features,
		IsDiscrete: p.IsDiscrete, AdminNotes: p.AdminNotes,
	}
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	var status *domain.HotelStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.HotelStatus(s)
		status = &st
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hotels, err := h.Hotels.List(r.Context(), status, limit)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "List failed", err.Error())
		return
	}
	views := make([]hotelView, len(hotels))
	for i, x := range hotels {
		views[i] = toHotelView(x)
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotels": views})
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var p hotelPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return
	}
	created, err := h.Hotels.Create(r.Context(), p.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeProblem(w, http.StatusBadRequest, "Invalid hotel", err.Error())
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Create failed", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toHotelView(created))
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hv, err := h.Hotels.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	writeCached(w, r, toHotelView(hv))
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	var p hotelPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return
	}
	upd := p.toDomain()
	upd.ID = chi.URLParam(r, "id")
	if err := h.Hotels.Update(r.Context(), upd); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Update failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) setHotelStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.HotelStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "status is required")
		return
	}
	err := h.Hotels.SetStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
	case errors.Is(err, domain.ErrTransition):
		writeProblem(w, http.StatusConflict, "Invalid transition", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Status change failed", err.Error())
	}
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.Hotels.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Delete failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
