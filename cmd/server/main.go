// Package main runs the housing match engine HTTP server: map listings and
// roommate pins, unit-fit classification, compatibility ranking, and the
// thin proxies around them (geocoding, outreach drafting, rental import).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"housing-match-engine/internal/config"
	"housing-match-engine/internal/models"
	"housing-match-engine/internal/services/compat"
	"housing-match-engine/internal/services/database"
	"housing-match-engine/internal/services/geocode"
	"housing-match-engine/internal/services/outreach"
	"housing-match-engine/internal/services/rentals"
	s3service "housing-match-engine/internal/services/s3"
	sesservice "housing-match-engine/internal/services/ses"
	"housing-match-engine/internal/utils"
)

// Server holds all dependencies
type Server struct {
	db          *database.DB
	listingRepo *database.ListingRepository
	profileRepo *database.ProfileRepository
	unitRepo    *database.UnitRepository
	geocoder    *geocode.Service
	rentals     *rentals.Client
	drafter     *outreach.Drafter
	mailer      *sesservice.Service
	photos      *s3service.Service
	config      *config.Config
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.Stage); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	ctx := context.Background()

	db, err := database.New(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := cache.Ping(pingCtx).Err(); err != nil {
			utils.Logger.Warn("Redis unavailable, geocode caching disabled", zap.Error(err))
			cache = nil
		}
		cancel()
	}

	generator, err := outreach.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		utils.Logger.Fatal("Failed to create outreach generator", zap.Error(err))
	}

	server := &Server{
		db:          db,
		listingRepo: database.NewListingRepository(db),
		profileRepo: database.NewProfileRepository(db),
		unitRepo:    database.NewUnitRepository(db),
		geocoder:    geocode.NewService(cfg.NominatimBaseURL, cache),
		rentals:     rentals.NewClient(cfg.RentalsAPIBaseURL, cfg.RentalsAPIKey),
		drafter:     outreach.NewDrafter(generator),
		config:      cfg,
	}

	if mailer, err := sesservice.NewService(ctx, cfg); err != nil {
		utils.Logger.Warn("SES unavailable, outreach email disabled", zap.Error(err))
	} else {
		server.mailer = mailer
	}

	if photos, err := s3service.NewService(ctx, cfg); err != nil {
		utils.Logger.Warn("S3 unavailable, photo uploads disabled", zap.Error(err))
	} else {
		server.photos = photos
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", server.healthHandler)

	mux.HandleFunc("/api/listings", server.listingsHandler)
	mux.HandleFunc("/api/listings/fit", server.listingsFitHandler)
	mux.HandleFunc("/api/profiles", server.profilesHandler)
	mux.HandleFunc("/api/match/rank", server.rankHandler)
	mux.HandleFunc("/api/units", server.unitsHandler)
	mux.HandleFunc("/api/units/members", server.unitMembersHandler)

	mux.HandleFunc("/api/geocode", server.geocodeHandler)
	mux.HandleFunc("/api/outreach", server.outreachHandler)
	mux.HandleFunc("/api/sync/rentals", server.syncRentalsHandler)
	mux.HandleFunc("/api/photos/presign", server.presignPhotoHandler)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	handler := c.Handler(mux)

	addr := ":" + strconv.Itoa(cfg.Port)
	utils.Logger.Info("Starting server", zap.String("addr", addr), zap.String("stage", cfg.Stage))

	if err := http.ListenAndServe(addr, handler); err != nil {
		utils.Logger.Fatal("Server failed", zap.Error(err))
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := s.db.HealthCheck(ctx); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// listingsHandler serves GET (all active listings) and POST (create).
func (s *Server) listingsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		listings, err := s.listingRepo.GetAllActive(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true, Data: listings})

	case http.MethodPost:
		var create models.ListingCreate
		if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
		if err := models.ValidateListingCreate(&create); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		// Resolve a pin for the map when an address is given without
		// coordinates.
		if create.Address != "" && create.Latitude == 0 && create.Longitude == 0 {
			if loc, err := s.geocoder.Forward(r.Context(), create.Address); err == nil {
				create.Latitude = loc.Latitude
				create.Longitude = loc.Longitude
				create.Geohash = loc.Geohash
			} else {
				utils.Logger.Warn("Geocoding failed for new listing", zap.Error(err))
			}
		}

		id, err := s.listingRepo.Create(r.Context(), &create)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, Response{Success: true, Data: map[string]int64{"id": id}})

	case http.MethodDelete:
		id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid listing id"))
			return
		}
		if err := s.listingRepo.Deactivate(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true})

	default:
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

// listingsFitHandler classifies every active listing against a housing
// unit: GET /api/listings/fit?unit=ID.
func (s *Server) listingsFitHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	var unit *models.HousingUnit
	if raw := r.URL.Query().Get("unit"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid unit id"))
			return
		}
		unit, err = s.unitRepo.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
	}

	listings, err := s.listingRepo.GetAllActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	fits := make([]models.ListingFit, 0, len(listings))
	for _, l := range listings {
		fits = append(fits, models.ListingFit{
			Listing: l.ToSummary(),
			Fit:     compat.ClassifyFit(*l, unit),
		})
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: fits})
}

// profilesHandler serves GET (all active profiles) and POST (create).
func (s *Server) profilesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profiles, err := s.profileRepo.GetAllActive(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true, Data: profiles})

	case http.MethodPost:
		var create models.RoommateProfileCreate
		if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
		if err := models.ValidateProfileCreate(&create); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		id, err := s.profileRepo.Create(r.Context(), &create)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, Response{Success: true, Data: map[string]int64{"id": id}})

	case http.MethodDelete:
		id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid profile id"))
			return
		}
		if err := s.profileRepo.Deactivate(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true})

	default:
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

// rankHandler ranks the active profile pool for a seeker:
// GET /api/match/rank?seeker=ID.
func (s *Server) rankHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	seekerID, err := strconv.ParseInt(r.URL.Query().Get("seeker"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid seeker id"))
		return
	}

	seeker, err := s.profileRepo.GetByID(r.Context(), seekerID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	pool, err := s.profileRepo.GetAllActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	candidates := make([]models.RoommateProfile, 0, len(pool))
	for _, p := range pool {
		candidates = append(candidates, *p)
	}

	results := compat.RankCandidates(*seeker, candidates)
	writeJSON(w, http.StatusOK, Response{Success: true, Data: results})
}

// unitsHandler serves GET (all units) and POST (create).
func (s *Server) unitsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		units, err := s.unitRepo.GetAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true, Data: units})

	case http.MethodPost:
		var create models.HousingUnitCreate
		if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
		if create.Name == "" {
			writeError(w, http.StatusBadRequest, models.ErrEmptyName)
			return
		}

		id, err := s.unitRepo.Create(r.Context(), &create)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, Response{Success: true, Data: map[string]int64{"id": id}})

	case http.MethodDelete:
		id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid unit id"))
			return
		}
		if err := s.unitRepo.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true})

	default:
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

// unitMembersRequest adds one member to a housing unit.
type unitMembersRequest struct {
	UnitID int64             `json:"unit_id"`
	Member models.UnitMember `json:"member"`
}

func (s *Server) unitMembersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	var req unitMembersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	for _, d := range req.Member.Dealbreakers {
		if !d.IsValid() {
			writeError(w, http.StatusBadRequest, models.ErrInvalidDealbreaker)
			return
		}
	}

	unit, err := s.unitRepo.AddMember(r.Context(), req.UnitID, req.Member)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: unit})
}

func (s *Server) geocodeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	address := r.URL.Query().Get("q")
	if address == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("query parameter q is required"))
		return
	}

	result, err := s.geocoder.Forward(r.Context(), address)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// outreachRequest drafts a message for a seeker, about either a listing or
// a matched candidate, and optionally emails it to the seeker.
type outreachRequest struct {
	SeekerID    int64 `json:"seeker_id"`
	ListingID   int64 `json:"listing_id,omitempty"`
	CandidateID int64 `json:"candidate_id,omitempty"`
	Email       bool  `json:"email,omitempty"`
}

func (s *Server) outreachHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	var req outreachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	seeker, err := s.profileRepo.GetByID(r.Context(), req.SeekerID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var message, subject string
	switch {
	case req.ListingID != 0:
		listing, err := s.listingRepo.GetByID(r.Context(), req.ListingID)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		message, err = s.drafter.DraftListingMessage(r.Context(), *seeker, *listing)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		subject = "Your draft message for: " + listing.Title

	case req.CandidateID != 0:
		candidate, err := s.profileRepo.GetByID(r.Context(), req.CandidateID)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		match := compat.ScorePair(*seeker, *candidate)
		message, err = s.drafter.DraftRoommateMessage(r.Context(), *seeker, match)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		subject = "Your draft introduction to " + candidate.Name

	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("listing_id or candidate_id is required"))
		return
	}

	if req.Email {
		if s.mailer == nil || seeker.Email == "" {
			writeError(w, http.StatusConflict, fmt.Errorf("email delivery is not available"))
			return
		}
		if _, err := s.mailer.SendOutreachMessage(r.Context(), seeker.Email, subject, message); err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]string{"message": message}})
}

// syncRentalsRequest triggers an import from the external rentals API.
type syncRentalsRequest struct {
	City     string `json:"city"`
	MaxPages int    `json:"max_pages,omitempty"`
}

func (s *Server) syncRentalsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	var req syncRentalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.City == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("city is required"))
		return
	}
	if !s.rentals.Configured() {
		writeError(w, http.StatusConflict, fmt.Errorf("rentals API is not configured"))
		return
	}

	listings, importResult, err := s.rentals.FetchCity(r.Context(), req.City, req.MaxPages)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	insertResult, err := s.listingRepo.BulkInsert(r.Context(), listings)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("imported batch %s", importResult.BatchID),
		Data: map[string]interface{}{
			"import": importResult,
			"insert": insertResult,
		},
	})
}

// presignPhotoRequest asks for an upload URL for a listing photo.
type presignPhotoRequest struct {
	ListingID   int64  `json:"listing_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

func (s *Server) presignPhotoHandler(w http.ResponseWriter, r *http.Request) {
	if s.photos == nil {
		writeError(w, http.StatusConflict, fmt.Errorf("photo uploads are not available"))
		return
	}

	// GET hands out a short-lived download URL for an existing photo.
	if r.Method == http.MethodGet {
		key := r.URL.Query().Get("key")
		if key == "" {
			writeError(w, http.StatusBadRequest, fmt.Errorf("query parameter key is required"))
			return
		}
		result, err := s.photos.GeneratePresignedDownloadURL(r.Context(), key, 15)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true, Data: result})
		return
	}

	if r.Method == http.MethodDelete {
		key := r.URL.Query().Get("key")
		if key == "" {
			writeError(w, http.StatusBadRequest, fmt.Errorf("query parameter key is required"))
			return
		}
		if err := s.photos.DeleteObject(r.Context(), key); err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true})
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	var req presignPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Filename == "" || req.ContentType == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("filename and content_type are required"))
		return
	}

	key := s3service.PhotoKey(req.ListingID, req.Filename)
	result, err := s.photos.GeneratePresignedUploadURL(r.Context(), key, req.ContentType, 15)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		utils.Logger.Error("Failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, Response{Success: false, Error: err.Error()})
}
