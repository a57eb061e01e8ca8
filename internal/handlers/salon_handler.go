package handlers

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trimconnect/salon-booking-api/internal/geo"
	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/httpresp"
	"github.com/trimconnect/salon-booking-api/internal/middleware"
	"github.com/trimconnect/salon-booking-api/internal/models"
	"github.com/trimconnect/salon-booking-api/internal/settings"
	"github.com/trimconnect/salon-booking-api/internal/storage"
	"github.com/trimconnect/salon-booking-api/internal/timezone"
)

type SalonHandler struct {
	db       *gorm.DB
	settings *settings.Service
	uploader *storage.Uploader
}

func NewSalonHandler(db *gorm.DB, settingsSvc *settings.Service, uploader *storage.Uploader) *SalonHandler {
	return &SalonHandler{db: db, settings: settingsSvc, uploader: uploader}
}

// ======================================================
// PUBLIC SEARCH
// ======================================================

type salonResult struct {
	models.Salon

	DistanceKm    *float64 `json:"distance_km,omitempty"`
	DistanceText  string   `json:"distance_text,omitempty"`
	DirectionsURL string   `json:"directions_url,omitempty"`
}

// Search lists bookable salons. With lat/lon query params each result gets
// its Haversine distance, the list is sorted nearest first, and an optional
// radius_km filter applies.
func (h *SalonHandler) Search(c *gin.Context) {
	q := h.db.Where("is_active = TRUE AND is_verified = TRUE")

	if city := c.Query("city"); city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}

	var salons []models.Salon
	if err := q.Order("name ASC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Could not load salons.")
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		httpresp.List(c, salons)
		return
	}

	radiusKm := 0.0
	if r, err := strconv.ParseFloat(c.Query("radius_km"), 64); err == nil && r > 0 {
		radiusKm = r
	}

	provider := h.settings.Get(c.Request.Context()).MapProvider

	results := make([]salonResult, 0, len(salons))
	for _, s := range salons {
		if s.Latitude == nil || s.Longitude == nil {
			continue
		}
		d := geo.DistanceKm(lat, lon, *s.Latitude, *s.Longitude)
		if radiusKm > 0 && d > radiusKm {
			continue
		}
		dCopy := d
		results = append(results, salonResult{
			Salon:         s,
			DistanceKm:    &dCopy,
			DistanceText:  geo.FormatDistance(d),
			DirectionsURL: geo.DirectionsURL(provider, *s.Latitude, *s.Longitude, s.Name),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return *results[i].DistanceKm < *results[j].DistanceKm
	})

	httpresp.List(c, results)
}

func (h *SalonHandler) GetByID(c *gin.Context) {
	salonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_salon_id", "Malformed salon id.")
		return
	}

	var salon models.Salon
	if err := h.db.
		Where("id = ? AND is_active = TRUE AND is_verified = TRUE", salonID).
		First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("salon_id = ? AND active = TRUE", salonID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load services.")
		return
	}

	out := gin.H{"salon": salon, "services": services}
	if salon.Latitude != nil && salon.Longitude != nil {
		provider := h.settings.Get(c.Request.Context()).MapProvider
		out["directions_url"] = geo.DirectionsURL(provider, *salon.Latitude, *salon.Longitude, salon.Name)
	}

	httpresp.OK(c, out)
}

// ======================================================
// OWNER
// ======================================================

type UpsertSalonRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`

	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`

	IsAcceptingAppointments *bool `json:"is_accepting_appointments"`
}

func (h *SalonHandler) GetMine(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var salon models.Salon
	if err := h.db.Where("owner_id = ?", ownerID).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "You have not registered a salon yet.")
		return
	}

	httpresp.OK(c, salon)
}

func (h *SalonHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var count int64
	h.db.Model(&models.Salon{}).Where("owner_id = ?", ownerID).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "salon_already_exists", "You already have a registered salon.")
		return
	}

	var req UpsertSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid salon data.")
		return
	}

	salon := models.Salon{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
		// verification is an admin action, new salons start unverified
		IsVerified:              false,
		IsActive:                true,
		IsAcceptingAppointments: true,
	}

	if err := h.db.Create(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_create_salon", "Could not register the salon.")
		return
	}

	httpresp.Created(c, salon)
}

func (h *SalonHandler) UpdateMine(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var salon models.Salon
	if err := h.db.Where("owner_id = ?", ownerID).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "You have not registered a salon yet.")
		return
	}

	var req UpsertSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid salon data.")
		return
	}

	salon.Name = req.Name
	salon.Description = req.Description
	salon.Address = req.Address
	salon.City = req.City
	salon.State = req.State
	salon.PostalCode = req.PostalCode
	salon.Country = req.Country
	salon.Latitude = req.Latitude
	salon.Longitude = req.Longitude
	salon.PhoneNumber = req.PhoneNumber
	salon.Email = req.Email
	salon.OpeningTime = req.OpeningTime
	salon.ClosingTime = req.ClosingTime
	if req.IsAcceptingAppointments != nil {
		salon.IsAcceptingAppointments = *req.IsAcceptingAppointments
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Could not update the salon.")
		return
	}

	httpresp.OK(c, salon)
}

// ======================================================
// MEDIA
// ======================================================

const maxUploadBytes = 8 << 20

// UploadImage stores the salon's logo or banner (route param "kind").
func (h *SalonHandler) UploadImage(c *gin.Context) {
	if h.uploader == nil {
		httperr.Internal(c, "uploads_disabled", "Media uploads are not configured.")
		return
	}

	ownerID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	kind := c.Param("kind")
	if kind != "logo" && kind != "banner" {
		httperr.BadRequest(c, "invalid_image_kind", "Image kind must be logo or banner.")
		return
	}

	var salon models.Salon
	if err := h.db.Where("owner_id = ?", ownerID).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "You have not registered a salon yet.")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}
	if file.Size > maxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "Images are limited to 8 MB.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read the upload.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read the upload.")
		return
	}

	key := fmt.Sprintf("salons/%s/%s-%d.webp", salon.ID, kind, timezone.Now().Unix())
	url, err := h.uploader.UploadWebP(c.Request.Context(), key, raw)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Could not store the image.")
		return
	}

	if kind == "logo" {
		salon.LogoURL = url
	} else {
		salon.BannerURL = url
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Could not save the image URL.")
		return
	}

	httpresp.OK(c, gin.H{"url": url})
}
