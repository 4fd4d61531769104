// internal/app/features/checkemail/handler.go
package checkemail

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/users"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/images"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/inputval"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

// Handler answers real-time email lookups for the join form. Existing
// members get their profile back (minus credentials) so the form can offer
// a pre-filled update.
type Handler struct {
	Store  *userstore.Store
	Images images.Resolver
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, imgs images.Resolver, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  userstore.New(db),
		Images: imgs,
		Log:    logger,
	}
}

// Check serves GET /v1/check-email?email=. Soft-deleted accounts read as
// absent.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	email := userstore.NormalizeEmail(r.URL.Query().Get("email"))
	if email == "" {
		httpjson.Error(w, http.StatusBadRequest, "Email address is required")
		return
	}
	if !inputval.IsValidEmail(email) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid email address format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Store.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.OK(w, map[string]any{
				"success": true,
				"exists":  false,
				"email":   email,
			})
			return
		}
		h.Log.Error("check email", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpjson.OK(w, map[string]any{
		"success": true,
		"exists":  true,
		"is_paid": user.HasPaid(),
		"email":   email,
		"member":  h.profile(user),
	})
}

// profile builds the comparison-modal payload. Credentials are never
// included.
func (h *Handler) profile(u *models.User) map[string]any {
	companyName := u.CompanyName
	if companyName == "" {
		companyName = u.Company
	}
	companyDescription := u.CompanyDescription
	if companyDescription == "" {
		companyDescription = u.BusinessDescription
	}

	companyPhoto := ""
	if u.CompanyPhoto != "" {
		companyPhoto = h.Images.Resolve(u.CompanyPhoto)
	}
	photo := ""
	if u.Photo != "" {
		photo = h.Images.Resolve(u.Photo)
	}

	socialMedia := u.SocialMedia
	if socialMedia == nil {
		socialMedia = map[string]string{}
	}
	businessHours := u.BusinessHours
	if businessHours == nil {
		businessHours = map[string]models.Hours{}
	}
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}

	return map[string]any{
		"first_name":          u.FirstName,
		"middle_name":         u.MiddleName,
		"last_name":           u.LastName,
		"contact_title":       u.ContactTitle,
		"phone":               u.Phone,
		"company_name":        companyName,
		"company_phone":       u.CompanyPhone,
		"company_email":       u.CompanyEmail,
		"company_website":     u.CompanyWebsite,
		"company_address":     u.CompanyAddress,
		"company_city":        u.CompanyCity,
		"company_state":       u.CompanyState,
		"company_zip":         u.CompanyZip,
		"company_description": companyDescription,
		"business_category":   u.BusinessCategory,
		"num_employees":       u.NumEmployees,
		"video_url":           u.VideoURL,
		"social_media":        socialMedia,
		"business_hours":      businessHours,
		"business_faqs":       u.BusinessFAQs,
		"interests":           interests,
		"company_photo":       companyPhoto,
		"company_photos":      h.Images.ResolveAll(u.CompanyPhotos),
		"photo":               photo,
	}
}
