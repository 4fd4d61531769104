// internal/app/features/application/handler.go
package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	messagestore "github.com/productdesignexperts/api.connexus.team/internal/app/store/messages"
	submissionstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/submissions"
	userstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/users"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/inputval"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/reqinfo"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
)

// Handler processes membership applications from the join form: new
// members, and profile updates for existing unpaid members who asked for
// one.
type Handler struct {
	Users       *userstore.Store
	Submissions *submissionstore.Store
	Messages    *messagestore.Store
	Uploads     *UploadSaver
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, uploads *UploadSaver, logger *zap.Logger) *Handler {
	return &Handler{
		Users:       userstore.New(db),
		Submissions: submissionstore.New(db),
		Messages:    messagestore.New(db),
		Uploads:     uploads,
		Log:         logger,
	}
}

// form is the parsed application body with both naming conventions
// already merged.
type form struct {
	Email               string
	FirstName           string
	MiddleName          string
	LastName            string
	ContactTitle        string
	Phone               string
	BusinessName        string
	BusinessPhone       string
	BusinessWebsite     string
	BusinessAddress     string
	BusinessCity        string
	BusinessState       string
	BusinessZip         string
	BusinessCategory    string
	BusinessDescription string
	NumEmployees        string
	HearAboutUs         string
	PreferredStartMonth string
	AdditionalNotes     string
	VideoURL            string
	BusinessFAQs        string
	Password            string
	SocialMedia         map[string]string
	Interests           []string
	BusinessHours       map[string]models.Hours
	UpdateExisting      bool
}

var daysOfWeek = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

func parseForm(body map[string]any) form {
	f := form{
		Email:               userstore.NormalizeEmail(httpjson.Str(body, "email", "businessEmail")),
		FirstName:           httpjson.Str(body, "firstName", "first_name"),
		MiddleName:          httpjson.Str(body, "middleName", "middle_name"),
		LastName:            httpjson.Str(body, "lastName", "last_name"),
		ContactTitle:        httpjson.Str(body, "contactTitle", "contact_title"),
		Phone:               httpjson.Str(body, "contactMobilePhone", "phone"),
		BusinessName:        httpjson.Str(body, "businessName", "company_name"),
		BusinessPhone:       httpjson.Str(body, "businessPhone", "company_phone"),
		BusinessWebsite:     httpjson.Str(body, "businessWebsite", "company_website"),
		BusinessAddress:     httpjson.Str(body, "businessStreet", "company_address"),
		BusinessCity:        httpjson.Str(body, "businessCity", "company_city"),
		BusinessState:       httpjson.Str(body, "businessState", "company_state"),
		BusinessZip:         httpjson.Str(body, "businessZip", "company_zip"),
		BusinessCategory:    httpjson.Str(body, "businessCategory", "business_category"),
		BusinessDescription: httpjson.Str(body, "businessDescription", "company_description"),
		NumEmployees:        httpjson.Str(body, "numEmployees", "num_employees"),
		HearAboutUs:         httpjson.Str(body, "hearAboutUs", "hear_about_us"),
		PreferredStartMonth: httpjson.Str(body, "preferredStartMonth", "preferred_start_month"),
		AdditionalNotes:     httpjson.Str(body, "additionalNotes", "application_notes"),
		VideoURL:            httpjson.Str(body, "video", "video_url"),
		BusinessFAQs:        httpjson.Str(body, "businessFaqs", "business_faqs"),
		Password:            httpjson.Str(body, "password"),
		Interests:           httpjson.Strings(body, "interests"),
		UpdateExisting:      httpjson.Bool(body, "update_existing"),
	}

	social := httpjson.Map(body, "social_media")
	f.SocialMedia = map[string]string{}
	for _, network := range []string{"facebook", "instagram", "x", "linkedin", "youtube"} {
		v := httpjson.Str(body, network)
		if v == "" && social != nil {
			v = httpjson.Str(social, network)
		}
		f.SocialMedia[network] = v
	}

	f.BusinessHours = map[string]models.Hours{}
	hours := httpjson.Map(body, "businessHours", "business_hours")
	for _, day := range daysOfWeek {
		dayData := httpjson.Map(hours, day)
		if dayData == nil {
			continue
		}
		status := httpjson.Str(dayData, "status")
		if status == "" {
			status = "closed"
		}
		f.BusinessHours[day] = models.Hours{
			Status: status,
			Open:   httpjson.Str(dayData, "open"),
			Close:  httpjson.Str(dayData, "close"),
		}
	}

	return f
}

// validate returns the first missing-field error message, or "".
func (f form) validate() string {
	switch {
	case f.Email == "" || !inputval.IsValidEmail(f.Email):
		return "Valid email address is required"
	case f.FirstName == "":
		return "First name is required"
	case f.LastName == "":
		return "Last name is required"
	case f.BusinessName == "":
		return "Business name is required"
	case f.BusinessPhone == "":
		return "Business phone is required"
	case f.BusinessAddress == "":
		return "Business address is required"
	case f.BusinessCity == "":
		return "Business city is required"
	case f.BusinessState == "":
		return "Business state is required"
	case f.BusinessZip == "":
		return "Business ZIP code is required"
	case f.BusinessCategory == "":
		return "Business category is required"
	case f.BusinessDescription == "":
		return "Business description is required"
	}
	return ""
}

// Submit serves POST /v1/membership-application (JSON or multipart).
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	body := httpjson.Body(r)
	f := parseForm(body)

	if msg := f.validate(); msg != "" {
		httpjson.Error(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	// Store uploaded photos first so both branches can reference them.
	// Only successfully stored files are kept.
	companyPhotos := h.Uploads.SavePhotos(r)

	existing, err := h.Users.GetActiveByEmail(ctx, f.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Error("look up application email", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var memberID string
	isUpdate := false

	if existing != nil {
		memberID = existing.ID.Hex()
		isPaid := existing.HasPaid()

		if !f.UpdateExisting {
			message := "This email is already registered. You can update your information or log in."
			if isPaid {
				message = "This email is already registered as a paid member."
			}
			httpjson.Respond(w, http.StatusConflict, map[string]any{
				"success":   false,
				"error":     "email_exists",
				"is_paid":   isPaid,
				"message":   message,
				"member_id": memberID,
			})
			return
		}

		isUpdate = true
		// New photos append to the ones already on file.
		companyPhotos = append(append([]string{}, existing.CompanyPhotos...), companyPhotos...)

		if err := h.Users.ApplyApplication(ctx, existing.ID, h.updateSet(f, companyPhotos)); err != nil {
			h.Log.Error("update member application", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	} else {
		if f.Password == "" {
			httpjson.Error(w, http.StatusBadRequest, "Password is required for new members")
			return
		}
		hash, err := userstore.HashPassword(f.Password)
		if err != nil {
			h.Log.Error("hash application password", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		id, err := h.Users.Insert(ctx, h.newMember(f, hash, companyPhotos))
		if err != nil {
			if errors.Is(err, userstore.ErrDuplicateEmail) {
				httpjson.Error(w, http.StatusConflict, "This email address is already registered")
				return
			}
			h.Log.Error("create member from application", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		memberID = id.Hex()
	}

	err = h.Submissions.RecordApplication(ctx, models.ApplicationSubmission{
		MemberID:     memberID,
		Email:        f.Email,
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		BusinessName: f.BusinessName,
		IsUpdate:     isUpdate,
		IPAddress:    reqinfo.ClientIP(r),
		UserAgent:    reqinfo.UserAgent(r),
		Source:       "join_form",
	})
	if err != nil {
		h.Log.Error("record application submission", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.notifyAdmins(ctx, f, memberID, isUpdate)

	message := "Thank you for your membership application! We will send you an invoice shortly."
	if isUpdate {
		message = "Your membership application has been updated successfully. We will be in touch regarding your invoice."
	}
	httpjson.OK(w, map[string]any{
		"success":   true,
		"message":   message,
		"member_id": memberID,
		"is_update": isUpdate,
	})
}

// updateSet builds the $set document for an existing member's update.
// A password is optional on updates.
func (h *Handler) updateSet(f form, companyPhotos []string) bson.M {
	now := time.Now().UTC()
	set := bson.M{
		"first_name":            f.FirstName,
		"middle_name":           f.MiddleName,
		"last_name":             f.LastName,
		"contact_title":         f.ContactTitle,
		"phone":                 f.Phone,
		"company_name":          f.BusinessName,
		"company":               f.BusinessName,
		"company_phone":         f.BusinessPhone,
		"company_website":       f.BusinessWebsite,
		"company_address":       f.BusinessAddress,
		"company_city":          f.BusinessCity,
		"company_state":         f.BusinessState,
		"company_zip":           f.BusinessZip,
		"company_description":   f.BusinessDescription,
		"business_description":  f.BusinessDescription,
		"business_category":     f.BusinessCategory,
		"num_employees":         f.NumEmployees,
		"video_url":             f.VideoURL,
		"social_media":          f.SocialMedia,
		"business_hours":        f.BusinessHours,
		"business_faqs":         f.BusinessFAQs,
		"hear_about_us":         f.HearAboutUs,
		"preferred_start_month": f.PreferredStartMonth,
		"interests":             f.Interests,
		"application_notes":     f.AdditionalNotes,
		"application_status":    "pending_invoice",
		"application_date":      now,
		"company_photos":        companyPhotos,
	}
	if f.Password != "" {
		if hash, err := userstore.HashPassword(f.Password); err == nil {
			set["password_hash"] = hash
		}
	}
	return set
}

// newMember builds the full profile for a first-time applicant.
func (h *Handler) newMember(f form, passwordHash string, companyPhotos []string) models.User {
	now := time.Now().UTC()
	return models.User{
		Email:                   f.Email,
		FirstName:               f.FirstName,
		MiddleName:              f.MiddleName,
		LastName:                f.LastName,
		ContactTitle:            f.ContactTitle,
		Phone:                   f.Phone,
		CompanyName:             f.BusinessName,
		Company:                 f.BusinessName,
		CompanyPhone:            f.BusinessPhone,
		CompanyEmail:            f.Email,
		CompanyWebsite:          f.BusinessWebsite,
		CompanyAddress:          f.BusinessAddress,
		CompanyCity:             f.BusinessCity,
		CompanyState:            f.BusinessState,
		CompanyZip:              f.BusinessZip,
		CompanyDescription:      f.BusinessDescription,
		BusinessDescription:     f.BusinessDescription,
		BusinessCategory:        f.BusinessCategory,
		NumEmployees:            f.NumEmployees,
		VideoURL:                f.VideoURL,
		SocialMedia:             f.SocialMedia,
		BusinessHours:           f.BusinessHours,
		BusinessFAQs:            f.BusinessFAQs,
		CompanyPhotos:           companyPhotos,
		HearAboutUs:             f.HearAboutUs,
		PreferredStartMonth:     f.PreferredStartMonth,
		Interests:               f.Interests,
		ApplicationNotes:        f.AdditionalNotes,
		ApplicationStatus:       "pending_invoice",
		ApplicationDate:         &now,
		PasswordHash:            passwordHash,
		Role:                    "member",
		ShowInBusinessDirectory: true,
		ShowInMemberDirectory:   true,
		SignedUpBy:              "join_form",
	}
}

// notifyAdmins drops an inbox message for the admin UI. Failures are
// logged and swallowed; the application itself already succeeded.
func (h *Handler) notifyAdmins(ctx context.Context, f form, memberID string, isUpdate bool) {
	subject := "New Membership Application"
	kind := "New"
	if isUpdate {
		subject = "Membership Application Updated"
		kind = "Updated"
	}

	body := fmt.Sprintf(
		"%s membership application received:\n\nName: %s %s\nBusiness: %s\nEmail: %s\nPhone: %s\nStatus: Pending Invoice\n\nView member details in the admin panel.",
		kind, f.FirstName, f.LastName, f.BusinessName, f.Email, f.BusinessPhone)

	err := h.Messages.Add(ctx, models.AdminMessage{
		Type:     "membership_application",
		Subject:  subject,
		Body:     body,
		MemberID: memberID,
		From:     "system",
		To:       "admin",
	})
	if err != nil {
		h.Log.Error("create admin notification", zap.Error(err))
	}
}
