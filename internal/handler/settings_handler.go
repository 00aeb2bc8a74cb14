package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/middleware"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// SettingsHandler handles the settings page.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// profileUpdateRequest takes the date of birth as YYYY-MM-DD. Full RFC3339
// timestamps from older clients are still accepted.
type profileUpdateRequest struct {
	FullName         *string `json:"fullName"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	AvatarURL        *string `json:"avatarUrl"`
	DOB              *string `json:"dob"`
	PresentAddress   *string `json:"presentAddress"`
	PermanentAddress *string `json:"permanentAddress"`
	City             *string `json:"city"`
	PostalCode       *string `json:"postalCode"`
	Country          *string `json:"country"`
}

func (r profileUpdateRequest) toUpdate() (models.ProfileUpdate, error) {
	upd := models.ProfileUpdate{
		FullName:         r.FullName,
		Email:            r.Email,
		Phone:            r.Phone,
		AvatarURL:        r.AvatarURL,
		PresentAddress:   r.PresentAddress,
		PermanentAddress: r.PermanentAddress,
		City:             r.City,
		PostalCode:       r.PostalCode,
		Country:          r.Country,
	}
	if r.DOB != nil && *r.DOB != "" {
		d, err := time.Parse("2006-01-02", *r.DOB)
		if err != nil {
			if d, err = time.Parse(time.RFC3339, *r.DOB); err != nil {
				return upd, fmt.Errorf("%w: dob must be YYYY-MM-DD", utils.ErrInvalidInput)
			}
		}
		upd.DOB = &d
	}
	return upd, nil
}

// bindProfileUpdate reads a profile edit from the JSON body.
func bindProfileUpdate(c *gin.Context) (models.ProfileUpdate, bool) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return models.ProfileUpdate{}, false
	}
	upd, err := req.toUpdate()
	if err != nil {
		utils.RespondError(c, err, "Invalid request body")
		return models.ProfileUpdate{}, false
	}
	return upd, true
}

// GetProfile handles GET /v1/admin/settings/profile
func (h *SettingsHandler) GetProfile(c *gin.Context) {
	profile, err := h.settingsService.Profile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to load profile")
		return
	}
	utils.Success(c, 200, "Profile retrieved", profile)
}

// UpdateProfile handles PUT /v1/admin/settings/profile
func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	req, ok := bindProfileUpdate(c)
	if !ok {
		return
	}
	profile, err := h.settingsService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		utils.RespondError(c, err, "Failed to update profile")
		return
	}
	utils.Success(c, 200, "Profile updated", profile)
}

// ListRoles handles GET /v1/admin/settings/roles
func (h *SettingsHandler) ListRoles(c *gin.Context) {
	page, err := h.settingsService.ListUsers(c.Request.Context(), listQuery(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve users")
		return
	}
	respondPage(c, "Users retrieved", page)
}

// GrantRole handles POST /v1/admin/settings/roles/grant
func (h *SettingsHandler) GrantRole(c *gin.Context) {
	var req struct {
		TargetUserID string `json:"targetUserId" binding:"required"`
		Role         string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if err := h.settingsService.Grant(c.Request.Context(), middleware.GetToken(c), req.TargetUserID, req.Role); err != nil {
		utils.RespondError(c, err, "Failed to grant role")
		return
	}
	utils.Success(c, 200, "Role granted", gin.H{"targetUserId": req.TargetUserID, "role": req.Role})
}

// RevokeRole handles POST /v1/admin/settings/roles/revoke
func (h *SettingsHandler) RevokeRole(c *gin.Context) {
	var req struct {
		TargetUserID string `json:"targetUserId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if err := h.settingsService.Revoke(c.Request.Context(), middleware.GetToken(c), req.TargetUserID); err != nil {
		utils.RespondError(c, err, "Failed to revoke role")
		return
	}
	utils.Success(c, 200, "Role revoked", gin.H{"targetUserId": req.TargetUserID, "role": models.RoleEmployee})
}
