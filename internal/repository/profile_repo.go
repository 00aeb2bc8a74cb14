package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chakrahealing/admin_api/internal/models"
)

// loadProfileSummaries returns profile summaries keyed by id.
func loadProfileSummaries(ctx context.Context, q sqlx.QueryerContext, ids []string) (map[string]*models.ProfileSummary, error) {
	out := make(map[string]*models.ProfileSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.ProfileSummary
	if err := selectIn(ctx, q, &rows, `
		SELECT id, full_name, email, phone, avatar_url FROM profiles WHERE id IN (?)`, ids); err != nil {
		return nil, fmt.Errorf("select profiles: %w", err)
	}
	for i := range rows {
		out[rows[i].ID] = &rows[i]
	}
	return out, nil
}

// updateProfile applies a partial profile update shared by customers and settings.
func updateProfile(ctx context.Context, db *sqlx.DB, id string, upd models.ProfileUpdate) error {
	var set setClause
	if upd.FullName != nil {
		set.add("full_name", nullString(upd.FullName))
	}
	if upd.Email != nil {
		set.add("email", nullString(upd.Email))
	}
	if upd.Phone != nil {
		set.add("phone", nullString(upd.Phone))
	}
	if upd.AvatarURL != nil {
		set.add("avatar_url", nullString(upd.AvatarURL))
	}
	if upd.DOB != nil {
		set.add("dob", *upd.DOB)
	}
	if upd.PresentAddress != nil {
		set.add("present_address", nullString(upd.PresentAddress))
	}
	if upd.PermanentAddress != nil {
		set.add("permanent_address", nullString(upd.PermanentAddress))
	}
	if upd.City != nil {
		set.add("city", nullString(upd.City))
	}
	if upd.PostalCode != nil {
		set.add("postal_code", nullString(upd.PostalCode))
	}
	if upd.Country != nil {
		set.add("country", nullString(upd.Country))
	}
	if set.empty() {
		return nil
	}
	query, args := set.build("profiles", id, true)
	return expectAffected(db.ExecContext(ctx, query, args...))
}
