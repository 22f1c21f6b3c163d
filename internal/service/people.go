package service

import (
	"context"

	"github.com/google/uuid"

	"cultofdrive/internal/media"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
)

// UserSummary is the public identity shown next to cars, comments and listings.
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Slug        string    `json:"slug"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
}

func summarize(p *model.Profile, resolver *media.Resolver) *UserSummary {
	return &UserSummary{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Slug:        p.Slug,
		AvatarURL:   resolver.ResolveImageSource(p.AvatarURL),
	}
}

// lookupPeople loads profiles for ids in one query. Missing profiles are left out.
func lookupPeople(ctx context.Context, profiles repository.ProfileRepository, resolver *media.Resolver, ids []uuid.UUID) (map[uuid.UUID]*UserSummary, error) {
	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	out := make(map[uuid.UUID]*UserSummary, len(unique))
	if len(unique) == 0 {
		return out, nil
	}
	rows, err := profiles.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = summarize(&rows[i], resolver)
	}
	return out, nil
}

func displayName(people map[uuid.UUID]*UserSummary, id uuid.UUID) string {
	if p, ok := people[id]; ok && p.DisplayName != "" {
		return p.DisplayName
	}
	return "Someone"
}
