package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/profile"
)

// UpdateProfileRequest - частичное обновление, отсутствующие поля не меняются.
type UpdateProfileRequest struct {
	Name          *string   `json:"name"`
	Email         *string   `json:"email"`
	Location      *string   `json:"location"`
	Bio           *string   `json:"bio"`
	Availability  *string   `json:"availability"`
	IsPublic      *bool     `json:"is_public"`
	SkillsOffered *[]string `json:"skills_offered"`
	SkillsWanted  *[]string `json:"skills_wanted"`
}

func (r UpdateProfileRequest) ToInput() profile.UpdateUserInput {
	return profile.UpdateUserInput{
		Name:          r.Name,
		Email:         r.Email,
		Location:      r.Location,
		Bio:           r.Bio,
		Availability:  r.Availability,
		IsPublic:      r.IsPublic,
		SkillsOffered: r.SkillsOffered,
		SkillsWanted:  r.SkillsWanted,
	}
}

type AddSkillRequest struct {
	Kind  string `json:"kind" binding:"required"`
	Skill string `json:"skill" binding:"required"`
}

// ProfileResponse - карточка профиля. Email и служебные поля видны только владельцу и администратору.
type ProfileResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Location      string    `json:"location"`
	Bio           string    `json:"bio"`
	AvatarURL     string    `json:"avatar_url"`
	SkillsOffered []string  `json:"skills_offered"`
	SkillsWanted  []string  `json:"skills_wanted"`
	Rating        float64   `json:"rating"`
	TotalSwaps    int       `json:"total_swaps"`
	Availability  string    `json:"availability"`
	IsPublic      bool      `json:"is_public"`
	Role          string    `json:"role,omitempty"`
	Status        string    `json:"status,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToPublicProfile - вид профиля для каталога и чужих посетителей.
func ToPublicProfile(u *entity.User) ProfileResponse {
	return ProfileResponse{
		ID:            u.ID,
		Name:          u.Name,
		Location:      u.Location,
		Bio:           u.Bio,
		AvatarURL:     u.AvatarURL,
		SkillsOffered: nonNil(u.SkillsOffered),
		SkillsWanted:  nonNil(u.SkillsWanted),
		Rating:        u.Rating,
		TotalSwaps:    u.TotalSwaps,
		Availability:  string(u.Availability),
		IsPublic:      u.IsPublic,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// ToFullProfile - вид профиля для владельца и администратора.
func ToFullProfile(u *entity.User) ProfileResponse {
	resp := ToPublicProfile(u)
	resp.Email = u.Email
	resp.Role = string(u.Role)
	resp.Status = string(u.Status)
	return resp
}

func ToPublicProfiles(users []*entity.User) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToPublicProfile(u))
	}
	return out
}

func ToFullProfiles(users []*entity.User) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToFullProfile(u))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
