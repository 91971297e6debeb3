package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/internai/internai/internal/filter"
	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/skill"
)

type profileInput struct {
	Name   *string   `json:"name"`
	Email  *string   `json:"email"`
	Skills *[]string `json:"skills"`
	Region *string   `json:"region"`
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	p, err := s.store.GetProfile(r.Context(), id.UserID)
	if err != nil {
		s.fail(w, r, "Profile not found", err)
		return
	}
	jsonOK(w, p)
}

// putProfile merges the body into the caller's profile, creating it on first
// use. The stored role is never taken from the body.
func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	var in profileInput
	if err := decodeBody(r, profileSchema, &in); err != nil {
		s.fail(w, r, "Invalid profile", err)
		return
	}

	id, _ := identityFrom(r.Context())
	p, err := s.store.GetProfile(r.Context(), id.UserID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		p = &model.UserProfile{ID: id.UserID, Role: model.RoleStudent}
	case err != nil:
		s.fail(w, r, "Server error", err)
		return
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		p.Email = strings.TrimSpace(*in.Email)
	}
	if in.Skills != nil {
		p.Skills = skill.Dedupe(*in.Skills)
	}
	if in.Region != nil {
		region := strings.TrimSpace(*in.Region)
		if region != "" && !filter.ValidState(region) {
			s.fail(w, r, "Invalid region", fmt.Errorf("%w: %q is not an Indian state or union territory", model.ErrInvalidInput, region))
			return
		}
		p.Region = region
	}

	if err := s.store.UpsertProfile(r.Context(), *p); err != nil {
		s.fail(w, r, "Server error", err)
		return
	}
	saved, err := s.store.GetProfile(r.Context(), id.UserID)
	if err != nil {
		s.fail(w, r, "Server error", err)
		return
	}
	jsonOK(w, saved)
}

// callerSkills returns the signed-in caller's profile skills, or nil when
// the caller has no profile yet.
func (s *Server) callerSkills(ctx context.Context) []string {
	id, ok := identityFrom(ctx)
	if !ok {
		return nil
	}
	p, err := s.store.GetProfile(ctx, id.UserID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Warn("loading profile skills failed", "user", id.UserID, "error", err)
		}
		return nil
	}
	return p.Skills
}
