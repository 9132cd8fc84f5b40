package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"transferadmin/form"
	"transferadmin/models"
	"transferadmin/resource"
)

func (s *Session) Statistics(ctx context.Context) (*models.Statistics, error) {
	data, err := s.getJSON(ctx, "/admin/statistics", nil)
	if err != nil {
		return nil, err
	}

	stats := &models.Statistics{}
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, stats); err != nil {
			return nil, err
		}
	}
	if stats.MonthlyTransactions == nil {
		stats.MonthlyTransactions = []models.MonthlyTransactions{}
	}
	if stats.RecentUsers == nil {
		stats.RecentUsers = []models.User{}
	}
	return stats, nil
}

func (s *Session) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	q := url.Values{}
	if filter.IsAdmin != nil {
		q.Set("isAdmin", strconv.FormatBool(*filter.IsAdmin))
	}
	if filter.IsActive != nil {
		q.Set("isActive", strconv.FormatBool(*filter.IsActive))
	}
	if filter.UserType != "" {
		q.Set("userType", string(filter.UserType))
	}

	data, err := s.getJSON(ctx, "/admin/users", q)
	if err != nil {
		return nil, err
	}
	return resource.Coerce[models.User](data)
}

func (s *Session) ListAdmins(ctx context.Context) ([]models.User, error) {
	isAdmin := true
	return s.ListUsers(ctx, models.UserFilter{IsAdmin: &isAdmin})
}

func (s *Session) SetUserActive(ctx context.Context, id string, active bool) error {
	_, err := s.sendJSON(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(id), map[string]bool{"isActive": active})
	return err
}

func (s *Session) DeleteUser(ctx context.Context, id string) error {
	_, err := s.sendJSON(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil)
	return err
}

func (s *Session) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	data, err := s.getJSON(ctx, "/admin/blogs", nil)
	if err != nil {
		return nil, err
	}
	return resource.Coerce[models.Blog](data)
}

// CreateBlog posts title, slug, content, tags and an optional image.
func (s *Session) CreateBlog(ctx context.Context, sub *form.Submission) error {
	_, err := s.Submit(ctx, http.MethodPost, "/admin/blogs", sub)
	return err
}

func (s *Session) DeleteBlog(ctx context.Context, id string) error {
	_, err := s.sendJSON(ctx, http.MethodDelete, "/admin/blogs/"+url.PathEscape(id), nil)
	return err
}

func (s *Session) ListTemplates(ctx context.Context, kind models.TemplateKind) ([]models.MessageTemplate, error) {
	q := url.Values{}
	if kind != "" {
		q.Set("kind", string(kind))
	}
	data, err := s.getJSON(ctx, "/admin/templates", q)
	if err != nil {
		return nil, err
	}
	return resource.Coerce[models.MessageTemplate](data)
}

func (s *Session) DeleteTemplate(ctx context.Context, id string) error {
	_, err := s.sendJSON(ctx, http.MethodDelete, "/admin/templates/"+url.PathEscape(id), nil)
	return err
}

func (s *Session) ListSettings(ctx context.Context) ([]models.Setting, error) {
	data, err := s.getJSON(ctx, "/admin/settings", nil)
	if err != nil {
		return nil, err
	}
	return resource.Coerce[models.Setting](data)
}

// UpdateSetting writes value as given; an empty value is a valid setting.
func (s *Session) UpdateSetting(ctx context.Context, key, value string) error {
	sub := form.New().Set("value", value)
	_, err := s.Submit(ctx, http.MethodPut, "/admin/settings/"+url.PathEscape(key), sub)
	return err
}

func (s *Session) ListTranslations(ctx context.Context, locale string) ([]models.Translation, error) {
	q := url.Values{}
	if locale != "" {
		q.Set("locale", locale)
	}
	data, err := s.getJSON(ctx, "/admin/translations", q)
	if err != nil {
		return nil, err
	}
	return resource.Coerce[models.Translation](data)
}

// UpdateTranslation replaces the text of one translation. Unlike settings, a
// translation must not be blank.
func (s *Session) UpdateTranslation(ctx context.Context, id, value string) error {
	sub := form.New("value").Set("value", value)
	_, err := s.Submit(ctx, http.MethodPut, "/admin/translations/"+url.PathEscape(id), sub)
	return err
}

func (s *Session) DeleteTranslation(ctx context.Context, id string) error {
	_, err := s.sendJSON(ctx, http.MethodDelete, "/admin/translations/"+url.PathEscape(id), nil)
	return err
}

// DeclineCall tells the backend an incoming call was declined by this admin.
func (s *Session) DeclineCall(ctx context.Context, callerID string) error {
	_, err := s.sendJSON(ctx, http.MethodPost, "/admin/calls/"+url.PathEscape(callerID)+"/decline", nil)
	return err
}
