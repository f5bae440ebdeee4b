package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/buildinfo"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

// userResponse is the external view of an account. There is no secret field
// to leak: the hash simply does not exist on this type.
type userResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	MemberSince string    `json:"memberSince"`
	CreatedAt   time.Time `json:"createdAt"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedDate time.Time `json:"createdDate"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		MemberSince: u.MemberSince,
		CreatedAt:   u.CreatedAt,
	}
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedDate: t.CreatedAt,
	}
}

func toTaskResponses(tasks []*models.Task) []taskResponse {
	result := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = toTaskResponse(t)
	}
	return result
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "available",
		"version": buildinfo.Version,
	})
}

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, token, err := s.users.Register(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "user_id", user.ID)
	s.sendWelcome(user)

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  toUserResponse(user),
		"token": token,
	})
}

// sendWelcome fires the welcome message without holding up the response.
func (s *Server) sendWelcome(user *models.User) {
	if s.mailer == nil {
		return
	}
	go func(to, name string) {
		if err := s.mailer.SendWelcome(to, name); err != nil {
			s.logger.Warn(context.Background(), "welcome mail failed", "error", err.Error())
		}
	}(user.Email, user.Name)
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, token, err := s.users.Authenticate(r.Context(), input.Email, input.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  toUserResponse(user),
		"token": token,
	})
}

func (s *Server) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := decodeJSON(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), ownerFromRequest(r), input.Name, input.Email)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context(), ownerFromRequest(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tasks": toTaskResponses(tasks)})
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	task, err := s.tasks.Create(r.Context(), ownerFromRequest(r), input.Title, input.Description)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"task": toTaskResponse(task)})
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	task, err := s.tasks.Update(r.Context(), ownerFromRequest(r), r.PathValue("id"), input.Title, input.Description)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"task": toTaskResponse(task)})
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(r.Context(), ownerFromRequest(r), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
