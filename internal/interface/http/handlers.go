// Package http implements the REST API for the UniGuide application
// guidance service.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/uniguide-hub/uniguide-server/internal/application/command"
	"github.com/uniguide-hub/uniguide-server/internal/application/query"
	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
	"github.com/uniguide-hub/uniguide-server/internal/domain/tasks"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "UniGuide API",
		"version":     "v1",
		"description": "REST API for UniGuide - university application guidance",
		"endpoints": map[string]string{
			"health":    "/health",
			"profile":   "/api/v1/profile",
			"discover":  "/api/v1/universities/discover",
			"shortlist": "/api/v1/shortlist",
			"checklist": "/api/v1/checklist",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": "v1",
	})
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// ACCOUNT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	StudentID string `json:"studentId"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
}

// handleRegister handles POST /api/v1/auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	result, err := s.deps.RegisterStudent.Handle(r.Context(), command.RegisterStudentCommand{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	writeJSON(w, status, registerResponse{
		StudentID: result.StudentID,
		Email:     result.Email,
		FullName:  result.FullName,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetDashboard handles GET /api/v1/profile
func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request, studentID string) {
	view, err := s.deps.GetDashboard.Handle(r.Context(), query.GetDashboardQuery{StudentID: studentID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleGetStrength handles GET /api/v1/profile/strength
func (s *Server) handleGetStrength(w http.ResponseWriter, r *http.Request, studentID string) {
	strength, err := s.deps.GetStrength.Handle(r.Context(), query.GetStrengthQuery{StudentID: studentID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, strength)
}

type updateSectionRequest struct {
	Section string          `json:"section"`
	Data    json.RawMessage `json:"data"`
}

type profileWithStrength struct {
	Profile  *profile.Profile `json:"profile"`
	Strength profile.Strength `json:"strength"`
}

// handleUpdateSection handles POST /api/v1/profile/section
func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request, studentID string) {
	var req updateSectionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	result, err := s.deps.UpdateProfileSection.Handle(r.Context(), command.UpdateProfileSectionCommand{
		StudentID: studentID,
		Section:   profile.Section(req.Section),
		Data:      req.Data,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileWithStrength{Profile: result.Profile, Strength: result.Strength})
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetProgress handles GET /api/v1/progress
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request, studentID string) {
	view, err := s.deps.GetProgress.Handle(r.Context(), query.GetProgressQuery{StudentID: studentID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleCompleteOnboarding handles POST /api/v1/progress/complete-onboarding
func (s *Server) handleCompleteOnboarding(w http.ResponseWriter, r *http.Request, studentID string) {
	prog, err := s.deps.CompleteOnboarding.Handle(r.Context(), command.CompleteOnboardingCommand{StudentID: studentID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

// handleCompleteCounsellor handles POST /api/v1/progress/complete-counsellor
func (s *Server) handleCompleteCounsellor(w http.ResponseWriter, r *http.Request, studentID string) {
	prog, err := s.deps.CompleteCounsellor.Handle(r.Context(), command.CompleteCounsellorCommand{StudentID: studentID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

// ══════════════════════════════════════════════════════════════════════════════
// DISCOVERY & SHORTLIST HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleDiscover handles GET /api/v1/universities/discover
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request, studentID string) {
	matches, err := s.deps.GetMatches.Handle(r.Context(), query.GetMatchesQuery{
		StudentID: studentID,
		Country:   r.URL.Query().Get("country"),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// handleGetShortlist handles GET /api/v1/shortlist
func (s *Server) handleGetShortlist(w http.ResponseWriter, r *http.Request, studentID string) {
	view, err := s.deps.GetShortlist.Handle(r.Context(), query.GetShortlistQuery{StudentID: studentID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type addShortlistRequest struct {
	UniversityName string                   `json:"universityName"`
	Data           shortlist.UniversityData `json:"data"`
}

// handleAddToShortlist handles POST /api/v1/shortlist
func (s *Server) handleAddToShortlist(w http.ResponseWriter, r *http.Request, studentID string) {
	var req addShortlistRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	entry, err := s.deps.AddToShortlist.Handle(r.Context(), command.AddToShortlistCommand{
		StudentID:      studentID,
		UniversityName: req.UniversityName,
		Data:           req.Data,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// handleRemoveFromShortlist handles DELETE /api/v1/shortlist/{id}
func (s *Server) handleRemoveFromShortlist(w http.ResponseWriter, r *http.Request, studentID string) {
	err := s.deps.RemoveFromShortlist.Handle(r.Context(), command.RemoveFromShortlistCommand{
		StudentID: studentID,
		EntryID:   r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// handleLock handles POST /api/v1/shortlist/{id}/lock
func (s *Server) handleLock(w http.ResponseWriter, r *http.Request, studentID string) {
	result, err := s.deps.LockUniversity.Handle(r.Context(), command.LockUniversityCommand{
		StudentID: studentID,
		EntryID:   r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entry":    result.Entry,
		"progress": result.Progress,
	})
}

type unlockRequest struct {
	Reason string `json:"reason"`
}

// handleUnlock handles POST /api/v1/shortlist/{id}/unlock
func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request, studentID string) {
	var req unlockRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	result, err := s.deps.UnlockUniversity.Handle(r.Context(), command.UnlockUniversityCommand{
		StudentID: studentID,
		EntryID:   r.PathValue("id"),
		Reason:    req.Reason,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entry":    result.Entry,
		"progress": result.Progress,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// TASK HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type tasksResponse struct {
	Generated []tasks.Task         `json:"generated"`
	Custom    []profile.CustomTask `json:"custom"`
}

// handleGetTasks handles GET /api/v1/tasks
func (s *Server) handleGetTasks(w http.ResponseWriter, r *http.Request, studentID string) {
	view, err := s.deps.GetDashboard.Handle(r.Context(), query.GetDashboardQuery{StudentID: studentID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	resp := tasksResponse{Generated: view.Tasks}
	if view.Profile != nil {
		resp.Custom = view.Profile.CustomTasks
	}
	writeJSON(w, http.StatusOK, resp)
}

type addTaskRequest struct {
	Title    string `json:"title"`
	Critical bool   `json:"critical"`
}

// handleAddCustomTask handles POST /api/v1/tasks
func (s *Server) handleAddCustomTask(w http.ResponseWriter, r *http.Request, studentID string) {
	var req addTaskRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	task, err := s.deps.AddCustomTask.Handle(r.Context(), command.AddCustomTaskCommand{
		StudentID: studentID,
		Title:     req.Title,
		Critical:  req.Critical,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

type setDoneRequest struct {
	Done bool `json:"done"`
}

// handleSetTaskDone handles PATCH /api/v1/tasks/{id}
func (s *Server) handleSetTaskDone(w http.ResponseWriter, r *http.Request, studentID string) {
	var req setDoneRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	result, err := s.deps.SetTaskDone.Handle(r.Context(), command.SetTaskDoneCommand{
		StudentID: studentID,
		TaskID:    r.PathValue("id"),
		Done:      req.Done,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileWithStrength{Profile: result.Profile, Strength: result.Strength})
}

// ══════════════════════════════════════════════════════════════════════════════
// CHECKLIST HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetChecklist handles GET /api/v1/checklist
func (s *Server) handleGetChecklist(w http.ResponseWriter, r *http.Request, studentID string) {
	items, err := s.deps.GetChecklist.Handle(r.Context(), query.GetChecklistQuery{StudentID: studentID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleUpdateChecklistItem handles PATCH /api/v1/checklist/{id}
func (s *Server) handleUpdateChecklistItem(w http.ResponseWriter, r *http.Request, studentID string) {
	var req setDoneRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	err := s.deps.UpdateChecklistItem.Handle(r.Context(), command.UpdateChecklistItemCommand{
		StudentID: studentID,
		ItemID:    r.PathValue("id"),
		Done:      req.Done,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
