package command

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/uniguide-hub/uniguide-server/internal/domain/account"
	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
	"github.com/uniguide-hub/uniguide-server/internal/domain/tasks"
)

// In-memory fakes for the repository interfaces, shared by the command
// and query tests. They enforce the same error contracts as the postgres
// implementations.

type fakeAccountRepo struct {
	mu       sync.Mutex
	byEmail  map[string]*account.Account
	failures int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: map[string]*account.Account{}}
}

func (r *fakeAccountRepo) CreateWithJourney(ctx context.Context, a *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return shared.ErrEmailTaken
	}
	cp := *a
	r.byEmail[a.Email] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byEmail {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, shared.ErrAccountNotFound
}

func (r *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return nil, shared.ErrAccountNotFound
	}
	a, ok := r.byEmail[email]
	if !ok {
		return nil, shared.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*profile.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*profile.Profile{}}
}

func (r *fakeProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.profiles[p.StudentID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByStudent(ctx context.Context, studentID string) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[studentID]
	if !ok {
		return nil, shared.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) UpdateSection(ctx context.Context, studentID string, section profile.Section, data json.RawMessage) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !section.IsValid() {
		return nil, shared.ErrInvalidSection
	}
	p, ok := r.profiles[studentID]
	if !ok {
		p = profile.New(studentID)
		r.profiles[studentID] = p
	}
	var err error
	switch section {
	case profile.SectionAcademic:
		err = json.Unmarshal(data, &p.Academic)
	case profile.SectionGoals:
		err = json.Unmarshal(data, &p.Goals)
	case profile.SectionBudget:
		err = json.Unmarshal(data, &p.Budget)
	case profile.SectionExams:
		err = json.Unmarshal(data, &p.Exams)
	}
	if err != nil {
		return nil, shared.WrapError("profile", "UpdateSection", shared.ErrBadRequest, "malformed section data", err)
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) AppendCustomTask(ctx context.Context, studentID string, task profile.CustomTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[studentID]
	if !ok {
		p = profile.New(studentID)
		r.profiles[studentID] = p
	}
	p.CustomTasks = append(p.CustomTasks, task)
	return nil
}

func (r *fakeProfileRepo) SetCustomTaskDone(ctx context.Context, studentID, taskID string, done bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[studentID]
	if !ok {
		return shared.ErrTaskNotFound
	}
	for i := range p.CustomTasks {
		if p.CustomTasks[i].ID == taskID {
			p.CustomTasks[i].Done = done
			return nil
		}
	}
	return shared.ErrTaskNotFound
}

type fakeProgressRepo struct {
	mu   sync.Mutex
	rows map[string]*progress.Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: map[string]*progress.Progress{}}
}

func (r *fakeProgressRepo) seed(studentID string, stage progress.Stage) {
	p := progress.New(studentID)
	p.CurrentStage = stage
	r.rows[studentID] = p
}

func (r *fakeProgressRepo) Create(ctx context.Context, p *progress.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.rows[p.StudentID] = &cp
	return nil
}

func (r *fakeProgressRepo) GetByStudent(ctx context.Context, studentID string) (*progress.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[studentID]
	if !ok {
		return nil, shared.ErrProgressNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProgressRepo) CompleteOnboarding(ctx context.Context, studentID string) (*progress.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[studentID]
	if !ok {
		p = progress.New(studentID)
		r.rows[studentID] = p
	}
	p.CompleteOnboarding()
	cp := *p
	return &cp, nil
}

func (r *fakeProgressRepo) CompleteCounsellor(ctx context.Context, studentID string) (*progress.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[studentID]
	if !ok {
		return nil, shared.ErrProgressNotFound
	}
	if err := p.CompleteCounsellor(); err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProgressRepo) MarkLocked(ctx context.Context, studentID string) (*progress.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[studentID]
	if !ok {
		return nil, shared.ErrProgressNotFound
	}
	if err := p.LockUniversity(); err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProgressRepo) MarkUnlocked(ctx context.Context, studentID string) (*progress.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[studentID]
	if !ok {
		return nil, shared.ErrProgressNotFound
	}
	p.UnlockUniversity()
	cp := *p
	return &cp, nil
}

type fakeShortlistRepo struct {
	mu      sync.Mutex
	entries map[string]*shortlist.Entry
}

func newFakeShortlistRepo() *fakeShortlistRepo {
	return &fakeShortlistRepo{entries: map[string]*shortlist.Entry{}}
}

func (r *fakeShortlistRepo) Create(ctx context.Context, e *shortlist.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.entries {
		if ex.StudentID == e.StudentID && ex.UniversityName == e.UniversityName {
			return shared.ErrAlreadyShortlisted
		}
	}
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *fakeShortlistRepo) GetByID(ctx context.Context, studentID, entryID string) (*shortlist.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok || e.StudentID != studentID {
		return nil, shared.ErrEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeShortlistRepo) ListByStudent(ctx context.Context, studentID string) ([]*shortlist.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*shortlist.Entry
	for _, e := range r.entries {
		if e.StudentID == studentID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeShortlistRepo) ListLocked(ctx context.Context, studentID string) ([]*shortlist.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*shortlist.Entry
	for _, e := range r.entries {
		if e.StudentID == studentID && e.IsLocked() {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeShortlistRepo) Delete(ctx context.Context, studentID, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok || e.StudentID != studentID {
		return shared.ErrEntryNotFound
	}
	if e.IsLocked() {
		return shared.ErrEntryLocked
	}
	delete(r.entries, entryID)
	return nil
}

func (r *fakeShortlistRepo) Lock(ctx context.Context, studentID, entryID string, at time.Time) (*shortlist.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok || e.StudentID != studentID {
		return nil, shared.ErrEntryNotFound
	}
	for _, ex := range r.entries {
		if ex.StudentID == studentID && ex.IsLocked() {
			return nil, shared.ErrAlreadyLocked
		}
	}
	if err := e.Lock(at); err != nil {
		return nil, err
	}
	cp := *e
	return &cp, nil
}

func (r *fakeShortlistRepo) Unlock(ctx context.Context, studentID, entryID, reason string) (*shortlist.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok || e.StudentID != studentID {
		return nil, shared.ErrEntryNotFound
	}
	if err := e.Unlock(reason); err != nil {
		return nil, err
	}
	cp := *e
	return &cp, nil
}

type fakeChecklistRepo struct {
	mu    sync.Mutex
	items map[string]*tasks.ChecklistItem
}

func newFakeChecklistRepo() *fakeChecklistRepo {
	return &fakeChecklistRepo{items: map[string]*tasks.ChecklistItem{}}
}

func (r *fakeChecklistRepo) CreateBatch(ctx context.Context, items []tasks.ChecklistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range items {
		cp := items[i]
		r.items[cp.ID] = &cp
	}
	return nil
}

func (r *fakeChecklistRepo) ListByStudent(ctx context.Context, studentID string) ([]tasks.ChecklistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []tasks.ChecklistItem
	for _, it := range r.items {
		if it.StudentID == studentID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeChecklistRepo) SetStatus(ctx context.Context, studentID, itemID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[itemID]
	if !ok || it.StudentID != studentID {
		return shared.ErrChecklistItemNotFound
	}
	it.Status = status
	return nil
}

type capturedEvents struct {
	mu     sync.Mutex
	events []shared.Event
}

func (c *capturedEvents) Publish(event shared.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *capturedEvents) types() []shared.EventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]shared.EventType, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.EventType())
	}
	return out
}
