package query

import (
	"context"
	"encoding/json"
	"time"

	"github.com/uniguide-hub/uniguide-server/internal/domain/catalog"
	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
	"github.com/uniguide-hub/uniguide-server/internal/domain/tasks"
)

// In-memory fakes mirroring the repository error contracts. Queries never
// mutate, so these skip the locking the command-side fakes carry.

type fakeProfileRepo struct {
	profiles map[string]*profile.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*profile.Profile{}}
}

func (r *fakeProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	r.profiles[p.StudentID] = p
	return nil
}

func (r *fakeProfileRepo) GetByStudent(ctx context.Context, studentID string) (*profile.Profile, error) {
	p, ok := r.profiles[studentID]
	if !ok {
		return nil, shared.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) UpdateSection(ctx context.Context, studentID string, section profile.Section, data json.RawMessage) (*profile.Profile, error) {
	return nil, shared.ErrInvalidSection
}

func (r *fakeProfileRepo) AppendCustomTask(ctx context.Context, studentID string, task profile.CustomTask) error {
	return nil
}

func (r *fakeProfileRepo) SetCustomTaskDone(ctx context.Context, studentID, taskID string, done bool) error {
	return shared.ErrTaskNotFound
}

type fakeProgressRepo struct {
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
	r.rows[p.StudentID] = p
	return nil
}

func (r *fakeProgressRepo) GetByStudent(ctx context.Context, studentID string) (*progress.Progress, error) {
	p, ok := r.rows[studentID]
	if !ok {
		return nil, shared.ErrProgressNotFound
	}
	return p, nil
}

func (r *fakeProgressRepo) CompleteOnboarding(ctx context.Context, studentID string) (*progress.Progress, error) {
	return r.GetByStudent(ctx, studentID)
}

func (r *fakeProgressRepo) CompleteCounsellor(ctx context.Context, studentID string) (*progress.Progress, error) {
	return r.GetByStudent(ctx, studentID)
}

func (r *fakeProgressRepo) MarkLocked(ctx context.Context, studentID string) (*progress.Progress, error) {
	return r.GetByStudent(ctx, studentID)
}

func (r *fakeProgressRepo) MarkUnlocked(ctx context.Context, studentID string) (*progress.Progress, error) {
	return r.GetByStudent(ctx, studentID)
}

type fakeShortlistRepo struct {
	entries []*shortlist.Entry
}

func (r *fakeShortlistRepo) Create(ctx context.Context, e *shortlist.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeShortlistRepo) GetByID(ctx context.Context, studentID, entryID string) (*shortlist.Entry, error) {
	for _, e := range r.entries {
		if e.ID == entryID && e.StudentID == studentID {
			return e, nil
		}
	}
	return nil, shared.ErrEntryNotFound
}

func (r *fakeShortlistRepo) ListByStudent(ctx context.Context, studentID string) ([]*shortlist.Entry, error) {
	var out []*shortlist.Entry
	for _, e := range r.entries {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeShortlistRepo) ListLocked(ctx context.Context, studentID string) ([]*shortlist.Entry, error) {
	var out []*shortlist.Entry
	for _, e := range r.entries {
		if e.StudentID == studentID && e.IsLocked() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeShortlistRepo) Delete(ctx context.Context, studentID, entryID string) error {
	return shared.ErrEntryNotFound
}

func (r *fakeShortlistRepo) Lock(ctx context.Context, studentID, entryID string, at time.Time) (*shortlist.Entry, error) {
	return nil, shared.ErrEntryNotFound
}

func (r *fakeShortlistRepo) Unlock(ctx context.Context, studentID, entryID, reason string) (*shortlist.Entry, error) {
	return nil, shared.ErrEntryNotFound
}

type fakeCatalogRepo struct {
	universities []catalog.University
	listCalls    int
}

func (r *fakeCatalogRepo) List(ctx context.Context, country string) ([]catalog.University, error) {
	r.listCalls++
	if country == "" || country == catalog.AllCountries {
		return r.universities, nil
	}
	var out []catalog.University
	for _, u := range r.universities {
		if u.Country == country {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetByID(ctx context.Context, id string) (*catalog.University, error) {
	for _, u := range r.universities {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakeChecklistRepo struct {
	items []tasks.ChecklistItem
}

func (r *fakeChecklistRepo) CreateBatch(ctx context.Context, items []tasks.ChecklistItem) error {
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeChecklistRepo) ListByStudent(ctx context.Context, studentID string) ([]tasks.ChecklistItem, error) {
	var out []tasks.ChecklistItem
	for _, it := range r.items {
		if it.StudentID == studentID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeChecklistRepo) SetStatus(ctx context.Context, studentID, itemID, status string) error {
	for i := range r.items {
		if r.items[i].ID == itemID && r.items[i].StudentID == studentID {
			r.items[i].Status = status
			return nil
		}
	}
	return shared.ErrChecklistItemNotFound
}

type fakeCatalogCache struct {
	lists map[string][]catalog.University
	hits  int
}

func newFakeCatalogCache() *fakeCatalogCache {
	return &fakeCatalogCache{lists: map[string][]catalog.University{}}
}

func (c *fakeCatalogCache) Get(ctx context.Context, country string) ([]catalog.University, error) {
	list, ok := c.lists[country]
	if !ok {
		return nil, nil
	}
	c.hits++
	return list, nil
}

func (c *fakeCatalogCache) Set(ctx context.Context, country string, universities []catalog.University) error {
	c.lists[country] = universities
	return nil
}

type fakeDashboardCache struct {
	views map[string]*DashboardView
}

func newFakeDashboardCache() *fakeDashboardCache {
	return &fakeDashboardCache{views: map[string]*DashboardView{}}
}

func (c *fakeDashboardCache) Get(ctx context.Context, studentID string) (*DashboardView, error) {
	return c.views[studentID], nil
}

func (c *fakeDashboardCache) Set(ctx context.Context, studentID string, v *DashboardView) error {
	c.views[studentID] = v
	return nil
}

func (c *fakeDashboardCache) Invalidate(ctx context.Context, studentID string) error {
	delete(c.views, studentID)
	return nil
}
