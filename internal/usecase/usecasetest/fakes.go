// Package usecasetest содержит in-memory реализации доменных портов для тестов use case.
package usecasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/domain/repository"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
)

type ReportStore struct {
	mu      sync.Mutex
	reports []*entity.Report
	Err     error
}

func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// Add кладёт жалобу как есть, минуя валидацию.
func (s *ReportStore) Add(reports ...*entity.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, reports...)
}

// AddPending создаёт n ожидающих жалоб на объект.
func (s *ReportStore) AddPending(reporterID uuid.UUID, entityType valueobject.EntityType, entityID uuid.UUID, n int) []*entity.Report {
	created := make([]*entity.Report, 0, n)
	for i := 0; i < n; i++ {
		r, _ := entity.NewReport(reporterID, entityType, entityID, "spam")
		created = append(created, r)
	}
	s.Add(created...)
	return created
}

func (s *ReportStore) All() []*entity.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Report(nil), s.reports...)
}

func (s *ReportStore) Create(ctx context.Context, report *entity.Report) error {
	if s.Err != nil {
		return s.Err
	}
	s.Add(report)
	return nil
}

func (s *ReportStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, r := range s.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperror.ErrReportNotFound
}

func (s *ReportStore) List(ctx context.Context, filter repository.ReportFilter) ([]*entity.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := []*entity.Report{}
	for _, r := range s.reports {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.EntityType != nil && r.EntityType != *filter.EntityType {
			continue
		}
		if filter.EntityID != nil && r.EntityID != *filter.EntityID {
			continue
		}
		result = append(result, r)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *ReportStore) CountPending(ctx context.Context, entityID uuid.UUID, entityType valueobject.EntityType) (int, error) {
	reports, err := s.List(ctx, repository.PendingFor(entityID, entityType))
	return len(reports), err
}

func (s *ReportStore) PendingSummaries(ctx context.Context, entityType valueobject.EntityType, minCount int) ([]entity.ReportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	counts := map[uuid.UUID]int{}
	for _, r := range s.reports {
		if r.IsPending() && r.EntityType == entityType {
			counts[r.EntityID]++
		}
	}
	result := []entity.ReportSummary{}
	for id, count := range counts {
		if count >= minCount {
			result = append(result, entity.ReportSummary{EntityID: id, EntityType: entityType, ReportCount: count})
		}
	}
	return result, nil
}

func (s *ReportStore) TransitionPendingForEntity(ctx context.Context, entityID uuid.UUID, entityType valueobject.EntityType, t repository.ReportTransition) (int, error) {
	return s.transition(t, func(r *entity.Report) bool {
		return r.EntityID == entityID && r.EntityType == entityType
	})
}

func (s *ReportStore) TransitionPendingByID(ctx context.Context, id uuid.UUID, t repository.ReportTransition) (bool, error) {
	n, err := s.transition(t, func(r *entity.Report) bool { return r.ID == id })
	return n > 0, err
}

func (s *ReportStore) TransitionPendingForUser(ctx context.Context, scope repository.UserReportScope, t repository.ReportTransition) (int, error) {
	return s.transition(t, func(r *entity.Report) bool {
		if r.ReporterID == scope.UserID {
			return true
		}
		for _, id := range scope.OwnedContent[r.EntityType] {
			if id == r.EntityID {
				return true
			}
		}
		return false
	})
}

func (s *ReportStore) MarkPendingReviewed(ctx context.Context, entityID uuid.UUID, entityType valueobject.EntityType, adminID uuid.UUID, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	n := 0
	for _, r := range s.reports {
		if r.IsPending() && r.EntityID == entityID && r.EntityType == entityType {
			r.MarkReviewed(adminID, at)
			n++
		}
	}
	return n, nil
}

func (s *ReportStore) transition(t repository.ReportTransition, match func(*entity.Report) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	n := 0
	for _, r := range s.reports {
		if !r.IsPending() || !match(r) {
			continue
		}
		var err error
		if t.Status == valueobject.ReportStatusDismissed {
			err = r.Dismiss(t.AdminID, t.At)
		} else {
			err = r.Resolve(t.AdminID, t.Action, t.At)
		}
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

type UserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	Err   error
	// Saved считает вызовы UpdateSanctions.
	Saved int
}

func NewUserStore(users ...*entity.User) *UserStore {
	s := &UserStore{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

// NewUser создаёт пользователя без санкций и кладёт его в хранилище.
func (s *UserStore) NewUser(username string) *entity.User {
	now := time.Now()
	u := &entity.User{ID: uuid.New(), Username: username, Email: username + "@example.com", Role: "user", CreatedAt: now, UpdatedAt: now}
	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()
	return u
}

func (s *UserStore) Get(id uuid.UUID) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *UserStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.users[id]
	return ok, nil
}

func (s *UserStore) UpdateSanctions(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[user.ID]; !ok {
		return apperror.ErrUserNotFound
	}
	copied := *user
	s.users[user.ID] = &copied
	s.Saved++
	return nil
}

type ContentStore struct {
	mu       sync.Mutex
	items    map[uuid.UUID]entity.Content
	notFound error
	Err      error
}

func NewContentStore(notFound error) *ContentStore {
	return &ContentStore{items: make(map[uuid.UUID]entity.Content), notFound: notFound}
}

func (s *ContentStore) Put(items ...entity.Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range items {
		s.items[c.ContentID()] = c
	}
}

func (s *ContentStore) Has(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[id]
	return ok
}

func (s *ContentStore) FindByID(ctx context.Context, id uuid.UUID) (entity.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.items[id]
	if !ok {
		return nil, s.notFound
	}
	return c, nil
}

func (s *ContentStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.items[id]; !ok {
		return s.notFound
	}
	delete(s.items, id)
	return nil
}

func (s *ContentStore) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var ids []uuid.UUID
	for id, c := range s.items {
		if c.ContentOwnerID() == ownerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Content - набор хранилищ постов и вакансий.
type Content struct {
	Posts         *ContentStore
	Opportunities *ContentStore
}

func NewContent() *Content {
	return &Content{
		Posts:         NewContentStore(apperror.ErrPostNotFound),
		Opportunities: NewContentStore(apperror.ErrOpportunityNotFound),
	}
}

func (c *Content) Directory() repository.ContentDirectory {
	return repository.ContentDirectory{
		valueobject.EntityTypePost:        c.Posts,
		valueobject.EntityTypeOpportunity: c.Opportunities,
	}
}

func (c *Content) NewPost(authorID uuid.UUID) *entity.Post {
	now := time.Now()
	p := &entity.Post{ID: uuid.New(), AuthorID: authorID, Text: "text", CreatedAt: now, UpdatedAt: now}
	c.Posts.Put(p)
	return p
}

func (c *Content) NewOpportunity(ownerID uuid.UUID) *entity.Opportunity {
	now := time.Now()
	o := &entity.Opportunity{ID: uuid.New(), OwnerID: ownerID, Title: "title", Description: "description", CreatedAt: now, UpdatedAt: now}
	c.Opportunities.Put(o)
	return o
}

// Transactor выполняет fn без настоящей транзакции и считает вызовы.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

type PublishedEvent struct {
	Role   string
	UserID uuid.UUID
	Name   string
	Data   any
}

type Publisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

func (p *Publisher) PublishToRole(role, name string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, PublishedEvent{Role: role, Name: name, Data: data})
}

func (p *Publisher) PublishToUser(userID uuid.UUID, name string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, PublishedEvent{UserID: userID, Name: name, Data: data})
}

func (p *Publisher) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.Events))
	for i, e := range p.Events {
		names[i] = e.Name
	}
	return names
}
