package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/websocket"
)

type MockUserStore struct{ mock.Mock }

func (m *MockUserStore) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserStore) ListUsers(ctx context.Context, role models.RoleType, query string, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	args := m.Called(ctx, role, query, page, size)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Get(1).(dto.PaginationInfo), args.Error(2)
}

func (m *MockUserStore) ListActiveByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *MockUserStore) GetUsersByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *MockUserStore) UpdateProfile(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) UpdateRole(ctx context.Context, userID int64, role models.RoleType) ([]models.StatusChange, error) {
	args := m.Called(ctx, userID, role)
	changes, _ := args.Get(0).([]models.StatusChange)
	return changes, args.Error(1)
}

func (m *MockUserStore) SetActive(ctx context.Context, userID int64, active bool) error {
	return m.Called(ctx, userID, active).Error(0)
}

func (m *MockUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserStore) DeleteUser(ctx context.Context, userID int64) ([]models.StatusChange, error) {
	args := m.Called(ctx, userID)
	changes, _ := args.Get(0).([]models.StatusChange)
	return changes, args.Error(1)
}

type MockTokenStore struct{ mock.Mock }

func (m *MockTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiry time.Time) error {
	return m.Called(ctx, token, userID, expiry).Error(0)
}

func (m *MockTokenStore) RotateToken(ctx context.Context, oldToken, newToken string, expiry time.Time) (int64, error) {
	args := m.Called(ctx, oldToken, newToken, expiry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenStore) RevokeToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockSymposiumStore struct{ mock.Mock }

func (m *MockSymposiumStore) CreateSymposium(ctx context.Context, s *models.Symposium) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSymposiumStore) GetSymposiumByID(ctx context.Context, id int64) (*models.Symposium, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Symposium)
	return s, args.Error(1)
}

func (m *MockSymposiumStore) GetActiveSymposium(ctx context.Context) (*models.Symposium, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*models.Symposium)
	return s, args.Error(1)
}

func (m *MockSymposiumStore) ListSymposia(ctx context.Context) ([]*models.Symposium, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*models.Symposium)
	return list, args.Error(1)
}

func (m *MockSymposiumStore) UpdateSymposium(ctx context.Context, s *models.Symposium) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSymposiumStore) DeleteSymposium(ctx context.Context, id int64) ([]string, error) {
	args := m.Called(ctx, id)
	logos, _ := args.Get(0).([]string)
	return logos, args.Error(1)
}

func (m *MockSymposiumStore) ActivateSymposium(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSymposiumStore) ListArchive(ctx context.Context) ([]*models.ArchiveEntry, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*models.ArchiveEntry)
	return list, args.Error(1)
}

type MockTopicStore struct{ mock.Mock }

func (m *MockTopicStore) CreateTopic(ctx context.Context, t *models.Topic) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTopicStore) GetTopicByID(ctx context.Context, id int64) (*models.Topic, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*models.Topic)
	return t, args.Error(1)
}

func (m *MockTopicStore) ListTopics(ctx context.Context, symposiumID int64) ([]*models.Topic, error) {
	args := m.Called(ctx, symposiumID)
	list, _ := args.Get(0).([]*models.Topic)
	return list, args.Error(1)
}

func (m *MockTopicStore) UpdateTopic(ctx context.Context, t *models.Topic) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTopicStore) DeleteTopic(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockPaperStore struct{ mock.Mock }

func (m *MockPaperStore) CreatePaper(ctx context.Context, p *models.Paper) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaperStore) GetPaperByID(ctx context.Context, id int64) (*models.Paper, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Paper)
	return p, args.Error(1)
}

func (m *MockPaperStore) ListPapers(ctx context.Context, f models.PaperFilter, page, size int) ([]*models.Paper, dto.PaginationInfo, error) {
	args := m.Called(ctx, f, page, size)
	list, _ := args.Get(0).([]*models.Paper)
	return list, args.Get(1).(dto.PaginationInfo), args.Error(2)
}

func (m *MockPaperStore) ListPapersByAuthor(ctx context.Context, authorID int64) ([]*models.Paper, error) {
	args := m.Called(ctx, authorID)
	list, _ := args.Get(0).([]*models.Paper)
	return list, args.Error(1)
}

func (m *MockPaperStore) ListAcceptedPapers(ctx context.Context, symposiumID int64) ([]*models.Paper, error) {
	args := m.Called(ctx, symposiumID)
	list, _ := args.Get(0).([]*models.Paper)
	return list, args.Error(1)
}

func (m *MockPaperStore) UpdatePaper(ctx context.Context, p *models.Paper) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaperStore) ReplaceManuscript(ctx context.Context, paperID int64, fileURL string, pages int) (*models.StatusChange, string, error) {
	args := m.Called(ctx, paperID, fileURL, pages)
	change, _ := args.Get(0).(*models.StatusChange)
	return change, args.String(1), args.Error(2)
}

func (m *MockPaperStore) SetStatus(ctx context.Context, paperID int64, status models.PaperStatus) (*models.StatusChange, error) {
	args := m.Called(ctx, paperID, status)
	change, _ := args.Get(0).(*models.StatusChange)
	return change, args.Error(1)
}

func (m *MockPaperStore) DeletePaper(ctx context.Context, paperID int64) (string, error) {
	args := m.Called(ctx, paperID)
	return args.String(0), args.Error(1)
}

func (m *MockPaperStore) ReplaceReviewers(ctx context.Context, paperID int64, reviewerIDs []int64) ([]int64, *models.StatusChange, error) {
	args := m.Called(ctx, paperID, reviewerIDs)
	added, _ := args.Get(0).([]int64)
	change, _ := args.Get(1).(*models.StatusChange)
	return added, change, args.Error(2)
}

func (m *MockPaperStore) ListPaperReviewers(ctx context.Context, paperID int64) ([]*models.PaperReviewer, error) {
	args := m.Called(ctx, paperID)
	list, _ := args.Get(0).([]*models.PaperReviewer)
	return list, args.Error(1)
}

func (m *MockPaperStore) IsReviewerAssigned(ctx context.Context, paperID, reviewerID int64) (bool, error) {
	args := m.Called(ctx, paperID, reviewerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaperStore) ListAssignedPapers(ctx context.Context, reviewerID int64) ([]*models.AssignedPaper, error) {
	args := m.Called(ctx, reviewerID)
	list, _ := args.Get(0).([]*models.AssignedPaper)
	return list, args.Error(1)
}

type MockRevisionStore struct{ mock.Mock }

func (m *MockRevisionStore) RecordDecision(ctx context.Context, rev *models.Revision) (*models.StatusChange, error) {
	args := m.Called(ctx, rev)
	change, _ := args.Get(0).(*models.StatusChange)
	return change, args.Error(1)
}

func (m *MockRevisionStore) UpdateLatestRevision(ctx context.Context, revisionID, reviewerID int64, decision models.Decision, comments string) (*models.Revision, *models.StatusChange, error) {
	args := m.Called(ctx, revisionID, reviewerID, decision, comments)
	rev, _ := args.Get(0).(*models.Revision)
	change, _ := args.Get(1).(*models.StatusChange)
	return rev, change, args.Error(2)
}

func (m *MockRevisionStore) GetRevisionByID(ctx context.Context, id int64) (*models.Revision, error) {
	args := m.Called(ctx, id)
	rev, _ := args.Get(0).(*models.Revision)
	return rev, args.Error(1)
}

func (m *MockRevisionStore) ListRevisions(ctx context.Context, paperID, reviewerID int64) ([]*models.Revision, error) {
	args := m.Called(ctx, paperID, reviewerID)
	list, _ := args.Get(0).([]*models.Revision)
	return list, args.Error(1)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendContactAcknowledgement(toEmail, toName, subject string) error {
	return m.Called(toEmail, toName, subject).Error(0)
}

func (m *MockEmailService) SendDecisionEmail(toEmail, toName, paperTitle, status string) error {
	return m.Called(toEmail, toName, paperTitle, status).Error(0)
}

// recordingNotifier keeps every notification per user
type recordingNotifier struct {
	mu   sync.Mutex
	sent map[int64][]websocket.Notification
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(map[int64][]websocket.Notification)}
}

func (r *recordingNotifier) Notify(userID int64, n websocket.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[userID] = append(r.sent[userID], n)
}

func (r *recordingNotifier) types(userID int64) []websocket.NotificationType {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []websocket.NotificationType
	for _, n := range r.sent[userID] {
		out = append(out, n.Type)
	}
	return out
}

// memoryStorage is an in-memory FileStorage
type memoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	seq   int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: make(map[string][]byte)}
}

func (s *memoryStorage) Save(data []byte, ext, subPath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	url := "/uploads/" + subPath + "/f" + strings.Repeat("x", s.seq) + ext
	s.files[url] = data
	return url, nil
}

func (s *memoryStorage) DeleteFile(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, url)
	return nil
}

func (s *memoryStorage) GetFullPath(url string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[url]; !ok {
		return ""
	}
	return "/data" + url
}

func (s *memoryStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
