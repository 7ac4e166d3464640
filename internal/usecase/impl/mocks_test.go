package impl

import (
	"context"
	"time"

	"inkwell/internal/domain/entity"
	"inkwell/internal/domain/repository"
	"inkwell/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// stubTxManager runs the transactional function directly against the given
// factory. Returning an error from the function stands in for a rollback.
type stubTxManager struct {
	factory repository.RepositoryFactory
}

func (m *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// stubFactory hands out the repositories wired into its fields.
type stubFactory struct {
	users     repository.UserRepository
	tokens    repository.TokenPairRepository
	apiTokens repository.APITokenRepository
	blogs     repository.BlogRepository
	chats     repository.ChatRepository
}

func (f *stubFactory) NewUserRepository() repository.UserRepository { return f.users }

func (f *stubFactory) NewTokenPairRepository() repository.TokenPairRepository { return f.tokens }

func (f *stubFactory) NewAPITokenRepository() repository.APITokenRepository { return f.apiTokens }

func (f *stubFactory) NewBlogRepository() repository.BlogRepository { return f.blogs }

func (f *stubFactory) NewChatRepository() repository.ChatRepository { return f.chats }

// --- Repository mocks ---

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserRepo) FindByUserName(ctx context.Context, userName string) (*entity.User, error) {
	args := m.Called(ctx, userName)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*entity.User)

	return users, args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockTokenPairRepo struct{ mock.Mock }

func (m *mockTokenPairRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error) {
	args := m.Called(ctx, userID)
	pair, _ := args.Get(0).(*entity.TokenPair)

	return pair, args.Error(1)
}

func (m *mockTokenPairRepo) FindByUserAndRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) (*entity.TokenPair, error) {
	args := m.Called(ctx, userID, refreshToken)
	pair, _ := args.Get(0).(*entity.TokenPair)

	return pair, args.Error(1)
}

func (m *mockTokenPairRepo) Upsert(ctx context.Context, pair *entity.TokenPair) error {
	return m.Called(ctx, pair).Error(0)
}

func (m *mockTokenPairRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockAPITokenRepo struct{ mock.Mock }

func (m *mockAPITokenRepo) FindByToken(ctx context.Context, token string) (*entity.APIToken, error) {
	args := m.Called(ctx, token)
	record, _ := args.Get(0).(*entity.APIToken)

	return record, args.Error(1)
}

func (m *mockAPITokenRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.APIToken, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*entity.APIToken)

	return record, args.Error(1)
}

func (m *mockAPITokenRepo) List(ctx context.Context) ([]*entity.APIToken, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]*entity.APIToken)

	return records, args.Error(1)
}

func (m *mockAPITokenRepo) Create(ctx context.Context, token *entity.APIToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAPITokenRepo) Update(ctx context.Context, token *entity.APIToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAPITokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAPITokenRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockBlogRepo struct{ mock.Mock }

func (m *mockBlogRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	args := m.Called(ctx, id)
	blog, _ := args.Get(0).(*entity.Blog)

	return blog, args.Error(1)
}

func (m *mockBlogRepo) FindBySlug(ctx context.Context, slug string) (*entity.Blog, error) {
	args := m.Called(ctx, slug)
	blog, _ := args.Get(0).(*entity.Blog)

	return blog, args.Error(1)
}

func (m *mockBlogRepo) Search(ctx context.Context, filter entity.BlogFilter) (*entity.BlogPage, error) {
	args := m.Called(ctx, filter)
	page, _ := args.Get(0).(*entity.BlogPage)

	return page, args.Error(1)
}

func (m *mockBlogRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Blog, error) {
	args := m.Called(ctx, authorID)
	blogs, _ := args.Get(0).([]*entity.Blog)

	return blogs, args.Error(1)
}

func (m *mockBlogRepo) Create(ctx context.Context, blog *entity.Blog) error {
	return m.Called(ctx, blog).Error(0)
}

func (m *mockBlogRepo) Update(ctx context.Context, blog *entity.Blog) error {
	return m.Called(ctx, blog).Error(0)
}

func (m *mockBlogRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBlogRepo) FindDeletedByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	args := m.Called(ctx, id)
	blog, _ := args.Get(0).(*entity.Blog)

	return blog, args.Error(1)
}

func (m *mockBlogRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBlogRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBlogRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockChatRepo struct{ mock.Mock }

func (m *mockChatRepo) FindRoomByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	args := m.Called(ctx, id)
	room, _ := args.Get(0).(*entity.Room)

	return room, args.Error(1)
}

func (m *mockChatRepo) FindDirectRoom(ctx context.Context, userA, userB uuid.UUID) (*entity.Room, error) {
	args := m.Called(ctx, userA, userB)
	room, _ := args.Get(0).(*entity.Room)

	return room, args.Error(1)
}

func (m *mockChatRepo) ListRoomsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Room, error) {
	args := m.Called(ctx, userID)
	rooms, _ := args.Get(0).([]*entity.Room)

	return rooms, args.Error(1)
}

func (m *mockChatRepo) CreateRoom(ctx context.Context, room *entity.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *mockChatRepo) FindMember(ctx context.Context, roomID, userID uuid.UUID) (*entity.RoomMember, error) {
	args := m.Called(ctx, roomID, userID)
	member, _ := args.Get(0).(*entity.RoomMember)

	return member, args.Error(1)
}

func (m *mockChatRepo) ListMembers(ctx context.Context, roomID uuid.UUID) ([]*entity.RoomMember, error) {
	args := m.Called(ctx, roomID)
	members, _ := args.Get(0).([]*entity.RoomMember)

	return members, args.Error(1)
}

func (m *mockChatRepo) AddMember(ctx context.Context, member *entity.RoomMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockChatRepo) RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error {
	return m.Called(ctx, roomID, userID).Error(0)
}

func (m *mockChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockChatRepo) ListMessages(ctx context.Context, roomID uuid.UUID, limit int) ([]*entity.Message, error) {
	args := m.Called(ctx, roomID, limit)
	messages, _ := args.Get(0).([]*entity.Message)

	return messages, args.Error(1)
}

// --- Service stubs ---

// stubHasher hashes deterministically so tests can assert stored values.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (stubHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

// stubTokenService signs canned tokens and validates against fixed fields.
type stubTokenService struct {
	accessToken  string
	refreshToken string
	subject      uuid.UUID
	validateErr  error
}

func (s *stubTokenService) GenerateAccessToken(uuid.UUID) (string, error) {
	return s.accessToken, nil
}

func (s *stubTokenService) GenerateRefreshToken(uuid.UUID) (string, error) {
	return s.refreshToken, nil
}

func (s *stubTokenService) ValidateAccessToken(string) (uuid.UUID, error) {
	return s.subject, s.validateErr
}

func (s *stubTokenService) ValidateRefreshToken(string) (uuid.UUID, error) {
	return s.subject, s.validateErr
}

func (s *stubTokenService) AccessTokenDuration() time.Duration { return time.Hour }

func (s *stubTokenService) RefreshTokenDuration() time.Duration { return 24 * time.Hour }

// recordingPublisher captures published events in memory.
type recordingPublisher struct {
	chatEvents []*service.ChatMessageEvent
	blogEvents []*service.BlogPublishedEvent
	err        error
}

func (p *recordingPublisher) PublishChatMessage(_ context.Context, event *service.ChatMessageEvent) error {
	p.chatEvents = append(p.chatEvents, event)

	return p.err
}

func (p *recordingPublisher) PublishBlogPublished(_ context.Context, event *service.BlogPublishedEvent) error {
	p.blogEvents = append(p.blogEvents, event)

	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// stubAIProvider answers every prompt with a fixed reply.
type stubAIProvider struct {
	answer string
	err    error
	asked  [][]service.AIMessage
}

func (p *stubAIProvider) Name() string { return "stub" }

func (p *stubAIProvider) Ask(_ context.Context, messages []service.AIMessage) (string, error) {
	p.asked = append(p.asked, messages)
	if p.err != nil {
		return "", p.err
	}

	return p.answer, nil
}

type mockPortfolioRepo struct{ mock.Mock }

func (m *mockPortfolioRepo) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.Portfolio, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*entity.Portfolio)

	return profile, args.Error(1)
}

func (m *mockPortfolioRepo) UpsertProfile(ctx context.Context, profile *entity.Portfolio) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockPortfolioRepo) ListProjects(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioProject, error) {
	args := m.Called(ctx, userID)
	projects, _ := args.Get(0).([]*entity.PortfolioProject)

	return projects, args.Error(1)
}

func (m *mockPortfolioRepo) SaveProject(ctx context.Context, project *entity.PortfolioProject) error {
	return m.Called(ctx, project).Error(0)
}

func (m *mockPortfolioRepo) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	return m.Called(ctx, userID, projectID).Error(0)
}

func (m *mockPortfolioRepo) ListSkills(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioSkill, error) {
	args := m.Called(ctx, userID)
	skills, _ := args.Get(0).([]*entity.PortfolioSkill)

	return skills, args.Error(1)
}

func (m *mockPortfolioRepo) SaveSkill(ctx context.Context, skill *entity.PortfolioSkill) error {
	return m.Called(ctx, skill).Error(0)
}

func (m *mockPortfolioRepo) DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	return m.Called(ctx, userID, skillID).Error(0)
}

func (m *mockPortfolioRepo) ListExperiences(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioExperience, error) {
	args := m.Called(ctx, userID)
	experiences, _ := args.Get(0).([]*entity.PortfolioExperience)

	return experiences, args.Error(1)
}

func (m *mockPortfolioRepo) SaveExperience(ctx context.Context, experience *entity.PortfolioExperience) error {
	return m.Called(ctx, experience).Error(0)
}

func (m *mockPortfolioRepo) DeleteExperience(ctx context.Context, userID, experienceID uuid.UUID) error {
	return m.Called(ctx, userID, experienceID).Error(0)
}

type mockAppRepo struct{ mock.Mock }

func (m *mockAppRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.App, error) {
	args := m.Called(ctx, id)
	app, _ := args.Get(0).(*entity.App)

	return app, args.Error(1)
}

func (m *mockAppRepo) FindBySlug(ctx context.Context, slug string) (*entity.App, error) {
	args := m.Called(ctx, slug)
	app, _ := args.Get(0).(*entity.App)

	return app, args.Error(1)
}

func (m *mockAppRepo) List(ctx context.Context, activeOnly bool) ([]*entity.App, error) {
	args := m.Called(ctx, activeOnly)
	apps, _ := args.Get(0).([]*entity.App)

	return apps, args.Error(1)
}

func (m *mockAppRepo) Create(ctx context.Context, app *entity.App) error {
	return m.Called(ctx, app).Error(0)
}

func (m *mockAppRepo) Update(ctx context.Context, app *entity.App) error {
	return m.Called(ctx, app).Error(0)
}

func (m *mockAppRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// stubQRService renders a fixed PNG payload.
type stubQRService struct {
	png []byte
	err error
}

func (s *stubQRService) GeneratePortfolioQR(string) ([]byte, error) {
	return s.png, s.err
}
