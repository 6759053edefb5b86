package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
	"github.com/mpalashb/secureprime-digital-agency/internal/usecase"
	"github.com/mpalashb/secureprime-digital-agency/pkg/apperror"
	"github.com/mpalashb/secureprime-digital-agency/pkg/email"
	"github.com/mpalashb/secureprime-digital-agency/pkg/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	args := m.Called(ctx, contact)
	if args.Error(0) == nil {
		contact.ID = uuid.New()
	}
	return args.Error(0)
}

type MockConsultationRepo struct {
	mock.Mock
}

func (m *MockConsultationRepo) Create(ctx context.Context, c *domain.Consultation) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = uuid.New()
	}
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, form string, msgs ...email.Message) {
	m.Called(ctx, form, msgs)
}

// memStore is an in-memory domain.IdempotencyStore
type memStore struct {
	mu      sync.Mutex
	values    map[string][]byte
	failAll   bool
	commitErr error
}

func newMemStore() *memStore {
	return &memStore{values: map[string][]byte{}}
}

func (s *memStore) Reserve(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return false, errors.New("connection refused")
	}
	if _, ok := s.values[key]; ok {
		return false, nil
	}
	s.values[key] = nil
	return true, nil
}

func (s *memStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[key]
	return v, v != nil, nil
}

func (s *memStore) Commit(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.commitErr != nil {
		return s.commitErr
	}
	s.values[key] = payload
	return nil
}

func (s *memStore) Release(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func newDeps(n usecase.Notifier) usecase.IntakeDeps {
	return usecase.IntakeDeps{
		Validate: validation.New(),
		Notifier: n,
		Brand:    "SecurePrimedex",
	}
}

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func TestContactSubmit(t *testing.T) {
	t.Run("Should insert once and queue the thank-you email", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewContactUsecase(repo, newDeps(notifier))

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Contact")).Return(nil).Once()
		notifier.On("Dispatch", mock.Anything, domain.FormContact, mock.MatchedBy(func(msgs []email.Message) bool {
			return len(msgs) == 1 &&
				msgs[0].To[0] == "jane@example.com" &&
				msgs[0].Subject == "Thank you for contacting SecurePrimedex"
		})).Return().Once()

		receipt, err := uc.Submit(context.Background(), &domain.ContactRequest{
			Name: " Jane Doe ", Email: "jane@example.com", Message: "Hello",
		})

		require.NoError(t, err)
		assert.Equal(t, "Contact form submitted successfully", receipt.Message)
		assert.Equal(t, "Jane Doe", receipt.Record.Name)
		assert.NotEqual(t, uuid.Nil, receipt.Record.ID)
		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("Should reject missing fields without touching the store", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewContactUsecase(repo, newDeps(notifier))

		_, err := uc.Submit(context.Background(), &domain.ContactRequest{
			Name: "", Email: "jane@example.com", Message: "Hello",
		})

		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Contains(t, appErr.Message, "name")
		assert.Contains(t, appErr.Fields, "name")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail without notifying when the insert fails", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewContactUsecase(repo, newDeps(notifier))

		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset by peer"))

		_, err := uc.Submit(context.Background(), &domain.ContactRequest{
			Name: "Jane", Email: "jane@example.com", Message: "Hello",
		})

		appErr := requireAppError(t, err, http.StatusInternalServerError)
		assert.Equal(t, "Failed to submit contact form", appErr.Message)
		assert.NotContains(t, appErr.Message, "connection reset")
		notifier.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should copy the agency inbox when configured", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		deps := newDeps(notifier)
		deps.StaffEmail = "hello@secureprimedex.com"
		uc := usecase.NewContactUsecase(repo, deps)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		notifier.On("Dispatch", mock.Anything, domain.FormContact, mock.MatchedBy(func(msgs []email.Message) bool {
			return len(msgs) == 2 &&
				msgs[1].To[0] == "hello@secureprimedex.com" &&
				msgs[1].ReplyTo == "jane@example.com"
		})).Return()

		_, err := uc.Submit(context.Background(), &domain.ContactRequest{
			Name: "Jane", Email: "jane@example.com", Message: "Hello",
		})

		require.NoError(t, err)
		notifier.AssertExpectations(t)
	})
}

func TestConsultationSubmit(t *testing.T) {
	t.Run("Should reject an invalid email before inserting", func(t *testing.T) {
		repo := new(MockConsultationRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewConsultationUsecase(repo, newDeps(notifier))

		_, err := uc.SubmitConsultation(context.Background(), &domain.ConsultationRequest{
			FullName: "A", Email: "bad-email", Phone: "555", Service: "seo", ConsultationType: "video-call",
		})

		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, "Invalid email format", appErr.Message)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should store a consultation with NULL optionals", func(t *testing.T) {
		repo := new(MockConsultationRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewConsultationUsecase(repo, newDeps(notifier))

		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Consultation) bool {
			return c.FormType == domain.FormTypeConsultation &&
				c.ConsultationType == "video-call" &&
				c.Company == nil &&
				*c.PreferredDate == "2026-11-02"
		})).Return(nil)
		notifier.On("Dispatch", mock.Anything, domain.FormConsultation, mock.Anything).Return()

		receipt, err := uc.SubmitConsultation(context.Background(), &domain.ConsultationRequest{
			FullName: "A", Email: "a@example.com", Phone: "555", Service: "seo",
			ConsultationType: "video-call", PreferredDate: "2026-11-02", Company: "  ",
		})

		require.NoError(t, err)
		assert.Equal(t, "Consultation request submitted successfully", receipt.Message)
		repo.AssertExpectations(t)
	})

	t.Run("Should treat form_type inquiry as a project inquiry", func(t *testing.T) {
		repo := new(MockConsultationRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewConsultationUsecase(repo, newDeps(notifier))

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		notifier.On("Dispatch", mock.Anything, domain.FormConsultation, mock.MatchedBy(func(msgs []email.Message) bool {
			return msgs[0].Subject == "Thank you for your project inquiry with SecurePrimedex"
		})).Return()

		receipt, err := uc.SubmitConsultation(context.Background(), &domain.ConsultationRequest{
			FullName: "A", Email: "a@example.com", Phone: "555", Service: "web",
			ProjectDescription: "Rebuild our storefront", FormType: "inquiry",
		})

		require.NoError(t, err)
		assert.Equal(t, "Project inquiry submitted successfully", receipt.Message)
		assert.Equal(t, domain.ConsultationTypeProjectInquiry, receipt.Record.ConsultationType)
		notifier.AssertExpectations(t)
	})
}

func TestProjectInquirySubmit(t *testing.T) {
	t.Run("Should mark the row as a project inquiry", func(t *testing.T) {
		repo := new(MockConsultationRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewConsultationUsecase(repo, newDeps(notifier))

		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		notifier.On("Dispatch", mock.Anything, domain.FormProjectInquiry, mock.Anything).Return()

		receipt, err := uc.SubmitProjectInquiry(context.Background(), &domain.ProjectInquiryRequest{
			FullName: "A", Email: "a@example.com", Phone: "555", Service: "web",
			ProjectDescription: "Rebuild our storefront", ContactMethod: "email",
		})

		require.NoError(t, err)
		assert.Equal(t, "Project inquiry submitted successfully", receipt.Message)
		assert.Equal(t, domain.FormTypeInquiry, receipt.Record.FormType)
		assert.Equal(t, domain.ConsultationTypeProjectInquiry, receipt.Record.ConsultationType)
		assert.Equal(t, "email", *receipt.Record.ContactMethod)
		repo.AssertExpectations(t)
	})

	t.Run("Should require project_description", func(t *testing.T) {
		repo := new(MockConsultationRepo)
		uc := usecase.NewConsultationUsecase(repo, newDeps(new(MockNotifier)))

		_, err := uc.SubmitProjectInquiry(context.Background(), &domain.ProjectInquiryRequest{
			FullName: "A", Email: "a@example.com", Phone: "555", Service: "web",
		})

		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, "Missing required fields: project_description", appErr.Message)
	})

	t.Run("Should report the inquiry failure message", func(t *testing.T) {
		repo := new(MockConsultationRepo)
		uc := usecase.NewConsultationUsecase(repo, newDeps(new(MockNotifier)))
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("relation \"consultations\" does not exist"))

		_, err := uc.SubmitProjectInquiry(context.Background(), &domain.ProjectInquiryRequest{
			FullName: "A", Email: "a@example.com", Phone: "555", Service: "web", ProjectDescription: "x",
		})

		appErr := requireAppError(t, err, http.StatusInternalServerError)
		assert.Equal(t, "Failed to submit project inquiry", appErr.Message)
	})
}

func TestIdempotencyKey(t *testing.T) {
	req := func() *domain.ContactRequest {
		return &domain.ContactRequest{Name: "Jane", Email: "jane@example.com", Message: "Hello"}
	}
	ctxWithKey := context.WithValue(context.Background(), domain.KeyIdempotencyKey, "abc-123")

	t.Run("Should replay the first record for a repeated key", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		deps := newDeps(notifier)
		deps.Idempotency = newMemStore()
		uc := usecase.NewContactUsecase(repo, deps)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		notifier.On("Dispatch", mock.Anything, mock.Anything, mock.Anything).Return().Once()

		first, err := uc.Submit(ctxWithKey, req())
		require.NoError(t, err)
		second, err := uc.Submit(ctxWithKey, req())
		require.NoError(t, err)

		assert.True(t, second.Replayed)
		assert.Equal(t, first.Record.ID, second.Record.ID)
		repo.AssertNumberOfCalls(t, "Create", 1)
		notifier.AssertNumberOfCalls(t, "Dispatch", 1)
	})

	t.Run("Should record duplicates when no key is sent", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		deps := newDeps(notifier)
		deps.Idempotency = newMemStore()
		uc := usecase.NewContactUsecase(repo, deps)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		notifier.On("Dispatch", mock.Anything, mock.Anything, mock.Anything).Return()

		_, err := uc.Submit(context.Background(), req())
		require.NoError(t, err)
		_, err = uc.Submit(context.Background(), req())
		require.NoError(t, err)

		repo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("Should conflict while the first request is in flight", func(t *testing.T) {
		store := newMemStore()
		ok, _ := store.Reserve(context.Background(), domain.FormContact+":abc-123")
		require.True(t, ok)

		repo := new(MockContactRepo)
		deps := newDeps(new(MockNotifier))
		deps.Idempotency = store
		uc := usecase.NewContactUsecase(repo, deps)

		_, err := uc.Submit(ctxWithKey, req())

		requireAppError(t, err, http.StatusConflict)
		assert.ErrorIs(t, err, domain.ErrSubmissionInProgress)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should release the key when the insert fails", func(t *testing.T) {
		store := newMemStore()
		repo := new(MockContactRepo)
		deps := newDeps(new(MockNotifier))
		deps.Idempotency = store
		uc := usecase.NewContactUsecase(repo, deps)

		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("timeout")).Once()

		_, err := uc.Submit(ctxWithKey, req())
		requireAppError(t, err, http.StatusInternalServerError)

		_, held := store.values[domain.FormContact+":abc-123"]
		assert.False(t, held)
	})

	t.Run("Should free the key when recording the result fails", func(t *testing.T) {
		store := newMemStore()
		store.commitErr = errors.New("i/o timeout")
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		deps := newDeps(notifier)
		deps.Idempotency = store
		uc := usecase.NewContactUsecase(repo, deps)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		notifier.On("Dispatch", mock.Anything, mock.Anything, mock.Anything).Return()

		_, err := uc.Submit(ctxWithKey, req())
		require.NoError(t, err)

		_, held := store.values[domain.FormContact+":abc-123"]
		assert.False(t, held)

		// A retry is stored again rather than rejected as in progress
		receipt, err := uc.Submit(ctxWithKey, req())
		require.NoError(t, err)
		assert.False(t, receipt.Replayed)
		repo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("Should release the key even when the request context is gone", func(t *testing.T) {
		store := newMemStore()
		repo := new(MockContactRepo)
		deps := newDeps(new(MockNotifier))
		deps.Idempotency = store
		uc := usecase.NewContactUsecase(repo, deps)

		repo.On("Create", mock.Anything, mock.Anything).Return(context.Canceled).Once()

		ctx, cancel := context.WithCancel(ctxWithKey)
		cancel()
		_, err := uc.Submit(ctx, req())
		requireAppError(t, err, http.StatusInternalServerError)

		_, held := store.values[domain.FormContact+":abc-123"]
		assert.False(t, held)
	})

	t.Run("Should fall back to plain inserts when the store is down", func(t *testing.T) {
		store := newMemStore()
		store.failAll = true
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		deps := newDeps(notifier)
		deps.Idempotency = store
		uc := usecase.NewContactUsecase(repo, deps)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		notifier.On("Dispatch", mock.Anything, mock.Anything, mock.Anything).Return()

		receipt, err := uc.Submit(ctxWithKey, req())
		require.NoError(t, err)
		assert.False(t, receipt.Replayed)
	})
}

func TestHealthCheck(t *testing.T) {
	uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    nil,
	})
	status, ok := uc.Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "ok", status["database"])
	assert.Equal(t, "disabled", status["redis"])

	uc = usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"database": func(context.Context) error { return errors.New("down") },
	})
	status, ok = uc.Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "degraded", status["status"])
}
