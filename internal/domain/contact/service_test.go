package contact_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/lumeng/mindmirror/internal/domain/audit"
	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/repository"
	"github.com/lumeng/mindmirror/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(repo *mocks.ContactRepository, audits *mocks.AuditRepository) *contact.Service {
	return contact.NewService(repo, audits, slog.New(slog.DiscardHandler))
}

func TestCreate(t *testing.T) {
	repo := new(mocks.ContactRepository)
	audits := new(mocks.AuditRepository)
	svc := newTestService(repo, audits)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *contact.Contact) bool {
		return c.ID != "" && c.Name == "Ada" && c.Tags == "engineer,mentor"
	})).Return(nil)
	audits.On("Log", mock.Anything, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Operation == audit.OpCreate && e.EntityKind == audit.KindContact
	})).Return(nil)

	c, err := svc.Create(context.Background(), contact.CreateRequest{
		Name:  "Ada",
		Tags:  "engineer,mentor",
		Email: "ada@example.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	require.Equal(t, "ada@example.com", c.Email)
	repo.AssertExpectations(t)
	audits.AssertExpectations(t)
}

func TestCreate_RequiresName(t *testing.T) {
	repo := new(mocks.ContactRepository)
	svc := newTestService(repo, new(mocks.AuditRepository))

	_, err := svc.Create(context.Background(), contact.CreateRequest{Name: ""})
	require.ErrorIs(t, err, contact.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(mocks.ContactRepository)
	svc := newTestService(repo, new(mocks.AuditRepository))

	repo.On("Get", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.Update(context.Background(), contact.UpdateRequest{ID: "missing", Name: "Ada"})
	require.ErrorIs(t, err, contact.ErrContactNotFound)
}

func TestLinkToProject(t *testing.T) {
	repo := new(mocks.ContactRepository)
	svc := newTestService(repo, new(mocks.AuditRepository))

	repo.On("LinkToProject", mock.Anything, "p1", "c1", "sponsor", "weekly sync").Return(nil)

	err := svc.LinkToProject(context.Background(), "p1", "c1", "sponsor", "weekly sync")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLinkToProject_UnknownContact(t *testing.T) {
	repo := new(mocks.ContactRepository)
	svc := newTestService(repo, new(mocks.AuditRepository))

	repo.On("LinkToProject", mock.Anything, "p1", "ghost", "", "").Return(repository.ErrForeignKeyViolation)

	err := svc.LinkToProject(context.Background(), "p1", "ghost", "", "")
	require.ErrorIs(t, err, contact.ErrContactNotFound)
}

func TestLinkToProject_RequiresIDs(t *testing.T) {
	repo := new(mocks.ContactRepository)
	svc := newTestService(repo, new(mocks.AuditRepository))

	err := svc.LinkToProject(context.Background(), "", "c1", "", "")
	require.ErrorIs(t, err, contact.ErrInvalidInput)
	repo.AssertNotCalled(t, "LinkToProject")
}
