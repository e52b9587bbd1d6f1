package session_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/dukex/operion-runner/pkg/i18n"
	"github.com/dukex/operion-runner/pkg/mocks"
	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/persistence"
	"github.com/dukex/operion-runner/pkg/session"
	"github.com/dukex/operion-runner/pkg/state"
	"github.com/dukex/operion-runner/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, repo *mocks.MockWorkflowRepository) *session.Manager {
	t.Helper()

	messages, err := i18n.New("en")
	require.NoError(t, err)

	return session.NewManager(repo, state.NewRootStore(), &mocks.MockBackend{}, &mocks.MockNotifier{},
		messages, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestManager_GetLoadsOnce(t *testing.T) {
	workflow := testutil.CreateLinearWorkflow()
	repo := &mocks.MockWorkflowRepository{}
	repo.On("GetByID", mock.Anything, workflow.ID).Return(&models.WorkflowDocument{
		Workflow: workflow,
		PinData:  models.PinData{"Webhook": {{"x": 1}}},
	}, nil).Once()

	manager := newManager(t, repo)

	first, err := manager.Get(t.Context(), workflow.ID)
	require.NoError(t, err)

	second, err := manager.Get(t.Context(), workflow.ID)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, first.Workflows.PinData().Has("Webhook"))
	assert.NotNil(t, first.Orchestrator)
	repo.AssertExpectations(t)
}

func TestManager_GetMissing(t *testing.T) {
	repo := &mocks.MockWorkflowRepository{}
	repo.On("GetByID", mock.Anything, "missing").
		Return(nil, persistence.NewWorkflowError("GetByID", "missing", persistence.ErrWorkflowNotFound))

	manager := newManager(t, repo)

	_, err := manager.Get(t.Context(), "missing")
	assert.True(t, persistence.IsWorkflowNotFound(err))

	_, ok := manager.Lookup("missing")
	assert.False(t, ok)
}

func TestManager_SaveWritesDocument(t *testing.T) {
	workflow := testutil.CreateLinearWorkflow()
	repo := &mocks.MockWorkflowRepository{}
	repo.On("GetByID", mock.Anything, workflow.ID).Return(&models.WorkflowDocument{Workflow: workflow}, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(d *models.WorkflowDocument) bool {
		_, ok := d.RunData.First("Set")

		return d.Workflow.ID == workflow.ID && ok
	})).Return(nil).Once()

	manager := newManager(t, repo)

	s, err := manager.Get(t.Context(), workflow.ID)
	require.NoError(t, err)
	s.Workflows.AddNodeRunData("Set", testutil.Success())

	require.NoError(t, manager.Save(t.Context(), workflow.ID))
	repo.AssertExpectations(t)
}

func TestManager_SaveUnknownSession(t *testing.T) {
	manager := newManager(t, &mocks.MockWorkflowRepository{})

	err := manager.Save(t.Context(), "nope")

	assert.True(t, persistence.IsWorkflowNotFound(err))
}
