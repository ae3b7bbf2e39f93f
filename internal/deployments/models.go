package deployments

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mayaweb/udeploy/internal/storage"
)

const (
	prefix = "deployment:"

	prefixByID       = prefix + "id:"
	prefixByPlatform = prefix + "platform:"
)

type deploymentModel struct {
	storage.BaseEntity

	Platform  string `json:"platform"`
	ProjectID string `json:"project_id"`

	Status               Status        `json:"status"`
	URL                  string        `json:"url,omitempty"`
	ProviderDeploymentID string        `json:"provider_deployment_id,omitempty"`
	Logs                 []string      `json:"logs"`
	Error                string        `json:"error,omitempty"`
	EstimatedTime        time.Duration `json:"estimated_time"`

	RollbackOf *uuid.UUID `json:"rollback_of,omitempty"`
}

func newDeploymentModel(draft *DeploymentDraft) *deploymentModel {
	return &deploymentModel{
		BaseEntity:           storage.NewBaseEntity(),
		Platform:             draft.Platform,
		ProjectID:            draft.ProjectID,
		Status:               draft.Status,
		URL:                  draft.URL,
		ProviderDeploymentID: draft.ProviderDeploymentID,
		Logs:                 draft.Logs,
		Error:                draft.Error,
		EstimatedTime:        draft.EstimatedTime,
		RollbackOf:           draft.RollbackOf,
	}
}

func newDeploymentUpdateModel(source *deploymentModel, draft *DeploymentDraft) *deploymentModel {
	updated := newDeploymentModel(draft)
	updated.BaseEntity = source.BaseEntity
	updated.Touch()

	return updated
}

func newDeployment(model *deploymentModel) *Deployment {
	return &Deployment{
		DeploymentDraft: DeploymentDraft{
			Platform:             model.Platform,
			ProjectID:            model.ProjectID,
			Status:               model.Status,
			URL:                  model.URL,
			ProviderDeploymentID: model.ProviderDeploymentID,
			Logs:                 model.Logs,
			Error:                model.Error,
			EstimatedTime:        model.EstimatedTime,
			RollbackOf:           model.RollbackOf,
		},
		ID:        model.ID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func deploymentKey(id uuid.UUID) string {
	return prefixByID + id.String()
}

// StorageKey implements storage.Entity. Version 7 ids sort by creation time,
// so a prefix scan yields insertion order.
func (m *deploymentModel) StorageKey() string {
	return deploymentKey(m.ID)
}

// StorageIndexes implements storage.Entity.
func (m *deploymentModel) StorageIndexes() []string {
	return []string{
		fmt.Sprintf("%s%s:%s", prefixByPlatform, m.Platform, m.ID),
	}
}

// MarshalStorage implements storage.Entity.
func (m *deploymentModel) MarshalStorage() ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalStorage implements storage.Entity.
func (m *deploymentModel) UnmarshalStorage(data []byte) error {
	return json.Unmarshal(data, m)
}

var _ storage.Entity = (*deploymentModel)(nil)
