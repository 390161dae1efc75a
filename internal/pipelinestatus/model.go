package pipelinestatus

import (
	"time"

	"gorm.io/gorm"
)

// Lifecycle stages are the canonical buckets every pipeline status maps
// onto for reporting. Only closed deals enter revenue analytics.
const (
	StageNew        = "new"
	StageInProgress = "in_progress"
	StageClosed     = "closed"
	StageDead       = "dead"
)

// Stages lists the valid lifecycle_stage values.
var Stages = []string{StageNew, StageInProgress, StageClosed, StageDead}

// PipelineStatus is one named stage of a workspace's deal pipeline.
type PipelineStatus struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	WorkspaceID    uint   `gorm:"not null;index" json:"workspaceId"`
	Name           string `gorm:"size:100;not null" json:"name"`
	LifecycleStage string `gorm:"size:20;not null;default:'new'" json:"lifecycleStage"`
	Position       int    `gorm:"not null;default:0" json:"position"`
}

// DefaultSet is the pipeline seeded into a new workspace.
func DefaultSet(workspaceID uint) []PipelineStatus {
	return []PipelineStatus{
		{WorkspaceID: workspaceID, Name: "New Lead", LifecycleStage: StageNew, Position: 1},
		{WorkspaceID: workspaceID, Name: "Contacted", LifecycleStage: StageInProgress, Position: 2},
		{WorkspaceID: workspaceID, Name: "Showing", LifecycleStage: StageInProgress, Position: 3},
		{WorkspaceID: workspaceID, Name: "Under Contract", LifecycleStage: StageInProgress, Position: 4},
		{WorkspaceID: workspaceID, Name: "Closed", LifecycleStage: StageClosed, Position: 5},
		{WorkspaceID: workspaceID, Name: "Lost", LifecycleStage: StageDead, Position: 6},
	}
}

// Migrate creates the pipeline status table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&PipelineStatus{})
}
