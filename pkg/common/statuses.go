package common

// --- Cluster Status Constants ---
// Status values reported by the container-infra service for clusters.
const (
	StatusCreateInProgress = "CREATE_IN_PROGRESS"
	StatusCreateComplete   = "CREATE_COMPLETE"
	StatusCreateFailed     = "CREATE_FAILED"

	StatusUpdateInProgress = "UPDATE_IN_PROGRESS"
	StatusUpdateComplete   = "UPDATE_COMPLETE"
	StatusUpdateFailed     = "UPDATE_FAILED"

	StatusDeleteInProgress = "DELETE_IN_PROGRESS"
	StatusDeleteComplete   = "DELETE_COMPLETE"
	StatusDeleteFailed     = "DELETE_FAILED"

	StatusResumeComplete   = "RESUME_COMPLETE"
	StatusRestoreComplete  = "RESTORE_COMPLETE"
	StatusRollbackComplete = "ROLLBACK_COMPLETE"
	StatusSnapshotComplete = "SNAPSHOT_COMPLETE"
	StatusCheckComplete    = "CHECK_COMPLETE"
	StatusAdoptComplete    = "ADOPT_COMPLETE"
)

// --- Magnum Service State Constants ---
const (
	ServiceStateUp   = "up"
	ServiceStateDown = "down"
)
