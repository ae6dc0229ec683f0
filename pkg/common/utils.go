package common

import "strings"

// IsFailedStatus reports whether a cluster status is a terminal failure
// (CREATE_FAILED, DELETE_FAILED, ...). Waiters abort on these instead of
// polling until the deadline.
func IsFailedStatus(status string) bool {
	return strings.HasSuffix(status, "_FAILED")
}

// IsInProgressStatus reports whether the service is still converging the
// cluster toward a goal state.
func IsInProgressStatus(status string) bool {
	return strings.HasSuffix(status, "_IN_PROGRESS")
}

// ContainsString checks if a string is present in a slice of strings.
func ContainsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
