package entity

// PermissionSet is the server-computed capability flags for the current
// viewer against one resource. A flag missing from the response decodes
// to false, which is exactly the fail-closed behavior consumers rely on.
type PermissionSet struct {
	CanViewAll        bool `json:"canViewAll"`
	CanEdit           bool `json:"canEdit"`
	CanDelete         bool `json:"canDelete"`
	CanGiveFeedback   bool `json:"canGiveFeedback"`
	CanRequestAbsence bool `json:"canRequestAbsence"`
}
