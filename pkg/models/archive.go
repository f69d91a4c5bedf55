package models

// ArchiveRequest is the PATCH body shared by every archivable entity.
type ArchiveRequest struct {
	Status        string `json:"status"`
	ArchiveReason string `json:"archive_reason,omitempty"`
	// UnarchiveReason is only sent when restoring a record.
	UnarchiveReason string `json:"unarchive_reason,omitempty"`
}

func NewArchiveRequest(reason string) ArchiveRequest {
	return ArchiveRequest{Status: StatusArchived, ArchiveReason: reason}
}

func NewUnarchiveRequest(reason string) ArchiveRequest {
	return ArchiveRequest{Status: StatusActive, UnarchiveReason: reason}
}
