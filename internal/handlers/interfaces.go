package handlers

import "context"

// ImageUploader re-hosts a message attachment on the external image host.
// Implemented by external.Client.
type ImageUploader interface {
	UploadImage(ctx context.Context, imageURL string) (string, error)
}

// PasteUploader publishes a text document on the external paste host and
// returns its viewing URL. Implemented by external.Client.
type PasteUploader interface {
	UploadPaste(ctx context.Context, name, content string) (string, error)
}

// SessionStore remembers which suggestion a staff member is managing
// between the manage click and the decision modal submission.
type SessionStore interface {
	Set(staffID string, suggestionID int64)
	Get(staffID string) (int64, bool)
	Clear(staffID string)
}
