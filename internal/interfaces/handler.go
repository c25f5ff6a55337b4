package interfaces

import (
	"context"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/models"
)

// SourceHandler is the shared contract implemented by every source
// handler (github, vscode, web). Each call is independent: handlers hold
// no mutable state across operations and re-validate from scratch.
type SourceHandler interface {
	// SourceType returns the source kind this handler serves.
	SourceType() models.SourceType

	// Validate reports whether the identifier is well-formed for this
	// source kind. Invalid identifiers never reach a fetch.
	Validate(identifier string) bool

	// FetchAndExtract fetches the source, extracts content and assembles
	// a normalized release record.
	FetchAndExtract(ctx context.Context, identifier string) (*models.ReleaseRecord, error)

	// Save renders the record to markdown and writes it to its
	// deterministic path. Failures are logged and reported as false.
	Save(record *models.ReleaseRecord) bool
}
