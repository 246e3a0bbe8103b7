// Package classifier turns free-form user input (a raw handle or a
// profile/story/highlight URL) into a typed reference.
package classifier

import (
	"net/url"
	"slices"
	"strings"

	"github.com/orgball2608/insta-story-downloader/internal/domain"
	apperrors "github.com/orgball2608/insta-story-downloader/pkg/errors"
)

const serviceDomain = "instagram.com"

// Classify parses raw input into an InputRef. URL shapes that are recognized
// but incomplete (a highlights/stories segment with nothing after it) fail
// with an invalid-input error.
func Classify(raw string) (domain.InputRef, error) {
	trimmed := strings.TrimSpace(raw)

	if !strings.Contains(trimmed, serviceDomain) {
		// Plain handle.
		handle := strings.ToLower(strings.TrimPrefix(trimmed, "@"))
		return domain.InputRef{Kind: domain.InputUsername, Value: handle}, nil
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return domain.InputRef{}, apperrors.WrapKind(apperrors.ErrInvalidInput, "Could not parse Instagram URL", err)
	}

	segments := splitPath(parsed.Path)

	if idx := slices.Index(segments, "highlights"); idx >= 0 {
		if idx+1 < len(segments) {
			return domain.InputRef{Kind: domain.InputHighlight, Value: segments[idx+1]}, nil
		}
		return domain.InputRef{}, apperrors.NewKind(apperrors.ErrInvalidInput, "Invalid highlight URL")
	}

	if idx := slices.Index(segments, "stories"); idx >= 0 {
		if idx+1 < len(segments) {
			return domain.InputRef{Kind: domain.InputUsername, Value: segments[idx+1]}, nil
		}
		return domain.InputRef{}, apperrors.NewKind(apperrors.ErrInvalidInput, "Invalid stories URL")
	}

	if len(segments) > 0 {
		return domain.InputRef{Kind: domain.InputUsername, Value: segments[0]}, nil
	}

	return domain.InputRef{}, apperrors.NewKind(apperrors.ErrInvalidInput, "Could not parse Instagram URL")
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
