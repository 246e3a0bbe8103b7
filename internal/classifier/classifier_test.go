package classifier

import (
	"testing"

	"github.com/orgball2608/insta-story-downloader/internal/domain"
	apperrors "github.com/orgball2608/insta-story-downloader/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.InputRef
	}{
		{
			name:  "plain handle",
			input: "someuser",
			want:  domain.InputRef{Kind: domain.InputUsername, Value: "someuser"},
		},
		{
			name:  "handle with at sign and mixed case",
			input: "@Foo",
			want:  domain.InputRef{Kind: domain.InputUsername, Value: "foo"},
		},
		{
			name:  "handle with surrounding whitespace",
			input: "  @SomeUser \n",
			want:  domain.InputRef{Kind: domain.InputUsername, Value: "someuser"},
		},
		{
			name:  "profile URL",
			input: "https://www.instagram.com/someuser/",
			want:  domain.InputRef{Kind: domain.InputUsername, Value: "someuser"},
		},
		{
			name:  "stories URL",
			input: "https://www.instagram.com/stories/someuser/3141592653589793238/",
			want:  domain.InputRef{Kind: domain.InputUsername, Value: "someuser"},
		},
		{
			name:  "highlight URL",
			input: "https://instagram.com/highlights/123456",
			want:  domain.InputRef{Kind: domain.InputHighlight, Value: "123456"},
		},
		{
			name:  "highlight URL with stories prefix",
			input: "https://www.instagram.com/stories/highlights/17900000000000000/",
			want:  domain.InputRef{Kind: domain.InputHighlight, Value: "17900000000000000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "highlight URL without id", input: "https://www.instagram.com/highlights/"},
		{name: "stories URL without username", input: "https://www.instagram.com/stories/"},
		{name: "bare domain", input: "https://www.instagram.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.input)
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidInput(err))
		})
	}
}
