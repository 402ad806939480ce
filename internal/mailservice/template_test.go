package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplate(t *testing.T) {
	template := &Template{}

	testCases := []struct {
		name         string
		templateName string
		data         any
		expectedErr  bool
	}{
		{
			name:         "comment notification",
			templateName: "comment_notification.html",
			data: CommentCreatedMessage{
				Slug:    "go-generics",
				Author:  "Alice",
				Content: "Great post!",
				PageURL: "https://example.com/posts/go-generics",
			},
			expectedErr: false,
		},
		{
			name:         "reply notification",
			templateName: "reply_notification.html",
			data: CommentRepliedMessage{
				Slug:            "go-generics",
				ReplyAuthor:     "Bob",
				ReplyContent:    "Agreed.",
				OriginalAuthor:  "Alice",
				OriginalContent: "Great post!",
				Recipient:       "alice@example.com",
				PageURL:         "https://example.com/posts/go-generics",
			},
			expectedErr: false,
		},
		{
			name:         "invalid template name",
			templateName: "invalid_template.html",
			data:         nil,
			expectedErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, p, h, err := template.ParseTemplate(tc.templateName, tc.data)
			assert.Equal(t, tc.expectedErr, err != nil)

			if err == nil {
				assert.NotEmpty(t, s.String())
				assert.NotEmpty(t, p.String())
				assert.NotEmpty(t, h.String())
			}
		})
	}
}
