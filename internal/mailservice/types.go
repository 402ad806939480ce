package mailservice

import (
	"bytes"
	"context"
	"sync"

	"github.com/go-mail/mail/v2"

	"github.com/jaehyunkim/engage/internal/common"
)

type MailService struct {
	mb     common.MessageConsumer
	m      Mailer
	logger MailLogger
	// ownerEmail receives new-comment notifications; reply notifications
	// go to the parent comment's author instead.
	ownerEmail string
	ctx        context.Context
	cancel     context.CancelFunc
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// CommentCreatedMessage is published when a visitor leaves a new root
// comment.
type CommentCreatedMessage struct {
	Slug    string `json:"slug"`
	Author  string `json:"author"`
	Content string `json:"content"`
	PageURL string `json:"page_url"`
}

// CommentRepliedMessage is published when a visitor replies to an
// existing comment.
type CommentRepliedMessage struct {
	Slug            string `json:"slug"`
	ReplyAuthor     string `json:"reply_author"`
	ReplyContent    string `json:"reply_content"`
	OriginalAuthor  string `json:"original_author"`
	OriginalContent string `json:"original_content"`
	Recipient       string `json:"recipient"`
	PageURL         string `json:"page_url"`
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Template struct{}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}
