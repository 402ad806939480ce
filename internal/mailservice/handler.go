package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/exp/rand"

	"github.com/jaehyunkim/engage/internal/common"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender, ownerEmail string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(host, port, username, password, sender, NewTemplate()),
		logger:     logger,
		ownerEmail: ownerEmail,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SendCommentNotifications consumes both notification queues and turns
// each message into an email. Dispatch is decoupled from comment writes;
// nothing here can fail a comment that is already stored.
func (s *MailService) SendCommentNotifications() {
	s.consumeLoop(common.CommentCreatedKey, common.CommentCreatedQueue, s.handleCreated)
	s.consumeLoop(common.CommentRepliedKey, common.CommentRepliedQueue, s.handleReplied)
}

func (s *MailService) handleCreated(body []byte) (string, any, string, error) {
	var data CommentCreatedMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return "", nil, "", err
	}

	return s.ownerEmail, data, "comment_notification.html", nil
}

func (s *MailService) handleReplied(body []byte) (string, any, string, error) {
	var data CommentRepliedMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return "", nil, "", err
	}

	return data.Recipient, data, "reply_notification.html", nil
}

func (s *MailService) consumeLoop(key common.BindingKey, queue common.Queue, handle func([]byte) (string, any, string, error)) {
	msgs, err := s.mb.Consume(key, common.CommentExchange, queue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("queue", string(queue)), slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				recipient, payload, templateFile, err := handle(msg.Body)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("queue", string(queue)), slog.String("error", err.Error()))
					msg.Ack(false)
					continue
				}

				s.sendWithRetry(msg, recipient, payload, templateFile)

			case <-s.ctx.Done():
				s.logger.Info("stopping notification consumer", slog.String("queue", string(queue)))
				return
			}
		}
	}()
}

// sendWithRetry uses exponential backoff with jitter. SMTP hiccups are
// common enough that a single attempt would drop too many notifications;
// after maxRetries the message is acked and given up on.
func (s *MailService) sendWithRetry(msg amqp.Delivery, recipient string, payload any, templateFile string) {
	const maxRetries = 5
	const baseDelay = 500 * time.Millisecond

	var attempt int
	for attempt = 0; attempt < maxRetries; attempt++ {
		err := s.m.send(recipient, payload, templateFile)
		if err == nil {
			s.logger.Info("notification email sent", slog.String("email", recipient), slog.String("template", templateFile))
			msg.Ack(false)
			return
		}

		delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
		s.logger.Info("delaying notification email", slog.String("email", recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay))
		time.Sleep(delay)
	}

	s.logger.Error("could not send notification email", slog.String("email", recipient))
	msg.Ack(false)
}

func (s *MailService) Close() {
	s.cancel()
}
