package mailservice

import (
	"bytes"
	"sync"

	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"

	"github.com/jaehyunkim/engage/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	args := m.Called(name, data)
	return args.Get(0).(*bytes.Buffer), args.Get(1).(*bytes.Buffer), args.Get(2).(*bytes.Buffer), args.Error(3)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

type sentMail struct {
	Recipient    string
	TemplateFile string
}

type MockMailer struct {
	mu   sync.Mutex
	Sent []sentMail
}

func (m *MockMailer) send(recipient string, data any, templateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentMail{Recipient: recipient, TemplateFile: templateFile})
	return nil
}

func (m *MockMailer) SentMails() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.Sent...)
}

// MockMessageConsumer delivers one canned message per queue it is
// configured with and then closes the channel.
type MockMessageConsumer struct {
	Messages map[common.Queue]string
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	msgsChan := make(chan amqp.Delivery)

	go func() {
		defer close(msgsChan)

		body, ok := m.Messages[queue]
		if !ok {
			return
		}
		msgsChan <- amqp.Delivery{Body: []byte(body)}
	}()

	return msgsChan, nil
}
