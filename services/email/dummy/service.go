package dummymail

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/abovethehill/churchadmin/core"
)

// Service records sent messages for tests. Set Err to force delivery
// failures.
type Service struct {
	mu           sync.Mutex
	Err          error
	SentMessages []core.EmailMessage
}

var _ core.EmailService = (*Service)(nil)

func NewService() *Service {
	return &Service{SentMessages: make([]core.EmailMessage, 0)}
}

func (svc *Service) SendMessage(_ context.Context, msg *core.EmailMessage) error {
	if svc.Err != nil {
		return svc.Err
	}
	if err := msg.Render(); err != nil {
		return errors.Wrap(err, "rendering email")
	}
	if !msg.HasRecipients() || !msg.HasContent() {
		return nil
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.SentMessages = append(svc.SentMessages, *msg)
	return nil
}

// Reset clears recorded messages and any forced error.
func (svc *Service) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.SentMessages = svc.SentMessages[:0]
	svc.Err = nil
}
