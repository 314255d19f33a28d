package riskscreen

import (
	"context"
	"strings"

	"github.com/taskhub/backend/pkg/email"
)

// DomainBlocklist denies disposable mailbox providers.
type DomainBlocklist struct {
	blocked map[string]struct{}
}

func NewDomainBlocklist(domains []string) *DomainBlocklist {
	blocked := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			blocked[d] = struct{}{}
		}
	}
	return &DomainBlocklist{blocked: blocked}
}

func (b *DomainBlocklist) Screen(_ context.Context, req Request) (Decision, error) {
	if _, ok := b.blocked[email.Domain(req.Email)]; ok {
		return Deny("disposable email domain"), nil
	}
	return Allow, nil
}
