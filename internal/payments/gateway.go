package payments

import "context"

// CreateSessionInput describes a hosted checkout session to create. The
// metadata is returned verbatim when the session is retrieved and is used
// to locate the originating offer.
type CreateSessionInput struct {
	Description string
	AmountMinor int64 // minor currency units
	Currency    string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// Session is a created hosted checkout session
type Session struct {
	ID  string
	URL string
}

// SessionStatus is the gateway's view of a session after the client returns
type SessionStatus struct {
	Paid             bool
	Metadata         map[string]string
	PaymentIntentID  string
	AmountTotalMinor int64
}

// Gateway creates and retrieves hosted payment sessions
type Gateway interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error)
}
