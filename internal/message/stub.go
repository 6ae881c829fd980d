package message

import (
	"context"
	"errors"
)

type StubRepo struct {
	CreateFunc         func(ctx context.Context, senderID, recipientID, body string) (Message, error)
	ListInvolvingFunc  func(ctx context.Context, userID string) ([]Message, error)
	ThreadFunc         func(ctx context.Context, userID, otherID string, limit int) ([]Message, error)
	MarkThreadReadFunc func(ctx context.Context, recipientID, senderID string) (int64, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, senderID, recipientID, body string) (Message, error) {
	if r.CreateFunc == nil {
		return Message{}, errors.New("Create() not implemented by stub")
	}
	return r.CreateFunc(ctx, senderID, recipientID, body)
}

func (r *StubRepo) ListInvolving(ctx context.Context, userID string) ([]Message, error) {
	if r.ListInvolvingFunc == nil {
		return nil, errors.New("ListInvolving() not implemented by stub")
	}
	return r.ListInvolvingFunc(ctx, userID)
}

func (r *StubRepo) Thread(ctx context.Context, userID, otherID string, limit int) ([]Message, error) {
	if r.ThreadFunc == nil {
		return nil, errors.New("Thread() not implemented by stub")
	}
	return r.ThreadFunc(ctx, userID, otherID, limit)
}

func (r *StubRepo) MarkThreadRead(ctx context.Context, recipientID, senderID string) (int64, error) {
	if r.MarkThreadReadFunc == nil {
		return 0, errors.New("MarkThreadRead() not implemented by stub")
	}
	return r.MarkThreadReadFunc(ctx, recipientID, senderID)
}

type StubUsers struct {
	ExistsFunc       func(ctx context.Context, userID string) (bool, error)
	DisplayNamesFunc func(ctx context.Context, userIDs []string) (map[string]string, error)
}

var _ Users = (*StubUsers)(nil)

func (u *StubUsers) Exists(ctx context.Context, userID string) (bool, error) {
	if u.ExistsFunc == nil {
		return false, errors.New("Exists() not implemented by stub")
	}
	return u.ExistsFunc(ctx, userID)
}

func (u *StubUsers) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	if u.DisplayNamesFunc == nil {
		return nil, errors.New("DisplayNames() not implemented by stub")
	}
	return u.DisplayNamesFunc(ctx, userIDs)
}

type StubService struct {
	SendFunc          func(ctx context.Context, senderID, recipientID, body string) (*Message, error)
	ConversationsFunc func(ctx context.Context, userID string) ([]Conversation, error)
	ThreadFunc        func(ctx context.Context, userID, otherID string, limit int) ([]Message, error)
	MarkReadFunc      func(ctx context.Context, userID, otherID string) (int64, error)
}

var _ MessageService = (*StubService)(nil)

func (s *StubService) Send(ctx context.Context, senderID, recipientID, body string) (*Message, error) {
	if s.SendFunc == nil {
		return nil, errors.New("Send() not implemented by stub")
	}
	return s.SendFunc(ctx, senderID, recipientID, body)
}

func (s *StubService) Conversations(ctx context.Context, userID string) ([]Conversation, error) {
	if s.ConversationsFunc == nil {
		return nil, errors.New("Conversations() not implemented by stub")
	}
	return s.ConversationsFunc(ctx, userID)
}

func (s *StubService) Thread(ctx context.Context, userID, otherID string, limit int) ([]Message, error) {
	if s.ThreadFunc == nil {
		return nil, errors.New("Thread() not implemented by stub")
	}
	return s.ThreadFunc(ctx, userID, otherID, limit)
}

func (s *StubService) MarkRead(ctx context.Context, userID, otherID string) (int64, error) {
	if s.MarkReadFunc == nil {
		return 0, errors.New("MarkRead() not implemented by stub")
	}
	return s.MarkReadFunc(ctx, userID, otherID)
}
