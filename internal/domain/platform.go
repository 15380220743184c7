package domain

import (
	"context"
	"time"
)

// PlatformAPI is the raw chat platform client. Every method performs a
// single network call and returns the platform's error unclassified;
// the action gateway is the only intended caller.
type PlatformAPI interface {
	SendText(ctx context.Context, chat ChatID, text string) (MessageID, error)
	Reply(ctx context.Context, chat ChatID, replyTo MessageID, text string) (MessageID, error)
	CopyMessage(ctx context.Context, to, from ChatID, id MessageID) (MessageID, error)
	DeleteMessage(ctx context.Context, chat ChatID, id MessageID) error
	BanUser(ctx context.Context, chat ChatID, user UserID, until time.Time) error
	UnbanUser(ctx context.Context, chat ChatID, user UserID) error
	GetChatMember(ctx context.Context, chat ChatID, user UserID) (MemberStatus, error)
	SendVideo(ctx context.Context, chat ChatID, replyTo MessageID, path string) (MessageID, error)
	SendDocument(ctx context.Context, chat ChatID, replyTo MessageID, path string) (MessageID, error)
}

// Downloader fetches a remote media URL into a local file.
// The returned path is owned by the caller, who must remove it.
type Downloader interface {
	Download(ctx context.Context, url, format string) (string, error)
}
