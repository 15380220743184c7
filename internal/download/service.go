// Package download implements the quota-gated media download command
// backed by an external download tool.
package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Black1ssl/menfess-bot/internal/domain"
	"github.com/Black1ssl/menfess-bot/internal/gateway"
)

const (
	// MaxPerDay is the download quota limit per user.
	MaxPerDay = 2

	// FormatPreference asks for video capped at 720p, falling back to
	// the best available.
	FormatPreference = "best[height<=720]/best"
)

// Actions is the subset of gateway operations the download flow needs.
type Actions interface {
	Reply(ctx context.Context, chat domain.ChatID, replyTo domain.MessageID, text string) gateway.Result
	SendVideo(ctx context.Context, chat domain.ChatID, replyTo domain.MessageID, path string) gateway.Result
	SendDocument(ctx context.Context, chat domain.ChatID, replyTo domain.MessageID, path string) gateway.Result
}

// Service implements the download flow.
type Service struct {
	actions      Actions
	quota        domain.QuotaStore
	downloader   domain.Downloader
	maxFileBytes int64
}

// NewService creates a download service. maxFileMB bounds the size of
// files the service will attempt to upload.
func NewService(actions Actions, quota domain.QuotaStore, downloader domain.Downloader, maxFileMB int) *Service {
	return &Service{
		actions:      actions,
		quota:        quota,
		downloader:   downloader,
		maxFileBytes: int64(maxFileMB) * 1024 * 1024,
	}
}

// HandleDownloadCommand processes "/dl <link>": validate, consume
// quota, download, send as video with a document fallback. The local
// file is removed on every exit path.
func (s *Service) HandleDownloadCommand(ctx context.Context, msg domain.Message) {
	if len(msg.Args) != 1 {
		s.actions.Reply(ctx, msg.Chat, msg.ID, "Gunakan: /dl <link>")
		return
	}

	allowed, err := s.quota.CheckAndConsume(ctx, msg.Sender.ID, domain.KindDownload, MaxPerDay)
	if err != nil {
		slog.ErrorContext(ctx, "quota check failed", "user_id", msg.Sender.ID, "error", err)
		return
	}
	if !allowed {
		s.actions.Reply(ctx, msg.Chat, msg.ID, "⛔ Limit download harian habis")
		return
	}

	path, err := s.downloader.Download(ctx, msg.Args[0], FormatPreference)
	if err != nil {
		slog.WarnContext(ctx, "download failed", "url", msg.Args[0], "error", err)
		s.actions.Reply(ctx, msg.Chat, msg.ID, "❌ Gagal download")
		return
	}
	// The tool downloads into a per-invocation directory; removing it
	// cleans up regardless of which send path we take below.
	defer func() { _ = os.RemoveAll(filepath.Dir(path)) }()

	info, err := os.Stat(path)
	if err != nil {
		slog.ErrorContext(ctx, "stat downloaded file failed", "path", path, "error", err)
		s.actions.Reply(ctx, msg.Chat, msg.ID, "❌ Gagal mengirim file hasil download")
		return
	}
	if info.Size() > s.maxFileBytes {
		s.actions.Reply(ctx, msg.Chat, msg.ID,
			fmt.Sprintf("❌ File terlalu besar (maks %d MB)", s.maxFileBytes/(1024*1024)))
		return
	}

	if res := s.actions.SendVideo(ctx, msg.Chat, msg.ID, path); res.OK() {
		return
	}
	if res := s.actions.SendDocument(ctx, msg.Chat, msg.ID, path); res.OK() {
		return
	}

	s.actions.Reply(ctx, msg.Chat, msg.ID, "❌ Gagal mengirim file hasil download")
}
