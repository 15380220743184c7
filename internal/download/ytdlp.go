package download

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// YtDlp drives the external yt-dlp binary. Each invocation downloads
// into its own temp directory; removing the returned file's parent
// directory cleans up everything the tool produced.
type YtDlp struct {
	binary string
}

// NewYtDlp creates a downloader using the given binary path.
func NewYtDlp(binary string) *YtDlp {
	return &YtDlp{binary: binary}
}

// Download fetches url with the given format preference and returns the
// local file path. The caller owns the file and its parent directory.
func (y *YtDlp) Download(ctx context.Context, url, format string) (string, error) {
	dir, err := os.MkdirTemp("", "menfess-dl-")
	if err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	outTemplate := filepath.Join(dir, "media.%(ext)s")
	cmd := exec.CommandContext(ctx, y.binary,
		"-f", format,
		"-o", outTemplate,
		"--no-playlist",
		"--quiet",
		url,
	)
	if err := cmd.Run(); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("run yt-dlp: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("read download dir: %w", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "media.") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	_ = os.RemoveAll(dir)
	return "", fmt.Errorf("yt-dlp produced no output file")
}
