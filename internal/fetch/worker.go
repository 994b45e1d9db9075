// Package fetch downloads a single image to disk.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mmcdole/imgdl/internal/domain"
	"github.com/mmcdole/imgdl/internal/namer"
)

// ChunkSize is the size of each read from the response body
const ChunkSize = 32 * 1024

// Worker fetches one URL and writes it under a generated name.
// It is safe for concurrent use.
type Worker struct {
	httpClient *http.Client
	namer      *namer.Namer
	logger     *slog.Logger
}

// NewWorker creates a worker. Nil arguments fall back to defaults.
func NewWorker(httpClient *http.Client, n *namer.Namer, logger *slog.Logger) *Worker {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if n == nil {
		n = namer.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		httpClient: httpClient,
		namer:      n,
		logger:     logger,
	}
}

// FetchAndSave downloads task.URL into task.Dir. Every failure is reported through the
// returned outcome; a partially written file never appears under its final name.
func (w *Worker) FetchAndSave(ctx context.Context, task domain.DownloadTask) domain.DownloadOutcome {
	if err := os.MkdirAll(task.Dir, 0755); err != nil {
		return w.fail(task, domain.KindFilesystem, fmt.Errorf("failed to create directory: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return w.fail(task, domain.KindNetwork, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return w.fail(task, domain.KindNetwork, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return w.fail(task, domain.KindNetwork, fmt.Errorf("unexpected HTTP status %d %s",
			resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	name := w.namer.NameFor(task.URL, task.Prefix)
	finalPath := filepath.Join(task.Dir, name)
	tmpPath := filepath.Join(task.Dir, "."+name+".part")

	n, kind, err := writeTemp(resp.Body, tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return w.fail(task, kind, err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return w.fail(task, domain.KindFilesystem, fmt.Errorf("failed to finalize file: %w", err))
	}

	w.logger.Debug("image saved", "url", task.URL, "path", finalPath, "bytes", n)
	return domain.NewSuccess(task, finalPath, n)
}

// writeTemp streams body into path in ChunkSize pieces. The returned kind tells
// read failures (network) apart from write failures (filesystem).
func writeTemp(body io.Reader, path string) (int64, domain.ErrorKind, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, domain.KindFilesystem, fmt.Errorf("failed to create file: %w", err)
	}

	var written int64
	buf := make([]byte, ChunkSize)
	for {
		nr, rerr := body.Read(buf)
		if nr > 0 {
			nw, werr := f.Write(buf[:nr])
			written += int64(nw)
			if werr == nil && nw != nr {
				werr = io.ErrShortWrite
			}
			if werr != nil {
				f.Close()
				return written, domain.KindFilesystem, fmt.Errorf("failed to write file: %w", werr)
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			f.Close()
			return written, domain.KindNetwork, fmt.Errorf("failed to read response: %w", rerr)
		}
	}

	if err := f.Close(); err != nil {
		return written, domain.KindFilesystem, fmt.Errorf("failed to close file: %w", err)
	}
	return written, domain.KindNone, nil
}

func (w *Worker) fail(task domain.DownloadTask, kind domain.ErrorKind, err error) domain.DownloadOutcome {
	w.logger.Warn("download failed", "url", task.URL, "kind", kind.String(), "error", err)
	return domain.NewFailure(task, kind, err)
}
