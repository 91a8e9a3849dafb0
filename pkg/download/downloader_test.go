package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsread/pkg/config"
)

func TestDownloader_Download(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/media/clip.mp4":
			_, _ = w.Write([]byte("video-bytes"))
		case "/flaky.mp3":
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("audio-bytes"))
		case "/":
			_, _ = w.Write([]byte("root"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	d := New(config.DownloadConfig{Dir: filepath.Join(dir, "media"), Timeout: time.Second}, "test")

	t.Run("saves under last path segment", func(t *testing.T) {
		path, err := d.Download(context.Background(), server.URL+"/media/clip.mp4?token=1")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "media", "clip.mp4"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "video-bytes", string(data))
	})

	t.Run("retries server errors", func(t *testing.T) {
		path, err := d.Download(context.Background(), server.URL+"/flaky.mp3")
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "audio-bytes", string(data))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("no path segment", func(t *testing.T) {
		path, err := d.Download(context.Background(), server.URL+"/")
		require.NoError(t, err)
		assert.Equal(t, "download", filepath.Base(path))
	})

	t.Run("not found is not retried", func(t *testing.T) {
		_, err := d.Download(context.Background(), server.URL+"/missing.jpg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code 404")
		_, statErr := os.Stat(filepath.Join(dir, "media", "missing.jpg"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("bad scheme", func(t *testing.T) {
		_, err := d.Download(context.Background(), "ftp://example.com/file.bin")
		require.Error(t, err)
	})

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Join(dir, "media"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".download-")
	}
}

func TestDownloader_Run(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Path))
	}))
	defer server.Close()

	dir := t.TempDir()
	d := New(config.DownloadConfig{Dir: dir, Workers: 2, QueueSize: 10}, "test")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		assert.True(t, d.Enqueue(server.URL+"/"+name))
	}

	require.Eventually(t, func() bool {
		entries, err := os.ReadDir(dir)
		return err == nil && len(entries) == 3
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("downloader didn't stop")
	}
}

func TestDownloader_EnqueueFull(t *testing.T) {
	d := New(config.DownloadConfig{Dir: t.TempDir(), QueueSize: 1}, "test")
	assert.True(t, d.Enqueue("http://example.com/1.mp4"))
	assert.False(t, d.Enqueue("http://example.com/2.mp4"), "full queue drops instead of blocking")
}
