package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultFlushInterval is how often a FileWriter pushes buffered data to disk.
const DefaultFlushInterval = time.Second

// FileWriter is a buffered, mutex-guarded log file that flushes periodically.
// It implements zapcore.WriteSyncer.
type FileWriter struct {
	mu     sync.Mutex
	writer *bufio.Writer
	file   *os.File
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
	path   string

	// Stats
	writes  uint64
	flushes uint64
}

// OpenFileWriter opens path in append mode, creating parent directories.
func OpenFileWriter(path string, flushInterval time.Duration) (*FileWriter, error) {
	if flushInterval <= 0 {
		flushInterval = DefaultFlushInterval
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	fw := &FileWriter{
		writer: bufio.NewWriter(file),
		file:   file,
		ticker: time.NewTicker(flushInterval),
		done:   make(chan struct{}),
		path:   path,
	}
	go fw.periodicFlush()
	return fw, nil
}

// Path returns the file being written.
func (fw *FileWriter) Path() string {
	return fw.path
}

// Write buffers p.
func (fw *FileWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	n, err := fw.writer.Write(p)
	if err != nil {
		return n, fmt.Errorf("failed to write log data: %w", err)
	}
	fw.writes++
	return n, nil
}

// Sync flushes buffered data and fsyncs the file.
func (fw *FileWriter) Sync() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.flushLocked()
}

func (fw *FileWriter) flushLocked() error {
	if err := fw.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}
	if err := fw.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	fw.flushes++
	return nil
}

func (fw *FileWriter) periodicFlush() {
	for {
		select {
		case <-fw.ticker.C:
			// A failed periodic flush is retried on the next tick and
			// reported by Close.
			_ = fw.Sync()
		case <-fw.done:
			return
		}
	}
}

// Close stops the flush loop, writes what remains and closes the file.
// Calling it more than once is safe.
func (fw *FileWriter) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		fw.ticker.Stop()

		fw.mu.Lock()
		defer fw.mu.Unlock()

		if ferr := fw.flushLocked(); ferr != nil {
			err = ferr
		}
		if cerr := fw.file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close log file: %w", cerr)
		}
	})
	return err
}

// Stats returns write and flush counts.
func (fw *FileWriter) Stats() (writes, flushes uint64) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.writes, fw.flushes
}
