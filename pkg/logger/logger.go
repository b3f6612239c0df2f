// Package logger is an asynchronous JSON logger that batches entries to
// daily rotated files and, optionally, to a secondary sink.
package logger

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LogLevel represents the severity level of a log entry
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
	LevelFatal LogLevel = "FATAL"
)

var levelRank = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
	LevelFatal: 4,
}

// ParseLevel maps a level name to a LogLevel, defaulting to INFO.
func ParseLevel(s string) LogLevel {
	l := LogLevel(s)
	if _, ok := levelRank[l]; ok {
		return l
	}
	return LevelInfo
}

// LogEntry is one JSON line.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"@timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`

	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Hostname    string `json:"hostname"`
	PID         int    `json:"pid"`

	Caller *Caller `json:"caller,omitempty"`

	// Populated by the HTTP access log middleware
	HTTP        *HTTPContext        `json:"http,omitempty"`
	Error       *ErrorContext       `json:"error,omitempty"`
	Performance *PerformanceContext `json:"performance,omitempty"`

	Fields map[string]interface{} `json:"fields,omitempty"`
}

// Caller is the source location that emitted the entry.
type Caller struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// HTTPContext contains HTTP request/response information
type HTTPContext struct {
	Method       string            `json:"method"`
	Path         string            `json:"path"`
	Route        string            `json:"route,omitempty"`
	Query        string            `json:"query"`
	UserAgent    string            `json:"user_agent"`
	RemoteIP     string            `json:"remote_ip"`
	Headers      map[string]string `json:"headers,omitempty"`
	StatusCode   int               `json:"status_code"`
	ResponseSize int64             `json:"response_size"`
	RequestID    string            `json:"request_id"`
	RequestBody  string            `json:"request_body,omitempty"`
	ResponseBody string            `json:"response_body,omitempty"`
}

// ErrorContext contains error information
type ErrorContext struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// PerformanceContext contains request timing
type PerformanceContext struct {
	Duration   time.Duration `json:"duration"`
	DurationMs float64       `json:"duration_ms"`
}

// LogContext holds additional context for WithContext
type LogContext struct {
	HTTP        *HTTPContext
	Error       *ErrorContext
	Performance *PerformanceContext
	Fields      map[string]interface{}
}

// Sink receives every flushed batch after it reaches the log file.
type Sink interface {
	Write(ctx context.Context, batch []LogEntry) error
}

// Config holds the logger configuration
type Config struct {
	Service       string
	Version       string
	Environment   string
	LogDir        string        // Directory for log files
	FlushInterval time.Duration // How often pending entries are flushed
	BatchSize     int
	BufferSize    int // Channel buffer size
	LogLevel      LogLevel
	EnableCaller  bool
	MaxFileSize   int64 // Rotate after this many bytes (default 10MB)
	WriterBuffer  int   // bufio size for the file writer (default 64KB)
	Sink          Sink
	SinkTimeout   time.Duration
}

type fileWriter struct {
	mu           sync.Mutex
	file         *os.File
	writer       *bufio.Writer
	currentSize  int64
	currentDate  string
	currentIndex int
	maxSize      int64
	logDir       string
	bufferSize   int
}

// Logger is safe for concurrent use. A nil *Logger discards everything.
type Logger struct {
	config     Config
	entries    chan LogEntry
	flushReq   chan chan struct{}
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	closeOnce  sync.Once
	hostname   string
	pid        int
	fileWriter *fileWriter
}

// NewLogger creates a Logger and starts its background writer.
func NewLogger(config Config) *Logger {
	if config.LogDir == "" {
		config.LogDir = "./logs"
	}
	if config.FlushInterval == 0 {
		config.FlushInterval = time.Second
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}
	if config.BufferSize == 0 {
		config.BufferSize = 10000
	}
	if config.LogLevel == "" {
		config.LogLevel = LevelInfo
	}
	if config.MaxFileSize == 0 {
		config.MaxFileSize = 10 * 1024 * 1024
	}
	if config.WriterBuffer == 0 {
		config.WriterBuffer = 64 * 1024
	}
	if config.SinkTimeout == 0 {
		config.SinkTimeout = 5 * time.Second
	}

	hostname, _ := os.Hostname()
	ctx, cancel := context.WithCancel(context.Background())

	if err := os.MkdirAll(config.LogDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
	}

	l := &Logger{
		config:   config,
		entries:  make(chan LogEntry, config.BufferSize),
		flushReq: make(chan chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		hostname: hostname,
		pid:      os.Getpid(),
		fileWriter: &fileWriter{
			maxSize:    config.MaxFileSize,
			logDir:     config.LogDir,
			bufferSize: config.WriterBuffer,
		},
	}

	l.wg.Add(1)
	go l.processLogs()

	return l
}

// ensureCurrentFile rotates on a new day or when the size limit is reached.
// Callers hold fw.mu.
func (fw *fileWriter) ensureCurrentFile() error {
	date := time.Now().Format("2006-01-02")
	if fw.file == nil || fw.currentDate != date || fw.currentSize >= fw.maxSize {
		return fw.rotateFile(date)
	}
	return nil
}

func (fw *fileWriter) rotateFile(date string) error {
	if fw.writer != nil {
		_ = fw.writer.Flush()
		fw.writer = nil
	}
	if fw.file != nil {
		_ = fw.file.Close()
		fw.file = nil
	}

	if fw.currentDate != date {
		fw.currentIndex = 0
		fw.currentDate = date
	} else {
		fw.currentIndex++
	}

	path := filepath.Join(fw.logDir, date, fmt.Sprintf("portal-%s-%03d.log", date, fw.currentIndex))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create date directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	fw.file = file
	fw.writer = bufio.NewWriterSize(file, fw.bufferSize)
	fw.currentSize = stat.Size()
	return nil
}

func (fw *fileWriter) writeBatch(batch []LogEntry) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, entry := range batch {
		if err := fw.ensureCurrentFile(); err != nil {
			return err
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal log entry: %w", err)
		}
		data = append(data, '\n')
		n, err := fw.writer.Write(data)
		if err != nil {
			return fmt.Errorf("failed to write log entry: %w", err)
		}
		fw.currentSize += int64(n)
	}
	return fw.writer.Flush()
}

func (fw *fileWriter) close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	var err error
	if fw.writer != nil {
		err = fw.writer.Flush()
		fw.writer = nil
	}
	if fw.file != nil {
		if e := fw.file.Close(); e != nil && err == nil {
			err = e
		}
		fw.file = nil
	}
	return err
}

func (l *Logger) processLogs() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]LogEntry, 0, l.config.BatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := l.fileWriter.writeBatch(batch); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write log batch: %v\n", err)
		}
		if l.config.Sink != nil {
			ctx, cancel := context.WithTimeout(context.Background(), l.config.SinkTimeout)
			if err := l.config.Sink.Write(ctx, batch); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to ship log batch: %v\n", err)
			}
			cancel()
		}
		batch = make([]LogEntry, 0, l.config.BatchSize)
	}

	drain := func() {
		for {
			select {
			case entry := <-l.entries:
				batch = append(batch, entry)
			default:
				return
			}
		}
	}

	for {
		select {
		case entry := <-l.entries:
			batch = append(batch, entry)
			if len(batch) >= l.config.BatchSize {
				flush()
			}
		case done := <-l.flushReq:
			drain()
			flush()
			close(done)
		case <-ticker.C:
			flush()
		case <-l.ctx.Done():
			drain()
			flush()
			return
		}
	}
}

func (l *Logger) shouldLog(level LogLevel) bool {
	return levelRank[level] >= levelRank[l.config.LogLevel]
}

func (l *Logger) newEntry(level LogLevel, message string) LogEntry {
	entry := LogEntry{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Level:       level,
		Message:     message,
		Service:     l.config.Service,
		Version:     l.config.Version,
		Environment: l.config.Environment,
		Hostname:    l.hostname,
		PID:         l.pid,
	}

	// newEntry <- emit/withContext <- exported method <- caller
	if l.config.EnableCaller {
		if pc, file, line, ok := runtime.Caller(3); ok {
			entry.Caller = &Caller{File: file, Line: line}
			if fn := runtime.FuncForPC(pc); fn != nil {
				entry.Caller.Function = fn.Name()
			}
		}
	}
	return entry
}

func (l *Logger) enqueue(entry LogEntry) {
	select {
	case l.entries <- entry:
	default:
		fmt.Fprintf(os.Stderr, "Logger channel full, dropping log: %s\n", entry.Message)
	}
}

func (l *Logger) emit(level LogLevel, message string, err error, fields []map[string]interface{}) {
	if l == nil || !l.shouldLog(level) {
		return
	}
	entry := l.newEntry(level, message)
	if err != nil {
		entry.Error = &ErrorContext{Type: fmt.Sprintf("%T", err), Message: err.Error()}
	}
	if len(fields) > 0 {
		entry.Fields = fields[0]
	}
	l.enqueue(entry)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...map[string]interface{}) {
	l.emit(LevelDebug, message, nil, fields)
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...map[string]interface{}) {
	l.emit(LevelInfo, message, nil, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...map[string]interface{}) {
	l.emit(LevelWarn, message, nil, fields)
}

// Error logs an error message
func (l *Logger) Error(message string, err error, fields ...map[string]interface{}) {
	l.emit(LevelError, message, err, fields)
}

// Fatal logs at FATAL level. It does not exit.
func (l *Logger) Fatal(message string, err error, fields ...map[string]interface{}) {
	l.emit(LevelFatal, message, err, fields)
}

// WithContext logs with HTTP, error or timing context attached.
func (l *Logger) WithContext(level LogLevel, message string, ctx LogContext) {
	l.withContext(level, message, ctx)
}

func (l *Logger) withContext(level LogLevel, message string, ctx LogContext) {
	if l == nil || !l.shouldLog(level) {
		return
	}
	entry := l.newEntry(level, message)
	entry.HTTP = ctx.HTTP
	entry.Error = ctx.Error
	entry.Performance = ctx.Performance
	entry.Fields = ctx.Fields
	l.enqueue(entry)
}

// Flush blocks until every entry queued so far has been written.
func (l *Logger) Flush() error {
	if l == nil {
		return nil
	}
	done := make(chan struct{})
	select {
	case l.flushReq <- done:
		<-done
	case <-l.ctx.Done():
	}
	return nil
}

// Close drains pending entries and closes the current file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	var err error
	l.closeOnce.Do(func() {
		l.cancel()
		l.wg.Wait()
		err = l.fileWriter.close()
	})
	return err
}
