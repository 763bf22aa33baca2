package logger

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	maxLogLines = 1000
	logFileName = "chatdock.log"
)

var (
	mu          sync.Mutex
	logFile     *os.File
	logLogger   *log.Logger
	debugMode   bool
	logFilePath string
)

// truncateLogFile 截断日志文件，只保留最近 maxLines 行
func truncateLogFile(path string, maxLines int) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) <= maxLines {
		return
	}
	lines = lines[len(lines)-maxLines:]

	out, err := os.Create(path)
	if err != nil {
		return
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	w.Flush()
}

// Path 返回日志文件路径
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logFilePath
}

// Init 在 dir 下打开日志文件，dir 为空时使用默认目录
func Init(dir string) error {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建日志目录失败: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	truncateLogFile(path, maxLogLines)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	logFile = f
	logFilePath = path
	logLogger = log.New(f, "", log.LstdFlags)
	mu.Unlock()

	Info("=== chatdock started ===")
	Info("Log file: %s", path)
	Info("Time: %s", time.Now().Format(time.RFC3339))
	return nil
}

// SetOutput 将日志重定向到 w，主要用于测试和命令行模式
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logLogger = log.New(w, "", log.LstdFlags)
}

// Close 关闭日志文件
func Close() {
	Info("=== chatdock stopped ===")
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logLogger = nil
}

// SetDebug 设置调试模式
func SetDebug(enabled bool) {
	mu.Lock()
	changed := debugMode != enabled
	debugMode = enabled
	mu.Unlock()
	if changed {
		Info("Debug mode: %v", enabled)
	}
}

// Info 记录信息
func Info(format string, args ...interface{}) { output("INFO", format, args...) }

// Warn 记录可恢复的异常
func Warn(format string, args ...interface{}) { output("WARN", format, args...) }

// Error 记录错误
func Error(format string, args ...interface{}) { output("ERROR", format, args...) }

// Debug 记录调试信息（仅在 debug 模式下输出）
func Debug(format string, args ...interface{}) {
	mu.Lock()
	enabled := debugMode
	mu.Unlock()
	if enabled {
		output("DEBUG", format, args...)
	}
}

func output(level, format string, args ...interface{}) {
	mu.Lock()
	l := logLogger
	mu.Unlock()
	if l != nil {
		l.Printf("["+level+"] "+format, args...)
	}
}

// DefaultDir 返回默认日志目录：用户配置目录下的 chatdock
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "."
		}
		base = home
	}
	return filepath.Join(base, "chatdock")
}
