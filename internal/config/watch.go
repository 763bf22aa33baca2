package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"chatdock/internal/logger"
)

// DefaultDebounce 同一次保存常触发多个事件，合并到最后一个之后再重新加载
const DefaultDebounce = 200 * time.Millisecond

// Watcher 监听配置文件变化并重新加载
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(*Config)

	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once

	mu    sync.Mutex
	timer *time.Timer
}

// Watch 监听配置文件所在目录。编辑器通常先写临时文件再改名，只监听文件本身会丢事件。
// 解析失败的配置只记日志，不回调
func Watch(path string, debounce time.Duration, onChange func(*Config)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监听失败: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("监听配置目录失败: %w", err)
	}

	w := &Watcher{
		path:      filepath.Clean(path),
		debounce:  debounce,
		onChange:  onChange,
		fsWatcher: fsWatcher,
		done:      make(chan struct{}),
	}
	go w.processEvents()
	return w, nil
}

// Close 停止监听
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	})
	return err
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("config watcher: %s %s", event.Op, event.Name)
			w.schedule()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error: %v", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	cfg, err := Load(w.path)
	if err != nil {
		logger.Warn("config reload failed, keeping previous settings: %v", err)
		return
	}
	logger.Info("config reloaded from %s", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
