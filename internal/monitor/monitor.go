package monitor

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"dnsdhcpapi/internal/metrics"
	"dnsdhcpapi/pkg/utils"
)

var log = logrus.WithField("prefix", "monitor")

// Target is a path whose changes are reported. Dir targets match any
// event below the directory; file targets match only their own name.
type Target struct {
	Name string
	Path string
	Dir  bool
}

// Monitor records when the scraped files last changed. It does not read
// or cache their content.
type Monitor struct {
	targets []Target

	lastEvent map[string]time.Time
	watcher   *fsnotify.Watcher
	mu        sync.RWMutex
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// New creates a new monitor instance
func New(targets ...Target) *Monitor {
	return &Monitor{
		targets:   targets,
		lastEvent: make(map[string]time.Time),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins watching. Targets that don't exist are logged and skipped.
func (m *Monitor) Start() error {
	var err error
	m.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return utils.WrapError(err, "failed to create file watcher")
	}

	go m.watchFiles()

	watched := make(map[string]bool)
	for _, t := range m.targets {
		// Files are watched through their directory so that rename-based
		// rewrites (dhcpd writes dhcpd.leases~ then renames) keep reporting
		dir := t.Path
		if !t.Dir {
			dir = filepath.Dir(t.Path)
		}
		if watched[dir] {
			continue
		}
		m.addToWatcher(dir, t.Name)
		watched[dir] = true
	}

	return nil
}

// addToWatcher adds a directory to the watcher with an existence check
func (m *Monitor) addToWatcher(dir, description string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Warnf("%s directory does not exist: %s", description, dir)
		return
	}

	if err := m.watcher.Add(dir); err != nil {
		log.Warnf("Failed to watch %s (%s): %v", description, dir, err)
		return
	}
	log.Debugf("Watching %s for %s", dir, description)
}

func (m *Monitor) watchFiles() {
	defer close(m.doneCh)

	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			m.handleEvent(event)

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("File watcher error: %v", err)

		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) handleEvent(event fsnotify.Event) {
	absEventPath, _ := filepath.Abs(event.Name)

	for _, t := range m.targets {
		absTarget, _ := filepath.Abs(t.Path)

		matched := absEventPath == absTarget
		if t.Dir {
			matched = filepath.Dir(absEventPath) == absTarget
		}
		if !matched {
			continue
		}

		log.Infof("%s changed: %s (%s)", t.Name, event.Name, event.Op)
		metrics.FileEvents.WithLabelValues(t.Name, opLabel(event.Op)).Inc()

		m.mu.Lock()
		m.lastEvent[t.Path] = time.Now()
		m.mu.Unlock()
	}
}

// opLabel reduces an event to its most significant operation
func opLabel(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return "chmod"
	}
}

// Stop stops monitoring
func (m *Monitor) Stop() {
	close(m.stopCh)
	if m.watcher != nil {
		m.watcher.Close()
		<-m.doneCh
	}
}

// Status returns the last change time of every target, nil if unchanged
// since start
func (m *Monitor) Status() map[string]*time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := make(map[string]*time.Time, len(m.targets))
	for _, t := range m.targets {
		if ts, ok := m.lastEvent[t.Path]; ok {
			ts := ts
			status[t.Path] = &ts
		} else {
			status[t.Path] = nil
		}
	}
	return status
}
