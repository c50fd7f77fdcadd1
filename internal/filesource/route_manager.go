// Package filesource loads default mock routes from a JSON file and keeps
// them current by watching the file for changes.
package filesource

import (
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/netmock/relay/handlers"
)

const (
	defaultRetryInterval       = time.Second
	maxRetriesIfFileNotChanged = 2
)

// UpdateHandler receives the new handler list each time the routes file is
// successfully loaded or reloaded.
type UpdateHandler interface {
	UpdateRoutes(routes []handlers.Handler)
}

// RouteManager reads a routes file, hands the resulting handlers to an
// UpdateHandler, and watches the file so that edits take effect without a
// restart. File watch notifications can fire while a copy is still in
// progress, so failed reloads are retried on a short delay.
type RouteManager struct {
	filePath      string
	handler       UpdateHandler
	retryInterval time.Duration
	watcher       *fsnotify.Watcher
	loggers       ldlog.Loggers
	closeCh       chan struct{}
	closeOnce     sync.Once
}

// NewRouteManager creates the RouteManager and performs the initial load. A
// missing or invalid file at startup is an error; after startup, reload
// failures are logged and retried instead.
func NewRouteManager(
	filePath string,
	handler UpdateHandler,
	retryInterval time.Duration,
	loggers ldlog.Loggers,
) (*RouteManager, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, errCannotOpenRoutesFile(filePath, err)
	}

	rm := &RouteManager{
		filePath:      filePath,
		handler:       handler,
		retryInterval: retryInterval,
		loggers:       loggers,
		closeCh:       make(chan struct{}),
	}
	if rm.retryInterval == 0 {
		rm.retryInterval = defaultRetryInterval
	}
	rm.loggers.SetPrefix("[FileRouteSource]")

	routes, err := readRoutesFile(filePath)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errCreateRouteManagerFailed(filePath, err) // COVERAGE: can't cause this condition in unit tests
	}
	if err := watcher.Add(filePath); err != nil {
		return nil, errCreateRouteManagerFailed(filePath, err) // COVERAGE: can't cause this condition in unit tests
	}
	rm.watcher = watcher

	rm.applyRoutes(routes)
	go rm.run(fileInfo)

	return rm, nil
}

// Close shuts down the RouteManager and its file watcher.
func (rm *RouteManager) Close() {
	rm.closeOnce.Do(func() {
		close(rm.closeCh)
	})
}

func (rm *RouteManager) run(originalFileInfo os.FileInfo) {
	lastFileInfo := originalFileInfo
	retryCh := make(chan struct{})
	needRetry := false
	retriedCountSinceLastChange := 0
	var lastError error

	scheduleRetry := func() {
		needRetry = true
		time.AfterFunc(rm.retryInterval, func() {
			// Non-blocking write because we never need to queue more than one retry signal
			select {
			case retryCh <- struct{}{}:
			default:
			}
		})
	}

	maybeReload := func() {
		curFileInfo, err := os.Stat(rm.filePath)
		if err == nil {
			if fileMayHaveChanged(curFileInfo, lastFileInfo) {
				retriedCountSinceLastChange = 0
				lastError = nil
				lastFileInfo = curFileInfo
				routes, err := readRoutesFile(rm.filePath)
				needRetry = false
				if err != nil {
					// The file may be mid-copy and in an invalid partial state,
					// so always retry at least once.
					rm.loggers.Warnf(logMsgReloadError, err)
					lastError = err
					scheduleRetry()
					return
				}
				rm.applyRoutes(routes)
				return
			}
			if lastError == nil {
				// Spurious watch notification, nothing to do
				return
			}
		} else {
			if lastError == nil {
				rm.loggers.Warn(logMsgReloadFileNotFound)
				lastError = err
			}
		}
		// The file was missing, or unchanged since a failed reload. A slow copy
		// may still be in progress, so retry a bounded number of times rather
		// than relying on watch granularity to catch the final write.
		if retriedCountSinceLastChange < maxRetriesIfFileNotChanged {
			retriedCountSinceLastChange++
			rm.loggers.Warn(logMsgReloadUnchangedRetry)
			scheduleRetry()
		} else {
			rm.loggers.Errorf(logMsgReloadUnchangedNoRetries, lastError)
		}
	}

	for {
		select {
		case <-rm.closeCh:
			rm.watcher.Close()
			return

		case event := <-rm.watcher.Events:
			rm.loggers.Debugf("Got file watcher event: %+v", event)
			rm.consumeExtraEvents()
			maybeReload()

		case <-retryCh:
			if needRetry {
				maybeReload()
			}
		}
	}
}

func (rm *RouteManager) consumeExtraEvents() {
	for {
		select {
		case <-rm.watcher.Events: // COVERAGE: can't simulate this condition in unit tests
		default:
			return
		}
	}
}

func (rm *RouteManager) applyRoutes(routes []handlers.Handler) {
	if len(routes) == 0 {
		rm.loggers.Warn(logMsgNoRoutes)
	}
	rm.loggers.Infof(logMsgReloadedRoutes, rm.filePath, len(routes))
	rm.handler.UpdateRoutes(routes)
}

func fileMayHaveChanged(newInfo, oldInfo os.FileInfo) bool {
	return !newInfo.ModTime().Equal(oldInfo.ModTime()) || newInfo.Size() != oldInfo.Size()
}
