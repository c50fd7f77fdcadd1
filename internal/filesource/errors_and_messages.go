package filesource

import (
	"fmt"
)

func errCannotOpenRoutesFile(path string, err error) error {
	return fmt.Errorf("unable to open routes file %q: %w", path, err)
}

func errCreateRouteManagerFailed(path string, err error) error {
	return fmt.Errorf("unable to start watching routes file %q: %w", path, err)
}

func errRoutesFileFormat(path string, err error) error {
	return fmt.Errorf("routes file %q is not valid: %w", path, err)
}

func errRouteMissingPath(index int) error {
	return fmt.Errorf("route %d does not specify a path", index)
}

const (
	logMsgNoRoutes                 = "Routes file does not define any routes"
	logMsgReloadedRoutes           = "Reloaded routes from %s (%d routes)"
	logMsgReloadError              = "Unable to reload routes file: %s; will retry"
	logMsgReloadFileNotFound       = "Routes file not found; will retry"
	logMsgReloadUnchangedRetry     = "Routes file has not changed since failed reload, will retry again"
	logMsgReloadUnchangedNoRetries = "Routes file has not changed since failed reload, giving up; last error: %s"
)
