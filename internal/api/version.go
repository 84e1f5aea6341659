package api

import "sync"

// BuildInfo represents build information injected at link time.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

var (
	buildInfoMu sync.RWMutex
	buildInfo   = BuildInfo{Version: "dev", BuildTime: "unknown", GitCommit: "unknown"}
)

// SetBuildInfo records the binary's build information for /version.
func SetBuildInfo(info BuildInfo) {
	buildInfoMu.Lock()
	defer buildInfoMu.Unlock()
	buildInfo = info
}

// GetBuildInfo returns the recorded build information.
func GetBuildInfo() BuildInfo {
	buildInfoMu.RLock()
	defer buildInfoMu.RUnlock()
	return buildInfo
}
