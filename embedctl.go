package embedctl

import "time"

// Defaults for the managed service and its collaborators
const (
	// DefaultService is the systemd unit name managed when no other name is configured
	DefaultService = "embedding-service"

	// DefaultHealthURL is the service's health endpoint
	DefaultHealthURL = "http://localhost:5000/health"

	// DefaultLogLines is the number of journal entries retrieved by default
	DefaultLogLines = 20

	// DefaultSettleDelay is how long start/restart wait before checking status
	DefaultSettleDelay = 3 * time.Second

	// DefaultTimeout is the default timeout for systemctl and journalctl calls
	DefaultTimeout = 10 * time.Second

	// DefaultHealthTimeout is the default timeout for health endpoint requests
	DefaultHealthTimeout = 5 * time.Second

	// DefaultWatchInterval is the default polling interval for state watching
	DefaultWatchInterval = 1 * time.Second
)

// Binary paths with defaults that can be overridden
const (
	// DefaultSystemctlPath is the default path to the systemctl binary
	DefaultSystemctlPath = "systemctl"

	// DefaultJournalctlPath is the default path to the journalctl binary
	DefaultJournalctlPath = "journalctl"

	// DefaultSudoCommand is the default privilege-escalation command
	DefaultSudoCommand = "sudo"

	// DefaultUnitDir is the directory unit files are installed to
	DefaultUnitDir = "/etc/systemd/system"
)

// File modes
const (
	// UnitFileMode is the mode for installed unit files
	UnitFileMode = 0o644
)

// Operation represents a dispatcher operation type
type Operation int

const (
	// OpUnknown represents an unknown operation
	OpUnknown Operation = iota
	// OpStart starts the service
	OpStart
	// OpStop stops the service
	OpStop
	// OpRestart restarts the service
	OpRestart
	// OpStatus queries the supervisor's status report
	OpStatus
	// OpLogs retrieves recent journal entries
	OpLogs
	// OpHealth probes the HTTP health endpoint
	OpHealth
	// OpMemory queries the HTTP memory endpoint
	OpMemory
	// OpEnable enables the service at boot
	OpEnable
	// OpDisable disables the service at boot
	OpDisable
	// OpInstall installs the systemd unit file
	OpInstall
	// OpWatch follows state transitions
	OpWatch
)

// Operation string constants
const (
	opUnknownStr = "unknown"
	opStartStr   = "start"
	opStopStr    = "stop"
	opRestartStr = "restart"
	opStatusStr  = "status"
	opLogsStr    = "logs"
	opHealthStr  = "health"
	opMemoryStr  = "memory"
	opEnableStr  = "enable"
	opDisableStr = "disable"
	opInstallStr = "install"
	opWatchStr   = "watch"
)

// String returns the token form of the operation
func (o Operation) String() string {
	switch o {
	case OpStart:
		return opStartStr
	case OpStop:
		return opStopStr
	case OpRestart:
		return opRestartStr
	case OpStatus:
		return opStatusStr
	case OpLogs:
		return opLogsStr
	case OpHealth:
		return opHealthStr
	case OpMemory:
		return opMemoryStr
	case OpEnable:
		return opEnableStr
	case OpDisable:
		return opDisableStr
	case OpInstall:
		return opInstallStr
	case OpWatch:
		return opWatchStr
	default:
		return opUnknownStr
	}
}
