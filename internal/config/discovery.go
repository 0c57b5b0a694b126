package config

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

const (
	// AmaruLedgerDBEnv and AmaruChainDBEnv name the environment variables
	// the node process sets to point at its own database directories —
	// mirrors detection.rs constants.
	AmaruLedgerDBEnv = "AMARU_LEDGER_DB"
	AmaruChainDBEnv  = "AMARU_CHAIN_DB"

	amaruProcessName = "amaru"
)

// DetectedProcess is what was learned about a running node process: its
// working directory (if readable) and its environment variables.
type DetectedProcess struct {
	Cwd string
	Env map[string]string
}

// DetectAmaruProcess scans running processes for one named "amaru" and
// returns its cwd and environment. Grounded on detection.rs's
// detect_amaru_process, which used the sysinfo crate for the same scan;
// github.com/shirou/gopsutil/v3/process is the Go ecosystem equivalent.
func DetectAmaruProcess() (DetectedProcess, bool, error) {
	procs, err := process.Processes()
	if err != nil {
		return DetectedProcess{}, false, err
	}
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || name != amaruProcessName {
			continue
		}
		running, err := isRunning(p)
		if err != nil || !running {
			continue
		}
		cwd, _ := p.Cwd()
		env, _ := p.Environ()
		return DetectedProcess{Cwd: cwd, Env: splitEnv(env)}, true, nil
	}
	return DetectedProcess{}, false, nil
}

func isRunning(p *process.Process) (bool, error) {
	statuses, err := p.Status()
	if err != nil {
		return false, err
	}
	for _, s := range statuses {
		if s == process.Running {
			return true, nil
		}
	}
	return false, nil
}

func splitEnv(entries []string) map[string]string {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		key, val, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		out[key] = val
	}
	return out
}

// ApplyDiscovery fills in LedgerDBPath/ChainDBPath from a detected node
// process's environment, but only where the flag/env-derived Config left
// them blank — explicit configuration always wins over discovery.
func (c *Config) ApplyDiscovery(d DetectedProcess) {
	if c.LedgerDBPath == "" {
		if v, ok := d.Env[AmaruLedgerDBEnv]; ok {
			c.LedgerDBPath = resolveAgainst(d.Cwd, v)
		}
	}
	if c.ChainDBPath == "" {
		if v, ok := d.Env[AmaruChainDBEnv]; ok {
			c.ChainDBPath = resolveAgainst(d.Cwd, v)
		}
	}
}

// resolveAgainst returns path unchanged if it's already absolute-looking,
// otherwise joins it onto the detected process's working directory.
func resolveAgainst(cwd, path string) string {
	if path == "" || cwd == "" || strings.HasPrefix(path, "/") {
		return path
	}
	return cwd + "/" + path
}
