// Package deviceinfo asks a device connection for its identity facts and
// turns the reported warnings into diagnostics.
package deviceinfo

import (
	"context"
)

// key reserved for diagnostics inside the facts returned by a connection
const WarningsKey = "warnings"

// well-known fact keys
const (
	KeyNetworkOS  = "network_os"
	KeyHostname   = "network_os_hostname"
	KeyModel      = "network_os_model"
	KeyVersion    = "network_os_version"
	KeyConfigMode = "sros_config_mode"
)

// Info holds device identity facts. There is no fixed schema, absent facts are simply not present.
type Info map[string]any

// Connection is a live management connection able to report device facts.
type Connection interface {
	GetDeviceInfo(ctx context.Context) (map[string]any, error)
}

// Warner receives non-fatal diagnostics
type Warner interface {
	Warn(msg string)
}

// WarnFunc adapts a plain function to Warner
type WarnFunc func(msg string)

func (f WarnFunc) Warn(msg string) { f(msg) }

// Result of a single retrieval. Changed is always false, retrieval never touches device state.
type Result struct {
	Changed bool `json:"changed" yaml:"changed"`
	Output  Info `json:"output" yaml:"output"`
}

// Retrieve queries conn for device facts, emits every warning found under WarningsKey
// to w and returns the remaining facts. Errors from conn are returned untouched.
func Retrieve(ctx context.Context, conn Connection, w Warner) (*Result, error) {
	facts, err := conn.GetDeviceInfo(ctx)
	if err != nil {
		return nil, err
	}
	// copy, the connection may hand out a cached map
	info := make(Info, len(facts))
	for k, v := range facts {
		info[k] = v
	}

	raw, found := info[WarningsKey]
	delete(info, WarningsKey)

	if found {
		warnings, err := ParseWarnings(raw)
		if err != nil {
			return nil, err
		}
		for _, msg := range warnings.Messages() {
			w.Warn(msg)
		}
	}

	return &Result{Changed: false, Output: info}, nil
}
