package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/bondar-aleksandr/sros_device_info/internal/device"
	"github.com/bondar-aleksandr/sros_device_info/internal/deviceinfo"
	"go.uber.org/zap"
)

// client-level settings, "client" section of config.yml
type Options struct {
	SSHTimeout        int64  `yaml:"ssh_timeout"`
	LegacyKeyExchange string `yaml:"legacy_key_exchange"`
	LegacyAlgorithm   string `yaml:"legacy_algorithm"`
	SnmpPort          uint16 `yaml:"snmp_port"`
	SnmpTimeout       int64  `yaml:"snmp_timeout"`
	SnmpRetries       int    `yaml:"snmp_retries"`
}

func (o Options) sshTimeout() time.Duration {
	return time.Duration(o.SSHTimeout) * time.Second
}

func (o Options) snmpTimeout() time.Duration {
	return time.Duration(o.SnmpTimeout) * time.Second
}

// Conn is an open connection able to report device facts. Caller owns it and must Close it.
type Conn interface {
	deviceinfo.Connection
	Close(ctx context.Context) error
}

// Opener opens connection to a device
type Opener func(ctx context.Context, d *device.Device) (Conn, error)

// returns Opener which picks CLI or SNMP connection according to device transport
func NewOpener(opts Options, logger *zap.SugaredLogger) Opener {
	return func(ctx context.Context, d *device.Device) (Conn, error) {
		switch d.TransportOrDefault() {
		case device.TransportCLI:
			c := NewCLI(d, opts, logger)
			if err := c.Dial(ctx); err != nil {
				return nil, err
			}
			return c, nil
		case device.TransportSNMP:
			s := NewSNMP(d, opts, logger)
			if err := s.Dial(ctx); err != nil {
				return nil, err
			}
			return s, nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedTransport, d.Transport)
		}
	}
}
