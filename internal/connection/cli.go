package connection

import (
	"context"
	"errors"
	"fmt"

	"github.com/bondar-aleksandr/netrasp/pkg/netrasp"
	"github.com/bondar-aleksandr/sros_device_info/internal/device"
	"github.com/bondar-aleksandr/sros_device_info/internal/deviceinfo"
	"go.uber.org/zap"
)

const (
	cmdSystemInfo = "show system information"
	cmdChassis    = "show chassis"
)

// subset of netrasp platform used here
type session interface {
	Dial(ctx context.Context) error
	Close(ctx context.Context) error
	Run(ctx context.Context, command string) (string, error)
}

// CLI queries device facts over SSH CLI
type CLI struct {
	device     *device.Device
	opts       Options
	logger     *zap.SugaredLogger
	newSession func(legacy bool) (session, error)
	sess       session
}

// constructor for CLI connection, call Dial before use
func NewCLI(d *device.Device, opts Options, logger *zap.SugaredLogger) *CLI {
	c := &CLI{
		device: d,
		opts:   opts,
		logger: logger.With("device", d.Hostname),
	}
	c.newSession = c.netraspSession
	return c
}

func (c *CLI) netraspSession(legacy bool) (session, error) {
	if legacy {
		return netrasp.New(c.device.Hostname,
			netrasp.WithUsernamePassword(c.device.Login, c.device.Password),
			netrasp.WithDriver(c.device.OsTypeOrDefault()), netrasp.WithInsecureIgnoreHostKey(),
			netrasp.WithDialTimeout(c.opts.sshTimeout()),
			netrasp.WithSSHKeyExchange(c.opts.LegacyKeyExchange),
			netrasp.WithSSHCipher(c.opts.LegacyAlgorithm),
		)
	}
	return netrasp.New(c.device.Hostname,
		netrasp.WithUsernamePassword(c.device.Login, c.device.Password),
		netrasp.WithDriver(c.device.OsTypeOrDefault()), netrasp.WithInsecureIgnoreHostKey(),
		netrasp.WithDialTimeout(c.opts.sshTimeout()),
	)
}

// connects to device. In case of ssh ciphers mismatch one more attempt is done with legacy ciphers from config
func (c *CLI) Dial(ctx context.Context) error {
	c.logger.Info("Connecting to device...")

	err := c.dial(ctx, false)
	if errors.Is(err, ErrLegacyCiphers) && c.opts.LegacyKeyExchange != "" {
		c.logger.Warn("Need to lower SSH ciphers for the device, retrying...")
		err = c.dial(ctx, true)
	}
	if err != nil {
		c.logger.Warnw("unable to connect to device", "error", err)
		return err
	}
	c.logger.Info("Connected to device successfully")
	return nil
}

func (c *CLI) dial(ctx context.Context, legacy bool) error {
	s, err := c.newSession(legacy)
	if err != nil {
		return fmt.Errorf("unable to initialize device: %w", err)
	}
	if err := s.Dial(ctx); err != nil {
		return classifyDialError(err)
	}
	c.sess = s
	return nil
}

// runs show commands and parses device facts out of them
func (c *CLI) GetDeviceInfo(ctx context.Context) (map[string]any, error) {
	if c.sess == nil {
		return nil, ErrNotConnected
	}

	sysInfo, err := c.sess.Run(ctx, cmdSystemInfo)
	if err != nil {
		return nil, fmt.Errorf("unable to run command %q: %w", cmdSystemInfo, err)
	}

	// chassis type is also in system information, so partial facts are fine here
	chassis, chassisErr := c.sess.Run(ctx, cmdChassis)
	if chassisErr != nil {
		chassis = ""
	}

	facts := parseSystemInfo(sysInfo, chassis)
	if chassisErr != nil {
		addWarning(facts, fmt.Sprintf("command %q failed: %v", cmdChassis, chassisErr))
	}
	return facts, nil
}

func (c *CLI) Close(ctx context.Context) error {
	if c.sess == nil {
		return nil
	}
	err := c.sess.Close(ctx)
	c.sess = nil
	return err
}

func addWarning(facts map[string]any, msg string) {
	existing, _ := facts[deviceinfo.WarningsKey].([]string)
	facts[deviceinfo.WarningsKey] = append(existing, msg)
}
