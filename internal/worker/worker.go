package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bondar-aleksandr/sros_device_info/internal/app"
	"github.com/bondar-aleksandr/sros_device_info/internal/connection"
	"github.com/bondar-aleksandr/sros_device_info/internal/device"
	"github.com/bondar-aleksandr/sros_device_info/internal/deviceinfo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// per-device result as stored to output folder
type Report struct {
	Host     string
	Changed  bool
	Output   deviceinfo.Info
	Warnings []string
	Err      error
}

// envelope written to file: {"changed", "output", "warnings"} on success, {"failed", "msg"} on failure
func (r *Report) envelope() map[string]any {
	env := map[string]any{
		"host":    r.Host,
		"changed": r.Changed,
	}
	if r.Err != nil {
		env["failed"] = true
		env["msg"] = r.Err.Error()
	} else {
		env["output"] = map[string]any(r.Output)
	}
	if len(r.Warnings) > 0 {
		env["warnings"] = r.Warnings
	}
	return env
}

// type describes worker, which is responsible for gathering data from device and storing the data
type worker struct {
	device   *device.Device
	globalWg *sync.WaitGroup
	ctx      context.Context
	app      *app.App //pointer to parent app
	open     connection.Opener
	logger   *zap.SugaredLogger
}

// constructor for worker
func NewWorker(ctx context.Context, d *device.Device, wg *sync.WaitGroup, a *app.App, open connection.Opener) *worker {
	return &worker{
		ctx:      ctx,
		device:   d,
		globalWg: wg,
		app:      a,
		open:     open,
		logger:   a.Logger.With("device", d.Hostname),
	}
}

// starts worker per device and waits for all of them
func RunAll(ctx context.Context, a *app.App, devices []*device.Device, open connection.Opener) {
	var wg sync.WaitGroup
	wg.Add(len(devices))
	for _, d := range devices {
		w := NewWorker(ctx, d, &wg, a, open)
		go w.Run()
	}
	wg.Wait()
}

// main process for worker
func (w *worker) Run() {
	defer w.globalWg.Done()

	report := w.collect(w.ctx)
	if err := w.storeOutput(report); err != nil {
		w.logger.Errorw("Unable to store device output", "error", err)
	}
}

// this func opens connection to device and retrieves device info
func (w *worker) collect(ctx context.Context) *Report {
	report := &Report{Host: w.device.Hostname}

	conn, err := w.open(ctx, w.device)
	if err != nil {
		w.device.State = stateFromError(err)
		w.logger.Warnw("unable to connect to device", "error", err)
		report.Err = err
		return report
	}
	defer func() {
		if err := conn.Close(ctx); err != nil {
			w.logger.Debugw("unable to close connection", "error", err)
		}
	}()

	w.logger.Info("Retrieving device info...")
	res, err := deviceinfo.Retrieve(ctx, conn, deviceinfo.WarnFunc(w.warn))
	report.Warnings = w.device.Warnings
	if err != nil {
		w.device.State = device.QueryFailed
		w.logger.Errorw("Unable to retrieve device info", "error", err)
		report.Err = err
		return report
	}

	report.Changed = res.Changed
	report.Output = res.Output
	w.device.Facts = res.Output
	if len(w.device.Warnings) > 0 {
		w.device.State = device.OkWithWarnings
	} else {
		w.device.State = device.Ok
	}
	w.logger.Infow("Retrieved device info successfully",
		"network_os", res.Output[deviceinfo.KeyNetworkOS],
		"version", res.Output[deviceinfo.KeyVersion],
	)
	return report
}

func (w *worker) warn(msg string) {
	w.logger.Warn(msg)
	w.device.Warnings = append(w.device.Warnings, msg)
}

// maps connection errors to device state
func stateFromError(err error) string {
	switch {
	case errors.Is(err, connection.ErrAuthentication):
		return device.SshAuthFailure
	case errors.Is(err, connection.ErrLegacyCiphers):
		return device.LegacyCiphers
	case errors.Is(err, connection.ErrUnreachable):
		return device.Unreachable
	case errors.Is(err, connection.ErrUnsupportedTransport):
		return device.BadTransport
	default:
		return device.Unknown
	}
}

// this func stores device report to file in configured format
func (w *worker) storeOutput(r *Report) error {
	w.logger.Info("Storing device data to file...")

	format := w.app.Config.Data.OutputFormat
	data, err := marshalReport(r, format)
	if err != nil {
		return err
	}

	name := filepath.Join(w.app.Config.Data.OutputFolder, w.device.Hostname+"_deviceInfo."+format)
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("unable to write output for device to file %q: %w", name, err)
	}
	w.logger.Infow("Stored device data to file successfully", "file", name)
	return nil
}

func marshalReport(r *Report, format string) ([]byte, error) {
	switch format {
	case app.FormatYAML:
		return yaml.Marshal(r.envelope())
	case app.FormatJSON, "":
		data, err := json.MarshalIndent(r.envelope(), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
