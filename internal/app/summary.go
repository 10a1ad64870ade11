package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bondar-aleksandr/sros_device_info/internal/device"
	"github.com/bondar-aleksandr/sros_device_info/internal/deviceinfo"
	"github.com/olekukonko/tablewriter"
)

// renders summary table for all devices
func RenderSummary(w io.Writer, devices []*device.Device, now time.Time) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Device", "Transport", "OS", "Model", "Version", "State"})

	for _, d := range devices {
		info := d.Facts
		table.Append([]string{
			d.Hostname,
			d.TransportOrDefault(),
			factString(info, deviceinfo.KeyNetworkOS),
			factString(info, deviceinfo.KeyModel),
			factString(info, deviceinfo.KeyVersion),
			d.State,
		})
	}
	table.SetFooter([]string{"", "", "", "", "", now.Format(time.RFC822)})
	table.Render()
}

func factString(info map[string]any, key string) string {
	v, ok := info[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// writes summary to results file and returns it
func (a *App) WriteSummary(devices []*device.Device) (string, error) {
	a.Logger.Info("Writing app summary output...")
	tableString := &strings.Builder{}
	RenderSummary(tableString, devices, time.Now())

	resultsFile, err := os.OpenFile(filepath.Join(a.Config.Data.OutputFolder, a.Config.Data.ResultsData), os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		a.Logger.Errorf("Unable to create app summary output file because of: %q", err)
		return tableString.String(), err
	}
	defer resultsFile.Close()

	if _, err = resultsFile.WriteString(tableString.String()); err != nil {
		a.Logger.Errorf("Unable to write app summary because of: %q", err)
		return tableString.String(), err
	}
	a.Logger.Info("Writing app summary output done")
	return tableString.String(), nil
}
