package connection

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/bondar-aleksandr/sros_device_info/internal/deviceinfo"
)

// SR OS configuration modes as reported by "show system information"
const (
	ModeClassic      = "classic"
	ModeModelDriven  = "model-driven"
	ModeMixed        = "mixed"
	networkOSPrefix  = "nokia.sros"
	networkOSClassic = networkOSPrefix + ".classic"
	networkOSMD      = networkOSPrefix + ".md"
)

// this func splits "Key : Value" rows of SR OS show output into a map.
// First occurrence of a key wins, rows without colon are skipped.
func parseColonFields(output string) map[string]string {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		row := scanner.Text()
		key, value, found := strings.Cut(row, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := fields[key]; ok {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields
}

// builds device facts from "show system information" and "show chassis" outputs,
// chassis output may be empty. Facts which can't be found end up in warnings.
func parseSystemInfo(sysInfo, chassis string) map[string]any {
	facts := make(map[string]any)
	var warnings []string

	sys := parseColonFields(sysInfo)

	if name := sys["System Name"]; name != "" {
		facts[deviceinfo.KeyHostname] = name
	} else {
		warnings = append(warnings, "unable to determine system name")
	}

	if version := sys["System Version"]; version != "" {
		facts[deviceinfo.KeyVersion] = version
	} else {
		warnings = append(warnings, "unable to determine software version")
	}

	model := parseColonFields(chassis)["Type"]
	if model == "" {
		model = sys["System Type"]
	}
	if model != "" {
		facts[deviceinfo.KeyModel] = model
	} else {
		warnings = append(warnings, "unable to determine chassis type")
	}

	mode := sys["Configuration Mode Oper"]
	if mode == "" {
		mode = sys["Configuration Mode Cfg"]
	}
	if mode == "" {
		// releases before model-driven CLI don't report the mode at all
		mode = ModeClassic
	}
	facts[deviceinfo.KeyConfigMode] = mode

	switch mode {
	case ModeClassic:
		facts[deviceinfo.KeyNetworkOS] = networkOSClassic
	case ModeModelDriven:
		facts[deviceinfo.KeyNetworkOS] = networkOSMD
	case ModeMixed:
		facts[deviceinfo.KeyNetworkOS] = networkOSClassic
		warnings = append(warnings, "device runs in mixed configuration mode, classic CLI assumed")
	default:
		facts[deviceinfo.KeyNetworkOS] = networkOSPrefix
		warnings = append(warnings, "unknown configuration mode "+mode)
	}

	if len(warnings) > 0 {
		facts[deviceinfo.WarningsKey] = warnings
	}
	return facts
}

// TiMOS-B-19.5.R2 both/x86_64 Nokia 7750 SR Copyright (c) 2000-2019 Nokia.
var sysDescrRe = regexp.MustCompile(`^TiMOS-(\S+)\s+\S+\s+(?:Nokia|ALCATEL|Alcatel-Lucent)\s+(.+?)\s+Copyright`)

// this func extracts software version and model from SR OS sysDescr
func parseSysDescr(descr string) (version, model string, ok bool) {
	m := sysDescrRe.FindStringSubmatch(strings.TrimSpace(descr))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
