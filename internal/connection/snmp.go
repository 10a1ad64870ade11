package connection

import (
	"context"
	"fmt"
	"strings"

	"github.com/bondar-aleksandr/sros_device_info/internal/device"
	"github.com/bondar-aleksandr/sros_device_info/internal/deviceinfo"
	"github.com/gosnmp/gosnmp"
	"go.uber.org/zap"
)

const (
	oidSysDescr    = ".1.3.6.1.2.1.1.1.0"
	oidSysObjectID = ".1.3.6.1.2.1.1.2.0"
	oidSysName     = ".1.3.6.1.2.1.1.5.0"

	// Nokia (formerly Alcatel-Lucent) enterprise number
	oidNokiaEnterprise = ".1.3.6.1.4.1.6527."

	defaultSnmpPort      = 161
	defaultSnmpCommunity = "public"
)

type snmpGetter interface {
	Get(oids []string) (*gosnmp.SnmpPacket, error)
}

// SNMP queries device facts over SNMP v2c. Configuration mode is not available this way.
type SNMP struct {
	device *device.Device
	logger *zap.SugaredLogger
	client *gosnmp.GoSNMP
	getter snmpGetter
}

func NewSNMP(d *device.Device, opts Options, logger *zap.SugaredLogger) *SNMP {
	community := d.SnmpCommunity
	if community == "" {
		community = defaultSnmpCommunity
	}
	port := opts.SnmpPort
	if port == 0 {
		port = defaultSnmpPort
	}
	client := &gosnmp.GoSNMP{
		Target:             d.Hostname,
		Port:               port,
		Community:          community,
		Version:            gosnmp.Version2c,
		Timeout:            opts.snmpTimeout(),
		Retries:            opts.SnmpRetries,
		MaxOids:            gosnmp.MaxOids,
		ExponentialTimeout: true,
	}
	return &SNMP{
		device: d,
		logger: logger.With("device", d.Hostname),
		client: client,
	}
}

func (s *SNMP) Dial(ctx context.Context) error {
	s.logger.Info("Opening SNMP session...")
	s.client.Context = ctx
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	s.getter = s.client
	return nil
}

func (s *SNMP) GetDeviceInfo(ctx context.Context) (map[string]any, error) {
	if s.getter == nil {
		return nil, ErrNotConnected
	}
	if s.client != nil {
		s.client.Context = ctx
	}

	result, err := s.getter.Get([]string{oidSysDescr, oidSysObjectID, oidSysName})
	if err != nil {
		return nil, fmt.Errorf("SNMP Get failed: %w", err)
	}
	if result.Error != gosnmp.NoError {
		return nil, fmt.Errorf("SNMP error: %s", result.Error)
	}
	return snmpFacts(result.Variables), nil
}

// this func builds device facts from sysDescr, sysObjectID and sysName variables
func snmpFacts(vars []gosnmp.SnmpPDU) map[string]any {
	facts := map[string]any{
		deviceinfo.KeyNetworkOS: networkOSPrefix,
	}
	warnings := []string{"configuration mode can't be determined over SNMP"}

	var descr, objectID string
	for _, v := range vars {
		if v.Type == gosnmp.NoSuchObject || v.Type == gosnmp.NoSuchInstance {
			continue
		}
		switch v.Name {
		case oidSysDescr:
			if v.Type == gosnmp.OctetString {
				descr = string(v.Value.([]byte))
			}
		case oidSysObjectID:
			if v.Type == gosnmp.ObjectIdentifier {
				objectID = v.Value.(string)
			}
		case oidSysName:
			if v.Type == gosnmp.OctetString {
				if name := string(v.Value.([]byte)); name != "" {
					facts[deviceinfo.KeyHostname] = name
				}
			}
		}
	}

	if _, ok := facts[deviceinfo.KeyHostname]; !ok {
		warnings = append(warnings, "unable to determine system name")
	}
	if version, model, ok := parseSysDescr(descr); ok {
		facts[deviceinfo.KeyVersion] = version
		facts[deviceinfo.KeyModel] = model
	} else {
		warnings = append(warnings, "unable to parse sysDescr")
	}
	if objectID != "" && !strings.HasPrefix(objectID, oidNokiaEnterprise) {
		warnings = append(warnings, "sysObjectID "+objectID+" is not a Nokia one")
	}

	facts[deviceinfo.WarningsKey] = warnings
	return facts
}

func (s *SNMP) Close(_ context.Context) error {
	s.getter = nil
	if s.client == nil || s.client.Conn == nil {
		return nil
	}
	return s.client.Conn.Close()
}
