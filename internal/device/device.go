package device

// describes entry in csv device file
type Device struct {
	Hostname      string         `csv:"hostname"`
	Login         string         `csv:"login"`
	Password      string         `csv:"password"`
	OsType        string         `csv:"osType"`
	Transport     string         `csv:"transport"`
	SnmpCommunity string         `csv:"snmpCommunity"`
	State         string         `csv:"-"`
	Warnings      []string       `csv:"-"`
	Facts         map[string]any `csv:"-"`
}

// transports a device can be queried over
const (
	TransportCLI  = "cli"
	TransportSNMP = "snmp"
)

// netrasp driver used when osType column is empty
const DefaultOsType = "sros"

// device run states, shown in summary table
const (
	Ok             = "Success"
	OkWithWarnings = "Success with warnings"
	Unreachable    = "Unreachable"
	Unknown        = "Unknown"
	SshAuthFailure = "SSH authentication failure"
	LegacyCiphers  = "SSH ciphers mismatch"
	QueryFailed    = "Query failed"
	BadTransport   = "Unsupported transport"
)

// returns transport with default applied
func (d *Device) TransportOrDefault() string {
	if d.Transport == "" {
		return TransportCLI
	}
	return d.Transport
}

// returns netrasp driver name with default applied
func (d *Device) OsTypeOrDefault() string {
	if d.OsType == "" {
		return DefaultOsType
	}
	return d.OsType
}
