package device

import (
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := &Device{Hostname: "r1"}
	assert.Equal(t, TransportCLI, d.TransportOrDefault())
	assert.Equal(t, DefaultOsType, d.OsTypeOrDefault())

	d = &Device{Hostname: "r1", Transport: TransportSNMP, OsType: "sros_md"}
	assert.Equal(t, TransportSNMP, d.TransportOrDefault())
	assert.Equal(t, "sros_md", d.OsTypeOrDefault())
}

func TestUnmarshalInventory(t *testing.T) {
	data := "hostname,login,password,osType,transport,snmpCommunity\n" +
		"10.0.0.1,admin,secret,sros,cli,\n" +
		"10.0.0.2,,,,snmp,public\n"

	var devices []*Device
	require.NoError(t, gocsv.UnmarshalString(data, &devices))
	require.Len(t, devices, 2)

	assert.Equal(t, "10.0.0.1", devices[0].Hostname)
	assert.Equal(t, "secret", devices[0].Password)
	assert.Equal(t, TransportCLI, devices[0].TransportOrDefault())
	assert.Equal(t, "public", devices[1].SnmpCommunity)
	assert.Equal(t, TransportSNMP, devices[1].TransportOrDefault())
	assert.Empty(t, devices[1].State)
}

func TestMarshalSkipsRuntimeFields(t *testing.T) {
	devices := []*Device{{Hostname: "r1", State: Ok, Warnings: []string{"w"}}}
	out, err := gocsv.MarshalString(&devices)
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, Ok))
}
