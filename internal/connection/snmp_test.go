package connection

import (
	"context"
	"errors"
	"testing"

	"github.com/bondar-aleksandr/sros_device_info/internal/device"
	"github.com/bondar-aleksandr/sros_device_info/internal/deviceinfo"
	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGetter struct {
	packet *gosnmp.SnmpPacket
	err    error
	oids   []string
}

func (f *fakeGetter) Get(oids []string) (*gosnmp.SnmpPacket, error) {
	f.oids = oids
	return f.packet, f.err
}

func octet(name, value string) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{Name: name, Type: gosnmp.OctetString, Value: []byte(value)}
}

func newTestSNMP(g snmpGetter) *SNMP {
	s := NewSNMP(&device.Device{Hostname: "10.0.0.1"}, Options{}, zap.NewNop().Sugar())
	s.client = nil
	s.getter = g
	return s
}

func TestNewSNMPDefaults(t *testing.T) {
	s := NewSNMP(&device.Device{Hostname: "10.0.0.1"}, Options{SnmpTimeout: 3, SnmpRetries: 2}, zap.NewNop().Sugar())

	assert.Equal(t, "10.0.0.1", s.client.Target)
	assert.Equal(t, uint16(161), s.client.Port)
	assert.Equal(t, "public", s.client.Community)
	assert.Equal(t, gosnmp.Version2c, s.client.Version)
	assert.Equal(t, 2, s.client.Retries)

	s = NewSNMP(&device.Device{Hostname: "r1", SnmpCommunity: "s3cret"}, Options{SnmpPort: 1161}, zap.NewNop().Sugar())
	assert.Equal(t, "s3cret", s.client.Community)
	assert.Equal(t, uint16(1161), s.client.Port)
}

func TestSNMPGetDeviceInfo(t *testing.T) {
	g := &fakeGetter{packet: &gosnmp.SnmpPacket{
		Error: gosnmp.NoError,
		Variables: []gosnmp.SnmpPDU{
			octet(oidSysDescr, "TiMOS-B-19.5.R2 both/x86_64 Nokia 7750 SR Copyright (c) 2000-2019 Nokia."),
			{Name: oidSysObjectID, Type: gosnmp.ObjectIdentifier, Value: ".1.3.6.1.4.1.6527.1.3.17"},
			octet(oidSysName, "Berlin"),
		},
	}}
	s := newTestSNMP(g)

	facts, err := s.GetDeviceInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{oidSysDescr, oidSysObjectID, oidSysName}, g.oids)
	assert.Equal(t, "nokia.sros", facts[deviceinfo.KeyNetworkOS])
	assert.Equal(t, "Berlin", facts[deviceinfo.KeyHostname])
	assert.Equal(t, "B-19.5.R2", facts[deviceinfo.KeyVersion])
	assert.Equal(t, "7750 SR", facts[deviceinfo.KeyModel])
	assert.NotContains(t, facts, deviceinfo.KeyConfigMode)
	assert.Equal(t, []string{"configuration mode can't be determined over SNMP"}, facts[deviceinfo.WarningsKey])

	require.NoError(t, s.Close(context.Background()))
}

func TestSNMPForeignDevice(t *testing.T) {
	g := &fakeGetter{packet: &gosnmp.SnmpPacket{
		Variables: []gosnmp.SnmpPDU{
			octet(oidSysDescr, "Cisco IOS Software"),
			{Name: oidSysObjectID, Type: gosnmp.ObjectIdentifier, Value: ".1.3.6.1.4.1.9.1.1208"},
			{Name: oidSysName, Type: gosnmp.NoSuchObject},
		},
	}}

	facts, err := newTestSNMP(g).GetDeviceInfo(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, facts, deviceinfo.KeyHostname)
	assert.NotContains(t, facts, deviceinfo.KeyVersion)
	assert.Equal(t, []string{
		"configuration mode can't be determined over SNMP",
		"unable to determine system name",
		"unable to parse sysDescr",
		"sysObjectID .1.3.6.1.4.1.9.1.1208 is not a Nokia one",
	}, facts[deviceinfo.WarningsKey])
}

func TestSNMPErrors(t *testing.T) {
	upstream := errors.New("request timeout (after 1 retries)")
	_, err := newTestSNMP(&fakeGetter{err: upstream}).GetDeviceInfo(context.Background())
	assert.ErrorIs(t, err, upstream)

	_, err = newTestSNMP(&fakeGetter{packet: &gosnmp.SnmpPacket{Error: gosnmp.GenErr}}).GetDeviceInfo(context.Background())
	assert.Error(t, err)

	_, err = newTestSNMP(nil).GetDeviceInfo(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestOpenerUnsupportedTransport(t *testing.T) {
	open := NewOpener(Options{}, zap.NewNop().Sugar())
	_, err := open(context.Background(), &device.Device{Hostname: "r1", Transport: "netconf"})
	assert.ErrorIs(t, err, ErrUnsupportedTransport)
}
