package wireless

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor implements CommandExecutor for testing.
type mockExecutor struct {
	responses map[string][]byte
	errors    map[string]error
	calls     []string
}

func newMockExecutor() *mockExecutor {
	return &mockExecutor{
		responses: make(map[string][]byte),
		errors:    make(map[string]error),
		calls:     []string{},
	}
}

func (m *mockExecutor) Execute(name string, args ...string) ([]byte, error) {
	return m.ExecuteWithTimeout(0, name, args...)
}

func (m *mockExecutor) ExecuteWithTimeout(_ time.Duration, name string, args ...string) ([]byte, error) {
	key := name + " " + strings.Join(args, " ")
	m.calls = append(m.calls, key)

	if err, ok := m.errors[key]; ok {
		return nil, err
	}
	if resp, ok := m.responses[key]; ok {
		return resp, nil
	}
	return []byte{}, nil
}

func (m *mockExecutor) setResponse(cmd string, response string) {
	m.responses[cmd] = []byte(response)
}

func (m *mockExecutor) setError(cmd string, err error) {
	m.errors[cmd] = err
}

const testDevOutput = `phy#0
	Interface wlan0
		ifindex 3
		wdev 0x1
		addr dc:a6:32:12:ab:cd
		ssid HomeNet
		type managed
		channel 6 (2437 MHz), width: 20 MHz, center1: 2437 MHz
		txpower 31.00 dBm
phy#1
	Interface wlan1
		ifindex 5
		wdev 0x100000001
		addr 00:c0:ca:98:e1:4f
		type managed
`

const testListOutput = `Wiphy phy0
	valid interface combinations:
		 * #{ managed } <= 1, #{ AP, P2P-client, P2P-GO } <= 1, #{ P2P-device } <= 1,
		   total <= 3, #channels <= 1
Wiphy phy1
	valid interface combinations:
		 * #{ managed } <= 1, #{ P2P-device } <= 1,
		   total <= 2
`

func newTestService(mock *mockExecutor) *Service {
	s := NewService(Config{})
	s.SetExecutor(mock)
	s.linkState = func(name string) (string, bool, error) {
		return "", name == "wlan0", nil
	}
	return s
}

func TestNewService_Defaults(t *testing.T) {
	s := NewService(Config{})
	require.NotNil(t, s)
	assert.Equal(t, "iw", s.iwPath)
	assert.Equal(t, DefaultCommandTimeout, s.timeout)
	assert.Nil(t, s.Snapshot())
}

func TestDetect(t *testing.T) {
	mock := newMockExecutor()
	mock.setResponse("iw dev", testDevOutput)
	mock.setResponse("iw list", testListOutput)
	s := newTestService(mock)

	interfaces, err := s.Detect(context.Background())

	require.NoError(t, err)
	require.Len(t, interfaces, 2)

	wlan0 := interfaces[0]
	assert.Equal(t, "wlan0", wlan0.Name)
	assert.Equal(t, 0, wlan0.Phy)
	assert.Equal(t, "dc:a6:32:12:ab:cd", wlan0.MAC)
	assert.Equal(t, 6, wlan0.Channel)
	assert.Equal(t, 2437, wlan0.FrequencyMHz)
	assert.Equal(t, "HomeNet", wlan0.SSID)
	assert.True(t, wlan0.SupportsAPManaged)
	assert.True(t, wlan0.Up)

	wlan1 := interfaces[1]
	assert.Equal(t, "wlan1", wlan1.Name)
	assert.False(t, wlan1.SupportsAPManaged)
	assert.Equal(t, 0, wlan1.Channel)
	assert.False(t, wlan1.Up)
}

func TestDetect_NoInterfaces(t *testing.T) {
	mock := newMockExecutor()
	mock.setResponse("iw dev", "")
	s := newTestService(mock)

	_, err := s.Detect(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoInterfaceFound)
}

func TestDetect_IWDevFails(t *testing.T) {
	mock := newMockExecutor()
	mock.setError("iw dev", errors.New("exec: \"iw\": executable file not found in $PATH"))
	s := newTestService(mock)

	_, err := s.Detect(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoInterfaceFound)
}

func TestDetect_IWListFails(t *testing.T) {
	mock := newMockExecutor()
	mock.setResponse("iw dev", testDevOutput)
	mock.setError("iw list", errors.New("boom"))
	s := newTestService(mock)

	interfaces, err := s.Detect(context.Background())

	// Capability report failure is not a detection failure
	require.NoError(t, err)
	require.Len(t, interfaces, 2)
	assert.False(t, interfaces[0].SupportsAPManaged)
	assert.False(t, interfaces[1].SupportsAPManaged)
}

func TestDetect_LinkStateFailureDegrades(t *testing.T) {
	mock := newMockExecutor()
	mock.setResponse("iw dev", testDevOutput)
	mock.setResponse("iw list", testListOutput)
	s := newTestService(mock)
	s.linkState = func(string) (string, bool, error) {
		return "", false, errors.New("no such link")
	}

	interfaces, err := s.Detect(context.Background())

	require.NoError(t, err)
	assert.False(t, interfaces[0].Up)
	// MAC from iw dev survives even when netlink is unavailable
	assert.Equal(t, "dc:a6:32:12:ab:cd", interfaces[0].MAC)
}

func TestSnapshot(t *testing.T) {
	mock := newMockExecutor()
	mock.setResponse("iw dev", testDevOutput)
	mock.setResponse("iw list", testListOutput)
	s := newTestService(mock)

	assert.Nil(t, s.Snapshot())
	assert.True(t, s.LastScan().IsZero())

	_, err := s.Detect(context.Background())
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "wlan0", snap[0].Name)
	assert.False(t, s.LastScan().IsZero())
}

func TestChoose_AutoPicksFirstCapable(t *testing.T) {
	mock := newMockExecutor()
	mock.setResponse("iw dev", testDevOutput)
	mock.setResponse("iw list", testListOutput)
	s := newTestService(mock)

	ifc, err := s.Choose(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "wlan0", ifc.Name)
	assert.True(t, ifc.SupportsAPManaged)
}

func TestChoose_AutoNoCapableHardware(t *testing.T) {
	// Only phy1 (no AP combination) present
	mock := newMockExecutor()
	mock.setResponse("iw dev", "phy#1\n\tInterface wlan1\n\t\tifindex 5\n\t\ttype managed\n")
	mock.setResponse("iw list", "Wiphy phy1\n\tvalid interface combinations:\n\t\t * #{ managed } <= 1, total <= 1\n")
	s := newTestService(mock)

	_, err := s.Choose(context.Background(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCapableHardware)
}

func TestChoose_ByName(t *testing.T) {
	mock := newMockExecutor()
	mock.setResponse("iw dev", testDevOutput)
	mock.setResponse("iw list", testListOutput)
	s := newTestService(mock)

	// Named interface is returned even without AP+managed support; the
	// caller decides how to surface that.
	ifc, err := s.Choose(context.Background(), "wlan1")
	require.NoError(t, err)
	assert.Equal(t, "wlan1", ifc.Name)
	assert.False(t, ifc.SupportsAPManaged)

	_, err = s.Choose(context.Background(), "wlan9")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoInterfaceFound)
}
