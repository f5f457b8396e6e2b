package hotspot

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idkspot/idkspot-go/internal/services/pubsub"
	"github.com/idkspot/idkspot-go/internal/services/stations"
	"github.com/idkspot/idkspot-go/internal/services/testutil"
	"github.com/idkspot/idkspot-go/internal/services/wireless"
)

// mockExecutor implements CommandExecutor for testing. Guarded by a
// mutex because Stop runs commands while tests watch the call list.
type mockExecutor struct {
	mu        sync.Mutex
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
	m.mu.Lock()
	m.calls = append(m.calls, key)
	err := m.errors[key]
	resp := m.responses[key]
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if resp != nil {
		return resp, nil
	}
	return []byte{}, nil
}

func (m *mockExecutor) setResponse(cmd string, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmd] = []byte(response)
}

func (m *mockExecutor) callList() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// fakeHandle is a scripted helper process.
type fakeHandle struct {
	pid      int
	output   chan string
	done     chan ExitStatus
	killed   chan struct{}
	exitOnce sync.Once
	killOnce sync.Once
}

func (h *fakeHandle) PID() int                { return h.pid }
func (h *fakeHandle) Output() <-chan string   { return h.output }
func (h *fakeHandle) Wait() <-chan ExitStatus { return h.done }

func (h *fakeHandle) Kill() error {
	h.killOnce.Do(func() { close(h.killed) })
	h.exit(-1)
	return nil
}

func (h *fakeHandle) emit(line string) { h.output <- line }

func (h *fakeHandle) exit(code int) {
	h.exitOnce.Do(func() {
		close(h.output)
		h.done <- ExitStatus{Code: code}
	})
}

func (h *fakeHandle) wasKilled() bool {
	select {
	case <-h.killed:
		return true
	default:
		return false
	}
}

// fakeRunner hands out scripted handles instead of spawning processes.
type fakeRunner struct {
	mu       sync.Mutex
	startErr error
	handles  []*fakeHandle
	commands []string
}

func (r *fakeRunner) Start(name string, args ...string) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.startErr != nil {
		return nil, r.startErr
	}
	h := &fakeHandle{
		pid:    40000 + len(r.handles),
		output: make(chan string, 32),
		done:   make(chan ExitStatus, 1),
		killed: make(chan struct{}),
	}
	r.handles = append(r.handles, h)
	r.commands = append(r.commands, name+" "+strings.Join(args, " "))
	return h, nil
}

func (r *fakeRunner) handleCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

func (r *fakeRunner) command(i int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commands[i]
}

// waitForHandle blocks until the n-th helper (1-based) has been spawned.
func (r *fakeRunner) waitForHandle(t *testing.T, n int) *fakeHandle {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		if len(r.handles) >= n {
			h := r.handles[n-1]
			r.mu.Unlock()
			return h
		}
		r.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("helper was never spawned")
	return nil
}

const testDevOutput = `phy#0
	Interface wlan0
		ifindex 3
		wdev 0x1
		addr dc:a6:32:12:ab:cd
		type managed
		channel 6 (2437 MHz), width: 20 MHz, center1: 2437 MHz
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

const incapableListOutput = `Wiphy phy0
	valid interface combinations:
		 * #{ managed } <= 1, total <= 1
Wiphy phy1
	valid interface combinations:
		 * #{ managed } <= 1, total <= 1
`

const testStationDump = `Station e2:11:22:33:44:55 (on wlan0)
	inactive time:	40 ms
	signal:  	-52 dBm
	connected time:	60 seconds
`

type fixture struct {
	svc          *Service
	runner       *fakeRunner
	exec         *mockExecutor
	wirelessExec *mockExecutor
	stationsExec *mockExecutor
	events       *pubsub.PubSub
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	db, cleanup := testutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	wirelessExec := newMockExecutor()
	wirelessExec.setResponse("iw dev", testDevOutput)
	wirelessExec.setResponse("iw list", testListOutput)
	wirelessSvc := wireless.NewService(wireless.Config{})
	wirelessSvc.SetExecutor(wirelessExec)

	stationsExec := newMockExecutor()
	stationsSvc := stations.NewService(stations.Config{
		LeaseFile: filepath.Join(t.TempDir(), "dnsmasq.leases"),
	})
	stationsSvc.SetExecutor(stationsExec)

	if opts.ElevatePath == "" {
		opts.ElevatePath = "pkexec"
	}
	if opts.StartTimeout == 0 {
		opts.StartTimeout = 2 * time.Second
	}
	if opts.StopGracePeriod == 0 {
		opts.StopGracePeriod = 150 * time.Millisecond
	}
	if opts.DevicePoll == 0 {
		opts.DevicePoll = time.Hour
	}

	events := pubsub.New()
	svc := NewService(opts, wirelessSvc, stationsSvc, db.SessionRepo, events)

	runner := &fakeRunner{}
	svc.SetRunner(runner)
	execMock := newMockExecutor()
	svc.SetExecutor(execMock)
	svc.gatewayAddr = func(string) (string, error) { return "192.168.12.1", nil }
	svc.subnetFor = func(string) (string, error) { return "192.168.12.0/24", nil }

	return &fixture{
		svc:          svc,
		runner:       runner,
		exec:         execMock,
		wirelessExec: wirelessExec,
		stationsExec: stationsExec,
		events:       events,
	}
}

type startResult struct {
	sess *Session
	err  error
}

func startAsync(f *fixture, cfg Config) chan startResult {
	done := make(chan startResult, 1)
	go func() {
		sess, err := f.svc.Start(context.Background(), cfg)
		done <- startResult{sess, err}
	}()
	return done
}

// startRunning brings a session all the way to Running.
func startRunning(t *testing.T, f *fixture) *fakeHandle {
	t.Helper()
	return startRunningSSID(t, f, "coffee-shop")
}

// startRunningSSID is startRunning with a caller-chosen network name, for
// tests that tell consecutive sessions apart by SSID.
func startRunningSSID(t *testing.T, f *fixture, ssid string) *fakeHandle {
	t.Helper()
	n := f.runner.handleCount()
	done := startAsync(f, Config{SSID: ssid, Passphrase: "pass12345"})
	h := f.runner.waitForHandle(t, n+1)
	h.emit("Config dir: /tmp/create_ap.wlan0.conf")
	h.emit("wlan0: AP-ENABLED")
	res := <-done
	require.NoError(t, res.err)
	require.NotNil(t, res.sess)
	require.Equal(t, StateRunning, res.sess.State)
	return h
}

func waitForCall(t *testing.T, m *mockExecutor, substr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, c := range m.callList() {
			if strings.Contains(c, substr) {
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("command %q was never executed", substr)
}

func TestStart_BecomesRunning(t *testing.T) {
	f := newFixture(t, Options{})

	done := startAsync(f, Config{SSID: "coffee-shop", Passphrase: "pass12345"})
	h := f.runner.waitForHandle(t, 1)

	assert.Equal(t, StateStarting, f.svc.Status())

	h.emit("Config dir: /tmp/create_ap.wlan0.conf")
	h.emit("wlan0: AP-ENABLED")

	res := <-done
	require.NoError(t, res.err)
	require.NotNil(t, res.sess)
	assert.Equal(t, StateRunning, res.sess.State)
	assert.Equal(t, "coffee-shop", res.sess.SSID)
	assert.Equal(t, "wlan0", res.sess.Interface)
	// Channel inherited from the interface's current channel
	assert.Equal(t, 6, res.sess.Channel)
	assert.Equal(t, "192.168.12.1", res.sess.Gateway)
	assert.Equal(t, 40000, res.sess.PID)
	assert.NotEmpty(t, res.sess.ID)
	assert.Equal(t, StateRunning, f.svc.Status())

	// Helper invoked through the elevation wrapper
	assert.Equal(t, "pkexec create_ap -c 6 wlan0 wlan0 coffee-shop pass12345", f.runner.command(0))

	// Session row reflects the running state
	sessions, err := f.svc.Sessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, string(StateRunning), sessions[0].State)
}

func TestStart_ValidationErrors(t *testing.T) {
	f := newFixture(t, Options{})

	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"empty ssid", Config{Passphrase: "pass12345"}, "ssid"},
		{"ssid too long", Config{SSID: strings.Repeat("x", 33), Passphrase: "pass12345"}, "ssid"},
		{"passphrase too short", Config{SSID: "net", Passphrase: "short"}, "passphrase"},
		{"passphrase too long", Config{SSID: "net", Passphrase: strings.Repeat("p", 64)}, "passphrase"},
		{"negative channel", Config{SSID: "net", Passphrase: "pass12345", Channel: -1}, "channel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Start(context.Background(), tt.cfg)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	// No side effects: nothing spawned, state untouched
	assert.Equal(t, 0, f.runner.handleCount())
	assert.Equal(t, StateStopped, f.svc.Status())
	assert.Nil(t, f.svc.Snapshot())
}

func TestStart_NoCapableHardware(t *testing.T) {
	f := newFixture(t, Options{})
	f.wirelessExec.setResponse("iw list", incapableListOutput)

	_, err := f.svc.Start(context.Background(), Config{SSID: "net", Passphrase: "pass12345"})

	require.Error(t, err)
	assert.ErrorIs(t, err, wireless.ErrNoCapableHardware)
	assert.Equal(t, 0, f.runner.handleCount())
}

func TestStart_NamedInterfaceNotCapable(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.svc.Start(context.Background(), Config{
		SSID: "net", Passphrase: "pass12345", Interface: "wlan1",
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "interface", vErr.Field)
	assert.ErrorIs(t, err, wireless.ErrNoCapableHardware)
	assert.Equal(t, 0, f.runner.handleCount())
}

func TestStart_AlreadyActive(t *testing.T) {
	f := newFixture(t, Options{})
	startRunning(t, f)

	first := f.svc.Snapshot()
	_, err := f.svc.Start(context.Background(), Config{SSID: "other", Passphrase: "pass12345"})

	assert.ErrorIs(t, err, ErrAlreadyActive)
	assert.Equal(t, 1, f.runner.handleCount())
	// Existing session untouched
	assert.Equal(t, first.ID, f.svc.Snapshot().ID)
	assert.Equal(t, StateRunning, f.svc.Status())
}

func TestStart_HelperExitsEarly(t *testing.T) {
	f := newFixture(t, Options{})

	done := startAsync(f, Config{SSID: "net", Passphrase: "pass12345"})
	h := f.runner.waitForHandle(t, 1)
	h.emit("ERROR: Your adapter does not support AP (master) mode")
	h.exit(1)

	res := <-done
	require.Error(t, res.err)

	var sErr *StartError
	require.ErrorAs(t, res.err, &sErr)
	assert.Equal(t, 1, sErr.ExitCode)
	assert.Contains(t, sErr.Output, "does not support AP")

	assert.Equal(t, StateFailed, f.svc.Status())
	snap := f.svc.Snapshot()
	require.NotNil(t, snap)
	assert.NotEmpty(t, snap.Error)
	require.NotNil(t, snap.ExitCode)
	assert.Equal(t, 1, *snap.ExitCode)

	sessions, err := f.svc.Sessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, string(StateFailed), sessions[0].State)
	require.NotNil(t, sessions[0].Error)
}

func TestStart_PermissionDenied(t *testing.T) {
	for _, code := range []int{126, 127} {
		f := newFixture(t, Options{})

		done := startAsync(f, Config{SSID: "net", Passphrase: "pass12345"})
		h := f.runner.waitForHandle(t, 1)
		h.exit(code)

		res := <-done
		require.Error(t, res.err)
		assert.ErrorIs(t, res.err, ErrPermissionDenied)
		assert.Equal(t, StateFailed, f.svc.Status())
	}
}

func TestStart_Timeout(t *testing.T) {
	f := newFixture(t, Options{StartTimeout: 100 * time.Millisecond})

	done := startAsync(f, Config{SSID: "net", Passphrase: "pass12345"})
	h := f.runner.waitForHandle(t, 1)
	// No readiness marker, ever

	res := <-done
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, ErrStartTimeout)
	assert.Equal(t, StateFailed, f.svc.Status())
	assert.True(t, h.wasKilled())
}

func TestStart_SpawnFailure(t *testing.T) {
	f := newFixture(t, Options{})
	f.runner.startErr = errors.New(`exec: "pkexec": executable file not found in $PATH`)

	_, err := f.svc.Start(context.Background(), Config{SSID: "net", Passphrase: "pass12345"})

	var sErr *StartError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, StateFailed, f.svc.Status())

	sessions, dbErr := f.svc.Sessions(context.Background(), 10)
	require.NoError(t, dbErr)
	require.Len(t, sessions, 1)
	assert.Equal(t, string(StateFailed), sessions[0].State)
}

func TestStart_ContextCanceled(t *testing.T) {
	f := newFixture(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan startResult, 1)
	go func() {
		sess, err := f.svc.Start(ctx, Config{SSID: "net", Passphrase: "pass12345"})
		done <- startResult{sess, err}
	}()
	h := f.runner.waitForHandle(t, 1)
	cancel()

	res := <-done
	assert.ErrorIs(t, res.err, context.Canceled)

	// The session keeps starting in the background
	h.emit("wlan0: AP-ENABLED")
	require.Eventually(t, func() bool {
		return f.svc.Status() == StateRunning
	}, 2*time.Second, 10*time.Millisecond)

	h.exit(0)
}

func TestStop_Idempotent(t *testing.T) {
	f := newFixture(t, Options{})

	require.NoError(t, f.svc.Stop(context.Background()))
	require.NoError(t, f.svc.Stop(context.Background()))
	assert.Equal(t, StateStopped, f.svc.Status())
}

func TestStop_Graceful(t *testing.T) {
	f := newFixture(t, Options{StopGracePeriod: 5 * time.Second})
	h := startRunning(t, f)

	stopDone := make(chan error, 1)
	go func() { stopDone <- f.svc.Stop(context.Background()) }()

	// create_ap tears itself down once asked
	waitForCall(t, f.exec, "create_ap --stop wlan0")
	h.exit(0)

	require.NoError(t, <-stopDone)
	assert.Equal(t, StateStopped, f.svc.Status())
	assert.False(t, h.wasKilled())

	snap := f.svc.Snapshot()
	require.NotNil(t, snap.StoppedAt)
	require.NotNil(t, snap.ExitCode)
	assert.Equal(t, 0, *snap.ExitCode)

	calls := f.exec.callList()
	require.NotEmpty(t, calls)
	assert.Equal(t, "pkexec create_ap --stop wlan0", calls[0])

	sessions, err := f.svc.Sessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, string(StateStopped), sessions[0].State)
	assert.NotNil(t, sessions[0].StoppedAt)
}

func TestStop_ForcefulAfterGrace(t *testing.T) {
	f := newFixture(t, Options{StopGracePeriod: 100 * time.Millisecond})
	h := startRunning(t, f)

	// Helper ignores create_ap --stop; the grace period expires and the
	// process group is killed.
	err := f.svc.Stop(context.Background())

	require.NoError(t, err)
	assert.True(t, h.wasKilled())
	assert.Equal(t, StateStopped, f.svc.Status())
}

func TestStop_ClearsFailed(t *testing.T) {
	f := newFixture(t, Options{})

	done := startAsync(f, Config{SSID: "net", Passphrase: "pass12345"})
	h := f.runner.waitForHandle(t, 1)
	h.exit(1)
	res := <-done
	require.Error(t, res.err)
	require.Equal(t, StateFailed, f.svc.Status())

	require.NoError(t, f.svc.Stop(context.Background()))
	assert.Equal(t, StateStopped, f.svc.Status())

	// A fresh start works after the failure is cleared
	startRunning(t, f)
	assert.Equal(t, 2, f.runner.handleCount())
}

func TestStop_DuringStarting(t *testing.T) {
	f := newFixture(t, Options{StopGracePeriod: 5 * time.Second})

	done := startAsync(f, Config{SSID: "net", Passphrase: "pass12345"})
	h := f.runner.waitForHandle(t, 1)

	stopDone := make(chan error, 1)
	go func() { stopDone <- f.svc.Stop(context.Background()) }()

	waitForCall(t, f.exec, "create_ap --stop wlan0")
	h.exit(0)

	require.NoError(t, <-stopDone)
	assert.Equal(t, StateStopped, f.svc.Status())

	// The interrupted Start reports the stop, not success
	res := <-done
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "stopped before it became ready")
}

func TestUnexpectedExit(t *testing.T) {
	f := newFixture(t, Options{})
	h := startRunning(t, f)

	h.emit("hostapd crashed")
	h.exit(1)

	require.Eventually(t, func() bool {
		return f.svc.Status() == StateFailed
	}, 2*time.Second, 10*time.Millisecond)

	snap := f.svc.Snapshot()
	assert.Contains(t, snap.Error, "unexpectedly")
	require.NotNil(t, snap.ExitCode)
	assert.Equal(t, 1, *snap.ExitCode)

	// Never restarted
	assert.Equal(t, 1, f.runner.handleCount())

	require.Eventually(t, func() bool {
		sessions, err := f.svc.Sessions(context.Background(), 10)
		return err == nil && len(sessions) == 1 && sessions[0].State == string(StateFailed)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConnectedDevices_RequiresRunning(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.svc.ConnectedDevices(context.Background())
	assert.ErrorIs(t, err, ErrInvalidState)

	h := startRunning(t, f)
	f.stationsExec.setResponse("iw dev wlan0 station dump", testStationDump)

	devices, err := f.svc.ConnectedDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "e2:11:22:33:44:55", devices[0].MAC)

	h.exit(0)
}

func TestConnectedDevices_AfterFailure(t *testing.T) {
	f := newFixture(t, Options{})
	h := startRunning(t, f)

	h.exit(1)
	require.Eventually(t, func() bool {
		return f.svc.Status() == StateFailed
	}, 2*time.Second, 10*time.Millisecond)

	_, err := f.svc.ConnectedDevices(context.Background())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestShutdown_TerminatesHelper(t *testing.T) {
	f := newFixture(t, Options{StopGracePeriod: 100 * time.Millisecond})
	h := startRunning(t, f)

	require.NoError(t, f.svc.Shutdown(context.Background()))
	assert.Equal(t, StateStopped, f.svc.Status())
	assert.True(t, h.wasKilled())
}

func TestShutdown_NoSession(t *testing.T) {
	f := newFixture(t, Options{})
	require.NoError(t, f.svc.Shutdown(context.Background()))
}

func TestSessionStateEvents(t *testing.T) {
	f := newFixture(t, Options{StopGracePeriod: 100 * time.Millisecond})
	sub := f.events.Subscribe(pubsub.TopicSessionState, "", 16)
	defer f.events.Unsubscribe(sub)

	startRunning(t, f)
	require.NoError(t, f.svc.Stop(context.Background()))

	var states []SessionState
	timeout := time.After(3 * time.Second)
	for len(states) < 4 {
		select {
		case msg := <-sub.Channel:
			sess, ok := msg.(*Session)
			require.True(t, ok)
			states = append(states, sess.State)
		case <-timeout:
			t.Fatalf("timed out after states %v", states)
		}
	}

	assert.Equal(t, []SessionState{StateStarting, StateRunning, StateStopping, StateStopped}, states)
}

func TestHelperOutputEvents(t *testing.T) {
	f := newFixture(t, Options{})
	sub := f.events.Subscribe(pubsub.TopicHelperOutput, "", 16)
	defer f.events.Unsubscribe(sub)

	h := startRunning(t, f)

	msg := <-sub.Channel
	line, ok := msg.(HelperOutput)
	require.True(t, ok)
	assert.Equal(t, "Config dir: /tmp/create_ap.wlan0.conf", line.Line)
	assert.NotEmpty(t, line.SessionID)

	h.exit(0)
}

func TestStartStopStart_FreshSession(t *testing.T) {
	f := newFixture(t, Options{StopGracePeriod: 100 * time.Millisecond})
	firstSSID := testutil.UniqueSSID("net")
	secondSSID := testutil.UniqueSSID("net")

	startRunningSSID(t, f, firstSSID)
	first := f.svc.Snapshot()
	require.NoError(t, f.svc.Stop(context.Background()))

	startRunningSSID(t, f, secondSSID)
	second := f.svc.Snapshot()

	assert.Equal(t, StateRunning, second.State)
	assert.NotEqual(t, first.ID, second.ID)
	// No config bleed from the previous session
	assert.Equal(t, firstSSID, first.SSID)
	assert.Equal(t, secondSSID, second.SSID)
	assert.False(t, second.StartedAt.Before(first.StartedAt))
	assert.Equal(t, 2, f.runner.handleCount())
}

func TestSessionHistoryOrder(t *testing.T) {
	f := newFixture(t, Options{StopGracePeriod: 100 * time.Millisecond})
	firstSSID := testutil.UniqueSSID("net")
	secondSSID := testutil.UniqueSSID("net")

	startRunningSSID(t, f, firstSSID)
	require.NoError(t, f.svc.Stop(context.Background()))

	startRunningSSID(t, f, secondSSID)
	require.NoError(t, f.svc.Stop(context.Background()))

	sessions, err := f.svc.Sessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	// Newest first
	assert.Equal(t, secondSSID, sessions[0].SSID)
	assert.Equal(t, firstSSID, sessions[1].SSID)
	assert.False(t, sessions[0].StartedAt.Before(sessions[1].StartedAt))
}
