package hotspot

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lucsky/cuid"
	"github.com/sirupsen/logrus"

	"github.com/idkspot/idkspot-go/internal/database/models"
	"github.com/idkspot/idkspot-go/internal/database/repositories"
	"github.com/idkspot/idkspot-go/internal/services/network"
	"github.com/idkspot/idkspot-go/internal/services/pubsub"
	"github.com/idkspot/idkspot-go/internal/services/stations"
	"github.com/idkspot/idkspot-go/internal/services/wireless"
)

var logger = logrus.WithField("module", "hotspot")

// readinessMarker is the hostapd line create_ap forwards once the AP
// accepts associations.
const readinessMarker = "AP-ENABLED"

const (
	DefaultStartTimeout    = 30 * time.Second
	DefaultStopGracePeriod = 10 * time.Second
	DefaultCommandTimeout  = 10 * time.Second
	DefaultDevicePoll      = 10 * time.Second
	DefaultHistoryLimit    = 200

	// killExitWait bounds the wait for an exit report after SIGKILL.
	killExitWait = 3 * time.Second

	// maxTailLines bounds the helper output kept for error reporting.
	maxTailLines = 50
)

// Service supervises a single create_ap session. All session state
// lives behind one mutex; a monitor goroutine per session holds the
// blocking wait so callers never block on subprocess I/O.
type Service struct {
	mu       sync.RWMutex
	session  *Session
	handle   Handle
	tail     []string
	ended    chan struct{}
	startErr error

	opts     Options
	wireless *wireless.Service
	stations *stations.Service
	repo     *repositories.SessionRepository
	events   *pubsub.PubSub

	// Process runner and command executor (for testing)
	runner   Runner
	executor CommandExecutor
	// Gateway address and subnet readers (for testing)
	gatewayAddr func(iface string) (string, error)
	subnetFor   func(iface string) (string, error)
}

// realExecutor implements CommandExecutor using actual shell commands.
type realExecutor struct{}

func (e *realExecutor) Execute(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

func (e *realExecutor) ExecuteWithTimeout(timeout time.Duration, name string, args ...string) ([]byte, error) {
	if timeout <= 0 {
		return e.Execute(name, args...)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Output()
}

// NewService creates the hotspot controller.
func NewService(opts Options, wirelessSvc *wireless.Service, stationsSvc *stations.Service, repo *repositories.SessionRepository, events *pubsub.PubSub) *Service {
	if opts.CreateAPPath == "" {
		opts.CreateAPPath = "create_ap"
	}
	if opts.StartTimeout <= 0 {
		opts.StartTimeout = DefaultStartTimeout
	}
	if opts.StopGracePeriod <= 0 {
		opts.StopGracePeriod = DefaultStopGracePeriod
	}
	if opts.CommandTimeout <= 0 {
		opts.CommandTimeout = DefaultCommandTimeout
	}
	if opts.DevicePoll <= 0 {
		opts.DevicePoll = DefaultDevicePoll
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	return &Service{
		opts:        opts,
		wireless:    wirelessSvc,
		stations:    stationsSvc,
		repo:        repo,
		events:      events,
		runner:      &execRunner{},
		executor:    &realExecutor{},
		gatewayAddr: network.InterfaceIPv4,
		subnetFor:   network.SubnetFor,
	}
}

// SetRunner replaces the process runner (for testing).
func (s *Service) SetRunner(r Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runner = r
}

// SetExecutor replaces the command executor (for testing).
func (s *Service) SetExecutor(executor CommandExecutor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executor = executor
}

// SetAddressReaders replaces the gateway and subnet readers (for testing).
func (s *Service) SetAddressReaders(gateway, subnet func(iface string) (string, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gatewayAddr = gateway
	s.subnetFor = subnet
}

// Start validates cfg, spawns the privileged helper and blocks until
// the session reaches Running or Failed, or ctx is done. On a done
// context the session keeps starting in the background and remains
// observable through Status and the event stream.
//
// Validation failures return *ValidationError with no side effects. A
// second Start while a session is active returns ErrAlreadyActive and
// leaves the existing session untouched.
func (s *Service) Start(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.Interface == "" {
		cfg.Interface = s.opts.DefaultInterface
	}
	if cfg.Channel == 0 {
		cfg.Channel = s.opts.DefaultChannel
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	// Cheap pre-check so hardware detection is skipped while a session
	// is live.
	if s.Status().Active() {
		return nil, ErrAlreadyActive
	}

	iface, err := s.wireless.Choose(ctx, cfg.Interface)
	if err != nil {
		return nil, err
	}
	if !iface.SupportsAPManaged {
		return nil, &ValidationError{
			Field:   "interface",
			Message: fmt.Sprintf("%s cannot run AP and managed mode at the same time", iface.Name),
			Err:     wireless.ErrNoCapableHardware,
		}
	}
	cfg.Interface = iface.Name
	if cfg.Channel == 0 {
		cfg.Channel = iface.Channel
	}

	name, args := s.helperCommand(cfg)

	s.mu.Lock()
	if s.session != nil && s.session.State.Active() {
		s.mu.Unlock()
		return nil, ErrAlreadyActive
	}
	sess := &Session{
		ID:        cuid.New(),
		SSID:      cfg.SSID,
		Interface: cfg.Interface,
		Channel:   cfg.Channel,
		State:     StateStarting,
		StartedAt: time.Now(),
	}
	s.session = sess
	s.tail = nil
	s.startErr = nil
	ready := make(chan struct{})
	ended := make(chan struct{})
	s.ended = ended

	logger.WithFields(logrus.Fields{
		"session":   sess.ID,
		"ssid":      cfg.SSID,
		"interface": cfg.Interface,
		"channel":   cfg.Channel,
	}).Info("Starting hotspot")

	handle, err := s.runner.Start(name, args...)
	if err != nil {
		now := time.Now()
		sess.State = StateFailed
		sess.StoppedAt = &now
		sess.Error = err.Error()
		startErr := &StartError{Err: err, ExitCode: -1}
		s.startErr = startErr
		snap := s.snapshotLocked()
		close(ended)
		s.mu.Unlock()

		s.persistCreate(snap)
		s.publishSession(snap)
		return nil, startErr
	}
	s.handle = handle
	sess.PID = handle.PID()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persistCreate(snap)
	s.publishSession(snap)

	go s.monitor(sess, handle, ready, ended)

	select {
	case <-ready:
		return s.Snapshot(), nil
	case <-ended:
		s.mu.RLock()
		startErr := s.startErr
		s.mu.RUnlock()
		if startErr == nil {
			startErr = &StartError{Err: errors.New("hotspot stopped before it became ready"), ExitCode: -1}
		}
		return nil, startErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop tears the active session down, graceful first and forceful
// after the grace period. Idempotent when already Stopped; clears a
// Failed session back to Stopped so the next Start begins clean.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.session == nil || s.session.State == StateStopped {
		s.mu.Unlock()
		return nil
	}
	if s.session.State == StateFailed {
		// History keeps the FAILED row; only the in-memory state resets.
		s.session.State = StateStopped
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.publishSession(snap)
		return nil
	}
	if s.session.State == StateStopping {
		ended := s.ended
		s.mu.Unlock()
		select {
		case <-ended:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// Starting or Running
	s.session.State = StateStopping
	handle := s.handle
	ended := s.ended
	executor := s.executor
	snap := s.snapshotLocked()
	s.mu.Unlock()

	logger.WithFields(logrus.Fields{
		"session":   snap.ID,
		"interface": snap.Interface,
	}).Info("Stopping hotspot")
	s.persistState(snap)
	s.publishSession(snap)

	// Graceful: create_ap tears down its own hostapd and dnsmasq.
	name, args := s.stopCommand(snap.Interface)
	if _, err := executor.ExecuteWithTimeout(s.opts.CommandTimeout, name, args...); err != nil {
		logger.WithError(err).Warn("create_ap --stop failed")
	}

	select {
	case <-ended:
		return nil
	case <-ctx.Done():
		// Caller gave up waiting; escalate now so the helper still dies.
	case <-time.After(s.opts.StopGracePeriod):
		logger.WithField("session", snap.ID).Warn("Grace period expired, killing helper")
	}

	if err := handle.Kill(); err != nil {
		logger.WithError(err).Warn("Failed to kill helper process group")
	}

	select {
	case <-ended:
		if err := ctx.Err(); err != nil {
			return err
		}
		return nil
	case <-time.After(killExitWait):
		return &StopError{Err: errors.New("helper did not exit after SIGKILL")}
	}
}

// Status returns the current lifecycle state without blocking.
func (s *Service) Status() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return StateStopped
	}
	return s.session.State
}

// Snapshot returns a copy of the current or most recent session, nil
// when none was ever started.
func (s *Service) Snapshot() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// ConnectedDevices lists clients attached to the running hotspot.
// Returns ErrInvalidState unless the session is Running.
func (s *Service) ConnectedDevices(ctx context.Context) ([]stations.Device, error) {
	s.mu.RLock()
	if s.session == nil || s.session.State != StateRunning {
		s.mu.RUnlock()
		return nil, ErrInvalidState
	}
	iface := s.session.Interface
	subnetFor := s.subnetFor
	s.mu.RUnlock()

	// The interface subnet screens out stale lease and neighbor rows
	// from earlier networks. If it cannot be read the listing simply
	// goes unscreened.
	subnet, err := subnetFor(iface)
	if err != nil {
		logger.WithError(err).WithField("interface", iface).Debug("Interface subnet unavailable")
		subnet = ""
	}
	return s.stations.List(ctx, iface, subnet)
}

// Sessions returns recent session history, newest first.
func (s *Service) Sessions(ctx context.Context, limit int) ([]models.Session, error) {
	return s.repo.FindRecent(ctx, limit)
}

// Shutdown stops any active session so no helper process outlives the
// daemon.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.Status().Active() {
		return nil
	}
	return s.Stop(ctx)
}

// monitor owns every state transition after spawn. It watches the
// helper's output for the readiness marker, enforces the start timeout
// and holds the blocking wait until the process tree exits.
func (s *Service) monitor(sess *Session, handle Handle, ready, ended chan struct{}) {
	timeout := time.NewTimer(s.opts.StartTimeout)
	defer timeout.Stop()

	running := false
	var poll *time.Ticker
	var pollC <-chan time.Time
	defer func() {
		if poll != nil {
			poll.Stop()
		}
	}()

	for {
		select {
		case line, ok := <-handle.Output():
			if !ok {
				st := <-handle.Wait()
				s.finalize(sess, st, running, ended)
				return
			}
			s.recordOutput(sess, line)
			if !running && strings.Contains(line, readinessMarker) {
				if s.markRunning(sess) {
					running = true
					close(ready)
					timeout.Stop()
					poll = time.NewTicker(s.opts.DevicePoll)
					pollC = poll.C
				}
			}

		case <-timeout.C:
			if running {
				continue
			}
			if s.Status() == StateStopping {
				// Stop owns teardown now; keep reading until it exits.
				continue
			}
			logger.WithField("session", sess.ID).Warn("Hotspot start timed out, killing helper")
			if err := handle.Kill(); err != nil {
				logger.WithError(err).Warn("Failed to kill helper process group")
			}
			s.failStart(sess, ErrStartTimeout, ended)
			s.drain(handle, sess)
			return

		case <-pollC:
			s.publishDevices(sess)
		}
	}
}

// finalize settles the session once the helper has exited, on every
// path: expected stop, death during bring-up, or death while running.
func (s *Service) finalize(sess *Session, st ExitStatus, running bool, ended chan struct{}) {
	now := time.Now()
	code := st.Code

	s.mu.Lock()
	tail := strings.Join(s.tail, "\n")
	switch {
	case sess.State == StateStopping:
		sess.State = StateStopped
		sess.StoppedAt = &now
		sess.ExitCode = &code
		if !running {
			s.startErr = &StartError{Err: errors.New("hotspot stopped before it became ready"), ExitCode: code}
		}
	case !running:
		cause := startFailure(code, st.Err)
		sess.State = StateFailed
		sess.StoppedAt = &now
		sess.ExitCode = &code
		sess.Error = cause.Error()
		s.startErr = &StartError{Err: cause, ExitCode: code, Output: tail}
	default:
		// Died out from under us while Running. Never restarted here;
		// the failure stays visible until the next Stop or Start.
		cause := fmt.Errorf("%w (code %d)", ErrUnexpectedExit, code)
		sess.State = StateFailed
		sess.StoppedAt = &now
		sess.ExitCode = &code
		sess.Error = cause.Error()
	}
	s.handle = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	// Persist and publish before releasing waiters so a returning Stop
	// or Start observes the settled record.
	s.persistFinish(snap)
	s.publishSession(snap)
	close(ended)

	logger.WithFields(logrus.Fields{
		"session": snap.ID,
		"state":   snap.State,
		"code":    code,
	}).Info("Hotspot session ended")
}

// failStart marks a session Failed while the helper may still be alive
// (start timeout). The exit report is logged later by drain.
func (s *Service) failStart(sess *Session, cause error, ended chan struct{}) {
	now := time.Now()
	s.mu.Lock()
	sess.State = StateFailed
	sess.StoppedAt = &now
	sess.Error = cause.Error()
	s.startErr = &StartError{Err: cause, ExitCode: -1, Output: strings.Join(s.tail, "\n")}
	s.handle = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persistFinish(snap)
	s.publishSession(snap)
	close(ended)
	logger.WithField("session", snap.ID).Warn("Hotspot start failed")
}

// drain keeps consuming output after a kill so the pipe cannot back
// up, then logs the final exit.
func (s *Service) drain(handle Handle, sess *Session) {
	for range handle.Output() {
	}
	st := <-handle.Wait()
	logger.WithFields(logrus.Fields{
		"session": sess.ID,
		"code":    st.Code,
	}).Debug("Helper exited after kill")
}

func (s *Service) markRunning(sess *Session) bool {
	s.mu.Lock()
	if sess.State != StateStarting {
		s.mu.Unlock()
		return false
	}
	sess.State = StateRunning
	// Best effort: create_ap has assigned the gateway address by the
	// time hostapd reports the AP enabled.
	if gw, err := s.gatewayAddr(sess.Interface); err == nil {
		sess.Gateway = gw
	} else {
		logger.WithError(err).WithField("interface", sess.Interface).Debug("Gateway address unavailable")
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persistState(snap)
	s.publishSession(snap)
	logger.WithFields(logrus.Fields{
		"session": snap.ID,
		"ssid":    snap.SSID,
	}).Info("Hotspot running")
	return true
}

func (s *Service) recordOutput(sess *Session, line string) {
	s.mu.Lock()
	if len(s.tail) >= maxTailLines {
		copy(s.tail, s.tail[1:])
		s.tail[len(s.tail)-1] = line
	} else {
		s.tail = append(s.tail, line)
	}
	id := sess.ID
	s.mu.Unlock()

	s.events.Publish(pubsub.TopicHelperOutput, id, HelperOutput{SessionID: id, Line: line})
}

func (s *Service) publishDevices(sess *Session) {
	if s.events.SubscriberCount(pubsub.TopicDevices) == 0 {
		return
	}
	devices, err := s.ConnectedDevices(context.Background())
	if err != nil {
		return
	}
	s.events.Publish(pubsub.TopicDevices, sess.ID, devices)
}

// snapshotLocked copies the current session; the caller holds s.mu.
func (s *Service) snapshotLocked() *Session {
	if s.session == nil {
		return nil
	}
	clone := *s.session
	clone.Output = append([]string(nil), s.tail...)
	return &clone
}

func (s *Service) publishSession(snap *Session) {
	s.events.Publish(pubsub.TopicSessionState, snap.ID, snap)
}

func (s *Service) persistCreate(snap *Session) {
	row := &models.Session{
		ID:        snap.ID,
		SSID:      snap.SSID,
		Interface: snap.Interface,
		Channel:   snap.Channel,
		State:     string(snap.State),
		PID:       snap.PID,
		StartedAt: snap.StartedAt,
		StoppedAt: snap.StoppedAt,
		ExitCode:  snap.ExitCode,
	}
	if snap.Error != "" {
		msg := snap.Error
		row.Error = &msg
	}
	if err := s.repo.Create(context.Background(), row); err != nil {
		logger.WithError(err).Warn("Failed to persist session")
		return
	}
	if err := s.repo.Prune(context.Background(), s.opts.HistoryLimit); err != nil {
		logger.WithError(err).Warn("Failed to prune session history")
	}
}

func (s *Service) persistState(snap *Session) {
	if err := s.repo.UpdateState(context.Background(), snap.ID, string(snap.State)); err != nil {
		logger.WithError(err).Warn("Failed to persist session state")
	}
}

func (s *Service) persistFinish(snap *Session) {
	if snap.StoppedAt == nil {
		return
	}
	var errMsg *string
	if snap.Error != "" {
		msg := snap.Error
		errMsg = &msg
	}
	if err := s.repo.Finish(context.Background(), snap.ID, string(snap.State), *snap.StoppedAt, snap.ExitCode, errMsg); err != nil {
		logger.WithError(err).Warn("Failed to persist session end")
	}
}

func (s *Service) helperCommand(cfg Config) (string, []string) {
	args := []string{}
	if cfg.Channel > 0 {
		args = append(args, "-c", strconv.Itoa(cfg.Channel))
	}
	args = append(args, cfg.Interface, cfg.Interface, cfg.SSID, cfg.Passphrase)
	if s.opts.ElevatePath != "" {
		return s.opts.ElevatePath, append([]string{s.opts.CreateAPPath}, args...)
	}
	return s.opts.CreateAPPath, args
}

func (s *Service) stopCommand(iface string) (string, []string) {
	args := []string{"--stop", iface}
	if s.opts.ElevatePath != "" {
		return s.opts.ElevatePath, append([]string{s.opts.CreateAPPath}, args...)
	}
	return s.opts.CreateAPPath, args
}

func validateConfig(cfg Config) error {
	if n := len(cfg.SSID); n < 1 || n > 32 {
		return &ValidationError{Field: "ssid", Message: "must be 1-32 bytes"}
	}
	if n := len(cfg.Passphrase); n < 8 || n > 63 {
		return &ValidationError{Field: "passphrase", Message: "must be 8-63 characters"}
	}
	if cfg.Channel < 0 {
		return &ValidationError{Field: "channel", Message: "must not be negative"}
	}
	return nil
}

// startFailure maps a bring-up exit to its cause. pkexec reports 126
// when the authentication dialog is dismissed and 127 when
// authorization fails.
func startFailure(code int, waitErr error) error {
	switch code {
	case 126, 127:
		return ErrPermissionDenied
	}
	if waitErr != nil {
		return fmt.Errorf("helper exited before ready: %w", waitErr)
	}
	return fmt.Errorf("helper exited before ready (code %d)", code)
}
