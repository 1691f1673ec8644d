package appdelegate

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultClearDelay is how long after did-finish-launching the launch memory
// is kept when the application does not return to the foreground first.
const DefaultClearDelay = 5 * time.Second

// Phase is the launch phase the Delegate has completed.
type Phase int

const (
	NotLaunched Phase = iota
	WillFinishLaunchingPhase
	DidFinishLaunchingPhase
)

func (p Phase) String() string {
	switch p {
	case NotLaunched:
		return "not-launched"
	case WillFinishLaunchingPhase:
		return "will-finish-launching"
	case DidFinishLaunchingPhase:
		return "did-finish-launching"
	default:
		return "unknown"
	}
}

// Option configures a Delegate.
type Option func(*Delegate)

// WithLogger sets the logger usage faults and lifecycle events are written to.
func WithLogger(l *zap.Logger) Option {
	return func(d *Delegate) {
		if l != nil {
			d.baseLogger = l
		}
	}
}

// WithClearDelay sets how long the launch memory is kept after
// did-finish-launching.
func WithClearDelay(delay time.Duration) Option {
	return func(d *Delegate) {
		if delay > 0 {
			d.clearDelay = delay
		}
	}
}

// WithFeatures sets the OS features available to launch item classification.
func WithFeatures(f Features) Option {
	return func(d *Delegate) {
		d.features = f
	}
}

// Delegate receives OS lifecycle callbacks and forwards them to the
// capabilities app declares.
//
// A Delegate is not safe for concurrent use. The OS delivers every callback
// on its main sequencing context, and the Platform runs timers and
// observers there too.
type Delegate struct {
	app        Application
	caps       capabilities
	platform   Platform
	baseLogger *zap.Logger
	logger     *zap.Logger
	clearDelay time.Duration
	features   Features

	launchID uuid.UUID
	phase    Phase

	inForeground bool

	applicationSetUp bool
	interfaceLoaded  bool

	handledShortcutInWillFinish     bool
	couldHandleURLInWillFinish      bool
	couldResumeActivityInWillFinish bool

	memory      launchMemory
	cancelClear func()
	observers   []func()

	faults int
}

// New creates a Delegate for app. The capabilities app implements are fixed
// at this point.
func New(app Application, platform Platform, opts ...Option) *Delegate {
	d := &Delegate{
		app:        app,
		caps:       resolveCapabilities(app),
		platform:   platform,
		baseLogger: zap.NewNop(),
		clearDelay: DefaultClearDelay,
		features:   AllFeatures(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.resetLaunchState()
	d.logger.Debug("delegate created", zap.Stringer("capabilities", d.caps.set()))
	return d
}

// Phase returns the last launch phase that completed.
func (d *Delegate) Phase() Phase { return d.phase }

// InForeground reports whether the application became active and has not
// entered the background since.
func (d *Delegate) InForeground() bool { return d.inForeground }

// LaunchID identifies the current launch in logs.
func (d *Delegate) LaunchID() uuid.UUID { return d.launchID }

// Capabilities returns the capabilities the application declared.
func (d *Delegate) Capabilities() Capability { return d.caps.set() }

// Faults returns the number of usage faults noted so far.
func (d *Delegate) Faults() int { return d.faults }

// fault notes improper API usage. It is logged at DPanic level, which
// panics with a development logger.
func (d *Delegate) fault(msg string, fields ...zap.Field) {
	d.faults++
	d.logger.DPanic("improper appdelegate API usage: "+msg, fields...)
}

func (d *Delegate) setupApplicationOnce() {
	if d.applicationSetUp {
		return
	}
	d.app.SetupApplication()
	d.applicationSetUp = true
}

func (d *Delegate) loadInterfaceOnce(item LaunchItem) {
	if d.interfaceLoaded {
		return
	}
	d.logger.Info("loading interface", zap.Stringer("launch_item", item))
	d.app.LoadInterface(item)
	d.interfaceLoaded = true
}

func (d *Delegate) observe(ev Event, fn func()) {
	d.observers = append(d.observers, d.platform.Observe(ev, fn))
}

func (d *Delegate) clearLaunchMemory() {
	if !d.memory.empty() {
		d.logger.Debug("clearing launch memory")
	}
	d.memory.clear()
}

// ResetAll unsubscribes every observer, cancels the pending memory clear and
// forgets every launch flag, leaving the Delegate as if newly created. The
// persisted previously-requested permission flag is reset too.
func (d *Delegate) ResetAll() {
	if d.caps.userNotifications != nil {
		d.setPreviouslyRequested(false)
	}
	for _, cancel := range d.observers {
		cancel()
	}
	d.observers = nil
	if d.cancelClear != nil {
		d.cancelClear()
		d.cancelClear = nil
	}
	d.resetLaunchState()
}

func (d *Delegate) resetLaunchState() {
	d.launchID = uuid.New()
	d.logger = d.baseLogger.With(zap.Stringer("launch_id", d.launchID))
	d.phase = NotLaunched
	d.inForeground = false
	d.applicationSetUp = false
	d.interfaceLoaded = false
	d.handledShortcutInWillFinish = false
	d.couldHandleURLInWillFinish = true
	d.couldResumeActivityInWillFinish = true
	d.memory.clear()
}
