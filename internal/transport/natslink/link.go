// internal/transport/natslink/link.go
package natslink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/tamzrod/companion-sync/internal/session"
)

// Config is the link configuration.
type Config struct {
	URL           string
	SubjectPrefix string

	// PresenceTTL is how long after the last companion heartbeat the
	// companion still counts as reachable.
	PresenceTTL time.Duration

	// DailyPriorityBudget is the priority-channel quota per calendar day.
	DailyPriorityBudget int
}

// Link is the NATS-backed companion transport.
//
// Channel mapping:
//   - immediate: core publish + flush, usable only while reachable
//   - priority:  JetStream publish, quota-limited, persisted for the companion
//   - queued:    JetStream publish, unlimited, persisted for the companion
//
// Companion presence heartbeats on <prefix>.presence drive reachability;
// companion requests arrive as JSON on <prefix>.requests.
type Link struct {
	cfg  Config
	conn *nats.Conn
	js   jetstream.JetStream

	onReachability func(bool)
	onRequest      func(map[string]any)

	mu          sync.Mutex
	streamReady bool
	reachable   bool
	everSeen    bool
	lastSeen    time.Time
	priorityOn  bool
	quotaUsed   int
	quotaDay    string

	subs []*nats.Subscription
}

// Connect dials the NATS server and prepares the JetStream stream backing
// the priority and queued channels. Fail fast: a dead server at startup is
// a configuration problem.
func Connect(cfg Config) (*Link, error) {
	if cfg.URL == "" {
		return nil, errors.New("natslink: url required")
	}
	if cfg.SubjectPrefix == "" {
		return nil, errors.New("natslink: subject prefix required")
	}
	if cfg.PresenceTTL <= 0 {
		return nil, errors.New("natslink: presence ttl must be > 0")
	}
	if cfg.DailyPriorityBudget <= 0 {
		return nil, errors.New("natslink: daily priority budget must be > 0")
	}

	conn, err := nats.Connect(cfg.URL,
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("natslink: connect %s: %w", cfg.URL, err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("natslink: jetstream context: %w", err)
	}

	l := &Link{
		cfg:        cfg,
		conn:       conn,
		js:         js,
		priorityOn: true,
	}

	if err := l.Activate(); err != nil {
		conn.Close()
		return nil, err
	}

	slog.Info("companion link connected",
		"url", cfg.URL, "subject_prefix", cfg.SubjectPrefix)

	return l, nil
}

// SetReachabilityHandler injects the reachability callback.
// Must be called before Start.
func (l *Link) SetReachabilityHandler(fn func(bool)) { l.onReachability = fn }

// SetRequestHandler injects the inbound-request callback.
// Must be called before Start.
func (l *Link) SetRequestHandler(fn func(map[string]any)) { l.onRequest = fn }

// Start subscribes to presence and request subjects and runs the presence
// expiry loop until ctx is canceled.
func (l *Link) Start(ctx context.Context) error {
	presSub, err := l.conn.Subscribe(l.subject("presence"), l.handlePresence)
	if err != nil {
		return fmt.Errorf("natslink: subscribe presence: %w", err)
	}
	l.subs = append(l.subs, presSub)

	reqSub, err := l.conn.Subscribe(l.subject("requests"), l.handleRequest)
	if err != nil {
		return fmt.Errorf("natslink: subscribe requests: %w", err)
	}
	l.subs = append(l.subs, reqSub)

	go l.expireLoop(ctx)

	return nil
}

// Close drains subscriptions and closes the connection.
func (l *Link) Close() {
	for _, sub := range l.subs {
		_ = sub.Unsubscribe()
	}
	l.conn.Close()
}

// ------------------------------------------------------------
// SESSION STATUS
// ------------------------------------------------------------

// Status reports the current session view. Called fresh every cycle.
func (l *Link) Status() session.Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	connected := l.conn.IsConnected()

	// A disconnected client is reconnecting in the background; a
	// connected one without its stream has not activated yet.
	activation := session.Activating
	if connected {
		activation = session.NotActivated
		if l.streamReady {
			activation = session.Activated
		}
	}

	return session.Status{
		Paired:          !l.conn.IsClosed(),
		AppInstalled:    l.everSeen,
		Activation:      activation,
		Reachable:       l.reachable && connected,
		PriorityEnabled: l.priorityOn,
		QuotaRemaining:  l.quotaRemainingLocked(time.Now()),
		LastHeartbeatAt: l.lastSeen,
	}
}

// Activate ensures the JetStream stream exists. Idempotent; the controller
// calls this once per cycle while the session is not activated.
func (l *Link) Activate() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name: streamName(l.cfg.SubjectPrefix),
		Subjects: []string{
			l.subject("state.priority"),
			l.subject("state.queued"),
		},
		// A day of backlog is plenty: every payload is a complete
		// snapshot, so old ones are worthless once a newer one exists.
		MaxAge: 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("natslink: ensure stream: %w", err)
	}

	l.mu.Lock()
	l.streamReady = true
	l.mu.Unlock()

	return nil
}

// ------------------------------------------------------------
// OUTBOUND CHANNELS
// ------------------------------------------------------------

// SendImmediate publishes over the live connection. No queue, no reply:
// if the companion is not reachable the send is rejected.
func (l *Link) SendImmediate(payload map[string]any) error {
	st := l.Status()
	if !st.Reachable {
		return errors.New("natslink: companion not reachable")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("natslink: encode payload: %w", err)
	}

	if err := l.conn.Publish(l.subject("state.immediate"), data); err != nil {
		return fmt.Errorf("natslink: immediate publish: %w", err)
	}
	if err := l.conn.FlushTimeout(2 * time.Second); err != nil {
		return fmt.Errorf("natslink: immediate flush: %w", err)
	}
	return nil
}

// SendPriority publishes to the persisted priority subject. Consumes one
// unit of the daily budget per attempt, success or failure.
func (l *Link) SendPriority(payload map[string]any) error {
	now := time.Now()

	l.mu.Lock()
	if l.quotaRemainingLocked(now) <= 0 {
		l.mu.Unlock()
		return errors.New("natslink: daily priority budget exhausted")
	}
	l.quotaUsed++
	l.mu.Unlock()

	return l.publishStream("state.priority", payload)
}

// SendQueued publishes to the persisted queued subject. Unlimited,
// best-effort: the companion consumes the backlog when it reconnects.
func (l *Link) SendQueued(payload map[string]any) error {
	return l.publishStream("state.queued", payload)
}

func (l *Link) publishStream(channel string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("natslink: encode payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := l.js.Publish(ctx, l.subject(channel), data); err != nil {
		return fmt.Errorf("natslink: %s publish: %w", channel, err)
	}
	return nil
}

// ------------------------------------------------------------
// INBOUND
// ------------------------------------------------------------

func (l *Link) handlePresence(msg *nats.Msg) {
	// Heartbeat payload is optional JSON; absence of the priority flag
	// means enabled.
	priorityOn := true
	if len(msg.Data) > 0 {
		var hb struct {
			PriorityEnabled *bool `json:"priorityEnabled"`
		}
		if err := json.Unmarshal(msg.Data, &hb); err == nil && hb.PriorityEnabled != nil {
			priorityOn = *hb.PriorityEnabled
		}
	}

	l.mu.Lock()
	l.lastSeen = time.Now()
	l.everSeen = true
	l.priorityOn = priorityOn
	becameReachable := !l.reachable
	l.reachable = true
	fn := l.onReachability
	l.mu.Unlock()

	if becameReachable && fn != nil {
		fn(true)
	}
}

func (l *Link) handleRequest(msg *nats.Msg) {
	var payload map[string]any
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		slog.Debug("dropping malformed companion request", "error", err)
		return
	}

	if l.onRequest != nil {
		l.onRequest(payload)
	}
}

// expireLoop flips reachability off when heartbeats stop.
func (l *Link) expireLoop(ctx context.Context) {
	tick := l.cfg.PresenceTTL / 3
	if tick < time.Second {
		tick = time.Second
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.mu.Lock()
			expired := l.reachable && now.Sub(l.lastSeen) > l.cfg.PresenceTTL
			if expired {
				l.reachable = false
			}
			fn := l.onReachability
			l.mu.Unlock()

			if expired {
				slog.Info("companion presence expired")
				if fn != nil {
					fn(false)
				}
			}
		}
	}
}

// ------------------------------------------------------------
// QUOTA
// ------------------------------------------------------------

// quotaRemainingLocked resets the counter on day rollover and returns the
// remaining budget. Caller holds l.mu.
func (l *Link) quotaRemainingLocked(now time.Time) int {
	day := now.Format("2006-01-02")
	if day != l.quotaDay {
		l.quotaDay = day
		l.quotaUsed = 0
	}

	remaining := l.cfg.DailyPriorityBudget - l.quotaUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ------------------------------------------------------------
// SUBJECTS
// ------------------------------------------------------------

func (l *Link) subject(suffix string) string {
	return l.cfg.SubjectPrefix + "." + suffix
}

// streamName derives a JetStream-safe stream name from the subject prefix.
func streamName(prefix string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, prefix)
	return clean + "_STATE"
}
