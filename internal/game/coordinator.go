package game

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"sketchroom/internal/domain"
)

// Default coordinator settings
const (
	DefaultAdminName    = "SYSTEM"
	DefaultMaxOnline    = 30
	DefaultDrawCooldown = 30 * time.Second
)

// Settings configures the session coordinator
type Settings struct {
	AdminName    string
	MaxOnline    int
	DrawCooldown time.Duration
	Canvas       CanvasLimits
}

// DefaultSettings returns the default coordinator settings
func DefaultSettings() Settings {
	return Settings{
		AdminName:    DefaultAdminName,
		MaxOnline:    DefaultMaxOnline,
		DrawCooldown: DefaultDrawCooldown,
		Canvas:       DefaultCanvasLimits(),
	}
}

// Coordinator is the authoritative in-process game session: who is online,
// who holds the drawer role, the secret word, the drawing history and the
// running score. Two independent locks guard disjoint state: roundMu covers
// the word and role transitions, the canvas carries its own mutex. They are
// never nested.
type Coordinator struct {
	users  Directory
	words  WordSource
	broker Broadcaster
	logger *slog.Logger

	settings Settings

	online *PresenceSet
	canvas *Canvas

	roundMu     sync.Mutex
	currentWord string

	lastDrawAt atomic.Int64 // unix millis of the most recent stroke

	now func() time.Time
}

// NewCoordinator creates a coordinator with no round in progress
func NewCoordinator(settings Settings, users Directory, words WordSource, broker Broadcaster, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		users:    users,
		words:    words,
		broker:   broker,
		logger:   logger,
		settings: settings,
		online:   NewPresenceSet(),
		canvas:   NewCanvas(settings.Canvas),
		now:      time.Now,
	}
}

// OnlineCount returns the number of logged-in users
func (c *Coordinator) OnlineCount() int {
	return c.online.Len()
}

/* ------------------------------------------------------------------ */
/* Session (login / logout)                                           */
/* ------------------------------------------------------------------ */

// Login adds a registered user to the presence set. It fails for unknown
// names and when the session is full, unless the name is already online.
func (c *Coordinator) Login(ctx context.Context, name string) bool {
	exists, err := c.users.ExistsByName(ctx, name)
	if err != nil || !exists {
		return false
	}
	if c.online.Len() >= c.settings.MaxOnline && !c.online.Contains(name) {
		return false
	}

	c.online.Add(name)

	if u, err := c.users.FindByName(ctx, name); err == nil {
		if u.Name == c.settings.AdminName {
			c.users.UpdateRole(ctx, name, domain.RoleAdmin)
		} else if u.Role == "" {
			c.users.UpdateRole(ctx, name, domain.RoleParticipant)
		}
		c.logger.Info("user logged in", "name", u.Name, "online", c.online.Len())
	}

	c.publishUsersAndScoreboard(ctx)
	return true
}

// Logout removes a user from the presence set; absent names are a no-op
func (c *Coordinator) Logout(ctx context.Context, name string) {
	if c.online.Remove(name) {
		c.logger.Info("user logged out", "name", name, "online", c.online.Len())
	}
	c.publishUsersAndScoreboard(ctx)
}

/* ------------------------------------------------------------------ */
/* Round & role transitions                                           */
/* ------------------------------------------------------------------ */

// RerollWord picks a fresh word for the current drawer. Non-drawers are
// silently ignored.
func (c *Coordinator) RerollWord(ctx context.Context, name string) error {
	me, err := c.users.FindByName(ctx, name)
	if err != nil || me.Role != domain.RoleDrawer {
		return nil
	}

	c.roundMu.Lock()
	defer c.roundMu.Unlock()

	next, err := c.words.RandomWordExcept(ctx, c.currentWord)
	if err != nil {
		return err
	}
	c.currentWord = next
	c.logger.Info("word rerolled", "drawer", me.Name)
	c.startNewRoundLocked(ctx, me.Name, me.Name+" got a new word.")
	return nil
}

// ClaimDrawer makes the caller the drawer. It is rejected while the current
// drawer has drawn within the cooldown window; the error carries the
// remaining whole seconds. A caller who already holds the role is a no-op.
func (c *Coordinator) ClaimDrawer(ctx context.Context, name string) error {
	me, err := c.users.FindByName(ctx, name)
	if err != nil {
		return nil
	}

	elapsed := c.now().UnixMilli() - c.lastDrawAt.Load()
	if cooldown := c.settings.DrawCooldown.Milliseconds(); elapsed < cooldown {
		return &domain.CooldownError{RemainingSeconds: (cooldown-elapsed)/1000 + 1}
	}

	c.roundMu.Lock()
	defer c.roundMu.Unlock()

	if me.Role == domain.RoleDrawer {
		return nil
	}

	word, err := c.words.RandomWord(ctx)
	if err != nil {
		return err
	}

	c.users.DemoteDrawers(ctx)
	c.users.UpdateRole(ctx, name, domain.RoleDrawer)
	c.currentWord = word
	c.logger.Info("drawer claimed", "drawer", me.Name)
	c.startNewRoundLocked(ctx, me.Name, me.Name+" is now the drawer.")
	return nil
}

// AssignDrawer lets the admin hand the drawer role to a named user
func (c *Coordinator) AssignDrawer(ctx context.Context, adminName, targetName string) error {
	admin, err := c.users.FindByName(ctx, adminName)
	if err != nil {
		return err
	}
	if admin.Role != domain.RoleAdmin {
		return domain.ErrAdminOnly
	}

	c.roundMu.Lock()
	defer c.roundMu.Unlock()

	target, err := c.users.FindByName(ctx, targetName)
	if err != nil {
		return err
	}

	word, err := c.words.RandomWord(ctx)
	if err != nil {
		return err
	}

	c.users.DemoteDrawers(ctx)
	c.users.UpdateRole(ctx, target.Name, domain.RoleDrawer)
	c.currentWord = word
	c.logger.Info("drawer assigned", "admin", adminName, "drawer", target.Name)
	c.startNewRoundLocked(ctx, target.Name, "")
	return nil
}

// startNewRoundLocked runs the shared start-of-round procedure. Callers must
// hold roundMu and have already installed the new word.
func (c *Coordinator) startNewRoundLocked(ctx context.Context, drawerName, systemMsg string) {
	c.canvas.Clear()
	c.broker.Publish(TopicCanvasClear, "")

	c.broker.SendToUser(drawerName, QueueWord, c.currentWord)
	if admin, err := c.users.FindByName(ctx, c.settings.AdminName); err == nil && admin.Name != drawerName {
		c.broker.SendToUser(admin.Name, QueueWord, c.currentWord)
	}

	if strings.TrimSpace(systemMsg) != "" {
		c.publishChat(c.settings.AdminName, systemMsg, true)
	}

	c.publishUsersAndScoreboard(ctx)
	c.broker.Publish(TopicWordLen, WordLength(c.currentWord))
}

/* ------------------------------------------------------------------ */
/* Chat & answer matching                                             */
/* ------------------------------------------------------------------ */

// HandleChat broadcasts a chat line and fires the correct-guess transition
// when a participant names the current word exactly (trimmed, case
// sensitive). The drawer or admin echoing the word gets it masked instead.
func (c *Coordinator) HandleChat(ctx context.Context, from, text string) error {
	raw := text
	msg := strings.TrimSpace(raw)

	c.roundMu.Lock()
	defer c.roundMu.Unlock()

	sender, err := c.users.FindByName(ctx, from)
	knowsWord := err == nil && (sender.Role == domain.RoleDrawer || sender.Role == domain.RoleAdmin)

	if knowsWord && c.currentWord != "" && msg == c.currentWord {
		c.broker.Publish(TopicChat, domain.ChatMessage{From: from, Text: MaskWord(c.currentWord)})
		return nil
	}

	c.publishChat(from, raw, false)

	if c.currentWord != "" && msg == c.currentWord && err == nil && sender.Role == domain.RoleParticipant {
		next, err := c.words.RandomWord(ctx)
		if err != nil {
			return err
		}

		c.users.IncrementScore(ctx, from, 1)
		c.users.DemoteDrawers(ctx)
		c.users.UpdateRole(ctx, from, domain.RoleDrawer)
		oldWord := c.currentWord
		c.currentWord = next
		c.logger.Info("correct guess", "winner", from, "word", oldWord)
		c.startNewRoundLocked(ctx, from, from+" guessed it! ["+raw+"]")
	}
	return nil
}

/* ------------------------------------------------------------------ */
/* Drawing                                                            */
/* ------------------------------------------------------------------ */

// canDraw reports whether the caller currently holds the drawer role
func (c *Coordinator) canDraw(ctx context.Context, name string) bool {
	u, err := c.users.FindByName(ctx, name)
	return err == nil && u.Role == domain.RoleDrawer
}

// AddStroke records a drawing segment from the drawer and broadcasts it.
// Strokes from anyone else are silently dropped.
func (c *Coordinator) AddStroke(ctx context.Context, from string, seg domain.StrokeSegment) {
	if !c.canDraw(ctx, from) {
		return
	}
	stored := c.canvas.Record(seg)
	c.broker.Publish(TopicDraw, stored)
	c.lastDrawAt.Store(c.now().UnixMilli())
}

// UndoLastStroke removes the drawer's most recent action. Clients replay the
// undo locally from the broadcast action id; nothing is resent.
func (c *Coordinator) UndoLastStroke(ctx context.Context, from string) {
	if !c.canDraw(ctx, from) {
		return
	}
	if id, ok := c.canvas.UndoLast(); ok {
		c.broker.Publish(TopicUndo, domain.UndoNotice{ActionID: id})
	}
}

// ClearCanvas wipes the drawing for everyone
func (c *Coordinator) ClearCanvas(ctx context.Context, from string) {
	if !c.canDraw(ctx, from) {
		return
	}
	c.canvas.Clear()
	c.broker.Publish(TopicCanvasClear, "")
}

/* ------------------------------------------------------------------ */
/* Snapshots & publication                                            */
/* ------------------------------------------------------------------ */

// SendSnapshotTo privately delivers the full visible state to one user:
// presence, scoreboard, word length, the word itself for drawer/admin, and a
// deterministic replay of the current drawing.
func (c *Coordinator) SendSnapshotTo(ctx context.Context, username string) {
	c.broker.SendToUser(username, QueueUsers, c.decoratedUsers(ctx))
	c.broker.SendToUser(username, QueueScoreboard, c.scoreboard(ctx))

	word := c.snapshotWord()
	c.broker.SendToUser(username, QueueWordLen, WordLength(word))
	if u, err := c.users.FindByName(ctx, username); err == nil && word != "" {
		if u.Role == domain.RoleDrawer || u.Role == domain.RoleAdmin {
			c.broker.SendToUser(username, QueueWord, word)
		}
	}

	c.sendCanvasSnapshotTo(username)
}

// sendCanvasSnapshotTo replays the buffered drawing to one user, oldest
// action first, preceded by a clear event
func (c *Coordinator) sendCanvasSnapshotTo(username string) {
	c.broker.SendToUser(username, QueueCanvasClear, "")
	c.canvas.Replay(func(seg domain.StrokeSegment) {
		c.broker.SendToUser(username, QueueDraw, seg)
	})
}

func (c *Coordinator) snapshotWord() string {
	c.roundMu.Lock()
	defer c.roundMu.Unlock()
	return c.currentWord
}

// decoratedUsers lists the online users, each tagged with its role
func (c *Coordinator) decoratedUsers(ctx context.Context) []string {
	names := c.online.Names()
	sort.Strings(names)

	decorated := make([]string, 0, len(names))
	if len(names) == 0 {
		return decorated
	}
	users, err := c.users.FindByNamesIn(ctx, names)
	if err != nil {
		c.logger.Warn("presence lookup failed", "error", err)
		return decorated
	}
	for _, u := range users {
		decorated = append(decorated, u.Name+" ("+string(u.Role)+")")
	}
	return decorated
}

// scoreboard builds the positive-score ranking, highest first
func (c *Coordinator) scoreboard(ctx context.Context) []domain.ScoreBoardEntry {
	entries := make([]domain.ScoreBoardEntry, 0)
	users, err := c.users.FindAll(ctx)
	if err != nil {
		c.logger.Warn("scoreboard lookup failed", "error", err)
		return entries
	}
	for _, u := range users {
		if u.Score > 0 {
			entries = append(entries, domain.ScoreBoardEntry{Name: u.Name, Team: u.Team, Score: u.Score})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

func (c *Coordinator) publishUsersAndScoreboard(ctx context.Context) {
	c.broker.Publish(TopicUsers, c.decoratedUsers(ctx))
	c.broker.Publish(TopicScoreboard, c.scoreboard(ctx))
}

func (c *Coordinator) publishChat(from, text string, system bool) {
	c.broker.Publish(TopicChat, domain.ChatMessage{From: from, Text: text, System: system})
}
