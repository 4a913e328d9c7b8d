package app

import (
	"errors"
	"fmt"
	"time"

	"thirdeye/internal/settings"
	"thirdeye/internal/store"
	"thirdeye/internal/tiles"

	"go.uber.org/zap"
)

// Session is the persistent application state: settings plus the pane
// layout, loaded once at startup and saved at checkpoints (autosave, settings
// commit, shutdown).
type Session struct {
	Settings settings.Settings
	Layout   *Layout

	store   store.Store
	catalog Catalog
	log     *zap.Logger
	now     func() time.Time
}

// LoadReport describes what happened while opening a session.
type LoadReport struct {
	SettingsErr error
	LayoutErr   error
	// FirstRun is true when neither document existed.
	FirstRun bool
	// Backups lists copies made of unreadable documents.
	Backups []string
}

// Failed reports whether any existing document could not be restored.
func (r LoadReport) Failed() bool {
	return r.SettingsErr != nil || r.LayoutErr != nil
}

// Open loads settings and layout from st. It never fails: unreadable data is
// replaced by defaults and the layout shows a load error pane so the user
// knows their previous state was not restored.
func Open(st store.Store, catalog Catalog, log *zap.Logger) (*Session, LoadReport) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{store: st, catalog: catalog, log: log, now: time.Now}
	var rep LoadReport

	cfg, err := store.Load[settings.Settings](st.SettingsPath(), store.YAML)
	switch {
	case err != nil:
		rep.SettingsErr = err
		s.Settings = settings.Default()
		log.Warn("settings could not be loaded; using defaults", zap.Error(err))
		rep.Backups = s.backup(st.SettingsPath(), rep.Backups)
	case cfg == nil || cfg.Version == 0:
		s.Settings = settings.Default()
	default:
		s.Settings = *cfg
	}

	doc, err := store.Load[tiles.Document](st.LayoutPath(), store.JSON)
	switch {
	case err != nil:
		rep.LayoutErr = err
	case doc == nil:
		s.Layout = tiles.NewTabs(catalog.Welcome())
	default:
		layout, err := tiles.Decode(*doc, catalog.Decode)
		if err != nil {
			rep.LayoutErr = &store.Error{Op: "load", Path: st.LayoutPath(), Err: err}
		} else {
			s.Layout = layout
		}
	}
	rep.FirstRun = cfg == nil && doc == nil && !rep.Failed()

	if rep.LayoutErr != nil {
		log.Warn("layout could not be loaded; showing load error pane", zap.Error(rep.LayoutErr))
		rep.Backups = s.backup(st.LayoutPath(), rep.Backups)
		s.Layout = tiles.NewTabs(catalog.LoadError())
	} else if rep.SettingsErr != nil {
		s.addLoadErrorTab()
	}

	s.EnsureLayout()
	log.Info("session opened",
		zap.String("dir", st.Dir),
		zap.Bool("firstRun", rep.FirstRun),
		zap.Int("panes", len(s.Layout.Panes())),
	)
	return s, rep
}

func (s *Session) backup(path string, backups []string) []string {
	dest, err := store.Backup(path, s.now())
	if err != nil {
		s.log.Warn("could not back up unreadable document", zap.String("path", path), zap.Error(err))
		return backups
	}
	s.log.Info("backed up unreadable document", zap.String("path", path), zap.String("backup", dest))
	return append(backups, dest)
}

func (s *Session) addLoadErrorTab() {
	groups := s.Layout.TabGroups()
	if len(groups) == 0 {
		s.Layout = tiles.NewTabs(s.catalog.LoadError())
		return
	}
	if err := s.AddPane(groups[0], s.catalog.LoadError()); err != nil {
		s.log.Warn("could not add load error pane", zap.Error(err))
	}
}

// EnsureLayout reinserts a Welcome pane when the layout has no tiles left
// (for example after every tab was closed). It reports whether it did.
func (s *Session) EnsureLayout() bool {
	if s.Layout == nil {
		s.Layout = tiles.New[Pane]()
	}
	if !s.Layout.IsEmpty() {
		return false
	}
	s.log.Info("layout contains no tiles; adding one")
	s.Layout.SetRoot(s.Layout.InsertPane(s.catalog.Welcome()))
	s.Layout.Simplify()
	return true
}

// AddPane inserts p under the container parent and, for a tab group, makes
// it the active tab. Under a split the pane gets its own tab group. A parent that no longer exists or is not a container
// leaves the layout unchanged.
func (s *Session) AddPane(parent tiles.TileID, p Pane) error {
	if p == nil {
		return errors.New("add pane: nil pane")
	}
	c, err := s.Layout.Container(parent)
	if err != nil {
		return fmt.Errorf("add pane %s: %w", p.Kind(), err)
	}
	child := s.Layout.InsertPane(p)
	if err := s.Layout.AddChild(parent, child); err != nil {
		return fmt.Errorf("add pane %s: %w", p.Kind(), err)
	}
	if c.Kind == tiles.Tabs {
		if err := s.Layout.SetActive(parent, child); err != nil {
			return err
		}
	}
	s.Layout.Simplify()
	return nil
}

// Apply performs the effect of one message. Failures are logged; none of
// them is fatal.
func (s *Session) Apply(msg Message) {
	s.log.Debug("processing message", zap.Any("message", msg))
	switch msg := msg.(type) {
	case AutoSave:
		if err := s.Save(); err != nil {
			s.log.Warn("autosave failed", zap.Error(err))
		}
	case AddPane:
		if err := s.AddPane(msg.Parent, msg.Pane); err != nil {
			s.log.Warn("cannot open a new pane", zap.Error(err))
		}
	case CloseSettingsModal:
		if msg.NewSettings == nil {
			return
		}
		s.Settings = msg.NewSettings.Clone()
		if err := s.SaveSettings(); err != nil {
			s.log.Warn("saving settings failed", zap.Error(err))
		}
	}
}

func (s *Session) SaveSettings() error {
	return store.Save(s.store.SettingsPath(), s.Settings, store.YAML)
}

func (s *Session) SaveLayout() error {
	doc, err := s.Layout.Encode(s.catalog.Encode)
	if err != nil {
		return &store.Error{Op: "save", Path: s.store.LayoutPath(), Err: err}
	}
	return store.Save(s.store.LayoutPath(), doc, store.JSON)
}

// Save writes both documents, attempting each even if the other fails.
func (s *Session) Save() error {
	return errors.Join(s.SaveSettings(), s.SaveLayout())
}
