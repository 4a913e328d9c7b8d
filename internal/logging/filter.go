package logging

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LevelOff disables every entry for the logger names it applies to.
const LevelOff = zapcore.FatalLevel + 1

// Filter is a parsed log filter string.
//
// The syntax is a comma separated list of directives. A directive is either a
// bare level ("warn"), which sets the default, or "name=level", which applies
// to the named logger and its children ("thirdeye=debug" also covers
// "thirdeye.tui"). The most specific name wins.
type Filter struct {
	Default    zapcore.Level
	Directives []Directive
}

type Directive struct {
	Name  string
	Level zapcore.Level
}

func ParseFilter(s string) (Filter, error) {
	f := Filter{Default: zapcore.ErrorLevel}
	for _, raw := range strings.Split(s, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		name, lvl, hasName := strings.Cut(raw, "=")
		if !hasName {
			// A bare name enables everything for that logger.
			if l, err := parseLevel(raw); err == nil {
				f.Default = l
				continue
			}
			f.Directives = append(f.Directives, Directive{Name: normalizeName(raw), Level: zapcore.DebugLevel})
			continue
		}
		name = normalizeName(name)
		if name == "" {
			return Filter{}, fmt.Errorf("log filter %q: empty logger name", raw)
		}
		l, err := parseLevel(lvl)
		if err != nil {
			return Filter{}, fmt.Errorf("log filter %q: %w", raw, err)
		}
		f.Directives = append(f.Directives, Directive{Name: name, Level: l})
	}
	sort.SliceStable(f.Directives, func(i, j int) bool {
		return len(f.Directives[i].Name) > len(f.Directives[j].Name)
	})
	return f, nil
}

func normalizeName(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, "::", ".")
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zapcore.DebugLevel, nil
	case "off", "none":
		return LevelOff, nil
	}
	return zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
}

// LevelFor returns the minimum enabled level for the logger name.
func (f Filter) LevelFor(name string) zapcore.Level {
	for _, d := range f.Directives {
		if name == d.Name || strings.HasPrefix(name, d.Name+".") {
			return d.Level
		}
	}
	return f.Default
}

// Min is the lowest level any logger can emit under this filter.
func (f Filter) Min() zapcore.Level {
	lvl := f.Default
	for _, d := range f.Directives {
		if d.Level < lvl {
			lvl = d.Level
		}
	}
	return lvl
}

// filterCore applies a Filter on top of an unfiltered core using the entry's
// logger name.
type filterCore struct {
	zapcore.Core
	filter Filter
}

func (c *filterCore) Enabled(l zapcore.Level) bool {
	return l >= c.filter.Min() && c.Core.Enabled(l)
}

func (c *filterCore) With(fields []zapcore.Field) zapcore.Core {
	return &filterCore{Core: c.Core.With(fields), filter: c.filter}
}

func (c *filterCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.Level < c.filter.LevelFor(ent.LoggerName) {
		return ce
	}
	return c.Core.Check(ent, ce)
}
