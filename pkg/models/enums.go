package models

import "strings"

// WaitStrategy tells the server what to wait for after an action
type WaitStrategy string

const (
	WaitAuto             WaitStrategy = "auto"
	WaitNavigation       WaitStrategy = "navigation"
	WaitLoad             WaitStrategy = "load"
	WaitDOMContentLoaded WaitStrategy = "domcontentloaded"
	WaitNetworkIdle      WaitStrategy = "networkidle"
	WaitNone             WaitStrategy = "none"
)

var waitStrategies = []WaitStrategy{
	WaitAuto, WaitNavigation, WaitLoad, WaitDOMContentLoaded, WaitNetworkIdle, WaitNone,
}

// ParseWaitStrategy maps s to a known strategy, ignoring case.
// Unknown values fall back to WaitAuto.
func ParseWaitStrategy(s string) WaitStrategy {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, w := range waitStrategies {
		if string(w) == s {
			return w
		}
	}
	return WaitAuto
}

// Valid reports whether w is one of the declared strategies.
func (w WaitStrategy) Valid() bool {
	for _, known := range waitStrategies {
		if w == known {
			return true
		}
	}
	return false
}

// SessionStatus represents the current state of a browser session
type SessionStatus string

const (
	StatusActive SessionStatus = "active"
	StatusClosed SessionStatus = "closed"
)

// StatusFilter narrows a session listing
type StatusFilter string

const (
	FilterActive StatusFilter = "active"
	FilterClosed StatusFilter = "closed"
	FilterAll    StatusFilter = "all"
)

// Valid reports whether f is one of the declared filters.
func (f StatusFilter) Valid() bool {
	return f == FilterActive || f == FilterClosed || f == FilterAll
}

// LevelOfDetail controls how much the server extracts for a description
type LevelOfDetail string

const (
	DetailBrief    LevelOfDetail = "brief"
	DetailStandard LevelOfDetail = "standard"
	DetailFull     LevelOfDetail = "full"
)

// ScrapeFormat selects a representation returned by a page scrape
type ScrapeFormat string

const (
	FormatHTML ScrapeFormat = "html"
	FormatText ScrapeFormat = "text"
	FormatJSON ScrapeFormat = "json"
)
