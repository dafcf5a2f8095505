// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Jared Redh. All rights reserved.

package app

import (
	"context"
	"time"

	"github.com/jredh-dev/velox/internal/catalog"
	"github.com/jredh-dev/velox/internal/money"
)

type appState int

const (
	stateCatalog appState = iota
	stateSearch
	stateDetail
)

// recentBids is how many bids the detail view lists.
const recentBids = 5

// Insighter produces the advisory text shown on the detail view. It must
// not fail; *insight.Provider satisfies it.
type Insighter interface {
	Insight(ctx context.Context, title string, price money.Amount) string
}

// Model is the root bubbletea model for the storefront.
// Exported so tests can construct and drive it directly.
type Model struct {
	state   appState
	session *catalog.Session
	insight Insighter
	bidder  string

	now    func() time.Time
	loc    *time.Location
	coarse time.Duration
	fine   time.Duration

	width  int
	height int

	// tickSeq invalidates ticks scheduled for a previous view.
	tickSeq int

	// Catalog
	tab         int
	cursor      int
	searchInput string

	// Detail
	bidInput       string
	observedBid    money.Amount
	insightText    string
	insightLoading bool
	insightSeq     int
	cancelInsight  context.CancelFunc
	status         string
	statusErr      bool
}

// Option configures a Model.
type Option func(*Model)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithLocation sets the timezone used for bid times.
func WithLocation(loc *time.Location) Option {
	return func(m *Model) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithCadence sets the refresh interval of the catalog and detail views.
func WithCadence(coarse, fine time.Duration) Option {
	return func(m *Model) {
		if coarse > 0 {
			m.coarse = coarse
		}
		if fine > 0 {
			m.fine = fine
		}
	}
}

// New creates a Model browsing session's catalog. Bids are placed as bidder.
func New(session *catalog.Session, ins Insighter, bidder string, opts ...Option) Model {
	m := Model{
		state:   stateCatalog,
		session: session,
		insight: ins,
		bidder:  bidder,
		now:     time.Now,
		loc:     time.Local,
		coarse:  time.Minute,
		fine:    time.Second,
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// items is the filtered list the catalog view shows.
func (m Model) items() []catalog.Item {
	return m.session.Items()
}

func (m Model) cadence() time.Duration {
	if m.state == stateDetail {
		return m.fine
	}
	return m.coarse
}
