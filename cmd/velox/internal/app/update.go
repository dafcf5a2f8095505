// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Jared Redh. All rights reserved.

package app

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/jredh-dev/velox/internal/catalog"
	"github.com/jredh-dev/velox/internal/money"
)

// maxBidInput bounds the bid field; money.Parse rejects longer values anyway.
const maxBidInput = 20

// Init starts the catalog refresh tick.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update is the bubbletea update function.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m.handleTick(msg)

	case insightMsg:
		return m.handleInsight(msg)
	}

	return m, nil
}

// --- Key Handling ---

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := msg.Key()

	if k.Code == 'c' && k.Mod == tea.ModCtrl {
		m.stopInsight()
		return m, tea.Quit
	}

	switch m.state {
	case stateCatalog:
		return m.handleCatalogKey(k)
	case stateSearch:
		return m.handleSearchKey(k)
	case stateDetail:
		return m.handleDetailKey(k)
	}

	return m, nil
}

func (m Model) handleCatalogKey(k tea.Key) (tea.Model, tea.Cmd) {
	switch k.Code {
	case tea.KeyUp, 'k':
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown, 'j':
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}
	case tea.KeyTab:
		if k.Mod == tea.ModShift {
			m.setTab(m.tab - 1)
		} else {
			m.setTab(m.tab + 1)
		}
	case tea.KeyRight, 'l':
		m.setTab(m.tab + 1)
	case tea.KeyLeft, 'h':
		m.setTab(m.tab - 1)
	case '/':
		m.state = stateSearch
		m.searchInput = m.session.Query()
	case 'c':
		m.session.ResetFilters()
		m.tab = 0
		m.cursor = 0
		m.searchInput = ""
	case tea.KeyEnter:
		return m.openDetail()
	case 'q', tea.KeyEscape:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleSearchKey(k tea.Key) (tea.Model, tea.Cmd) {
	switch k.Code {
	case tea.KeyEnter:
		m.state = stateCatalog
		return m, nil
	case tea.KeyEscape:
		m.state = stateCatalog
		m.searchInput = ""
	case tea.KeyBackspace:
		m.searchInput = dropLastRune(m.searchInput)
	default:
		if k.Text == "" {
			return m, nil
		}
		m.searchInput += k.Text
	}
	m.session.SetQuery(m.searchInput)
	m.cursor = 0
	return m, nil
}

func (m Model) handleDetailKey(k tea.Key) (tea.Model, tea.Cmd) {
	switch k.Code {
	case tea.KeyEscape:
		m.closeDetail()
		return m, m.tick()
	case tea.KeyEnter:
		return m.submitBid()
	case '+', '=':
		m.stepBid(1)
	case '-':
		m.stepBid(-1)
	case tea.KeyBackspace:
		m.bidInput = dropLastRune(m.bidInput)
	default:
		if isAmountText(k.Text) && len(m.bidInput) < maxBidInput {
			m.bidInput += k.Text
		}
	}
	return m, nil
}

func (m *Model) setTab(i int) {
	n := len(catalog.Categories)
	m.tab = (i%n + n) % n
	m.session.SetCategory(catalog.Categories[m.tab])
	m.cursor = 0
}

// --- Detail lifecycle ---

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	items := m.items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return m, nil
	}
	if err := m.session.Select(items[m.cursor].ID); err != nil {
		return m, nil
	}
	it, ok := m.session.Selected()
	if !ok {
		return m, nil
	}

	m.state = stateDetail
	m.status, m.statusErr = "", false
	m.resetBid(it)
	m.tickSeq++
	fetch := m.fetchInsight(it)
	return m, tea.Batch(m.tick(), fetch)
}

func (m *Model) closeDetail() {
	m.stopInsight()
	m.session.Clear()
	m.state = stateCatalog
	m.insightText = ""
	m.insightLoading = false
	m.status, m.statusErr = "", false
	m.bidInput = ""
	m.tickSeq++
	if n := len(m.items()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// resetBid points the bid field at the floor of it.
func (m *Model) resetBid(it catalog.Item) {
	m.observedBid = it.CurrentBid
	m.bidInput = it.Floor().Input()
}

// refreshSelected re-reads the selected lot. When its current bid moved,
// the bid field is reset to the new floor and the insight is requested again.
func (m *Model) refreshSelected() tea.Cmd {
	it, ok := m.session.Selected()
	if !ok || it.CurrentBid == m.observedBid {
		return nil
	}
	m.resetBid(it)
	return m.fetchInsight(it)
}

func (m *Model) stepBid(dir int) {
	it, ok := m.session.Selected()
	if !ok {
		return
	}
	amount, err := money.Parse(m.bidInput)
	if err != nil {
		amount = it.Floor()
	} else {
		amount += money.Amount(dir) * it.Increment
	}
	if amount < it.Floor() {
		amount = it.Floor()
	}
	if amount > money.Max {
		amount = money.Max
	}
	m.bidInput = amount.Input()
}

func (m Model) submitBid() (tea.Model, tea.Cmd) {
	amount, err := money.Parse(m.bidInput)
	if err != nil {
		m.setStatus("Informe um valor válido.", true)
		return m, nil
	}

	res, err := m.session.PlaceBid(amount, m.bidder, m.now())
	var low *catalog.BidTooLowError
	switch {
	case err == nil:
		m.resetBid(res.Item)
		m.setStatus("Lance de "+res.Bid.Amount.String()+" registrado!", false)
		cmd := m.fetchInsight(res.Item)
		return m, cmd
	case errors.As(err, &low):
		cmd := m.refreshSelected()
		m.bidInput = low.Floor.Input()
		m.setStatus("O lance deve ser no mínimo "+low.Floor.String()+".", true)
		return m, cmd
	case errors.Is(err, catalog.ErrAuctionClosed):
		m.setStatus("Leilão encerrado para lances.", true)
		return m, nil
	case errors.Is(err, catalog.ErrBidTooHigh):
		m.setStatus("O lance excede o máximo de "+money.Max.String()+".", true)
		return m, nil
	default:
		m.closeDetail()
		return m, m.tick()
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status, m.statusErr = text, isErr
}

// --- Async Commands ---

func (m Model) tick() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(m.nextTick(), func(t time.Time) tea.Msg {
		return tickMsg{seq: seq, at: t}
	})
}

// nextTick is the view cadence, shortened so the next refresh lands when
// the first visible lot closes.
func (m Model) nextTick() time.Duration {
	d := m.cadence()
	now := m.now()
	var visible []catalog.Item
	if m.state == stateDetail {
		if it, ok := m.session.Selected(); ok {
			visible = []catalog.Item{it}
		}
	} else {
		visible = m.items()
	}
	for _, it := range visible {
		if left := it.EndsAt.Sub(now); left > 0 && left < d {
			d = left
		}
	}
	return d
}

// fetchInsight abandons any pending request and starts one for it. Only the
// latest request's answer is shown.
func (m *Model) fetchInsight(it catalog.Item) tea.Cmd {
	m.stopInsight()
	m.insightSeq++
	if m.insight == nil {
		m.insightLoading = false
		m.insightText = ""
		return nil
	}
	m.insightLoading = true

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelInsight = cancel

	seq, ins := m.insightSeq, m.insight
	id, title, price := it.ID, it.Title, it.CurrentBid
	return func() tea.Msg {
		return insightMsg{seq: seq, itemID: id, text: ins.Insight(ctx, title, price)}
	}
}

func (m *Model) stopInsight() {
	if m.cancelInsight != nil {
		m.cancelInsight()
		m.cancelInsight = nil
	}
}

// --- Message Handlers ---

func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.tickSeq {
		return m, nil
	}
	var cmd tea.Cmd
	if m.state == stateDetail {
		cmd = m.refreshSelected()
	} else if n := len(m.items()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m, tea.Batch(m.tick(), cmd)
}

func (m Model) handleInsight(msg insightMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.insightSeq || m.state != stateDetail {
		return m, nil
	}
	if it, ok := m.session.Selected(); !ok || it.ID != msg.itemID {
		return m, nil
	}
	m.stopInsight()
	m.insightLoading = false
	m.insightText = msg.text
	return m, nil
}

// --- helpers ---

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func isAmountText(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != ',' && r != '.' {
			return false
		}
	}
	return true
}
