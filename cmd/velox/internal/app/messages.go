// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Jared Redh. All rights reserved.

package app

import "time"

// --- Tea messages ---

type tickMsg struct {
	seq int
	at  time.Time
}

type insightMsg struct {
	seq    int
	itemID string
	text   string
}
