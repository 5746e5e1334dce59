// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: view/animator.go
// Summary: Ease-out scroll animation between logical offsets.

package view

import (
	"math"
	"time"
)

const scrollAnimDuration = 120 * time.Millisecond

// animator interpolates the displayed scroll offset toward the logical
// one. The logical offset changes instantly; only what the reader sees
// glides. A new animation replaces a running one from its current value.
type animator struct {
	active bool
	from   int
	to     int
	start  time.Time
}

// begin starts gliding from the current displayed value to target.
func (a *animator) begin(now time.Time, displayed, target int) {
	if displayed == target {
		a.active = false
		return
	}
	a.from = displayed
	a.to = target
	a.start = now
	a.active = true
}

// stop snaps to the target immediately.
func (a *animator) stop() { a.active = false }

// value returns the displayed offset at now. Once the duration elapses it
// snaps exactly to the target and deactivates.
func (a *animator) value(now time.Time, target int) int {
	if !a.active {
		return target
	}
	if a.to != target {
		// logical offset moved under us; restart from where we are
		a.begin(now, a.value(now, a.to), target)
		if !a.active {
			return target
		}
	}
	t := float64(now.Sub(a.start)) / float64(scrollAnimDuration)
	if t >= 1 {
		a.active = false
		return a.to
	}
	eased := 1 - math.Pow(1-t, 3)
	return a.from + int(math.Round(eased*float64(a.to-a.from)))
}
