/*
Package tapestry is a deterministic narrative state machine for short branching stories.

A story is a graph of screens (nodes). The reader moves through it by tapping to
continue or by picking one of a few choices. Two of those choices record a
persona key and a shadow key, and a later node routes dynamically to the
converging branch named by both keys. Finishing the story restarts it at the
title with a fresh epoch.

# Concept

Tapestry separates the Story Graph (data) from the Navigation Engine (state)
and the Reveal Sequencer (presentation timing). The engine never sleeps or
renders: the host shows the current snapshot, paces its reveal with the plan
returned by Plan, and reports back with RevealComplete. This keeps the engine
embeddable in a terminal player, an HTTP service or a test.

# Key Features

  - Deterministic navigation with an epoch counter that changes on every screen.
  - Stale reveal notifications are ignored, so an interrupted reveal can never
    unlock the wrong screen.
  - Story validation at load time: every edge, choice and dynamic candidate
    must resolve.
  - Stories load from a single YAML/JSON document or a Loam directory of
    markdown files.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/tapestry"
	)

	func main() {
		ctx := context.Background()
		eng, err := tapestry.New(ctx, "./my-story")
		if err != nil {
			log.Fatal(err)
		}

		for {
			snap := eng.Snapshot()
			for _, line := range snap.Node.VisibleLines() {
				fmt.Println(line)
			}
			eng.RevealComplete(ctx, snap.Epoch)

			if snap.Flags.ShowChoices {
				_ = eng.SelectChoiceAt(ctx, 0)
				continue
			}
			if err := eng.Advance(ctx); err != nil {
				log.Fatal(err)
			}
		}
	}
*/
package tapestry
