// Package numbers implements the digit dictation game: a ladder of
// spoken numbers the player transcribes digit by digit, one level per
// digit count.
package numbers

import (
	"context"
	"math/rand"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/narongdej/thaidrill/internal/audiocache"
	"github.com/narongdej/thaidrill/internal/speech"
	"github.com/narongdej/thaidrill/internal/thai"
)

// Levels is the number of rounds in a run, one per digit count.
const Levels = 7

// Challenge is one number to transcribe.
type Challenge struct {
	Value  int    // the number the player must enter
	Digits int    // decimal digits in Value
	Text   string // Value spelled out in Thai
	Audio  []byte // synthesized pronunciation, nil if preload failed
}

// Generate draws a fresh ladder of challenges, level i holding an
// i+1 digit number. Each value is uniform over its digit range: level
// one over [0, 9], level d over [10^(d-1), 10^d - 1].
func Generate(rng *rand.Rand) []Challenge {
	challenges := make([]Challenge, Levels)
	lo := 1
	for d := 1; d <= Levels; d++ {
		var value int
		if d == 1 {
			value = rng.Intn(10)
		} else {
			value = lo + rng.Intn(lo*10-lo)
		}
		challenges[d-1] = Challenge{
			Value:  value,
			Digits: d,
			Text:   thai.Words(value),
		}
		lo *= 10
	}
	return challenges
}

// Preload synthesizes the audio for every challenge concurrently and
// waits for all of them to settle. A failed synthesis leaves that
// challenge's Audio nil; the round is still playable silently.
func Preload(ctx context.Context, cache *audiocache.Cache, challenges []Challenge) {
	var g errgroup.Group
	for i := range challenges {
		i := i
		g.Go(func() error {
			audio, err := cache.Get(ctx, challenges[i].Text, speech.NumberSpeed)
			if err != nil {
				log.Warn("Failed to preload challenge audio",
					"value", challenges[i].Value, "error", err)
				return nil
			}
			challenges[i].Audio = audio
			return nil
		})
	}
	g.Wait()
}
