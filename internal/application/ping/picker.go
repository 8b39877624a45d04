package ping

import (
	"math/rand/v2"
	"sync"

	"github.com/doeshing/pingbot/internal/ports"
)

// RandomPicker draws prompts uniformly at random with replacement. It is safe
// for concurrent use because a manual ping may race a scheduled one.
type RandomPicker struct {
	mu      sync.Mutex
	prompts []string
	rng     *rand.Rand
}

// NewRandomPicker builds a picker over prompts. A nil rng uses a randomly
// seeded PCG source.
func NewRandomPicker(prompts []string, rng *rand.Rand) *RandomPicker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomPicker{prompts: append([]string(nil), prompts...), rng: rng}
}

// Pick implements ports.PromptPicker.
func (p *RandomPicker) Pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.prompts) == 0 {
		return ""
	}
	return p.prompts[p.rng.IntN(len(p.prompts))]
}

var _ ports.PromptPicker = (*RandomPicker)(nil)
