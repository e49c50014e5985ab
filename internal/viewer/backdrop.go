package viewer

import "sync"

// Backdrop is the ambient page background shared by every view of a
// browsing context. Apply hands out a release func that restores whatever
// was active before; handles must be released in reverse order of Apply.
type Backdrop struct {
	mu      sync.Mutex
	current string
}

func NewBackdrop(initial string) *Backdrop {
	return &Backdrop{current: initial}
}

// Current is the background reference in effect, "" for none
func (b *Backdrop) Current() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Apply makes ref the ambient background. Calling the returned func more
// than once has no further effect.
func (b *Backdrop) Apply(ref string) (release func()) {
	b.mu.Lock()
	prior := b.current
	b.current = ref
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			b.current = prior
			b.mu.Unlock()
		})
	}
}
