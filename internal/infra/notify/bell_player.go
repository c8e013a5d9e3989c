package notify

import (
	"fmt"
	"io"
	"sync"
)

// BellPlayer emits the terminal bell as the audible alert. Writers that
// have been closed report the error so the service can arm its
// retry-on-gesture path.
type BellPlayer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewBellPlayer(out io.Writer) *BellPlayer {
	return &BellPlayer{
		out: out,
	}
}

func (p *BellPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := fmt.Fprint(p.out, "\a"); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}

	return nil
}

func (p *BellPlayer) Close() error {
	return nil
}
