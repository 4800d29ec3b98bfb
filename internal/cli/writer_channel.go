package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// WriterChannel is a host channel that prints each payload on its own line.
type WriterChannel struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriterChannel(out io.Writer) *WriterChannel {
	return &WriterChannel{out: out}
}

func (channel *WriterChannel) SendData(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	channel.mu.Lock()
	defer channel.mu.Unlock()

	if _, err := fmt.Fprintf(channel.out, "%s\n", payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}
