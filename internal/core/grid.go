package core

import "fmt"

// SwapBuffer holds two equal-length buffers: a stable read view and a
// mutable write view. Swap exchanges the two roles without copying.
type SwapBuffer[T any] struct {
	read  []T
	write []T
}

// NewSwapBuffer allocates both views with n zero values.
func NewSwapBuffer[T any](n int) *SwapBuffer[T] {
	if n < 0 {
		n = 0
	}
	return &SwapBuffer[T]{read: make([]T, n), write: make([]T, n)}
}

// SwapBufferFrom seeds both views with copies of base.
func SwapBufferFrom[T any](base []T) *SwapBuffer[T] {
	b := &SwapBuffer[T]{read: make([]T, len(base)), write: make([]T, len(base))}
	copy(b.read, base)
	copy(b.write, base)
	return b
}

// Len returns the number of elements in each view.
func (b *SwapBuffer[T]) Len() int { return len(b.read) }

// Read exposes the buffer that holds the last completed tick.
func (b *SwapBuffer[T]) Read() []T { return b.read }

// Write exposes the buffer mutated during the current tick.
func (b *SwapBuffer[T]) Write() []T { return b.write }

// Sync resets the write view to a full copy of the read view.
func (b *SwapBuffer[T]) Sync() {
	b.mustMatch()
	copy(b.write, b.read)
}

// Swap makes the write view readable and recycles the old read view.
func (b *SwapBuffer[T]) Swap() {
	b.mustMatch()
	b.read, b.write = b.write, b.read
}

func (b *SwapBuffer[T]) mustMatch() {
	if len(b.read) != len(b.write) {
		panic(fmt.Sprintf("core: swap buffer length mismatch (read %d, write %d)", len(b.read), len(b.write)))
	}
}
