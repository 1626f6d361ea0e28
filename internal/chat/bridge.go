package chat

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivermillard/mention/internal/types"
)

type candidatesMsg struct {
	set types.CandidateSet
}

type focusMsg struct{}

// presenterBridge turns controller callbacks, which arrive on timer and fetch
// goroutines, into tea messages read by the update loop.
type presenterBridge struct {
	msgs chan tea.Msg
	done chan struct{}
	once sync.Once
}

func newPresenterBridge() *presenterBridge {
	return &presenterBridge{
		msgs: make(chan tea.Msg, 64),
		done: make(chan struct{}),
	}
}

func (b *presenterBridge) ShowCandidates(set types.CandidateSet) {
	b.send(candidatesMsg{set: set})
}

func (b *presenterBridge) RequestFocus() {
	b.send(focusMsg{})
}

func (b *presenterBridge) send(msg tea.Msg) {
	select {
	case b.msgs <- msg:
	case <-b.done:
	}
}

// listen waits for the next controller message. It must be re-issued after
// each message is handled.
func (b *presenterBridge) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.msgs:
			return msg
		case <-b.done:
			return nil
		}
	}
}

func (b *presenterBridge) close() {
	b.once.Do(func() { close(b.done) })
}
