// Package agentdemo - session.go
// Session carries per-conversation state: the message history, the in/out
// channels, and the context-scoped identifiers attached to every LLM call.
package agentdemo

import (
	"context"
	"log/slog"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Session holds ephemeral conversation data and references to shared
// resources. One session handles one user message at a time and keeps the
// accumulated history across turns.
type Session struct {
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	inUserChannel  chan string
	outUserChannel chan Message

	llm     *LLM
	agent   *Agent
	history *MessageList

	logger *slog.Logger
}

// NewSession constructs a session with references to the shared LLM and
// agent, but isolated conversation state.
func NewSession(ctx context.Context, llm *LLM, agent *Agent) *Session {
	sessionID, err := gonanoid.New()
	if err != nil {
		panic(err)
	}
	ctx, cancel := context.WithCancel(ctx)
	ctx = context.WithValue(ctx, ContextKey("sessionID"), sessionID)
	s := &Session{
		ctx:       ctx,
		cancel:    cancel,
		closeOnce: sync.Once{},

		inUserChannel:  make(chan string),
		outUserChannel: make(chan Message),

		llm:     llm,
		agent:   agent,
		history: NewMessageList(),

		logger: slog.Default(),
	}
	go s.run()
	return s
}

func (s *Session) ID() string {
	return s.ctx.Value(ContextKey("sessionID")).(string)
}

// In submits a user message for processing.
func (s *Session) In(userMessage string) {
	s.inUserChannel <- userMessage
}

// Out retrieves the next message from the output channel, blocking until a
// message is available.
func (s *Session) Out() Message {
	return <-s.outUserChannel
}

// Close ends the session lifecycle and releases its resources.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.inUserChannel)
		close(s.outUserChannel)
	})
}

// run is the session main loop: it waits for user messages, hands them to
// the agent, and forwards the agent's messages to the caller. A turn always
// terminates with a MessageTypeEnd.
func (s *Session) run() {
	s.logger.Info("session started", "sessionID", s.ID())
	defer s.Close()
	for {
		select {
		case <-s.ctx.Done():
			return
		case userMessage, ok := <-s.inUserChannel:
			if !ok {
				return
			}
			s.history.Add(UserMessage(userMessage))

			internalChannel := make(chan Message)
			go s.agent.Run(s.ctx, s.llm, s.history, internalChannel)

			for msg := range internalChannel {
				s.outUserChannel <- msg
			}

			s.outUserChannel <- Message{Type: MessageTypeEnd}
		}
	}
}
