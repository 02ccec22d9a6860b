package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Farewell is printed whenever a session ends, whether by exit keyword,
// end of input, or an interrupt.
const Farewell = "Goodbye! Come back any time."

const intro = "Hi, I'm sidekick. Ask me anything, or say \"exit\" to leave."

// exitKeywords end the session when typed as the whole line, any case.
var exitKeywords = map[string]struct{}{
	"exit":    {},
	"quit":    {},
	"bye":     {},
	"goodbye": {},
}

// Session runs the read-eval-print loop around a Responder.
type Session struct {
	responder *Responder
	in        io.Reader
	out       io.Writer
}

func NewSession(r *Responder, in io.Reader, out io.Writer) *Session {
	return &Session{responder: r, in: in, out: out}
}

// Run reads one line per turn until an exit keyword or end of input.
// Lookup failures never end the loop; they come back as ordinary replies.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, intro)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintf(s.out, "\nBot: %s\n", Farewell)
			return scanner.Err()
		}
		line := scanner.Text()

		if isExit(line) {
			fmt.Fprintf(s.out, "Bot: %s\n", Farewell)
			return nil
		}

		start := time.Now()
		reply := s.responder.Respond(ctx, line)
		fmt.Fprintf(s.out, "Bot: %s\n(lookup: %.2fs)\n", reply, time.Since(start).Seconds())
	}
}

func isExit(line string) bool {
	_, ok := exitKeywords[strings.ToLower(strings.TrimSpace(line))]
	return ok
}
