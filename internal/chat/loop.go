package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/maxbolgarin/errm"
)

// RunLoop drives an interactive session: one line in, one reply out,
// until EOF, "/exit", or context cancellation. "/reset" clears the
// conversation but keeps the session alive.
func RunLoop(ctx context.Context, session *Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageLength+1024)

	fmt.Fprintln(out, "Chat started. Type /exit to quit, /reset to start over.")

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/reset":
			session.Reset()
			fmt.Fprintln(out, "Conversation cleared.")
			continue
		}

		reply, err := session.Send(ctx, line)
		if err != nil {
			// The session history is untouched on failure, so the user
			// can simply retry.
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}
		fmt.Fprintln(out, reply)
	}

	if err := scanner.Err(); err != nil {
		return errm.Wrap(err, "read input")
	}
	return nil
}
