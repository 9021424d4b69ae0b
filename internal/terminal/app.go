package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/cyberdoom/internal/genai"
)

// App runs the terminal uplink loop over an input stream and an output
// writer. Both are injected so tests can script a session.
type App struct {
	chat *Chat
	in   *bufio.Scanner
	out  io.Writer
}

// NewApp builds the uplink over the given client and I/O streams.
func NewApp(client genai.Client, in io.Reader, out io.Writer) *App {
	return &App{
		chat: NewChat(client),
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run prints the boot banner and loops: read an operator line, stream the
// reply. The loop exits on EOF, on "exit"/"quit", or when ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, bootBanner)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(a.out, "\n>> ")
		if !a.in.Scan() {
			return a.in.Err()
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Fprintln(a.out, "UPLINK TERMINATED.")
			return nil
		}

		if err := a.chat.Send(ctx, line, func(chunk string) {
			fmt.Fprint(a.out, chunk)
		}); err != nil {
			return err
		}
		// surface a transport failure recorded in the transcript
		if last := a.chat.Messages()[len(a.chat.Messages())-1]; last.Role == "system" {
			fmt.Fprintln(a.out, last.Content)
		} else {
			fmt.Fprintln(a.out)
		}
	}
}
