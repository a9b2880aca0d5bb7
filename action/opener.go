package action

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"9fans.net/go/plan9"
	"9fans.net/go/plumb"
)

// Opener hands a URI to something outside the program.
type Opener interface {
	Open(ctx context.Context, uri string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, uri string) error

func (f OpenerFunc) Open(ctx context.Context, uri string) error {
	return f(ctx, uri)
}

// PlumbOpener sends URIs to the plumber's send port.
type PlumbOpener struct {
	// Src names the sending program in plumb messages.
	Src string
	// Dir is the working directory sent with each message.
	Dir string
}

// Open plumbs uri as text.
func (p *PlumbOpener) Open(ctx context.Context, uri string) error {
	fid, err := plumb.Open("send", plan9.OWRITE)
	if err != nil {
		return fmt.Errorf("can't open plumber: %w", err)
	}
	defer fid.Close()

	m := &plumb.Message{
		Src:  p.Src,
		Dst:  "",
		Dir:  p.Dir,
		Type: "text",
		Data: []byte(uri),
	}
	if err := m.Send(fid); err != nil {
		return fmt.Errorf("can't plumb %q: %w", uri, err)
	}
	return nil
}

// ExecOpener runs the platform's "open" command on URIs.
type ExecOpener struct {
	// Command overrides the platform default.
	Command string
}

// Open starts the command without waiting for it to finish.
func (e *ExecOpener) Open(ctx context.Context, uri string) error {
	name := e.Command
	args := []string{uri}
	if name == "" {
		switch runtime.GOOS {
		case "darwin":
			name = "open"
		case "windows":
			name = "rundll32"
			args = []string{"url.dll,FileProtocolHandler", uri}
		default:
			name = "xdg-open"
		}
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("can't run %s: %w", name, err)
	}
	go cmd.Wait()
	return nil
}
