// Richview shows a markup file in a window. Links are plumbed; clicking
// [action="reload"] or [action="wrap"] text runs the toolbar commands.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rjkroege/richui/action"
	"github.com/rjkroege/richui/anim"
	"github.com/rjkroege/richui/config"
	"github.com/rjkroege/richui/draw"
	"github.com/rjkroege/richui/richtext"
	"github.com/rjkroege/richui/theme"
)

var (
	configflag  = flag.String("c", "", "Configuration file (YAML)")
	varfontflag = flag.String("f", "/mnt/font/GoRegular/12a/font", "Body font")
	boldflag    = flag.String("b", "/mnt/font/GoBold/12a/font", "Bold font")
	winsize     = flag.String("W", "800x600", "Window Size (WidthxHeight)")
	execflag    = flag.Bool("x", false, "Open links with the system opener instead of the plumber")
	frameflag   = flag.Duration("t", 50*time.Millisecond, "Animation frame interval")
	darkflag    = flag.Bool("d", false, "Dark mode")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: richview [flags] file\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}
	fname := flag.Arg(0)
	theme.SetDarkMode(*darkflag)

	cfg, err := config.LoadConfiguration(*configflag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "richview: %v\n", err)
		os.Exit(1)
	}
	log := cfg.Logging.Prepare("richview")
	defer log.Sync()

	if err := run(cfg, log, fname); err != nil {
		log.Error("Program ended with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger, fname string) error {
	errch := make(chan error, 1)
	display, err := draw.NewDisplay(errch, *varfontflag, "richview "+filepath.Base(fname), *winsize)
	if err != nil {
		return fmt.Errorf("can't open display: %w", err)
	}
	if err := display.Attach(draw.Refnone); err != nil {
		return fmt.Errorf("failed to attach to window: %w", err)
	}

	fonts, err := openFonts(display.OpenFont, log, *varfontflag, *boldflag)
	if err != nil {
		return err
	}

	dir, err := filepath.Abs(filepath.Dir(fname))
	if err != nil {
		return fmt.Errorf("unable to locate %s: %w", fname, err)
	}
	var opener action.Opener = &action.PlumbOpener{Src: "richview", Dir: dir}
	if *execflag {
		opener = &action.ExecOpener{}
	}

	wake := make(chan struct{}, 1)
	opts := append(cfg.WidgetOptions(log),
		richtext.WithBaseDir(dir),
		richtext.WithOpener(opener),
		richtext.WithNotify(func() {
			select {
			case wake <- struct{}{}:
			default:
			}
		}),
	)
	v := newViewer(display, fonts, anim.NewStopwatch(), log, fname, cfg.Layout.MaxWidth, opts...)
	defer v.close()
	if err := v.load(); err != nil {
		return err
	}

	mousectl := display.InitMouse()
	ticker := time.NewTicker(*frameflag)
	defer ticker.Stop()

	v.tick()
	v.redraw()
	for {
		select {
		case <-mousectl.Resize:
			if err := display.Attach(draw.Refnone); err != nil {
				return fmt.Errorf("failed to attach to window: %w", err)
			}
		case m := <-mousectl.C:
			v.mouse(m)
		case <-wake:
			v.tick()
		case <-ticker.C:
			v.tick()
		case err := <-errch:
			return fmt.Errorf("display: %w", err)
		}
		v.redraw()
	}
}
