package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rjkroege/richui/markup"
	"github.com/rjkroege/richui/rich"
)

// describeStyle returns a compact form of the attributes set in s.
func describeStyle(s markup.Style) string {
	var parts []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{s.Bold, "b"},
		{s.Italic, "i"},
		{s.Underline, "u"},
		{s.Strikethrough, "s"},
	} {
		if f.on {
			parts = append(parts, f.name)
		}
	}
	if s.Headline != markup.HeadlineNone {
		parts = append(parts, s.Headline.String())
	}
	switch s.List.Kind {
	case markup.ListUnordered:
		parts = append(parts, "ul")
	case markup.ListOrdered:
		parts = append(parts, "ol")
	}
	if t := describeTrigger(s.Trigger); t != "" {
		parts = append(parts, t)
	}
	return strings.Join(parts, ",")
}

func describeTrigger(t markup.Trigger) string {
	switch t.Kind {
	case markup.TriggerAction:
		return fmt.Sprintf("action=%s", t.Name)
	case markup.TriggerURI:
		if addr := t.Address(); addr != "" {
			return fmt.Sprintf("uri=%s", addr)
		}
		return fmt.Sprintf("uri=%q (unresolved)", t.Name)
	}
	return ""
}

// dump writes a readable description of a layout.
func dump(w io.Writer, res rich.Result) error {
	ew := &errWriter{w: w}
	ew.printf("bounds %v, %d lines\n", res.Bounds, res.Lines())
	for i, e := range res.Elements {
		ew.printf("%3d line %d %-6s %v", i, e.Line, e.Kind, e.Rect)
		switch e.Kind {
		case rich.ElementImage:
			ew.printf(" asset %d", e.AssetIndex)
		case rich.ElementText, rich.ElementMarker:
			ew.printf(" %q", e.Text)
		}
		if st := describeStyle(e.Style); st != "" {
			ew.printf(" [%s]", st)
		}
		ew.printf("\n")
	}
	if len(res.Regions) > 0 {
		ew.printf("regions:\n")
		for _, r := range res.Regions {
			ew.printf("    %v %s\n", r.Rect, describeTrigger(r.Trigger))
		}
	}
	ew.printf("text:\n%s\n", res.Flatten())
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
