// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package render writes typicode responses and errors as plain text.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fatih/color"

	"github.com/gogama/typicode"
)

const rule = "────────────────────────────────────────"

// Renderer writes responses to an io.Writer.
type Renderer struct {
	w       io.Writer
	noColor bool
}

// New creates a renderer writing to w. Colour is off when noColor is
// set, and otherwise follows color.NoColor, which is set when w is not
// a terminal.
func New(w io.Writer, noColor bool) *Renderer {
	return &Renderer{w: w, noColor: noColor}
}

func (r *Renderer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.noColor {
		c.DisableColor()
	}
	return c
}

// statusColor is green for 2xx, yellow for 3xx and 4xx, red otherwise.
func (r *Renderer) statusColor(status int) *color.Color {
	switch {
	case status >= 200 && status < 300:
		return r.paint(color.FgGreen, color.Bold)
	case status >= 300 && status < 500:
		return r.paint(color.FgYellow, color.Bold)
	default:
		return r.paint(color.FgRed, color.Bold)
	}
}

// Response writes the status line followed by the headers, data and
// config sections.
func (r *Renderer) Response(resp *typicode.Response) error {
	var buf bytes.Buffer
	r.statusColor(resp.Status).Fprintf(&buf, "Status: %d %s\n", resp.Status, resp.StatusText)
	for _, s := range []struct {
		title string
		v     interface{}
	}{
		{"Headers", flatHeader(resp.Header)},
		{"Data", resp.Data},
		{"Config", resp.Config},
	} {
		if err := r.section(&buf, s.title, s.v); err != nil {
			return err
		}
	}
	_, err := r.w.Write(buf.Bytes())
	return err
}

// Error writes what is known about a failed request, depending on how
// far it got. A nil err writes nothing.
func (r *Renderer) Error(err error) error {
	if err == nil {
		return nil
	}
	var buf bytes.Buffer
	red := r.paint(color.FgRed)
	e, ok := typicode.AsError(err)
	switch {
	case !ok:
		red.Fprintln(&buf, err.Error())
	case e.Kind == typicode.CancelError:
		r.paint(color.FgYellow).Fprintf(&buf, "Request Canceled %s\n", e.Message)
	case e.Response != nil:
		red.Fprintln(&buf, e.Error())
		if err := r.section(&buf, "Data", e.Response.Data); err != nil {
			return err
		}
		r.statusColor(e.Response.Status).Fprintf(&buf, "Status: %d %s\n", e.Response.Status, e.Response.StatusText)
		if err := r.section(&buf, "Headers", flatHeader(e.Response.Header)); err != nil {
			return err
		}
	case e.Request != nil:
		red.Fprintln(&buf, e.Error())
		fmt.Fprintf(&buf, "Request: %s %s\n", e.Request.Method, e.Request.URL)
	default:
		red.Fprintln(&buf, e.Error())
	}
	_, werr := r.w.Write(buf.Bytes())
	return werr
}

// Message writes one line.
func (r *Renderer) Message(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(r.w, format+"\n", args...)
	return err
}

func (r *Renderer) section(buf *bytes.Buffer, title string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("render %s: %w", strings.ToLower(title), err)
	}
	buf.WriteString("\n")
	r.paint(color.FgCyan).Fprintln(buf, title)
	buf.WriteString(rule + "\n")
	buf.Write(b)
	buf.WriteString("\n")
	return nil
}

// flatHeader renders headers the way browsers expose them: lower-case
// names and comma-joined values.
func flatHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return out
}
