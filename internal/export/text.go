// Package export writes rendered frames out of the terminal: plain text,
// SVG snapshots and animated GIF recordings.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/metaballs/internal/render"
)

var ErrUnknownFormat = errors.New("export: unknown format")

// WriteText writes the frame rows followed by a newline.
func WriteText(w io.Writer, f *render.Frame) error {
	_, err := io.WriteString(w, f.String()+"\n")
	return err
}

// FormatFor picks an output format from a file extension.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", "":
		return "text", nil
	case ".svg":
		return "svg", nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// SaveFrame writes f to path as text or SVG, chosen by extension.
func SaveFrame(path string, f *render.Frame, ramp render.HueRamp) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if format == "svg" {
		_, err = io.WriteString(out, FrameToSVG(f, ramp, 16))
		return err
	}
	return WriteText(out, f)
}
