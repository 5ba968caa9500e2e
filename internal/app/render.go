package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"go.trai.ch/arcstr/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// writeReport encodes v in the structured formats and defers to text for plain output.
func writeReport(w io.Writer, format domain.Format, v any, text func(io.Writer) error) error {
	switch format {
	case domain.FormatText:
		return text(w)
	case domain.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case domain.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case domain.FormatCBOR:
		return cbor.NewEncoder(w).Encode(v)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "no writer for format"), "format", string(format))
	}
}

func writeLexText(w io.Writer, r domain.LexReport) error {
	for _, tk := range r.Tokens {
		if _, err := fmt.Fprintf(w, "%6d  %-7s  %s\n", tk.Offset, tk.Kind, strconv.Quote(tk.Text.String())); err != nil {
			return err
		}
	}

	s := r.Summary
	if _, err := fmt.Fprintf(w, "\n%s: %d bytes, %d tokens, digest %s, %d references while lexed\n",
		s.Path, s.Bytes, s.Tokens, s.Digest, s.BaseRefs); err != nil {
		return err
	}
	for _, kind := range sortedKeys(s.Kinds) {
		if _, err := fmt.Fprintf(w, "  %-7s %d\n", kind, s.Kinds[kind]); err != nil {
			return err
		}
	}
	return nil
}

func writeStressText(w io.Writer, r domain.StressReport) error {
	_, err := fmt.Fprintf(w,
		"goroutines:   %d\niterations:   %d\npayload:      %d bytes\npeak count:   %d\nfinal count:  %d\nallocs/frees: %d/%d\nlive blocks:  %d\n",
		r.Goroutines, r.Iterations, r.PayloadBytes, r.PeakCount, r.FinalCount, r.Allocs, r.Frees, r.LiveBlocks)
	return err
}
