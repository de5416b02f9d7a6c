// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - export command.
//
// Command: export
// Short:   Write the deciphered inbox to a Markdown, JSON or HTML file
//
// The file holds plaintext and is created owner-only (0600).
//
// Examples:
//   enigma export --rotors "0:A 1:B 2:C" --plugboard "AB CD"
//   enigma export --format html --theme light --output ~/messages.html
//   enigma export --format json --stdout --ciphertext
//   enigma export --stdout --raw > messages.md
//
// Markdown sent to a terminal with --stdout is rendered with glamour;
// --raw (or a pipe) gets the Markdown source.

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/enigma-tui/internal/export"
)

// HandleExport runs the export command.
func HandleExport(ctx context.Context, env *Env, args Args) error {
	p := args.Parser()

	format, err := export.ParseFormat(p.FlagOrDefault("format", string(export.FormatMarkdown)))
	if err != nil {
		return NewValidationErrorWithExample("format", p.Flag("format"), "unsupported export format", "--format markdown|json|html")
	}
	theme := p.FlagOrDefault("theme", "dark")
	if theme != "dark" && theme != "light" {
		return NewValidationErrorWithExample("theme", theme, "unknown HTML theme", "--theme dark")
	}
	toStdout := p.BoolFlag("stdout")
	if toStdout && args.JSON {
		return NewValidationError("flag", "--stdout", "cannot be combined with --json")
	}

	key, err := env.resolveKey(p)
	if err != nil {
		return err
	}

	svc, err := env.openService(p)
	if err != nil {
		return err
	}
	defer svc.Close()

	messages, err := svc.Inbox(ctx, key)
	if err != nil {
		return err
	}

	transcript := &export.Transcript{
		Log:        svc.Log().Path(),
		ExportedAt: time.Now(),
		Messages:   messages,
	}
	if !p.BoolFlag("no-key") {
		transcript.Key = key.String()
	}

	exporter, err := export.New(format, &export.Options{
		IncludeCiphertext: p.BoolFlag("ciphertext"),
		IncludeMetadata:   true,
		Theme:             theme,
	})
	if err != nil {
		return err
	}

	if toStdout {
		content, err := exporter.Export(transcript)
		if err != nil {
			return err
		}
		if format == export.FormatMarkdown && !p.BoolFlag("raw") && isTerminalWriter(env.Stdout) {
			content = renderMarkdown(content, terminalWidth(env.Stdout), ColorsEnabled())
		}
		_, err = env.Stdout.Write(content)
		return err
	}

	output, _ := p.FirstFlag("output", "o")
	path, err := export.ToFile(transcript, exporter, output)
	if err != nil {
		return NewCommandError("export", "write file", "could not write the export", err)
	}
	env.Logger.WithField("path", path).WithField("count", len(messages)).Debug("inbox exported")

	if args.JSON {
		return NewJSONResponse("export", ExportData{
			Path:   path,
			Format: string(format),
			Count:  len(messages),
		}).Fprint(env.Stdout)
	}
	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "%s %s\n", SuccessStyle.Render(fmt.Sprintf("Exported %d message(s)", len(messages))), DimStyle.Render("("+string(format)+")"))
		fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("File:"), path)
	}
	return nil
}

// renderMarkdown renders Markdown for terminal display. The source is
// returned unchanged when rendering fails.
func renderMarkdown(content []byte, width int, color bool) []byte {
	style := glamour.WithAutoStyle()
	if !color {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return content
	}
	out, err := r.RenderBytes(content)
	if err != nil {
		return content
	}
	return out
}
