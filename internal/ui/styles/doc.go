// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the enigma TUI and the
colored parts of the CLI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Purple - Brand accent, active tab, headers
  - Cyan - Prompts, focused fields, sender names
  - Emerald - Success states
  - Amber - Warnings, ciphertext
  - Rose - Errors

Text uses a three-step hierarchy (TextPrimary, TextSecondary, TextMuted) and
surfaces use Surface, SurfaceDim and Overlay.

Status messages always carry an ASCII shape next to the color:

	styles.RenderSuccess("Message sent")  // [OK] Message sent
	styles.RenderError("bad plugboard")   // [X] bad plugboard

# Theme System (theme.go)

	theme := styles.NewTheme()
	tab := theme.TabActive.Render("Send Message")
*/
package styles
