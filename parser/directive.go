package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/deckdown/model"
)

// namedColors is the fixed table of recognized color names
var namedColors = map[string]model.Color{
	"black":   {R: 0x00, G: 0x00, B: 0x00},
	"white":   {R: 0xff, G: 0xff, B: 0xff},
	"red":     {R: 0xff, G: 0x00, B: 0x00},
	"green":   {R: 0x00, G: 0x80, B: 0x00},
	"blue":    {R: 0x00, G: 0x00, B: 0xff},
	"yellow":  {R: 0xff, G: 0xff, B: 0x00},
	"orange":  {R: 0xff, G: 0xa5, B: 0x00},
	"purple":  {R: 0x80, G: 0x00, B: 0x80},
	"pink":    {R: 0xff, G: 0xc0, B: 0xcb},
	"brown":   {R: 0xa5, G: 0x2a, B: 0x2a},
	"gray":    {R: 0x80, G: 0x80, B: 0x80},
	"grey":    {R: 0x80, G: 0x80, B: 0x80},
	"silver":  {R: 0xc0, G: 0xc0, B: 0xc0},
	"gold":    {R: 0xff, G: 0xd7, B: 0x00},
	"aqua":    {R: 0x00, G: 0xff, B: 0xff},
	"teal":    {R: 0x00, G: 0x80, B: 0x80},
	"navy":    {R: 0x00, G: 0x00, B: 0x80},
	"olive":   {R: 0x80, G: 0x80, B: 0x00},
	"maroon":  {R: 0x80, G: 0x00, B: 0x00},
	"lime":    {R: 0x00, G: 0xff, B: 0x00},
	"fuchsia": {R: 0xff, G: 0x00, B: 0xff},
}

var (
	bracketPattern   = regexp.MustCompile(`\[([^\[\]]*)\]`)
	directivePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*(=[^\[\]]*)?$`)
	hexColorPattern  = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	urlValuePattern  = regexp.MustCompile(`^url\(\s*['"]?([^'"()]*)['"]?\s*\)$`)
	borderPattern    = regexp.MustCompile(`^(\d+(?:\.\d+)?)(?:pt|px)?\s+(solid|dashed|dotted|double)\s+(.+)$`)
)

// ParseDirectiveString parses a string that consists solely of directive
// brackets, such as the remainder of a fence line or a table's directive
// cell. Unknown keys and stray text produce warnings, never errors;
// malformed values of known keys are validation errors.
func ParseDirectiveString(src string) (model.Directives, []model.Warning, error) {
	var d model.Directives
	var warnings []model.Warning

	stray := strings.TrimSpace(bracketPattern.ReplaceAllString(src, " "))
	if stray != "" {
		warnings = append(warnings, directiveWarning("ignoring stray text %q", stray))
	}

	for _, m := range bracketPattern.FindAllStringSubmatch(src, -1) {
		body := strings.TrimSpace(m[1])
		if body == "" {
			continue
		}
		if !directivePattern.MatchString(body) {
			warnings = append(warnings, directiveWarning("ignoring malformed directive %q", body))
			continue
		}
		key, value, hasValue := strings.Cut(body, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		known, err := applyDirective(&d, key, value, hasValue)
		if err != nil {
			return model.Directives{}, warnings, err
		}
		if !known {
			warnings = append(warnings, directiveWarning("unknown directive %q", key))
		}
	}
	return d, warnings, nil
}

// TrimTrailingDirectives splits the trailing directive brackets off a
// content line, returning the remaining text and the directive source.
// Brackets that are markdown (link labels, footnotes) are left in place:
// only a trailing run of [key=value] / [flag] groups is consumed.
func TrimTrailingDirectives(line string) (text, directives string) {
	rest := strings.TrimRight(line, " \t")
	cut := len(rest)

	for strings.HasSuffix(rest[:cut], "]") {
		open := strings.LastIndexByte(rest[:cut-1], '[')
		if open < 0 {
			break
		}
		body := rest[open+1 : cut-1]
		if strings.ContainsAny(body, "[]") || !directivePattern.MatchString(strings.TrimSpace(body)) {
			break
		}
		cut = len(strings.TrimRight(rest[:open], " \t"))
	}
	if cut == len(rest) {
		return line, ""
	}
	return rest[:cut], rest[cut:]
}

// IsDirectiveLine reports whether a line consists solely of directive
// brackets, making it part of the slide-base layer when it appears at the
// top of a slide body.
func IsDirectiveLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return false
	}
	stripped := strings.TrimSpace(bracketPattern.ReplaceAllString(trimmed, ""))
	if stripped != "" {
		return false
	}
	for _, m := range bracketPattern.FindAllStringSubmatch(trimmed, -1) {
		if !directivePattern.MatchString(strings.TrimSpace(m[1])) {
			return false
		}
	}
	return true
}

// applyDirective coerces one key=value pair into the typed record. The
// returned bool reports whether the key is a known directive.
func applyDirective(d *model.Directives, key, value string, hasValue bool) (bool, error) {
	switch key {
	case "width":
		dim, err := parseDimension(value)
		if err != nil {
			return true, err
		}
		d.Width = &dim
	case "height":
		dim, err := parseDimension(value)
		if err != nil {
			return true, err
		}
		d.Height = &dim
	case "padding":
		sp, err := parseSpacing(value)
		if err != nil {
			return true, err
		}
		d.Padding = &sp
	case "margin":
		sp, err := parseSpacing(value)
		if err != nil {
			return true, err
		}
		d.Margin = &sp
	case "gap":
		g, err := parsePoints(value)
		if err != nil {
			return true, err
		}
		d.Gap = &g
	case "fontsize":
		f, err := parsePoints(value)
		if err != nil {
			return true, err
		}
		d.FontSize = &f
	case "align":
		a, err := parseHAlign(value)
		if err != nil {
			return true, err
		}
		d.Align = a
	case "valign":
		a, err := parseVAlign(value)
		if err != nil {
			return true, err
		}
		d.VAlign = a
	case "color":
		c, err := parseColor(value)
		if err != nil {
			return true, err
		}
		d.Color = &c
	case "background":
		bg, err := parseBackground(value)
		if err != nil {
			return true, err
		}
		d.Background = &bg
	case "border":
		b, err := parseBorder(value)
		if err != nil {
			return true, err
		}
		d.Border = &b
	case "bold", "italic", "fill":
		if hasValue {
			return true, validationErrorf(0, "directive", "flag %q takes no value", key)
		}
		switch key {
		case "bold":
			d.Bold = true
		case "italic":
			d.Italic = true
		case "fill":
			d.Fill = true
		}
	default:
		return false, nil
	}
	return true, nil
}

// parseDimension coerces a width/height value: bare numbers are points,
// "n%" is a fraction of the parent extent, and "a/b" is an exact fraction.
func parseDimension(value string) (model.Dimension, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return model.Dimension{}, validationErrorf(0, "directive", "empty dimension value")
	}

	if num, denom, ok := strings.Cut(value, "/"); ok {
		n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, err2 := strconv.ParseFloat(strings.TrimSpace(denom), 64)
		if err1 != nil || err2 != nil {
			return model.Dimension{}, validationErrorf(0, "directive", "invalid fraction %q", value)
		}
		if d == 0 {
			return model.Dimension{}, validationErrorf(0, "directive", "division by zero in %q", value)
		}
		return model.Fraction(n / d), nil
	}

	if strings.HasSuffix(value, "%") {
		p, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(value, "%")), 64)
		if err != nil {
			return model.Dimension{}, validationErrorf(0, "directive", "invalid percentage %q", value)
		}
		return model.Fraction(p / 100), nil
	}

	p, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return model.Dimension{}, validationErrorf(0, "directive", "invalid dimension %q", value)
	}
	if p < 0 {
		return model.Dimension{}, validationErrorf(0, "directive", "negative dimension %q", value)
	}
	return model.Points(p), nil
}

// parseSpacing accepts 1, 2, or 4 comma-separated point values mapped to
// (all), (vertical, horizontal), and (top, right, bottom, left).
func parseSpacing(value string) (model.Spacing, error) {
	parts := strings.Split(value, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.Spacing{}, validationErrorf(0, "directive", "invalid spacing %q", value)
		}
		vals = append(vals, v)
	}
	switch len(vals) {
	case 1:
		return model.UniformSpacing(vals[0]), nil
	case 2:
		return model.Spacing{Top: vals[0], Bottom: vals[0], Left: vals[1], Right: vals[1]}, nil
	case 4:
		return model.Spacing{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	default:
		return model.Spacing{}, validationErrorf(0, "directive", "spacing takes 1, 2, or 4 values, got %d", len(vals))
	}
}

func parsePoints(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || v < 0 {
		return 0, validationErrorf(0, "directive", "invalid point value %q", value)
	}
	return v, nil
}

func parseHAlign(value string) (model.HAlign, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left", "start":
		return model.AlignLeft, nil
	case "center", "centered":
		return model.AlignCenter, nil
	case "right", "end":
		return model.AlignRight, nil
	case "justify", "justified":
		return model.AlignJustify, nil
	default:
		return model.AlignDefault, validationErrorf(0, "directive", "invalid align value %q", value)
	}
}

func parseVAlign(value string) (model.VAlign, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "top":
		return model.VAlignTop, nil
	case "middle", "center":
		return model.VAlignMiddle, nil
	case "bottom":
		return model.VAlignBottom, nil
	default:
		return model.VAlignDefault, validationErrorf(0, "directive", "invalid valign value %q", value)
	}
}

// parseColor accepts #hex (3 or 6 digits) and the named-color table
func parseColor(value string) (model.Color, error) {
	value = strings.TrimSpace(value)
	if hexColorPattern.MatchString(value) {
		return hexToColor(value), nil
	}
	if c, ok := namedColors[strings.ToLower(value)]; ok {
		return c, nil
	}
	return model.Color{}, validationErrorf(0, "directive", "invalid color %q", value)
}

func hexToColor(hex string) model.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	var c model.Color
	fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	return c
}

// parseBackground accepts a color value or url(...) image reference
func parseBackground(value string) (model.Background, error) {
	value = strings.TrimSpace(value)
	if m := urlValuePattern.FindStringSubmatch(value); m != nil {
		url := strings.TrimSpace(m[1])
		if url == "" {
			return model.Background{}, validationErrorf(0, "directive", "empty background url")
		}
		return model.Background{Kind: model.BackgroundImage, URL: url}, nil
	}
	c, err := parseColor(value)
	if err != nil {
		return model.Background{}, err
	}
	return model.Background{Kind: model.BackgroundColor, Color: c}, nil
}

func parseBorder(value string) (model.Border, error) {
	m := borderPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return model.Border{}, validationErrorf(0, "directive", "invalid border %q", value)
	}
	w, _ := strconv.ParseFloat(m[1], 64)
	b := model.Border{Width: w, Style: strings.ToLower(m[2])}
	if c, err := parseColor(m[3]); err == nil {
		b.Color = &c
	} else {
		return model.Border{}, err
	}
	return b, nil
}

func directiveWarning(format string, args ...any) model.Warning {
	return model.Warning{Slide: -1, Context: "directive", Message: fmt.Sprintf(format, args...)}
}
