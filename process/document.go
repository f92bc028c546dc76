// Package process implements the check and format subcommands.
package process

import (
	"fmt"
	"strconv"
	"strings"

	"osbc/osufile"
)

const (
	utf8BOM       = "\xef\xbb\xbf"
	versionPrefix = "osu file format v"
	eventsHeader  = "[Events]"
	generalHeader = "[General]"
)

type section struct {
	// header is the bracketed section name line, empty for the preamble
	header string
	lines  []string
}

// Document is a loosely parsed beatmap or storyboard file. Only the events
// section is understood in depth, everything else is carried through
// verbatim. Line endings are normalized to "\n" on output.
type Document struct {
	Version osufile.Version

	// storyboard files carry no version header and default to the latest
	// file format version
	HasVersionHeader bool

	sections []section
}

// ParseDocument splits the file into sections and extracts the file format
// version from the preamble.
func ParseDocument(text string) (*Document, error) {
	text = strings.TrimPrefix(text, utf8BOM)

	doc := &Document{Version: osufile.LatestVersion}
	cur := &section{}
	flush := func() {
		if cur.header != "" || len(cur.lines) > 0 {
			doc.sections = append(doc.sections, *cur)
		}
	}

	lineNo := -1
	for line := range strings.Lines(text) {
		lineNo++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			flush()
			cur = &section{header: trimmed}
			continue
		}

		if cur.header == "" && !doc.HasVersionHeader {
			if rest, ok := strings.CutPrefix(trimmed, versionPrefix); ok {
				v, err := strconv.Atoi(rest)
				if err != nil {
					return nil, osufile.NewLineError(fmt.Errorf("malformed file format version %q", rest), lineNo)
				}
				if err := osufile.CheckVersion(v); err != nil {
					return nil, osufile.NewLineError(err, lineNo)
				}
				doc.Version = v
				doc.HasVersionHeader = true
			}
		}
		cur.lines = append(cur.lines, line)
	}
	flush()
	return doc, nil
}

func (d *Document) find(header string) *section {
	for i := range d.sections {
		if d.sections[i].header == header {
			return &d.sections[i]
		}
	}
	return nil
}

// EventsBody returns the raw body of the events section. The second result
// reports whether the section is present at all.
func (d *Document) EventsBody() (string, bool) {
	s := d.find(eventsHeader)
	if s == nil {
		return "", false
	}
	return strings.Join(s.lines, "\n"), true
}

// SetEventsBody replaces the body of the events section. A missing section is
// appended at the end of the document.
func (d *Document) SetEventsBody(body string) {
	var lines []string
	if body != "" {
		lines = strings.Split(body, "\n")
	}
	if s := d.find(eventsHeader); s != nil {
		s.lines = lines
		return
	}
	d.sections = append(d.sections, section{header: eventsHeader, lines: lines})
}

// SetVersion changes the file format version recorded in the preamble.
func (d *Document) SetVersion(version osufile.Version) error {
	if err := osufile.CheckVersion(version); err != nil {
		return err
	}
	d.Version = version
	if !d.HasVersionHeader {
		return nil
	}
	s := &d.sections[0]
	for i, line := range s.lines {
		if strings.HasPrefix(strings.TrimSpace(line), versionPrefix) {
			s.lines[i] = versionPrefix + strconv.Itoa(version)
			return nil
		}
	}
	return nil
}

// General returns the key/value pairs of the general section, mostly useful
// for diagnostics.
func (d *Document) General() []osufile.ColonField {
	s := d.find(generalHeader)
	if s == nil {
		return nil
	}
	return osufile.ScanColonFields(strings.Join(s.lines, "\n"))
}

// Render reassembles the whole document.
func (d *Document) Render() string {
	var sb strings.Builder
	for _, s := range d.sections {
		if s.header != "" {
			sb.WriteString(s.header)
			sb.WriteByte('\n')
		}
		for _, line := range s.lines {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
