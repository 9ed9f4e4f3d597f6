// Package report holds the report document whose section widths the layout
// editor resizes.
package report

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/xonecas/dvlayout/internal/resize"
)

// ErrSectionNotFound is returned when a section ID is not part of the report.
var ErrSectionNotFound = errors.New("section not found")

// SectionKind is the content type of a report section.
type SectionKind string

const (
	KindMetrics SectionKind = "metrics"
	KindBar     SectionKind = "bar"
	KindPie     SectionKind = "pie"
	KindLine    SectionKind = "line"
	KindTable   SectionKind = "table"
	KindText    SectionKind = "text"
)

// Label is the human name shown in a section's title bar.
func (k SectionKind) Label() string {
	switch k {
	case KindMetrics:
		return "Key Metrics"
	case KindBar:
		return "Bar Chart"
	case KindPie:
		return "Pie Chart"
	case KindLine:
		return "Line Chart"
	case KindTable:
		return "Data Table"
	case KindText:
		return "Text / Notes"
	}
	return string(k)
}

// Valid reports whether k is a known kind.
func (k SectionKind) Valid() bool {
	switch k {
	case KindMetrics, KindBar, KindPie, KindLine, KindTable, KindText:
		return true
	}
	return false
}

// AllowedWidths are the section widths in percent.
var AllowedWidths = resize.DefaultSnapPoints

// Section is one block of a report.
type Section struct {
	ID       uuid.UUID
	Kind     SectionKind
	Title    string
	Width    int // percent of the row
	Position int
}

// Report is an ordered list of sections.
type Report struct {
	ID       uuid.UUID
	Name     string
	Sections []Section
}

// New creates an empty report.
func New(name string) *Report {
	return &Report{ID: uuid.New(), Name: name}
}

// AddSection appends a section. The width is snapped to AllowedWidths.
func (r *Report) AddSection(kind SectionKind, title string, width int) (Section, error) {
	if !kind.Valid() {
		return Section{}, fmt.Errorf("unknown section kind %q", kind)
	}
	s := Section{
		ID:       uuid.New(),
		Kind:     kind,
		Title:    title,
		Width:    SnapWidth(float64(width)),
		Position: len(r.Sections),
	}
	r.Sections = append(r.Sections, s)
	return s, nil
}

// Section returns the section with the given ID.
func (r *Report) Section(id uuid.UUID) (Section, bool) {
	for _, s := range r.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// SetWidth stores a committed width for a section.
func (r *Report) SetWidth(id uuid.UUID, width int) error {
	for i := range r.Sections {
		if r.Sections[i].ID == id {
			r.Sections[i].Width = width
			return nil
		}
	}
	return fmt.Errorf("set width %s: %w", id, ErrSectionNotFound)
}

// SnapWidth clamps and snaps w to the allowed section widths.
func SnapWidth(w float64) int {
	lo, hi := AllowedWidths[0], AllowedWidths[len(AllowedWidths)-1]
	return int(resize.Snap(resize.Clamp(w, lo, hi), AllowedWidths))
}

// Demo returns the sample report used when the store is empty.
func Demo() *Report {
	r := New("Quarterly Sales Review")
	for _, s := range []struct {
		kind  SectionKind
		title string
		width int
	}{
		{KindMetrics, "Revenue at a glance", 100},
		{KindBar, "Revenue by region", 50},
		{KindPie, "Channel mix", 50},
		{KindLine, "Monthly trend", 75},
		{KindText, "Analyst notes", 25},
		{KindTable, "Top accounts", 100},
	} {
		_, _ = r.AddSection(s.kind, s.title, s.width)
	}
	return r
}
