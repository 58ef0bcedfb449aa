package inspect

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fwaudio/fwctl-go/pkg/ctl"
)

// Formatter formats elements for display.
type Formatter struct {
	// ShowMetadata includes kind, access and range information.
	ShowMetadata bool

	// ShowDB appends the decibel value of elements with a dB range.
	ShowDB bool
}

// NewFormatter creates a Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{ShowMetadata: true, ShowDB: true}
}

// FormatValue formats every member of v.
func (f *Formatter) FormatValue(info ctl.ElemInfo, v ctl.ElemValue) string {
	var parts []string
	switch info.Kind {
	case ctl.KindBool:
		for _, b := range v.Bools {
			if b {
				parts = append(parts, "on")
			} else {
				parts = append(parts, "off")
			}
		}
	case ctl.KindInt:
		for _, n := range v.Ints {
			parts = append(parts, f.formatInt(info, n))
		}
	case ctl.KindEnum:
		for _, n := range v.Enums {
			if int(n) < len(info.Labels) {
				parts = append(parts, info.Labels[n])
			} else {
				parts = append(parts, fmt.Sprintf("#%d", n))
			}
		}
	}
	return strings.Join(parts, " ")
}

func (f *Formatter) formatInt(info ctl.ElemInfo, n int32) string {
	if slices.Contains(info.Sentinels, n) {
		return MuteWord
	}
	if !f.ShowDB || info.DB == nil {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d (%s)", n, FormatDB(info, n))
}

// FormatDB converts an integer element value to decibels using the
// element's dB range.
func FormatDB(info ctl.ElemInfo, n int32) string {
	db := info.DB
	if db == nil {
		return ""
	}
	if db.Mute && n == info.Min {
		return "-inf dB"
	}
	if info.Max == info.Min {
		return fmt.Sprintf("%.2f dB", float64(db.Min)/100)
	}
	span := float64(n-info.Min) / float64(info.Max-info.Min)
	centi := float64(db.Min) + span*float64(db.Max-db.Min)
	return fmt.Sprintf("%.2f dB", centi/100)
}

// FormatInfo formats an element description on one line.
func (f *Formatter) FormatInfo(info ctl.ElemInfo) string {
	if !f.ShowMetadata {
		return info.ID.String()
	}
	access := "ro"
	if info.Writable {
		access = "rw"
	}
	desc := fmt.Sprintf("%s %s x%d %s", info.ID, info.Kind, info.Count, access)
	switch info.Kind {
	case ctl.KindInt:
		desc += fmt.Sprintf(" [%d, %d] step %d", info.Min, info.Max, info.Step)
		if info.DB != nil {
			desc += fmt.Sprintf(" dB [%.2f, %.2f]", float64(info.DB.Min)/100, float64(info.DB.Max)/100)
		}
	case ctl.KindEnum:
		desc += " {" + strings.Join(info.Labels, ", ") + "}"
	}
	return desc
}

// FormatElement formats an element with its value.
func (f *Formatter) FormatElement(info ctl.ElemInfo, v ctl.ElemValue) string {
	return fmt.Sprintf("%s = %s", info.ID, f.FormatValue(info, v))
}
