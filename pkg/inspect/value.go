package inspect

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/fwaudio/fwctl-go/pkg/ctl"
)

// ErrInvalidValue is returned for arguments that do not fit the element.
var ErrInvalidValue = errors.New("invalid value")

// MuteWord is accepted in place of the mute value of volume elements.
const MuteWord = "mute"

// ParseValue parses command arguments into a value for the element. A
// single argument is applied to every member of a multi-valued element.
func ParseValue(info ctl.ElemInfo, args []string) (ctl.ElemValue, error) {
	if len(args) == 0 {
		return ctl.ElemValue{}, fmt.Errorf("%w: no value for %s", ErrInvalidValue, info.ID)
	}
	if len(args) == 1 && info.Count > 1 {
		args = slices.Repeat(args, info.Count)
	}
	if len(args) != info.Count {
		return ctl.ElemValue{}, fmt.Errorf("%w: %s takes %d values, got %d", ErrInvalidValue, info.ID, info.Count, len(args))
	}

	var v ctl.ElemValue
	for _, arg := range args {
		switch info.Kind {
		case ctl.KindBool:
			b, err := parseBool(arg)
			if err != nil {
				return ctl.ElemValue{}, err
			}
			v.Bools = append(v.Bools, b)
		case ctl.KindInt:
			n, err := parseInt(info, arg)
			if err != nil {
				return ctl.ElemValue{}, err
			}
			v.Ints = append(v.Ints, n)
		case ctl.KindEnum:
			n, err := parseEnum(info, arg)
			if err != nil {
				return ctl.ElemValue{}, err
			}
			v.Enums = append(v.Enums, n)
		}
	}
	return v, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a switch value", ErrInvalidValue, s)
}

func parseInt(info ctl.ElemInfo, s string) (int32, error) {
	if strings.EqualFold(s, MuteWord) {
		if len(info.Sentinels) > 0 {
			return info.Sentinels[0], nil
		}
		if info.DB != nil && info.DB.Mute {
			return info.Min, nil
		}
		return 0, fmt.Errorf("%w: %s has no mute value", ErrInvalidValue, info.ID)
	}
	n, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d overflows", ErrInvalidValue, n)
	}
	return int32(n), nil
}

func parseEnum(info ctl.ElemInfo, s string) (uint32, error) {
	for i, label := range info.Labels {
		if strings.EqualFold(label, s) {
			return uint32(i), nil
		}
	}
	n, err := ParseNumber(s)
	if err != nil || n < 0 || n >= int64(len(info.Labels)) {
		return 0, fmt.Errorf("%w: %q is not one of %s", ErrInvalidValue, s, strings.Join(info.Labels, ", "))
	}
	return uint32(n), nil
}
