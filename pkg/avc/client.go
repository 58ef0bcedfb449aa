package avc

import (
	"fmt"
	"time"
)

// FCP sends one AV/C command and returns the final response frame.
// Implementations wait out INTERIM responses and never return one.
type FCP interface {
	Transaction(cmd []byte, timeout time.Duration) ([]byte, error)
}

// Client issues feature function block commands to one subunit.
type Client struct {
	fcp  FCP
	addr uint8
}

// NewClient returns a client for the first audio subunit.
func NewClient(fcp FCP) *Client {
	return &Client{fcp: fcp, addr: AudioSubunit0}
}

// Status queries op and fills op.Ctl from the response.
func (c *Client) Status(op *AudioFeature, timeout time.Duration) error {
	return c.transact(CTypeStatus, RCodeImplemented, op, true, timeout)
}

// Control applies op.
func (c *Client) Control(op *AudioFeature, timeout time.Duration) error {
	return c.transact(CTypeControl, RCodeAccepted, op, false, timeout)
}

func (c *Client) transact(ctype CType, want RCode, op *AudioFeature, decode bool, timeout time.Duration) error {
	resp, err := c.fcp.Transaction(op.Frame(ctype, c.addr), timeout)
	if err != nil {
		return fmt.Errorf("avc: fb %d: %w", op.FBID, err)
	}
	if len(resp) == 0 {
		return decodeErr(resp, "empty frame")
	}

	switch code := RCode(resp[0]); code {
	case want:
	case RCodeRejected:
		return fmt.Errorf("avc: fb %d selector %#02x: %w", op.FBID, op.Ctl.Selector(), ErrRejected)
	case RCodeNotImplemented:
		return fmt.Errorf("avc: fb %d selector %#02x: %w", op.FBID, op.Ctl.Selector(), ErrNotImplemented)
	default:
		return decodeErr(resp, "response %s to %#02x command", code, uint8(ctype))
	}

	return op.parseResponse(resp, c.addr, decode)
}

// ReadVolume returns the current volume of one channel.
func (c *Client) ReadVolume(fbID uint8, ch AudioCh, timeout time.Duration) (int16, error) {
	op := NewVolume(fbID, AttrCurrent, ch, -1)
	if err := c.Status(op, timeout); err != nil {
		return 0, err
	}
	return op.Ctl.(*VolumeCtl).Values[0], nil
}

// WriteVolume sets the current volume of one channel.
func (c *Client) WriteVolume(fbID uint8, ch AudioCh, v int16, timeout time.Duration) error {
	return c.Control(NewVolume(fbID, AttrCurrent, ch, v), timeout)
}

// ReadMute returns the current mute switch of one channel.
func (c *Client) ReadMute(fbID uint8, ch AudioCh, timeout time.Duration) (bool, error) {
	op := NewMute(fbID, AttrCurrent, ch, false)
	if err := c.Status(op, timeout); err != nil {
		return false, err
	}
	return op.Ctl.(*MuteCtl).Values[0], nil
}

// WriteMute sets the mute switch of one channel.
func (c *Client) WriteMute(fbID uint8, ch AudioCh, on bool, timeout time.Duration) error {
	return c.Control(NewMute(fbID, AttrCurrent, ch, on), timeout)
}

// VolumeRange is the range a volume control accepts.
type VolumeRange struct {
	Min  int16
	Max  int16
	Step int16
}

// ReadVolumeRange queries the minimum, maximum and resolution attributes.
func (c *Client) ReadVolumeRange(fbID uint8, ch AudioCh, timeout time.Duration) (VolumeRange, error) {
	var r VolumeRange
	for _, q := range []struct {
		attr CtlAttr
		dst  *int16
	}{
		{AttrMinimum, &r.Min},
		{AttrMaximum, &r.Max},
		{AttrResolution, &r.Step},
	} {
		op := NewVolume(fbID, q.attr, ch, -1)
		if err := c.Status(op, timeout); err != nil {
			return VolumeRange{}, err
		}
		*q.dst = op.Ctl.(*VolumeCtl).Values[0]
	}
	return r, nil
}
