//go:build linux

package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux firewire character device ABI (include/uapi/linux/firewire-cdev.h).
const (
	fwCdevVersion = 4

	fwCdevEventBusReset = 0x00
	fwCdevEventResponse = 0x01

	tcodeWriteQuadletRequest = 0x0
	tcodeWriteBlockRequest   = 0x1
	tcodeReadQuadletRequest  = 0x4
	tcodeReadBlockRequest    = 0x5

	// DefaultMaxPayload bounds a single block request. Larger transfers are
	// split into consecutive requests.
	DefaultMaxPayload = 512
)

type fwCdevGetInfo struct {
	Version         uint32
	RomLength       uint32
	Rom             uint64
	BusReset        uint64
	BusResetClosure uint64
	Card            uint32
	_               uint32
}

type fwCdevEventBusResetData struct {
	Closure     uint64
	Type        uint32
	NodeID      uint32
	LocalNodeID uint32
	BmNodeID    uint32
	IrmNodeID   uint32
	RootNodeID  uint32
	Generation  uint32
	_           uint32
}

type fwCdevSendRequest struct {
	Tcode      uint32
	Length     uint32
	Offset     uint64
	Closure    uint64
	Data       uint64
	Generation uint32
	_          uint32
}

var (
	fwCdevIocGetInfo     = iowr('#', 0x00, unsafe.Sizeof(fwCdevGetInfo{}))
	fwCdevIocSendRequest = iow('#', 0x01, unsafe.Sizeof(fwCdevSendRequest{}))
)

// response event header: closure u64, type u32, rcode u32, length u32.
const responseHeaderSize = 20

// Node issues transactions to the unit behind a /dev/fw* character device.
// It is safe for concurrent use; requests are serialized.
type Node struct {
	mu         sync.Mutex
	file       *os.File
	path       string
	generation uint32
	closure    uint64
	maxPayload int
	event      []byte
	closed     bool
}

// NodeOption configures a Node.
type NodeOption func(*Node)

// WithMaxPayload sets the largest block request issued by the node.
func WithMaxPayload(n int) NodeOption {
	return func(nd *Node) {
		if n >= 4 {
			nd.maxPayload = n &^ 3
		}
	}
}

// OpenNode opens the firewire character device at path.
func OpenNode(path string, opts ...NodeOption) (*Node, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	n := &Node{
		file:       f,
		path:       path,
		maxPayload: DefaultMaxPayload,
	}
	for _, opt := range opts {
		opt(n)
	}
	n.event = make([]byte, responseHeaderSize+n.maxPayload)

	if err := n.updateInfo(); err != nil {
		f.Close()
		return nil, err
	}
	return n, nil
}

func (n *Node) updateInfo() error {
	var reset fwCdevEventBusResetData
	info := fwCdevGetInfo{
		Version:  fwCdevVersion,
		BusReset: uint64(uintptr(unsafe.Pointer(&reset))),
	}
	err := ioctl(n.file.Fd(), fwCdevIocGetInfo, unsafe.Pointer(&info))
	runtime.KeepAlive(&reset)
	if err != nil {
		return fmt.Errorf("ioctl GET_INFO on %s: %w", n.path, mapErrno(err))
	}
	n.generation = reset.Generation
	return nil
}

// Path returns the device node path.
func (n *Node) Path() string {
	return n.path
}

// Read fills buf from the node's register space at offset.
func (n *Node) Read(offset uint64, buf []byte, timeout time.Duration) error {
	return n.transfer(offset, buf, timeout, false)
}

// Write writes buf to the node's register space at offset.
func (n *Node) Write(offset uint64, buf []byte, timeout time.Duration) error {
	return n.transfer(offset, buf, timeout, true)
}

func (n *Node) transfer(offset uint64, buf []byte, timeout time.Duration, write bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrClosed
	}

	deadline := time.Now().Add(timeout)
	for pos := 0; pos < len(buf); {
		size := min(len(buf)-pos, n.maxPayload)
		if err := n.request(offset+uint64(pos), buf[pos:pos+size], deadline, write); err != nil {
			return err
		}
		pos += size
	}
	return nil
}

func (n *Node) request(offset uint64, frame []byte, deadline time.Time, write bool) error {
	n.closure++
	req := fwCdevSendRequest{
		Length:     uint32(len(frame)),
		Offset:     offset,
		Closure:    n.closure,
		Generation: n.generation,
	}
	op := "read"
	switch {
	case write && len(frame) == 4:
		req.Tcode = tcodeWriteQuadletRequest
	case write:
		req.Tcode = tcodeWriteBlockRequest
	case len(frame) == 4:
		req.Tcode = tcodeReadQuadletRequest
	default:
		req.Tcode = tcodeReadBlockRequest
	}
	if write {
		op = "write"
		req.Data = uint64(uintptr(unsafe.Pointer(&frame[0])))
	}

	err := ioctl(n.file.Fd(), fwCdevIocSendRequest, unsafe.Pointer(&req))
	runtime.KeepAlive(frame)
	if err != nil {
		return fmt.Errorf("%s request at %#012x: %w", op, offset, mapErrno(err))
	}

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrTimeout
		}
		ready, err := waitReadable(n.file.Fd(), int(remaining.Milliseconds())+1)
		if err != nil {
			return err
		}
		if !ready {
			return ErrTimeout
		}

		length, err := unix.Read(int(n.file.Fd()), n.event)
		if err != nil {
			return mapErrno(err)
		}
		ev := n.event[:length]
		if len(ev) < 12 {
			continue
		}

		switch binary.NativeEndian.Uint32(ev[8:12]) {
		case fwCdevEventBusReset:
			if len(ev) >= 36 {
				n.generation = binary.NativeEndian.Uint32(ev[32:36])
			}
		case fwCdevEventResponse:
			if len(ev) < responseHeaderSize || binary.NativeEndian.Uint64(ev[0:8]) != req.Closure {
				// Late response to a request that already timed out.
				continue
			}
			rcode := Rcode(binary.NativeEndian.Uint32(ev[12:16]))
			if rcode != RcodeComplete {
				return &RcodeError{Op: op, Offset: offset, Rcode: rcode}
			}
			if !write {
				data := ev[responseHeaderSize:]
				if len(data) < len(frame) {
					return &RcodeError{Op: op, Offset: offset, Rcode: RcodeDataError}
				}
				copy(frame, data)
			}
			return nil
		}
	}
}

// Close closes the device node. It is safe to call Close multiple times.
func (n *Node) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	return n.file.Close()
}

func mapErrno(err error) error {
	if errors.Is(err, unix.ENODEV) {
		return ErrDisconnected
	}
	return err
}

// Compile-time interface satisfaction check.
var _ Transport = (*Node)(nil)
