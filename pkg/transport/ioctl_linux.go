//go:build linux

package transport

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl performs a generic ioctl syscall.
func ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

const (
	iocNrbits    = 8
	iocTypebits  = 8
	iocSizebits  = 14
	iocNrshift   = 0
	iocTypeshift = iocNrshift + iocNrbits
	iocSizeshift = iocTypeshift + iocTypebits
	iocDirshift  = iocSizeshift + iocSizebits
	iocWrite     = 1
	iocRead      = 2
)

// iow builds a write-only ioctl request code.
func iow(typ, nr, size uintptr) uintptr {
	return (iocWrite << iocDirshift) | (typ << iocTypeshift) | (nr << iocNrshift) | (size << iocSizeshift)
}

// iowr builds a read-write ioctl request code.
func iowr(typ, nr, size uintptr) uintptr {
	return ((iocRead | iocWrite) << iocDirshift) | (typ << iocTypeshift) | (nr << iocNrshift) | (size << iocSizeshift)
}

// waitReadable polls fd for input. It reports false on timeout.
func waitReadable(fd uintptr, timeoutMs int) (bool, error) {
	pfd := []unix.PollFd{
		{Fd: int32(fd), Events: unix.POLLIN},
	}
	for {
		n, err := unix.Poll(pfd, timeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, nil
		}
		if pfd[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			return false, ErrDisconnected
		}
		return pfd[0].Revents&unix.POLLIN != 0, nil
	}
}
