// Package transport provides the FireWire transaction boundary used by the
// register protocol.
//
// The protocol layer only needs three things from the bus:
//   - read N bytes at an offset with a timeout
//   - write N bytes at an offset with a timeout
//   - a stream of 32-bit notification masks pushed by the device
//
// Transport and Notifier capture exactly that. Implementations:
//   - Node: a Linux firewire character device (/dev/fw*), issuing block
//     and quadlet requests through the cdev ioctl interface
//   - HwdepNotifier: DICE notification events read from an ALSA hwdep
//     device (/dev/snd/hwC*D0)
//   - Memory: an in-process register space for tests and simulation
//   - Traced: a decorator recording every transaction to a protocol log
//
// # Errors
//
// Failures are reported with the sentinels ErrTimeout, ErrBusReset and
// ErrDisconnected, or with an *RcodeError carrying the IEEE 1394 response
// code. An *RcodeError matches ErrTimeout for cancelled split transactions
// and ErrBusReset for generation mismatches, so callers can use errors.Is
// without knowing the rcode table.
package transport
