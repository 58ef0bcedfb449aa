// Package unit holds the control models of the supported devices.
//
// Every model is one Kind. Detect maps the vendor and model ids of a
// configuration ROM to a Kind and New builds the ctl.Model for it. Models
// of TC Electronic Konnekt and Desktop units expose their register
// segments; M-Audio ProFire models expose the application section; LaCie,
// Griffin and Stanton models drive feature function blocks over AV/C.
package unit
