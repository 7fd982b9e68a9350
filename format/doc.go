// Package format names the dialects stdx understands and maps them to
// and from file suffixes and command-line flag values.
//
// # Related Packages
//
//   - github.com/marciovmf/stdx-go/ini - INI front-end
//   - github.com/marciovmf/stdx-go/tml - TML front-end
//   - github.com/marciovmf/stdx-go/encode - document rendering
package format
