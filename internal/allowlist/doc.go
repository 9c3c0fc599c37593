// Package allowlist writes classified hosts to flat text files.
//
// Three files are produced on every successful run:
//
//   - urls.txt: normalized non-IP URLs, sorted lexicographically
//   - ips.txt: IPv4 addresses, sorted numerically
//   - urls-pihole.txt: lowercased FQDNs, sorted lexicographically
//
// Lines are joined by "\n" with no trailing newline. Files are replaced
// atomically: content goes to a temporary sibling that is then renamed over
// the destination, so a reader never sees a half-written allowlist.
//
// When there is neither a URL nor an IP to write, Write returns
// ErrEmptyAllowlist and leaves any existing files untouched.
package allowlist
