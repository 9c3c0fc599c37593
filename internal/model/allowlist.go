package model

// Allowlist holds the three output collections of a run.
// The collections are disjoint in content type: URLs never contain bare
// IPv4 hosts, and FQDNs are always lowercase.
type Allowlist struct {
	// URLs are the normalized non-IP URLs in their original casing.
	URLs *Set

	// IPs are dotted-quad IPv4 address strings.
	IPs *Set

	// FQDNs are the lowercased fully-qualified domain names.
	FQDNs *Set
}

// NewAllowlist creates an Allowlist with empty collections.
func NewAllowlist() *Allowlist {
	return &Allowlist{
		URLs:  NewSet(),
		IPs:   NewSet(),
		FQDNs: NewSet(),
	}
}

// IsEmpty reports whether there is nothing to write: no non-IP URL and no IP.
// FQDNs are only ever added together with a URL, so they are not consulted.
func (a *Allowlist) IsEmpty() bool {
	return a == nil || (a.URLs.Len() == 0 && a.IPs.Len() == 0)
}
