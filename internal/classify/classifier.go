package classify

import (
	"net/netip"
	"regexp"
	"strings"

	"github.com/miekg/dns"
	"github.com/weppos/publicsuffix-go/publicsuffix"
	"golang.org/x/net/idna"

	"github.com/nao1215/eolallowlist/internal/model"
	"github.com/nao1215/eolallowlist/internal/normalize"
)

// Kind is the outcome of classifying a link.
type Kind int

const (
	// Discard means the link has no usable host.
	Discard Kind = iota
	// IPv4 means the host is a dotted-quad IPv4 literal.
	IPv4
	// Domain means the host is a fully-qualified domain name.
	Domain
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case IPv4:
		return "ipv4"
	case Domain:
		return "domain"
	default:
		return "discard"
	}
}

// Result is the classification of a single link.
type Result struct {
	// Kind is the outcome.
	Kind Kind

	// URL is the link that was classified.
	URL string

	// Value is the IPv4 address for IPv4 results and the lowercased FQDN for
	// Domain results. It is empty for Discard.
	Value string
}

// Parts is a host split along public suffix boundaries.
type Parts struct {
	Subdomain string
	Domain    string
	Suffix    string
}

// FQDN joins the non-empty parts with dots. It returns "" unless both the
// registrable domain and the suffix are present.
func (p Parts) FQDN() string {
	if p.Domain == "" || p.Suffix == "" {
		return ""
	}
	labels := make([]string, 0, 3)
	if p.Subdomain != "" {
		labels = append(labels, p.Subdomain)
	}
	labels = append(labels, p.Domain, p.Suffix)
	return strings.Join(labels, ".")
}

// Classifier classifies links against a public suffix list.
type Classifier struct {
	list    *publicsuffix.List
	private bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithPrivateDomains makes the private section of the list (e.g.
// "github.io") count as public suffixes.
func WithPrivateDomains(enabled bool) Option {
	return func(c *Classifier) {
		c.private = enabled
	}
}

// WithList replaces the embedded public suffix list.
func WithList(list *publicsuffix.List) Option {
	return func(c *Classifier) {
		if list != nil {
			c.list = list
		}
	}
}

// New creates a Classifier backed by the list embedded in publicsuffix-go.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		list: publicsuffix.DefaultList,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// schemePattern matches a URL scheme prefix or a scheme-relative "//".
var schemePattern = regexp.MustCompile(`^(?:[A-Za-z][A-Za-z0-9+.\-]*:)?//`)

// Host extracts the host part of a link. The link may or may not carry a
// scheme. Userinfo, port, IPv6 brackets and a trailing dot are dropped.
func Host(link string) string {
	s := strings.TrimSpace(link)
	s = schemePattern.ReplaceAllString(s, "")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if strings.HasPrefix(s, "[") {
		if i := strings.Index(s, "]"); i >= 0 {
			return s[1:i]
		}
		return strings.TrimPrefix(s, "[")
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, ".")
}

// Split splits the host of link into subdomain, registrable domain and
// suffix. An IPv4 host is returned whole as the domain. A host whose suffix
// is not on the list yields its last label as the domain and no suffix.
func (c *Classifier) Split(link string) Parts {
	host := Host(link)
	if host == "" {
		return Parts{}
	}
	if isIPv4(host) {
		return Parts{Domain: host}
	}

	name, ok := toASCII(host)
	if !ok {
		return Parts{}
	}

	opts := &publicsuffix.FindOptions{IgnorePrivate: !c.private}
	dn, err := publicsuffix.ParseFromListWithOptions(c.list, name, opts)
	if err == nil {
		return Parts{Subdomain: dn.TRD, Domain: dn.SLD, Suffix: dn.TLD}
	}

	// The name is either a public suffix itself or has no known suffix.
	if c.list.Find(name, opts) != nil {
		return Parts{Suffix: name}
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		return Parts{Subdomain: name[:i], Domain: name[i+1:]}
	}
	return Parts{Domain: name}
}

// Classify classifies a normalized link.
func (c *Classifier) Classify(link string) Result {
	res := Result{URL: link}
	parts := c.Split(link)
	fqdn := parts.FQDN()

	switch {
	case parts.Domain != "" && fqdn == "":
		if isIPv4(parts.Domain) {
			res.Kind = IPv4
			res.Value = parts.Domain
		}
	case fqdn != "":
		if validDomainName(fqdn) {
			res.Kind = Domain
			res.Value = fqdn
		}
	}
	return res
}

// Build normalizes and classifies every link into a new Allowlist. It returns
// the list together with the number of discarded links.
func (c *Classifier) Build(links []string) (*model.Allowlist, int) {
	list := model.NewAllowlist()
	discarded := 0

	for _, raw := range links {
		link := normalize.URL(raw)
		if link == "" {
			discarded++
			continue
		}

		res := c.Classify(link)
		switch res.Kind {
		case IPv4:
			list.IPs.Add(res.Value)
		case Domain:
			list.URLs.Add(link)
			list.FQDNs.Add(res.Value)
		default:
			discarded++
		}
	}
	return list, discarded
}

// isIPv4 reports whether s is a strict dotted-quad IPv4 address.
func isIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

// toASCII lowercases an ASCII host and converts an internationalized host to
// its punycode form.
func toASCII(host string) (string, bool) {
	for i := 0; i < len(host); i++ {
		if host[i] >= 0x80 {
			ascii, err := idna.Lookup.ToASCII(host)
			if err != nil {
				return "", false
			}
			return ascii, true
		}
	}
	return strings.ToLower(host), true
}

// validDomainName reports whether name is usable as a DNS sinkhole entry:
// dot-separated labels of letters, digits, hyphens and underscores, where no
// label starts or ends with a hyphen.
func validDomainName(name string) bool {
	if _, ok := dns.IsDomainName(name); !ok {
		return false
	}
	for _, label := range strings.Split(name, ".") {
		if label == "" || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			b := label[i]
			switch {
			case b >= 'a' && b <= 'z', b >= '0' && b <= '9', b == '-', b == '_':
			default:
				return false
			}
		}
	}
	return true
}
