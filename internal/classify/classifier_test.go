package classify

import (
	"strings"
	"testing"

	"github.com/weppos/publicsuffix-go/publicsuffix"
)

func TestHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		link string
		want string
	}{
		{name: "bare host", link: "example.com", want: "example.com"},
		{name: "scheme and path", link: "https://example.com/docs/", want: "example.com"},
		{name: "uppercase scheme", link: "HTTPS://Example.COM", want: "Example.COM"},
		{name: "scheme relative", link: "//cdn.example.org/x.js", want: "cdn.example.org"},
		{name: "query", link: "example.com?x=1", want: "example.com"},
		{name: "fragment", link: "example.com#top", want: "example.com"},
		{name: "userinfo", link: "ftp://user:pw@files.example.net/", want: "files.example.net"},
		{name: "port", link: "10.0.0.5:8080/status", want: "10.0.0.5"},
		{name: "ipv6 brackets", link: "http://[2001:db8::1]:443/", want: "2001:db8::1"},
		{name: "trailing dot", link: "example.com./", want: "example.com"},
		{name: "empty", link: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Host(tt.link); got != tt.want {
				t.Errorf("Host(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}

func TestClassifier_Split(t *testing.T) {
	t.Parallel()

	c := New()
	tests := []struct {
		name string
		link string
		want Parts
	}{
		{name: "simple", link: "example.com", want: Parts{Domain: "example", Suffix: "com"}},
		{name: "subdomain", link: "docs.python.org/3/", want: Parts{Subdomain: "docs", Domain: "python", Suffix: "org"}},
		{name: "multi label suffix", link: "https://example.co.uk/path", want: Parts{Domain: "example", Suffix: "co.uk"}},
		{name: "deep subdomain", link: "a.b.example.com", want: Parts{Subdomain: "a.b", Domain: "example", Suffix: "com"}},
		{name: "ipv4", link: "192.168.1.1", want: Parts{Domain: "192.168.1.1"}},
		{name: "unknown suffix", link: "intranet.localdomain", want: Parts{Subdomain: "intranet", Domain: "localdomain"}},
		{name: "single label", link: "localhost", want: Parts{Domain: "localhost"}},
		{name: "suffix only", link: "co.uk", want: Parts{Suffix: "co.uk"}},
		{name: "lowercased", link: "WWW.Example.COM", want: Parts{Subdomain: "www", Domain: "example", Suffix: "com"}},
		{name: "idn", link: "bücher.de", want: Parts{Domain: "xn--bcher-kva", Suffix: "de"}},
		{name: "empty", link: "", want: Parts{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := c.Split(tt.link); got != tt.want {
				t.Errorf("Split(%q) = %+v, want %+v", tt.link, got, tt.want)
			}
		})
	}
}

func TestParts_FQDN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		parts Parts
		want  string
	}{
		{name: "all parts", parts: Parts{Subdomain: "www", Domain: "example", Suffix: "com"}, want: "www.example.com"},
		{name: "no subdomain", parts: Parts{Domain: "example", Suffix: "co.uk"}, want: "example.co.uk"},
		{name: "no suffix", parts: Parts{Subdomain: "a", Domain: "localdomain"}, want: ""},
		{name: "no domain", parts: Parts{Suffix: "com"}, want: ""},
		{name: "zero", parts: Parts{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.parts.FQDN(); got != tt.want {
				t.Errorf("FQDN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := New()
	tests := []struct {
		name      string
		link      string
		wantKind  Kind
		wantValue string
	}{
		{name: "ipv4 literal", link: "192.168.1.1", wantKind: IPv4, wantValue: "192.168.1.1"},
		{name: "ipv4 with path", link: "10.0.0.5/admin", wantKind: IPv4, wantValue: "10.0.0.5"},
		{name: "out of range octets", link: "999.999.999.999", wantKind: Discard},
		{name: "multi label suffix", link: "https://example.co.uk/path", wantKind: Domain, wantValue: "example.co.uk"},
		{name: "lowercased fqdn", link: "HTTPS://Example.COM", wantKind: Domain, wantValue: "example.com"},
		{name: "subdomain kept", link: "www.Python.org/downloads", wantKind: Domain, wantValue: "www.python.org"},
		{name: "not a url", link: "not a url", wantKind: Discard},
		{name: "space inside host", link: "foo bar.com", wantKind: Discard},
		{name: "leading hyphen label", link: "-bad.example.com", wantKind: Discard},
		{name: "trailing hyphen label", link: "bad-.example.com", wantKind: Discard},
		{name: "hyphen inside label", link: "my-site.example.com", wantKind: Domain, wantValue: "my-site.example.com"},
		{name: "underscore label", link: "_dmarc.example.com", wantKind: Domain, wantValue: "_dmarc.example.com"},
		{name: "single label", link: "localhost", wantKind: Discard},
		{name: "unknown suffix", link: "intranet.localdomain", wantKind: Discard},
		{name: "suffix only", link: "co.uk", wantKind: Discard},
		{name: "ipv6", link: "http://[2001:db8::1]/", wantKind: Discard},
		{name: "empty", link: "", wantKind: Discard},
		{name: "idn", link: "https://bücher.de/", wantKind: Domain, wantValue: "xn--bcher-kva.de"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Classify(tt.link)
			if got.Kind != tt.wantKind {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.link, got.Kind, tt.wantKind)
			}
			if got.Value != tt.wantValue {
				t.Errorf("Classify(%q).Value = %q, want %q", tt.link, got.Value, tt.wantValue)
			}
			if got.URL != tt.link {
				t.Errorf("Classify(%q).URL = %q", tt.link, got.URL)
			}
		})
	}
}

func TestClassifier_Classify_NeverPanics(t *testing.T) {
	t.Parallel()

	c := New()
	inputs := []string{
		"://", "//", "@", "[", "]", ":", ".", "..", "http://", "https://@:/",
		"[::1", "a..b.com", ".example.com", strings.Repeat("a.", 200) + "com",
		"\x00", "http://%zz/",
	}
	for _, in := range inputs {
		res := c.Classify(in)
		if res.Kind == Domain && res.Value == "" {
			t.Errorf("Classify(%q) returned Domain without fqdn", in)
		}
	}
}

func TestClassifier_PrivateDomains(t *testing.T) {
	t.Parallel()

	icann := New().Split("user.github.io")
	if icann.FQDN() != "user.github.io" || icann.Domain != "github" {
		t.Errorf("ICANN-only split = %+v, want domain github", icann)
	}

	private := New(WithPrivateDomains(true)).Split("user.github.io")
	if private.Domain != "user" || private.Suffix != "github.io" {
		t.Errorf("private split = %+v, want domain user under github.io", private)
	}
}

func TestClassifier_WithList(t *testing.T) {
	t.Parallel()

	list := publicsuffix.NewList()
	rule, err := publicsuffix.NewRule("internal")
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}
	if err := list.AddRule(rule); err != nil {
		t.Fatalf("AddRule: %v", err)
	}

	c := New(WithList(list))
	if got := c.Classify("wiki.corp.internal").Value; got != "wiki.corp.internal" {
		t.Errorf("custom list fqdn = %q, want wiki.corp.internal", got)
	}
	if got := c.Classify("example.com").Kind; got != Discard {
		t.Errorf("com is not on the custom list, got %v", got)
	}
}

func TestClassifier_Build(t *testing.T) {
	t.Parallel()

	links := []string{
		"https://Foo.com/",
		"10.0.0.5",
		"not a url",
		"http://foo.com",
		"2.0.0.1",
		" https://docs.example.co.uk/guide/ ",
		"",
	}

	list, discarded := New().Build(links)

	if discarded != 2 {
		t.Errorf("discarded = %d, want 2", discarded)
	}

	wantURLs := []string{"Foo.com", "docs.example.co.uk/guide", "foo.com"}
	if got := list.URLs.Sorted(); strings.Join(got, ",") != strings.Join(wantURLs, ",") {
		t.Errorf("URLs = %v, want %v", got, wantURLs)
	}

	wantIPs := []string{"10.0.0.5", "2.0.0.1"}
	if got := list.IPs.Sorted(); strings.Join(got, ",") != strings.Join(wantIPs, ",") {
		t.Errorf("IPs = %v, want %v", got, wantIPs)
	}

	wantFQDNs := []string{"docs.example.co.uk", "foo.com"}
	if got := list.FQDNs.Sorted(); strings.Join(got, ",") != strings.Join(wantFQDNs, ",") {
		t.Errorf("FQDNs = %v, want %v", got, wantFQDNs)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	if IPv4.String() != "ipv4" || Domain.String() != "domain" || Discard.String() != "discard" {
		t.Error("unexpected Kind names")
	}
}
