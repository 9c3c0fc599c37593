// Package classify decides whether a normalized link points at an IPv4
// literal, a fully-qualified domain name, or neither.
//
// Domain names are split into subdomain, registrable domain and public
// suffix using the Public Suffix List, so multi-label suffixes such as
// "co.uk" are never mistaken for a registrable domain. Only the ICANN section
// of the list is consulted unless private domains are enabled.
//
// Classification never fails: anything that cannot be read as an IPv4
// literal or a domain name is reported as Discard.
package classify
