// Package main provides the entry point for the eolallowlist CLI.
//
// eolallowlist builds DNS sinkhole allowlists from the product websites
// listed by the endoflife.date API. It writes the non-IP URLs, the IPv4
// addresses and the lowercased FQDNs it finds into three text files.
//
// Usage:
//
//	eolallowlist scrape
//	eolallowlist scrape --output-dir lists --summary lists/SUMMARY.md
//
// See --help for all available options.
package main

// main is the entry point for eolallowlist.
func main() {
	Execute()
}
