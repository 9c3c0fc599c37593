// Package normalize cleans raw link strings taken from upstream JSON before
// they are classified.
package normalize
