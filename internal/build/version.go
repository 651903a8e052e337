// Package build contains the build time information of the binary.
package build

// Version contains the current semantic version.
const Version = "0.2.0"
