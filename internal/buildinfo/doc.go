// Package buildinfo resolves the version, commit and build date of the
// wpkit binaries and provides the version subcommand they share.
//
// Values are injected at link time:
//
//	go build -ldflags "-X github.com/nao1215/wpkit/internal/buildinfo.version=v1.2.0"
//
// When ldflags are absent (go install, go run) the module build info and
// VCS stamps embedded by the Go toolchain are used instead.
package buildinfo
