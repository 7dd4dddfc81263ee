package version

// Current is the release version, overwritten at build time with -ldflags.
var Current = "dev"

const AppName = "NeKo"
