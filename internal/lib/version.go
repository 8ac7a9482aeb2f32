package lib

// Version is overridden at build time with -ldflags "-X ...lib.Version=...".
var Version = "dev"
