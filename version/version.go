package version

// Version is set at build time with -ldflags "-X github.com/pulumi/schema-diff/version.Version=...".
var Version = "dev"
