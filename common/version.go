package common

// PackageName is used as the service tag on logs and the metrics namespace.
const PackageName = "botstrap"

// Version is set at build time via -ldflags.
var Version = "dev"
