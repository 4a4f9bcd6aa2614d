package cmdbot

// Version is the release of cmdbot. Builds override it with
// -ldflags "-X github.com/aretw0/cmdbot.Version=...".
var Version = "0.1.0"
