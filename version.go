package dianti

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/aretw0/dianti.Version=v1.2.3" ./cmd/dianti
var Version = "0.1.0-dev"
