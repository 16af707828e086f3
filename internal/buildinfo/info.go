package buildinfo

// Set at build time with -ldflags "-X github.com/darmiel/voxauth/internal/buildinfo.Version=...".
var (
	Version    = "v0.1.0"
	CommitHash = "unknown"
)

const (
	ServiceName = "voxauth"
	AboutURL    = "https://github.com/darmiel/voxauth"
)

// Info is served by GET /v1/about and printed by `voxauth info`.
type Info struct {
	About      string `json:"about,omitempty"`
	Service    string `json:"service,omitempty"`
	Version    string `json:"version,omitempty"`
	CommitHash string `json:"commit_hash,omitempty"`
}

func GetBuildInfo() Info {
	return Info{About: AboutURL, Service: ServiceName, Version: Version, CommitHash: CommitHash}
}
